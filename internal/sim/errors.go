package sim

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCommand = errors.New("sim: unknown command")
	ErrInvalidConfig  = errors.New("sim: invalid configuration")
	ErrInvalidTicks   = errors.New("sim: tick count must be positive")
)

// CommandError reports a command the simulation refused.
type CommandError struct {
	Command Command
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("sim: %s: %v", e.Command.Type, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
