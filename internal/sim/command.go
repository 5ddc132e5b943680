package sim

import (
	"fmt"

	"github.com/san-kum/equilibria/internal/chem"
)

type CommandType string

const (
	CmdSelectReaction    CommandType = "select-reaction"
	CmdSetTemperature    CommandType = "set-temperature"
	CmdSetPressure       CommandType = "set-pressure"
	CmdSetReactant       CommandType = "set-reactant"
	CmdSetProduct        CommandType = "set-product"
	CmdReset             CommandType = "reset"
	CmdRecord            CommandType = "record"
	CmdClearObservations CommandType = "clear-observations"
)

// Command is one user input. Value carries the new control value for the
// set-* commands and Reaction the reaction name for select-reaction.
type Command struct {
	Type               CommandType `json:"type" yaml:"type"`
	Value              float64     `json:"value,omitempty" yaml:"value,omitempty"`
	Reaction           string      `json:"reaction,omitempty" yaml:"reaction,omitempty"`
	KeepConcentrations bool        `json:"keep_concentrations,omitempty" yaml:"keep_concentrations,omitempty"`
}

func (c Command) String() string {
	switch c.Type {
	case CmdSelectReaction:
		return fmt.Sprintf("%s %s", c.Type, c.Reaction)
	case CmdSetTemperature, CmdSetPressure, CmdSetReactant, CmdSetProduct:
		return fmt.Sprintf("%s %g", c.Type, c.Value)
	}
	return string(c.Type)
}

func Select(rt chem.ReactionType) Command {
	return Command{Type: CmdSelectReaction, Reaction: rt.String()}
}

func Temperature(v float64) Command { return Command{Type: CmdSetTemperature, Value: v} }
func Pressure(v float64) Command    { return Command{Type: CmdSetPressure, Value: v} }
func Reactant(v float64) Command    { return Command{Type: CmdSetReactant, Value: v} }
func Product(v float64) Command     { return Command{Type: CmdSetProduct, Value: v} }
func Record() Command               { return Command{Type: CmdRecord} }
func ClearObservations() Command    { return Command{Type: CmdClearObservations} }

// Reset returns controls to baseline. Concentrations go back to the
// reaction's default split unless keepConcentrations is set.
func Reset(keepConcentrations bool) Command {
	return Command{Type: CmdReset, KeepConcentrations: keepConcentrations}
}
