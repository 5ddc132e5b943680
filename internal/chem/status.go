package chem

import "fmt"

type Status int

const (
	Balanced Status = iota
	ShiftingRight
	ShiftingLeft
	StrongShiftRight
	StrongShiftLeft
)

var statusNames = map[Status]string{
	Balanced:         "balanced",
	ShiftingRight:    "shifting-right",
	ShiftingLeft:     "shifting-left",
	StrongShiftRight: "strong-shift-right",
	StrongShiftLeft:  "strong-shift-left",
}

// Classify maps a clamped shift to a status.
func Classify(shift float64) Status {
	switch {
	case shift > -BalancedThreshold && shift < BalancedThreshold:
		return Balanced
	case shift > 0:
		if shift > StrongThreshold {
			return StrongShiftRight
		}
		return ShiftingRight
	default:
		if shift < -StrongThreshold {
			return StrongShiftLeft
		}
		return ShiftingLeft
	}
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(text []byte) error {
	for st, name := range statusNames {
		if name == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("chem: unknown status %q", text)
}

// Direction is +1 toward products, -1 toward reactants and 0 when balanced.
func (s Status) Direction() int {
	switch s {
	case ShiftingRight, StrongShiftRight:
		return 1
	case ShiftingLeft, StrongShiftLeft:
		return -1
	}
	return 0
}

func (s Status) Strong() bool { return s == StrongShiftRight || s == StrongShiftLeft }

// Label is the short status line shown to the user.
func (s Status) Label() string {
	switch s.Direction() {
	case 1:
		return "Shifting to the Right"
	case -1:
		return "Shifting to the Left"
	}
	return "System at Equilibrium"
}

func (s Status) Explanation() string {
	switch s.Direction() {
	case 1:
		return "The system is trying to relieve the stress by favoring the formation of products."
	case -1:
		return "The system is trying to relieve the stress by favoring the formation of reactants."
	}
	return "The net rate of forward and reverse reactions are equal. No net shift occurring."
}

// Light names the status indicator state: equilibrium, shifting or strong-shift.
func (s Status) Light() string {
	switch {
	case s == Balanced:
		return "equilibrium"
	case s.Strong():
		return "strong-shift"
	}
	return "shifting"
}
