package chem

import "errors"

// Domain errors for reaction parsing.
var (
	// ErrUnknownReaction indicates a reaction name that does not map to a ReactionType.
	ErrUnknownReaction = errors.New("chem: unknown reaction type")
)
