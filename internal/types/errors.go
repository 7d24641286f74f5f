package types

import "errors"

// Sentinel errors for uprules operations.
var (
	// ErrLastCondition indicates an attempt to remove the sole remaining
	// condition while conditional mode is active.
	ErrLastCondition = errors.New("cannot remove the last condition while conditional mode is active")

	// ErrConditionNotFound indicates a condition id absent from the list.
	ErrConditionNotFound = errors.New("condition not found")

	// ErrNotAnArray indicates an imported document whose top-level value is
	// not a JSON array.
	ErrNotAnArray = errors.New("imported document is not a JSON array")

	// ErrUnknownPreset indicates a preset key with no catalog entry.
	ErrUnknownPreset = errors.New("unknown preset key")

	// ErrInvalidDirection indicates a move direction outside up/down.
	ErrInvalidDirection = errors.New("invalid move direction")

	// ErrRuleSetNotFound indicates a named rule set absent from storage.
	ErrRuleSetNotFound = errors.New("rule set not found")
)
