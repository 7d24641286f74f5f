package types

import "github.com/google/uuid"

// NewConditionID generates a UUIDv7 condition identifier.
// Time-ordered ids keep freshly added conditions sortable by creation.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewConditionID() ConditionID {
	return ConditionID(uuid.Must(uuid.NewV7()).String())
}

// ParseConditionID validates and converts a string to ConditionID.
// Rejects malformed UUIDs to prevent invalid ids from entering the list.
func ParseConditionID(s string) (ConditionID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", err
	}
	return ConditionID(s), nil
}
