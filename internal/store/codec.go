// internal/store/codec.go
package store

import (
	"encoding/json"
	"fmt"

	"github.com/fumikura/uprules/internal/rules"
	"github.com/fumikura/uprules/internal/types"
)

/*
 * Import/export serialization boundary.
 *
 * The engine works on strings; file pickers, clipboard access, and dialog UX
 * are entirely the host application's concern. Export serializes the list
 * verbatim (pretty-printed, no filtering). Import is all-or-nothing: shape
 * check first, then decode, then normalize; any failure returns before any
 * caller state changes hands.
 */

// Export serializes the condition list as pretty-printed JSON.
func Export(conditions []types.Condition) (string, error) {
	b, err := json.MarshalIndent(conditions, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export conditions: %w", err)
	}
	return string(b), nil
}

// Import parses data and returns the normalized condition list.
// Returns ErrNotAnArray when the top-level value is not a JSON array.
func Import(data string) ([]types.Condition, error) {
	var probe any
	if err := json.Unmarshal([]byte(data), &probe); err != nil {
		return nil, fmt.Errorf("parse conditions: %w", err)
	}
	if _, ok := probe.([]any); !ok {
		return nil, types.ErrNotAnArray
	}

	var list []types.Condition
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, fmt.Errorf("decode conditions: %w", err)
	}
	return rules.NormalizeList(list), nil
}

// Export serializes the store's current snapshot.
func (s *Store) Export() (string, error) {
	return Export(s.Snapshot())
}

// ImportReplace parses data and atomically replaces the store's list.
// On any failure the existing state is left untouched.
func (s *Store) ImportReplace(data string) error {
	list, err := Import(data)
	if err != nil {
		return err
	}
	s.Replace(list)
	return nil
}
