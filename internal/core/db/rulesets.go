package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fumikura/uprules/internal/types"
)

// RuleSetInfo describes one stored rule set.
// updated_at is RFC3339 text in both drivers so scanning stays identical.
type RuleSetInfo struct {
	Name      string `db:"name"`
	UpdatedAt string `db:"updated_at"`
}

// SaveRuleSet stores payload (the export format) under name, replacing any
// existing set with that name.
func (q *Queries) SaveRuleSet(name, payload string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := q.Exec("upsert-rule-set", name, payload, now); err != nil {
		return fmt.Errorf("save rule set %q: %w", name, err)
	}
	return nil
}

// LoadRuleSet returns the stored payload for name.
// Returns ErrRuleSetNotFound when no set with that name exists.
func (q *Queries) LoadRuleSet(name string) (string, error) {
	var payload string
	err := q.Get("get-rule-set", &payload, name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %q", types.ErrRuleSetNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("load rule set %q: %w", name, err)
	}
	return payload, nil
}

// ListRuleSets returns all stored rule sets ordered by name.
func (q *Queries) ListRuleSets() ([]RuleSetInfo, error) {
	var sets []RuleSetInfo
	if err := q.Select("list-rule-sets", &sets); err != nil {
		return nil, fmt.Errorf("list rule sets: %w", err)
	}
	return sets, nil
}

// DeleteRuleSet removes the named rule set. Deleting an absent set returns
// ErrRuleSetNotFound.
func (q *Queries) DeleteRuleSet(name string) error {
	res, err := q.Exec("delete-rule-set", name)
	if err != nil {
		return fmt.Errorf("delete rule set %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", types.ErrRuleSetNotFound, name)
	}
	return nil
}
