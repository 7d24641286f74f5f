// internal/types/conditions.go
package types

import "encoding/json"

/*
 * Domain types for conditional upscaling.
 *
 * Provides Condition, Match, Expression, and Action structures used by
 * internal/rules for normalization and matching and by internal/store for
 * list management. These types ARE the wire format: the persisted condition
 * list is a JSON array of Condition records with the field names below.
 *
 * Key types:
 *   - Condition: one prioritized rule (match predicate + action)
 *   - Match: dimension bounds, path patterns, metadata expressions
 *   - Expression: (operator, value) pair tested against a metadata value
 *   - Action: upscale parameters to apply, or skip
 *
 * Boolean fields whose default is true (enabled, useCache) get custom
 * UnmarshalJSON with pre-seeded defaults so absence in imported JSON is
 * observable without making the in-memory types pointer-heavy.
 */

// Expression is an (operator, value) pair tested against a metadata value
// drawn from the image context.
type Expression struct {
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// Match is the predicate portion of a condition. Absent dimension bounds are
// unconstrained (nil); absent patterns are unconstrained (empty string).
type Match struct {
	MinWidth           *int                  `json:"minWidth,omitempty"`
	MinHeight          *int                  `json:"minHeight,omitempty"`
	MaxWidth           *int                  `json:"maxWidth,omitempty"`
	MaxHeight          *int                  `json:"maxHeight,omitempty"`
	DimensionMode      DimensionMode         `json:"dimensionMode"`
	RegexBookPath      string                `json:"regexBookPath,omitempty"`
	RegexImagePath     string                `json:"regexImagePath,omitempty"`
	ExcludeFromPreload bool                  `json:"excludeFromPreload"`
	Metadata           map[string]Expression `json:"metadata,omitempty"`
}

// Action is the outcome portion of a condition. Model existence is validated
// at the host's config-loading boundary, not here.
type Action struct {
	Skip       bool    `json:"skip"`
	Model      string  `json:"model"`
	Scale      float64 `json:"scale"`
	TileSize   int     `json:"tileSize"`
	NoiseLevel int     `json:"noiseLevel"`
	GPUID      int     `json:"gpuId"`
	UseCache   bool    `json:"useCache"`
}

// UnmarshalJSON decodes an action with useCache defaulting to true when the
// field is absent.
func (a *Action) UnmarshalJSON(data []byte) error {
	type plain Action
	tmp := plain{UseCache: true}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*a = Action(tmp)
	return nil
}

// Condition is one prioritized rule.
type Condition struct {
	ID       ConditionID `json:"id"`
	Name     string      `json:"name"`
	Enabled  bool        `json:"enabled"`
	Priority int         `json:"priority"`
	Match    Match       `json:"match"`
	Action   Action      `json:"action"`
}

// UnmarshalJSON decodes a condition with enabled defaulting to true when the
// field is absent. Disabled conditions must be disabled explicitly.
func (c *Condition) UnmarshalJSON(data []byte) error {
	type plain Condition
	tmp := plain{Enabled: true}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = Condition(tmp)
	return nil
}

// Clone returns a deep copy. Published store snapshots share nothing mutable
// with their sources, so matching never observes a half-edited condition.
func (c Condition) Clone() Condition {
	out := c
	out.Match.MinWidth = cloneIntPtr(c.Match.MinWidth)
	out.Match.MinHeight = cloneIntPtr(c.Match.MinHeight)
	out.Match.MaxWidth = cloneIntPtr(c.Match.MaxWidth)
	out.Match.MaxHeight = cloneIntPtr(c.Match.MaxHeight)
	if c.Match.Metadata != nil {
		out.Match.Metadata = make(map[string]Expression, len(c.Match.Metadata))
		for k, v := range c.Match.Metadata {
			out.Match.Metadata[k] = v
		}
	}
	return out
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
