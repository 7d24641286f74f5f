// internal/rules/normalize.go
package rules

import (
	"github.com/fumikura/uprules/internal/types"
)

/*
 * Condition normalization.
 *
 * Repairs and completes raw condition records so every other component can
 * rely on a canonical shape: priority equals list index, ids are unique,
 * enum-ish fields hold valid members, and action parameters are sane.
 *
 * Documented defaults (stable, not semantically load-bearing):
 *   - dimensionMode          -> "or" when absent or unrecognized
 *   - expression operator    -> "eq" when absent or unrecognized
 *   - action.scale           -> 1 when zero or negative
 *   - action.tileSize        -> 0 (auto) when negative
 *   - negative dimension bounds are dropped (unconstrained)
 *   - id                     -> fresh UUIDv7 when absent or colliding with an
 *                               id already assigned earlier in the same pass
 *
 * enabled and useCache default to true at JSON decode time (types package),
 * where absence of the field is still observable.
 *
 * Idempotence: normalize(normalize(c, i), i) == normalize(c, i). Every repair
 * is a fixed point; tests pin this with a gopter property.
 */

// Normalize repairs one condition for the given list position.
func Normalize(c types.Condition, index int) types.Condition {
	return normalizeCondition(c, index, nil)
}

// NormalizeList normalizes every element against its position, repairing id
// collisions within the pass. Returns a fresh slice of deep copies; the input
// is never mutated.
func NormalizeList(list []types.Condition) []types.Condition {
	out := make([]types.Condition, len(list))
	seen := make(map[types.ConditionID]bool, len(list))
	for i, c := range list {
		n := normalizeCondition(c, i, seen)
		seen[n.ID] = true
		out[i] = n
	}
	return out
}

func normalizeCondition(c types.Condition, index int, seen map[types.ConditionID]bool) types.Condition {
	out := c.Clone()
	out.Priority = index

	if out.ID == "" || seen[out.ID] {
		out.ID = types.NewConditionID()
	}

	switch out.Match.DimensionMode {
	case types.DimensionAnd, types.DimensionOr:
	default:
		out.Match.DimensionMode = types.DimensionOr
	}
	out.Match.MinWidth = dropNegative(out.Match.MinWidth)
	out.Match.MinHeight = dropNegative(out.Match.MinHeight)
	out.Match.MaxWidth = dropNegative(out.Match.MaxWidth)
	out.Match.MaxHeight = dropNegative(out.Match.MaxHeight)

	// Clone already copied the metadata map, safe to repair in place.
	for key, expr := range out.Match.Metadata {
		if !expr.Operator.Valid() {
			expr.Operator = types.OpEq
			out.Match.Metadata[key] = expr
		}
	}

	if out.Action.Scale <= 0 {
		out.Action.Scale = 1
	}
	if out.Action.TileSize < 0 {
		out.Action.TileSize = 0
	}

	return out
}

func dropNegative(p *int) *int {
	if p != nil && *p < 0 {
		return nil
	}
	return p
}
