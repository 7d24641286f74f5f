// internal/rules/resolver.go
package rules

import (
	"github.com/fumikura/uprules/internal/types"
)

/*
 * Rule resolution.
 *
 * Walks the condition list in order and returns the first enabled match's
 * action. Normalization keeps priority equal to list index, so list order IS
 * priority order; the resolver never re-sorts.
 *
 * Determinism: resolution depends only on the ordered list and the image
 * context. No global state, no mutation of the list, referentially
 * transparent for a given (list, context) pair.
 *
 * The fallback action is an explicit parameter rather than a hardcoded
 * constant so hosts configure their own no-match behavior; DefaultAction
 * provides the conventional hand-through.
 */

// Resolution reports the outcome of resolving one image context, including
// which condition matched for diagnostics.
type Resolution struct {
	Matched       bool
	ConditionID   types.ConditionID
	ConditionName string
	Action        types.Action
}

// Resolve returns the action of the first condition matching ctx, or fallback
// when none match.
func Resolve(conditions []types.Condition, ctx *types.ImageContext, fallback types.Action) types.Action {
	return ResolveMatch(conditions, ctx, fallback).Action
}

// ResolveMatch is Resolve with match diagnostics.
func ResolveMatch(conditions []types.Condition, ctx *types.ImageContext, fallback types.Action) Resolution {
	for _, c := range conditions {
		if Matches(c, ctx) {
			return Resolution{
				Matched:       true,
				ConditionID:   c.ID,
				ConditionName: c.Name,
				Action:        c.Action,
			}
		}
	}
	return Resolution{Action: fallback}
}

// DefaultAction is the conventional fallback: hand the image through without
// upscaling.
func DefaultAction() types.Action {
	return types.Action{Skip: true, Scale: 1, UseCache: true}
}
