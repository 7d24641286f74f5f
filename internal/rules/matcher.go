// internal/rules/matcher.go
package rules

import (
	"github.com/fumikura/uprules/internal/types"
)

/*
 * Condition matching.
 *
 * Evaluates one condition's match block against an image context. Pure aside
 * from the invalid-pattern diagnostic; matching-time failures (bad pattern,
 * missing or unparseable metadata) degrade to non-match, never to an error.
 *
 * Structure: dimension test AND path tests AND metadata tests. The top-level
 * categories always AND; only the width/height sub-combination is
 * configurable via dimensionMode. Metadata expressions AND across keys.
 *
 * Short-circuit: first failing category stops evaluation, mirroring AND-group
 * evaluation order elsewhere in the engine.
 */

// Matches reports whether the condition matches the image context.
// Disabled conditions never match.
func Matches(c types.Condition, ctx *types.ImageContext) bool {
	if !c.Enabled {
		return false
	}
	if !dimensionsOK(c.Match, ctx) {
		return false
	}
	if !pathOK(c.Match.RegexBookPath, ctx.BookPath) {
		return false
	}
	if !pathOK(c.Match.RegexImagePath, ctx.ImagePath) {
		return false
	}
	for key, expr := range c.Match.Metadata {
		actual, present := ctx.MetadataValue(key)
		if !EvalExpression(expr.Operator, expr.Value, actual, present) {
			return false
		}
	}
	return true
}

// dimensionsOK combines the width and height bound checks per dimensionMode.
// With no bounds at all the test is vacuously true. In OR mode only axes that
// carry at least one bound participate: an unconstrained axis is vacuously
// true and would otherwise make every OR pass.
func dimensionsOK(m types.Match, ctx *types.ImageContext) bool {
	widthBound := m.MinWidth != nil || m.MaxWidth != nil
	heightBound := m.MinHeight != nil || m.MaxHeight != nil
	if !widthBound && !heightBound {
		return true
	}

	widthOK := inBounds(ctx.Width, m.MinWidth, m.MaxWidth)
	heightOK := inBounds(ctx.Height, m.MinHeight, m.MaxHeight)

	if m.DimensionMode == types.DimensionAnd {
		return widthOK && heightOK
	}
	return (widthBound && widthOK) || (heightBound && heightOK)
}

// inBounds checks v against optional inclusive min/max. Absent bounds are
// unconstrained.
func inBounds(v int, min, max *int) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

// pathOK tests an optional pattern against a path. An absent pattern is
// vacuously satisfied; an invalid one fails the condition.
func pathOK(pattern, value string) bool {
	if pattern == "" {
		return true
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(value)
}
