// internal/rules/expression.go
package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fumikura/uprules/internal/types"
)

/*
 * Expression evaluation.
 *
 * Applies one (operator, value) pair against a metadata value drawn from the
 * image context. All failures are absorbed as non-match; an expression never
 * aborts resolution of the list.
 *
 * Missing-key policy: an absent value evaluates to false for every operator
 * except ne, which evaluates to true (a missing value is "not equal" to
 * anything). Metadata rules degrade to non-match rather than erroring.
 *
 * Comparison rules:
 *   - eq/ne: numeric equality when both sides parse as numbers, else exact
 *     string comparison of the stringified value
 *   - gt/gte/lt/lte: numeric only; either side failing to parse -> false
 *   - regex: memoized pattern, tested anywhere in the stringified value;
 *     invalid pattern -> false with one diagnostic
 *   - contains: case-sensitive substring on stringified values
 */

// EvalExpression applies op with the expected value against actual.
// present=false means the key was absent from the context's metadata.
func EvalExpression(op types.Operator, expected string, actual any, present bool) bool {
	if !present {
		return op == types.OpNe
	}

	switch op {
	case types.OpEq:
		return looseEqual(expected, actual)
	case types.OpNe:
		return !looseEqual(expected, actual)
	case types.OpGt:
		cmp, ok := numericCompare(actual, expected)
		return ok && cmp > 0
	case types.OpGte:
		cmp, ok := numericCompare(actual, expected)
		return ok && cmp >= 0
	case types.OpLt:
		cmp, ok := numericCompare(actual, expected)
		return ok && cmp < 0
	case types.OpLte:
		cmp, ok := numericCompare(actual, expected)
		return ok && cmp <= 0
	case types.OpRegex:
		re, err := compilePattern(expected)
		if err != nil {
			return false
		}
		return re.MatchString(stringify(actual))
	case types.OpContains:
		return strings.Contains(stringify(actual), expected)
	default:
		return false
	}
}

// looseEqual compares with numeric canonicalization: when both sides parse as
// numbers the comparison is numeric (so "2" equals 2.0), otherwise raw string.
func looseEqual(expected string, actual any) bool {
	ea, okA := toFloat(actual)
	eb, okB := parseFloat(expected)
	if okA && okB {
		return ea == eb
	}
	return stringify(actual) == expected
}

// numericCompare performs three-way comparison (-1/0/1) of actual against the
// expected string. ok=false when either side is not a number.
func numericCompare(actual any, expected string) (int, bool) {
	na, okA := toFloat(actual)
	nb, okB := parseFloat(expected)
	if !okA || !okB {
		return 0, false
	}
	switch {
	case na < nb:
		return -1, true
	case na > nb:
		return 1, true
	default:
		return 0, true
	}
}

// toFloat converts a metadata value to float64 if it is numeric or a numeric
// string. Handles float64/int/int64 from JSON unmarshaling and gjson.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		return parseFloat(n)
	default:
		return 0, false
	}
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// stringify converts a metadata value to its canonical string form for
// regex/contains/eq comparison.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		if s {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}
