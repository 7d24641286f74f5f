// internal/rules/normalize_test.go
package rules

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/fumikura/uprules/internal/types"
)

func TestNormalize_Defaults(t *testing.T) {
	tests := []struct {
		name  string
		in    types.Condition
		check func(t *testing.T, out types.Condition)
	}{
		{
			name: "missing id regenerated",
			in:   types.Condition{Name: "a", Enabled: true},
			check: func(t *testing.T, out types.Condition) {
				if out.ID == "" {
					t.Error("expected a fresh id")
				}
				if _, err := types.ParseConditionID(string(out.ID)); err != nil {
					t.Errorf("generated id %q is not a UUID: %v", out.ID, err)
				}
			},
		},
		{
			name: "priority rewritten to index",
			in:   types.Condition{Name: "a", Priority: 99},
			check: func(t *testing.T, out types.Condition) {
				if out.Priority != 3 {
					t.Errorf("Priority = %d, want 3", out.Priority)
				}
			},
		},
		{
			name: "unknown dimension mode becomes or",
			in: types.Condition{
				Match: types.Match{DimensionMode: types.DimensionMode("xor")},
			},
			check: func(t *testing.T, out types.Condition) {
				if out.Match.DimensionMode != types.DimensionOr {
					t.Errorf("DimensionMode = %q, want or", out.Match.DimensionMode)
				}
			},
		},
		{
			name: "negative bounds dropped",
			in: types.Condition{
				Match: types.Match{MinWidth: intp(-5), MaxHeight: intp(-1), MinHeight: intp(0)},
			},
			check: func(t *testing.T, out types.Condition) {
				if out.Match.MinWidth != nil || out.Match.MaxHeight != nil {
					t.Error("negative bounds must be dropped")
				}
				if out.Match.MinHeight == nil || *out.Match.MinHeight != 0 {
					t.Error("zero bound must be preserved")
				}
			},
		},
		{
			name: "invalid operator becomes eq",
			in: types.Condition{
				Match: types.Match{
					Metadata: map[string]types.Expression{
						"format": {Operator: types.Operator("between"), Value: "x"},
					},
				},
			},
			check: func(t *testing.T, out types.Condition) {
				if out.Match.Metadata["format"].Operator != types.OpEq {
					t.Errorf("Operator = %q, want eq", out.Match.Metadata["format"].Operator)
				}
			},
		},
		{
			name: "non-positive scale becomes one",
			in:   types.Condition{Action: types.Action{Scale: -2}},
			check: func(t *testing.T, out types.Condition) {
				if out.Action.Scale != 1 {
					t.Errorf("Scale = %v, want 1", out.Action.Scale)
				}
			},
		},
		{
			name: "negative tile size becomes auto",
			in:   types.Condition{Action: types.Action{Scale: 2, TileSize: -64}},
			check: func(t *testing.T, out types.Condition) {
				if out.Action.TileSize != 0 {
					t.Errorf("TileSize = %d, want 0", out.Action.TileSize)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Normalize(tt.in, 3))
		})
	}
}

func TestNormalizeList_IDCollision(t *testing.T) {
	id := types.NewConditionID()
	out := NormalizeList([]types.Condition{
		{ID: id, Name: "first"},
		{ID: id, Name: "second"},
	})

	if out[0].ID != id {
		t.Errorf("first occurrence id = %v, want %v", out[0].ID, id)
	}
	if out[1].ID == id {
		t.Error("second occurrence must receive a fresh id")
	}
	if out[1].ID == "" {
		t.Error("fresh id must not be empty")
	}
}

func TestNormalizeList_InputNotMutated(t *testing.T) {
	in := []types.Condition{
		{Name: "a", Priority: 42, Match: types.Match{MinWidth: intp(-3)}},
	}
	_ = NormalizeList(in)

	if in[0].Priority != 42 {
		t.Error("input priority was mutated")
	}
	if in[0].Match.MinWidth == nil || *in[0].Match.MinWidth != -3 {
		t.Error("input bound was mutated")
	}
	if in[0].ID != "" {
		t.Error("input id was assigned in place")
	}
}

// Normalization is idempotent: a second pass over already-normalized
// conditions changes nothing, ids included.
func TestNormalizeList_PropertyIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("normalize(normalize(l)) == normalize(l)", prop.ForAll(
		func(count int, minWidth int, priority int, scale float64, op string, mode string) bool {
			list := make([]types.Condition, count)
			for i := range list {
				list[i] = types.Condition{
					Name:     "generated",
					Enabled:  i%2 == 0,
					Priority: priority,
					Match: types.Match{
						MinWidth:      intp(minWidth),
						DimensionMode: types.DimensionMode(mode),
						Metadata: map[string]types.Expression{
							"format": {Operator: types.Operator(op), Value: "x"},
						},
					},
					Action: types.Action{Scale: scale, TileSize: minWidth},
				}
			}

			once := NormalizeList(list)
			twice := NormalizeList(once)
			return reflect.DeepEqual(once, twice)
		},
		gen.IntRange(0, 8),
		gen.IntRange(-100, 100),
		gen.IntRange(-10, 1000),
		gen.Float64Range(-4, 8),
		gen.OneConstOf("eq", "ne", "gt", "between", ""),
		gen.OneConstOf("and", "or", "xor", ""),
	))

	properties.TestingRun(t)
}

// Every normalized list satisfies the canonical-shape invariants.
func TestNormalizeList_PropertyCanonicalShape(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("priorities contiguous, ids unique, fields valid", prop.ForAll(
		func(count int, bound int, scale float64) bool {
			list := make([]types.Condition, count)
			for i := range list {
				list[i] = types.Condition{
					Match:  types.Match{MaxWidth: intp(bound)},
					Action: types.Action{Scale: scale},
				}
			}

			out := NormalizeList(list)
			seen := make(map[types.ConditionID]bool, len(out))
			for i, c := range out {
				if c.Priority != i {
					return false
				}
				if c.ID == "" || seen[c.ID] {
					return false
				}
				seen[c.ID] = true
				if c.Match.DimensionMode != types.DimensionAnd && c.Match.DimensionMode != types.DimensionOr {
					return false
				}
				if c.Match.MaxWidth != nil && *c.Match.MaxWidth < 0 {
					return false
				}
				if c.Action.Scale <= 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 16),
		gen.IntRange(-50, 50),
		gen.Float64Range(-2, 4),
	))

	properties.TestingRun(t)
}
