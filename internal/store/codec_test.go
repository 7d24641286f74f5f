package store

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/fumikura/uprules/internal/types"
)

func TestImport_RoundTrip(t *testing.T) {
	original := []types.Condition{
		{
			Name:    "wide pages",
			Enabled: true,
			Match: types.Match{
				MinWidth:      intp(1600),
				DimensionMode: types.DimensionOr,
				Metadata: map[string]types.Expression{
					"format": {Operator: types.OpEq, Value: "webtoon"},
				},
			},
			Action: types.Action{Model: "real-cugan", Scale: 2, UseCache: true},
		},
		{
			Name:    "skip png",
			Enabled: false,
			Match:   types.Match{RegexImagePath: `\.png$`},
			Action:  types.Action{Skip: true, Scale: 1, UseCache: true},
		},
	}

	s := NewStore(original)
	exported, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	imported, err := Import(exported)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if !reflect.DeepEqual(imported, s.Snapshot()) {
		t.Errorf("round trip diverged:\ngot  %+v\nwant %+v", imported, s.Snapshot())
	}
}

func TestImport_NotAnArray(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"object", `{}`},
		{"number", `42`},
		{"null", `null`},
		{"string", `"conditions"`},
		{"bool", `true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(tt.data)
			if !errors.Is(err, types.ErrNotAnArray) {
				t.Errorf("Import(%s) error = %v, want ErrNotAnArray", tt.data, err)
			}
		})
	}
}

func TestImport_MalformedJSON(t *testing.T) {
	_, err := Import(`[{"name": "broken"`)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, types.ErrNotAnArray) {
		t.Error("malformed input is a parse error, not a shape error")
	}
}

func TestImport_DecodeDefaults(t *testing.T) {
	list, err := Import(`[{"name": "minimal"}]`)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}

	c := list[0]
	if !c.Enabled {
		t.Error("enabled must default to true when absent")
	}
	if !c.Action.UseCache {
		t.Error("useCache must default to true when absent")
	}
	if c.Action.Scale != 1 {
		t.Errorf("Scale = %v, want normalized to 1", c.Action.Scale)
	}
	if c.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestImport_ExplicitFalseSurvives(t *testing.T) {
	list, err := Import(`[{"name": "off", "enabled": false, "action": {"useCache": false}}]`)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if list[0].Enabled {
		t.Error("explicit enabled:false must survive decoding")
	}
	if list[0].Action.UseCache {
		t.Error("explicit useCache:false must survive decoding")
	}
}

func TestExport_FieldNames(t *testing.T) {
	s := NewStore([]types.Condition{{
		Name:    "x",
		Enabled: true,
		Match:   types.Match{MinWidth: intp(100), DimensionMode: types.DimensionAnd},
		Action:  types.Action{Scale: 2, GPUID: 1},
	}})

	exported, err := s.Export()
	if err != nil {
		t.Fatal(err)
	}

	var raw []map[string]any
	if err := json.Unmarshal([]byte(exported), &raw); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	match, ok := raw[0]["match"].(map[string]any)
	if !ok {
		t.Fatalf("missing match object in %s", exported)
	}
	if _, ok := match["minWidth"]; !ok {
		t.Error("expected camelCase minWidth key")
	}
	action, ok := raw[0]["action"].(map[string]any)
	if !ok {
		t.Fatalf("missing action object in %s", exported)
	}
	if _, ok := action["gpuId"]; !ok {
		t.Error("expected camelCase gpuId key")
	}
}

func TestImportReplace_AllOrNothing(t *testing.T) {
	s := NewStore([]types.Condition{{Name: "keep", Enabled: true}})
	before := s.Snapshot()

	if err := s.ImportReplace(`{"not": "an array"}`); !errors.Is(err, types.ErrNotAnArray) {
		t.Fatalf("error = %v, want ErrNotAnArray", err)
	}
	if !reflect.DeepEqual(s.Snapshot(), before) {
		t.Error("failed import must leave the store untouched")
	}

	if err := s.ImportReplace(`[{"name": "a"}, {"name": "b"}]`); err != nil {
		t.Fatalf("ImportReplace() error = %v", err)
	}
	got := names(s)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("names = %v, want [a b]", got)
	}
}
