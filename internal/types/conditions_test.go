package types

import (
	"encoding/json"
	"testing"
)

func TestConditionUnmarshal_Defaults(t *testing.T) {
	var c Condition
	if err := json.Unmarshal([]byte(`{"name": "minimal"}`), &c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !c.Enabled {
		t.Error("enabled must default to true when absent")
	}
	if !c.Action.UseCache {
		t.Error("useCache must default to true when absent")
	}
}

func TestConditionUnmarshal_ExplicitFalse(t *testing.T) {
	data := `{"name": "off", "enabled": false, "action": {"useCache": false}}`
	var c Condition
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if c.Enabled {
		t.Error("explicit enabled:false must be honored")
	}
	if c.Action.UseCache {
		t.Error("explicit useCache:false must be honored")
	}
}

func TestConditionUnmarshal_FullRecord(t *testing.T) {
	data := `{
		"id": "0191a2b3-c4d5-7e6f-8091-a2b3c4d5e6f7",
		"name": "wide pages",
		"enabled": true,
		"priority": 3,
		"match": {
			"minWidth": 1600,
			"dimensionMode": "or",
			"regexImagePath": "\\.png$",
			"excludeFromPreload": true,
			"metadata": {"format": {"operator": "eq", "value": "webtoon"}}
		},
		"action": {"model": "real-cugan", "scale": 2, "tileSize": 256, "gpuId": 1}
	}`

	var c Condition
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if c.ID != "0191a2b3-c4d5-7e6f-8091-a2b3c4d5e6f7" {
		t.Errorf("ID = %v", c.ID)
	}
	if c.Match.MinWidth == nil || *c.Match.MinWidth != 1600 {
		t.Error("minWidth not decoded")
	}
	if c.Match.MaxWidth != nil {
		t.Error("absent bound must stay nil")
	}
	if c.Match.DimensionMode != DimensionOr {
		t.Errorf("DimensionMode = %q", c.Match.DimensionMode)
	}
	if !c.Match.ExcludeFromPreload {
		t.Error("excludeFromPreload not decoded")
	}
	if expr := c.Match.Metadata["format"]; expr.Operator != OpEq || expr.Value != "webtoon" {
		t.Errorf("metadata expression = %+v", expr)
	}
	if c.Action.GPUID != 1 || c.Action.TileSize != 256 {
		t.Errorf("action = %+v", c.Action)
	}
}

func TestConditionClone_Independence(t *testing.T) {
	w := 100
	orig := Condition{
		ID:      "id-1",
		Name:    "a",
		Enabled: true,
		Match: Match{
			MinWidth: &w,
			Metadata: map[string]Expression{
				"format": {Operator: OpEq, Value: "webtoon"},
			},
		},
		Action: Action{Scale: 2},
	}

	clone := orig.Clone()
	*clone.Match.MinWidth = 999
	clone.Match.Metadata["format"] = Expression{Operator: OpNe, Value: "changed"}

	if *orig.Match.MinWidth != 100 {
		t.Error("clone shares the bound pointer")
	}
	if orig.Match.Metadata["format"].Value != "webtoon" {
		t.Error("clone shares the metadata map")
	}
}

func TestConditionClone_NilFields(t *testing.T) {
	clone := Condition{Name: "bare"}.Clone()
	if clone.Match.MinWidth != nil || clone.Match.Metadata != nil {
		t.Error("nil fields must stay nil")
	}
}

func TestOperatorValid(t *testing.T) {
	for _, op := range []Operator{OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpRegex, OpContains} {
		if !op.Valid() {
			t.Errorf("%q should be valid", op)
		}
	}
	for _, op := range []Operator{"", "between", "EQ", "equals"} {
		if op.Valid() {
			t.Errorf("%q should be invalid", op)
		}
	}
}

func TestMetadataValue(t *testing.T) {
	ctx := &ImageContext{
		Metadata:     map[string]any{"format": "webtoon", "archive.source": "override"},
		MetadataJSON: []byte(`{"archive": {"source": "scan", "pages": 180}}`),
	}

	t.Run("map hit", func(t *testing.T) {
		v, ok := ctx.MetadataValue("format")
		if !ok || v != "webtoon" {
			t.Errorf("got (%v, %v)", v, ok)
		}
	})

	t.Run("map shadows document", func(t *testing.T) {
		v, ok := ctx.MetadataValue("archive.source")
		if !ok || v != "override" {
			t.Errorf("got (%v, %v), want the map value", v, ok)
		}
	})

	t.Run("document path fallback", func(t *testing.T) {
		v, ok := ctx.MetadataValue("archive.pages")
		if !ok || v != float64(180) {
			t.Errorf("got (%v, %v), want 180 from the document", v, ok)
		}
	})

	t.Run("absent everywhere", func(t *testing.T) {
		if _, ok := ctx.MetadataValue("missing"); ok {
			t.Error("expected miss")
		}
	})

	t.Run("no sources", func(t *testing.T) {
		empty := &ImageContext{}
		if _, ok := empty.MetadataValue("format"); ok {
			t.Error("expected miss on empty context")
		}
	})
}
