// Package types provides domain models shared across uprules components.
//
// Zero-dependency core: conditions.go and errors.go use only encoding/json so
// host applications embedding the engine pull in nothing extra. ID utilities
// in ids.go import uuid, the metadata document lookup in types.go imports
// gjson; both are isolated for selective inclusion.
package types

import "github.com/tidwall/gjson"

// ConditionID represents a UUIDv7 condition identifier.
// String alias enables type safety while maintaining JSON string serialization.
type ConditionID string

// Operator identifies one expression comparison. Values match the persisted
// JSON format, so the set is closed and serialization is the identity.
type Operator string

const (
	OpEq       Operator = "eq"
	OpNe       Operator = "ne"
	OpGt       Operator = "gt"
	OpGte      Operator = "gte"
	OpLt       Operator = "lt"
	OpLte      Operator = "lte"
	OpRegex    Operator = "regex"
	OpContains Operator = "contains"
)

// Valid reports whether op is a member of the closed operator set.
func (op Operator) Valid() bool {
	switch op {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpRegex, OpContains:
		return true
	}
	return false
}

// DimensionMode governs how the width-bound pair and height-bound pair of a
// match block combine.
type DimensionMode string

const (
	DimensionAnd DimensionMode = "and"
	DimensionOr  DimensionMode = "or"
)

// ImageContext describes one image for rule resolution. Supplied by the
// caller; the engine never loads or inspects image bytes.
//
// Metadata lookups check the explicit Metadata map first, then fall back to
// MetadataJSON (an optional raw JSON document, keys interpreted as gjson
// paths). The map is the caller's override surface; the document lets hosts
// hand over a whole EXIF or archive-info blob without pre-flattening it.
type ImageContext struct {
	Width        int
	Height       int
	BookPath     string
	ImagePath    string
	Metadata     map[string]any
	MetadataJSON []byte
}

// MetadataValue resolves key against the context's metadata.
// The second return is false when the key is absent from both sources.
func (c *ImageContext) MetadataValue(key string) (any, bool) {
	if v, ok := c.Metadata[key]; ok {
		return v, true
	}
	if len(c.MetadataJSON) > 0 {
		if r := gjson.GetBytes(c.MetadataJSON, key); r.Exists() {
			return r.Value(), true
		}
	}
	return nil, false
}

// UpscaleFunc is the external executor contract. The engine only produces the
// Action to hand off; it never invokes the executor in its resolution path.
type UpscaleFunc func(action Action, image []byte) ([]byte, error)
