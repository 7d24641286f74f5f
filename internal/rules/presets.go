// internal/rules/presets.go
package rules

import (
	"fmt"

	"github.com/fumikura/uprules/internal/types"
)

/*
 * Preset library.
 *
 * Ready-made conditions for common scenarios. Constructors are pure and
 * return fresh, normalized records each call, so editing a preset instance
 * never mutates the template.
 */

// Preset catalog keys.
const (
	PresetSmallOnly  = "small-only"
	PresetSkipLarge  = "skip-large"
	PresetSkipCovers = "skip-covers"
	PresetPNGDenoise = "png-denoise"
	PresetWebtoon    = "webtoon"
)

// PresetOption describes one catalog entry for display.
type PresetOption struct {
	Key         string
	Name        string
	Description string
}

var presetCatalog = []PresetOption{
	{
		Key:         PresetSmallOnly,
		Name:        "Upscale small pages",
		Description: "Only upscale images narrower than 1200px using a fast model.",
	},
	{
		Key:         PresetSkipLarge,
		Name:        "Skip large pages",
		Description: "Skip upscaling when either side is already 2000px or more.",
	},
	{
		Key:         PresetSkipCovers,
		Name:        "Skip covers",
		Description: "Skip any image whose path contains \"cover\".",
	},
	{
		Key:         PresetPNGDenoise,
		Name:        "Denoise PNG pages",
		Description: "Run PNG pages through real-cugan with light denoising.",
	},
	{
		Key:         PresetWebtoon,
		Name:        "Webtoon strips",
		Description: "Tile long webtoon strips and keep them out of preload.",
	},
}

// PresetOptions returns the preset catalog in display order.
// The slice is freshly allocated; callers may reorder it.
func PresetOptions() []PresetOption {
	out := make([]PresetOption, len(presetCatalog))
	copy(out, presetCatalog)
	return out
}

// NewTemplate returns a blank enabled condition for the given list position.
func NewTemplate(index int) types.Condition {
	return Normalize(types.Condition{
		Name:    "New rule",
		Enabled: true,
		Action:  types.Action{Scale: 2, UseCache: true},
	}, index)
}

// NewPreset builds a fresh, normalized condition for the given catalog key
// and list position.
func NewPreset(key string, index int) (types.Condition, error) {
	var c types.Condition

	switch key {
	case PresetSmallOnly:
		c = types.Condition{
			Name:    "Upscale small pages",
			Enabled: true,
			Match: types.Match{
				MaxWidth:      intPtr(1199),
				DimensionMode: types.DimensionOr,
			},
			Action: types.Action{
				Model:    "realesr-animevideov3",
				Scale:    2,
				UseCache: true,
			},
		}
	case PresetSkipLarge:
		c = types.Condition{
			Name:    "Skip large pages",
			Enabled: true,
			Match: types.Match{
				MinWidth:      intPtr(2000),
				MinHeight:     intPtr(2000),
				DimensionMode: types.DimensionOr,
			},
			Action: types.Action{
				Skip:     true,
				Scale:    1,
				UseCache: true,
			},
		}
	case PresetSkipCovers:
		c = types.Condition{
			Name:    "Skip covers",
			Enabled: true,
			Match: types.Match{
				RegexImagePath: `(?i)cover`,
			},
			Action: types.Action{
				Skip:     true,
				Scale:    1,
				UseCache: true,
			},
		}
	case PresetPNGDenoise:
		c = types.Condition{
			Name:    "Denoise PNG pages",
			Enabled: true,
			Match: types.Match{
				RegexImagePath: `(?i)\.png$`,
			},
			Action: types.Action{
				Model:      "real-cugan",
				Scale:      2,
				NoiseLevel: 1,
				UseCache:   true,
			},
		}
	case PresetWebtoon:
		c = types.Condition{
			Name:    "Webtoon strips",
			Enabled: true,
			Match: types.Match{
				ExcludeFromPreload: true,
				Metadata: map[string]types.Expression{
					"format": {Operator: types.OpEq, Value: "webtoon"},
				},
			},
			Action: types.Action{
				Model:    "realesrgan-x4plus-anime",
				Scale:    2,
				TileSize: 256,
				UseCache: true,
			},
		}
	default:
		return types.Condition{}, fmt.Errorf("%w: %q", types.ErrUnknownPreset, key)
	}

	return Normalize(c, index), nil
}

func intPtr(v int) *int { return &v }
