package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fumikura/uprules/internal/rules"
	"github.com/fumikura/uprules/internal/store"
	"github.com/fumikura/uprules/internal/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the upscale action for one image context",
	Long: `Loads a condition list and resolves which action applies to the image
described by the flags. Prints the outcome as JSON.`,
	RunE: runResolve,
}

var (
	resolveRulesPath string
	resolveWidth     int
	resolveHeight    int
	resolveBookPath  string
	resolveImagePath string
	resolveMeta      []string
	resolveMetaJSON  string
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveRulesPath, "rules", "", "condition list file (default from config rules.path)")
	resolveCmd.Flags().IntVar(&resolveWidth, "width", 0, "image width in pixels")
	resolveCmd.Flags().IntVar(&resolveHeight, "height", 0, "image height in pixels")
	resolveCmd.Flags().StringVar(&resolveBookPath, "book-path", "", "containing archive/book path")
	resolveCmd.Flags().StringVar(&resolveImagePath, "image-path", "", "individual image path")
	resolveCmd.Flags().StringArrayVar(&resolveMeta, "meta", nil, "metadata entry key=value (repeatable)")
	resolveCmd.Flags().StringVar(&resolveMetaJSON, "meta-json", "", "file with a metadata JSON document (keys resolved as gjson paths)")
	resolveCmd.MarkFlagRequired("width")
	resolveCmd.MarkFlagRequired("height")
}

// resolveOutput is the printed result shape.
type resolveOutput struct {
	Matched       bool              `json:"matched"`
	ConditionID   types.ConditionID `json:"conditionId,omitempty"`
	ConditionName string            `json:"conditionName,omitempty"`
	Action        types.Action      `json:"action"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	rulesPath := resolveRulesPath
	if rulesPath == "" {
		rulesPath = cfg.RulesPath
	}

	data, err := os.ReadFile(rulesPath)
	if err != nil {
		return fmt.Errorf("failed to read rules file: %w", err)
	}
	list, err := store.Import(string(data))
	if err != nil {
		return fmt.Errorf("failed to import rules from %s: %w", rulesPath, err)
	}

	meta, err := parseMetaFlags(resolveMeta)
	if err != nil {
		return err
	}

	ctx := &types.ImageContext{
		Width:     resolveWidth,
		Height:    resolveHeight,
		BookPath:  resolveBookPath,
		ImagePath: resolveImagePath,
		Metadata:  meta,
	}
	if resolveMetaJSON != "" {
		doc, err := os.ReadFile(resolveMetaJSON)
		if err != nil {
			return fmt.Errorf("failed to read metadata document: %w", err)
		}
		ctx.MetadataJSON = doc
	}

	res := rules.ResolveMatch(list, ctx, cfg.DefaultAction())
	if res.Matched {
		logrus.WithFields(logrus.Fields{
			"condition": res.ConditionName,
			"id":        res.ConditionID,
		}).Debug("condition matched")
	} else {
		logrus.Debug("no condition matched, using default action")
	}

	out, err := json.MarshalIndent(resolveOutput{
		Matched:       res.Matched,
		ConditionID:   res.ConditionID,
		ConditionName: res.ConditionName,
		Action:        res.Action,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// parseMetaFlags converts repeated key=value flags to a metadata map.
func parseMetaFlags(entries []string) (map[string]any, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	meta := make(map[string]any, len(entries))
	for _, e := range entries {
		key, value, ok := strings.Cut(e, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --meta entry %q (expected key=value)", e)
		}
		meta[key] = value
	}
	return meta, nil
}
