package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fumikura/uprules/internal/core/db"
	"github.com/fumikura/uprules/internal/rules"
	"github.com/fumikura/uprules/internal/store"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Validate and manage stored condition lists",
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a condition list file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		list, err := store.Import(string(data))
		if err != nil {
			return fmt.Errorf("invalid condition list: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d condition(s)\n", len(list))
		return nil
	},
}

var rulesPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range rules.PresetOptions() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s — %s\n", p.Key, p.Name, p.Description)
		}
		return nil
	},
}

var ruleSetName string

var rulesSaveCmd = &cobra.Command{
	Use:   "save FILE",
	Short: "Store a condition list file as a named rule set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		// Round through import/export so only the canonical, normalized
		// form reaches storage.
		list, err := store.Import(string(data))
		if err != nil {
			return fmt.Errorf("invalid condition list: %w", err)
		}
		payload, err := store.Export(list)
		if err != nil {
			return err
		}

		queries, cleanup, err := openQueries()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := queries.SaveRuleSet(ruleSetName, payload); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved rule set %q (%d condition(s))\n", ruleSetName, len(list))
		return nil
	},
}

var ruleSetOut string

var rulesLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Fetch a named rule set",
	RunE: func(cmd *cobra.Command, args []string) error {
		queries, cleanup, err := openQueries()
		if err != nil {
			return err
		}
		defer cleanup()

		payload, err := queries.LoadRuleSet(ruleSetName)
		if err != nil {
			return err
		}
		if ruleSetOut == "" {
			fmt.Fprintln(cmd.OutOrStdout(), payload)
			return nil
		}
		if err := os.WriteFile(ruleSetOut, []byte(payload+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", ruleSetOut, err)
		}
		return nil
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored rule sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		queries, cleanup, err := openQueries()
		if err != nil {
			return err
		}
		defer cleanup()

		sets, err := queries.ListRuleSets()
		if err != nil {
			return err
		}
		for _, s := range sets {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.Name, s.UpdatedAt)
		}
		return nil
	},
}

var rulesDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a stored rule set",
	RunE: func(cmd *cobra.Command, args []string) error {
		queries, cleanup, err := openQueries()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := queries.DeleteRuleSet(ruleSetName); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted rule set %q\n", ruleSetName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesCmd.AddCommand(rulesPresetsCmd)
	rulesCmd.AddCommand(rulesSaveCmd)
	rulesCmd.AddCommand(rulesLoadCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesDeleteCmd)

	for _, c := range []*cobra.Command{rulesSaveCmd, rulesLoadCmd, rulesDeleteCmd} {
		c.Flags().StringVar(&ruleSetName, "name", "default", "rule set name")
	}
	rulesLoadCmd.Flags().StringVarP(&ruleSetOut, "out", "o", "", "write payload to file instead of stdout")
}

// openQueries opens the configured database and loads the named queries.
// The returned cleanup closes the connection.
func openQueries() (*db.Queries, func(), error) {
	database, err := openDatabase()
	if err != nil {
		return nil, nil, err
	}
	queries, err := db.LoadQueries(database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to load queries: %w", err)
	}
	return queries, func() { database.Close() }, nil
}
