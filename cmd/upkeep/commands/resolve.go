package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mkravets/upkeep/internal/cli"
	"github.com/mkravets/upkeep/internal/client"
	"github.com/mkravets/upkeep/internal/conditions"
)

var resolveValues string

var resolveCmd = &cobra.Command{
	Use:   "resolve <template-id>",
	Short: "Resolve field states for a template",
	Long: `Evaluate a template's conditions against a set of form values and
print the resulting visibility, enabled, and required state of every field.
Useful for testing condition logic before publishing a template.

Examples:
  upkeep resolve tmpl-123 --values '{"condition":"failed"}'
  upkeep resolve tmpl-123 --values '{}' --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prof, _, err := cli.ResolveProfile(profile, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		values := conditions.FormValues{}
		if resolveValues != "" {
			if err := json.Unmarshal([]byte(resolveValues), &values); err != nil {
				return fmt.Errorf("invalid values JSON: %w", err)
			}
		}

		c := client.NewClient(prof.BaseURL, prof.APIKey)

		ctx := context.Background()
		states, err := c.Resolve(ctx, args[0], values)
		if err != nil {
			return fmt.Errorf("failed to resolve template: %w", err)
		}

		if quiet {
			return nil
		}

		if format == "json" {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(states)
		}

		names := make([]string, 0, len(states))
		for name := range states {
			names = append(names, name)
		}
		sort.Strings(names)

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Field", "Visible", "Enabled", "Required")
		for _, name := range names {
			st := states[name]
			table.Append(name,
				fmt.Sprintf("%v", st.Visible),
				fmt.Sprintf("%v", st.Enabled),
				fmt.Sprintf("%v", st.Required),
			)
		}
		return table.Render()
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&resolveValues, "values", "", "Form values as JSON")
}
