package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkravets/upkeep/internal/cli"
	"github.com/mkravets/upkeep/internal/client"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <template-id>",
	Short: "Delete a form template",
	Long: `Delete a form template by ID. Submissions belonging to the template
are removed as well.

Examples:
  upkeep delete tmpl-123 --profile prod`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prof, _, err := cli.ResolveProfile(profile, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(prof.BaseURL, prof.APIKey)

		ctx := context.Background()
		if err := c.DeleteTemplate(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}

		if !quiet {
			fmt.Printf("Successfully deleted template '%s'\n", args[0])
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
