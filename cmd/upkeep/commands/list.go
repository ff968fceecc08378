package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkravets/upkeep/internal/cli"
	"github.com/mkravets/upkeep/internal/client"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all form templates",
	Long: `List all form templates on the selected server.

Examples:
  upkeep list --profile prod
  upkeep list --profile prod --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prof, _, err := cli.ResolveProfile(profile, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(prof.BaseURL, prof.APIKey)

		ctx := context.Background()
		templates, err := c.ListTemplates(ctx)
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}

		if !quiet {
			if len(templates) == 0 {
				fmt.Println("No templates found")
				return nil
			}
			return cli.PrintTemplates(templates, cli.OutputFormat(format))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
