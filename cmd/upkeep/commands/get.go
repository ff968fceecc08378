package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkravets/upkeep/internal/cli"
	"github.com/mkravets/upkeep/internal/client"
)

var getSubmissions bool

var getCmd = &cobra.Command{
	Use:   "get <template-id>",
	Short: "Get a form template",
	Long: `Get a single form template by ID.

Examples:
  upkeep get tmpl-123 --profile prod
  upkeep get tmpl-123 --format yaml
  upkeep get tmpl-123 --submissions`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prof, _, err := cli.ResolveProfile(profile, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(prof.BaseURL, prof.APIKey)
		ctx := context.Background()

		if getSubmissions {
			subs, err := c.ListSubmissions(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list submissions: %w", err)
			}
			if quiet {
				return nil
			}
			if len(subs) == 0 {
				fmt.Println("No submissions found")
				return nil
			}
			return cli.PrintSubmissions(subs, cli.OutputFormat(format))
		}

		t, err := c.GetTemplate(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}

		if !quiet {
			return cli.PrintTemplate(t, cli.OutputFormat(format))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().BoolVar(&getSubmissions, "submissions", false, "List the template's submissions instead")
}
