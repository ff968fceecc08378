package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mkravets/upkeep/internal/cli"
	"github.com/mkravets/upkeep/internal/client"
)

var (
	importDryRun bool
	importForce  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import templates from a file",
	Long: `Import form templates from a YAML or JSON export file. Templates
with an ID are updated in place; templates without one are created.

Examples:
  upkeep import templates.yaml --profile prod
  upkeep import templates.yaml --profile staging --dry-run
  upkeep import templates.yaml --profile prod --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var importData ExportFormat
		if err := yaml.Unmarshal(data, &importData); err != nil {
			return fmt.Errorf("failed to parse file: %w", err)
		}

		if len(importData.Templates) == 0 {
			return fmt.Errorf("no templates found in file")
		}

		if verbose {
			fmt.Printf("Found %d template(s) to import\n", len(importData.Templates))
		}

		// Dry run mode - just validate and show what would be imported
		if importDryRun {
			fmt.Println("Dry run mode - the following templates would be imported:")
			for _, t := range importData.Templates {
				fmt.Printf("  - %s (fields: %d, conditions: %d)\n",
					t.Name, len(t.Fields), len(t.Conditions))
			}
			return nil
		}

		prof, _, err := cli.ResolveProfile(profile, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(prof.BaseURL, prof.APIKey)
		ctx := context.Background()

		successCount := 0
		errorCount := 0

		for _, t := range importData.Templates {
			if verbose {
				fmt.Printf("Importing template: %s\n", t.Name)
			}

			if t.ID != "" {
				_, err = c.UpdateTemplate(ctx, t)
			} else {
				_, err = c.CreateTemplate(ctx, t)
			}
			if err != nil {
				errorCount++
				fmt.Fprintf(os.Stderr, "Failed to import template '%s': %v\n", t.Name, err)
				if !importForce {
					return fmt.Errorf("import failed, use --force to continue on errors")
				}
			} else {
				successCount++
			}
		}

		if !quiet {
			fmt.Printf("Import complete: %d succeeded, %d failed\n", successCount, errorCount)
		}

		if errorCount > 0 && !importForce {
			return fmt.Errorf("import completed with errors")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate without importing")
	importCmd.Flags().BoolVar(&importForce, "force", false, "Continue on errors")
}
