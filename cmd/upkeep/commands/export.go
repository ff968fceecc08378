package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mkravets/upkeep/internal/cli"
	"github.com/mkravets/upkeep/internal/client"
	"github.com/mkravets/upkeep/internal/forms"
)

var exportOutput string

// ExportFormat represents the structure for exporting templates
type ExportFormat struct {
	Templates []forms.Template `yaml:"templates" json:"templates"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export templates to a file",
	Long: `Export all form templates from the selected server to a YAML or
JSON file.

Examples:
  upkeep export --profile prod --output templates.yaml
  upkeep export --profile prod --output templates.json --format json
  upkeep export --profile prod > backup.yaml`,
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

		exportData := ExportFormat{Templates: templates}

		var output *os.File
		if exportOutput == "" || exportOutput == "-" {
			output = os.Stdout
		} else {
			output, err = os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer output.Close()
		}

		switch format {
		case "json":
			encoder := json.NewEncoder(output)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(exportData); err != nil {
				return fmt.Errorf("failed to encode JSON: %w", err)
			}
		case "yaml", "table":
			// Default to YAML for export
			encoder := yaml.NewEncoder(output)
			defer encoder.Close()
			encoder.SetIndent(2)
			if err := encoder.Encode(exportData); err != nil {
				return fmt.Errorf("failed to encode YAML: %w", err)
			}
		default:
			return fmt.Errorf("unsupported export format: %s", format)
		}

		if exportOutput != "" && exportOutput != "-" && !quiet {
			fmt.Fprintf(os.Stderr, "Successfully exported %d template(s) to %s\n", len(templates), exportOutput)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}
