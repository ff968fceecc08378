package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mkravets/upkeep/internal/cli"
	"github.com/mkravets/upkeep/internal/client"
	"github.com/mkravets/upkeep/internal/forms"
)

var createFile string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a form template from a file",
	Long: `Create a form template from a YAML or JSON definition file.

Examples:
  upkeep create --file inspection.yaml --profile prod
  upkeep create --file inspection.json --profile staging`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if createFile == "" {
			return fmt.Errorf("--file is required")
		}

		prof, profName, err := cli.ResolveProfile(profile, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		t, err := readTemplateFile(createFile)
		if err != nil {
			return err
		}

		c := client.NewClient(prof.BaseURL, prof.APIKey)

		ctx := context.Background()
		created, err := c.CreateTemplate(ctx, *t)
		if err != nil {
			return fmt.Errorf("failed to create template: %w", err)
		}

		if !quiet {
			fmt.Printf("Successfully created template '%s' (%s) using profile '%s'\n", created.Name, created.ID, profName)
		}

		return nil
	},
}

// readTemplateFile parses a template definition from a YAML or JSON file.
// YAML definitions are converted through JSON so the struct tags apply.
func readTemplateFile(path string) (*forms.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	var t forms.Template
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("invalid template JSON: %w", err)
		}
		return &t, nil
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid template YAML: %w", err)
	}
	blob, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert template YAML: %w", err)
	}
	if err := json.Unmarshal(blob, &t); err != nil {
		return nil, fmt.Errorf("invalid template definition: %w", err)
	}
	return &t, nil
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "Template definition file (YAML or JSON)")
}
