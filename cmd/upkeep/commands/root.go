package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	baseURL string
	apiKey  string
	profile string
	format  string
	quiet   bool
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "upkeep",
	Short: "CLI tool for managing maintenance form templates",
	Long: `Upkeep is a command-line tool for managing maintenance form templates
in the upkeep service.

It provides commands for creating, reading, updating, and deleting form
templates, inspecting submissions, and testing condition resolution.

Examples:
  upkeep list --profile prod
  upkeep get tmpl-123 --profile prod
  upkeep create --file inspection.yaml --profile staging
  upkeep resolve tmpl-123 --values '{"condition":"failed"}'
  upkeep export --profile prod --output templates.yaml`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL of the upkeep API")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for authentication")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "Connection profile from the config file")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
}
