package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkravets/upkeep/internal/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage connection profiles",
	Long:  `Manage the upkeep CLI configuration file and its connection profiles.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter configuration file",
	Long: `Create a configuration file with a single "local" profile pointing at
a development server. Fails if the file already exists.

Example:
  upkeep config init`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.InitConfig(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		configPath, _ := cli.ConfigPath()
		fmt.Printf("Configuration file created at: %s\n", configPath)
		fmt.Println("\nAdd more profiles with, for example:")
		fmt.Println("  upkeep config set prod.base_url https://upkeep.example.com")
		fmt.Println("  upkeep config set prod.api_key <key>")

		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configured profiles",
	Long: `Display all connection profiles. API keys are masked.

Example:
  upkeep config show`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if len(cfg.Profiles) == 0 {
			fmt.Println("No profiles configured. Run 'upkeep config init' to create one.")
			return nil
		}

		fmt.Printf("Default profile: %s\n\n", cfg.Default)
		for _, name := range cfg.ProfileNames() {
			p := cfg.Profiles[name]
			fmt.Printf("  %s:\n", name)
			fmt.Printf("    base_url: %s\n", p.BaseURL)
			fmt.Printf("    api_key:  %s\n", maskKey(p.APIKey))
		}

		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <profile.key>",
	Short: "Get a configuration value",
	Long: `Print one value from a profile.

Examples:
  upkeep config get local.base_url
  upkeep config get prod.api_key`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		name, key, err := splitProfileKey(args[0])
		if err != nil {
			return err
		}

		value, err := cfg.ProfileKey(name, key)
		if err != nil {
			return err
		}
		fmt.Println(value)

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <profile.key> <value>",
	Short: "Set a configuration value",
	Long: `Set one value in a profile, creating the profile if needed. The first
profile created becomes the default.

Examples:
  upkeep config set local.base_url http://localhost:8080
  upkeep config set prod.api_key my-secret-key`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		name, key, err := splitProfileKey(args[0])
		if err != nil {
			return err
		}

		if err := cfg.SetProfileKey(name, key, args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("Successfully set %s.%s\n", name, key)

		return nil
	},
}

func splitProfileKey(arg string) (name, key string, err error) {
	parts := strings.SplitN(arg, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid key format, expected 'profile.key' (e.g., 'local.base_url')")
	}
	return parts[0], parts[1], nil
}

func maskKey(key string) string {
	if len(key) > 4 {
		return key[:4] + "***"
	}
	return "***"
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
