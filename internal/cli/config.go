package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration file: named connection profiles plus the
// one used when --profile is not given.
type Config struct {
	Default  string             `yaml:"default,omitempty"`
	Profiles map[string]Profile `yaml:"profiles,omitempty"`
}

// Profile is one server the CLI can talk to.
type Profile struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// profileKeys maps config keys to Profile field accessors, shared by the
// get/set commands.
var profileKeys = map[string]func(*Profile) *string{
	"base_url": func(p *Profile) *string { return &p.BaseURL },
	"api_key":  func(p *Profile) *string { return &p.APIKey },
}

// ConfigPath returns the config file location. UPKEEP_CONFIG overrides the
// default of ~/.upkeep/config.yaml.
func ConfigPath() (string, error) {
	if p := os.Getenv("UPKEEP_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".upkeep", "config.yaml"), nil
}

// LoadConfig reads the config file. A missing file is not an error; it
// yields an empty config so flags and environment variables still work.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// Save writes the config file, creating the directory on first use. The
// file carries API keys, so it is not group or world readable.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetProfileKey updates one key of one profile, creating the profile if
// needed. The first profile created becomes the default.
func (c *Config) SetProfileKey(name, key, value string) error {
	accessor, ok := profileKeys[key]
	if !ok {
		return fmt.Errorf("unknown key '%s', valid keys: %s", key, keyNames())
	}
	if c.Profiles == nil {
		c.Profiles = make(map[string]Profile)
	}
	p := c.Profiles[name]
	*accessor(&p) = value
	c.Profiles[name] = p
	if c.Default == "" {
		c.Default = name
	}
	return nil
}

// ProfileKey reads one key of one profile.
func (c *Config) ProfileKey(name, key string) (string, error) {
	accessor, ok := profileKeys[key]
	if !ok {
		return "", fmt.Errorf("unknown key '%s', valid keys: %s", key, keyNames())
	}
	p, ok := c.Profiles[name]
	if !ok {
		return "", fmt.Errorf("profile '%s' not found", name)
	}
	return *accessor(&p), nil
}

// ProfileNames returns the configured profile names in stable order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func keyNames() string {
	names := make([]string, 0, len(profileKeys))
	for k := range profileKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

// ResolveProfile picks the profile to use and overlays overrides onto it.
// The file value is the base; UPKEEP_BASE_URL / UPKEEP_API_KEY override the
// file, and the --base-url / --api-key flags override everything. With both
// flags given no config file or profile is needed at all.
func ResolveProfile(name, baseURLFlag, apiKeyFlag string) (*Profile, string, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, "", err
	}

	if name == "" {
		name = cfg.Default
	}
	p := cfg.Profiles[name]

	if v := os.Getenv("UPKEEP_BASE_URL"); v != "" {
		p.BaseURL = v
	}
	if v := os.Getenv("UPKEEP_API_KEY"); v != "" {
		p.APIKey = v
	}
	if baseURLFlag != "" {
		p.BaseURL = baseURLFlag
	}
	if apiKeyFlag != "" {
		p.APIKey = apiKeyFlag
	}

	if p.BaseURL == "" || p.APIKey == "" {
		if name == "" {
			return nil, "", fmt.Errorf("no profile configured; run 'upkeep config init' or pass --base-url and --api-key")
		}
		return nil, "", fmt.Errorf("base_url and api_key must be configured for profile '%s'", name)
	}
	return &p, name, nil
}

// InitConfig writes a starter config with a single local profile, leaving
// existing files untouched.
func InitConfig() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	cfg := &Config{
		Default: "local",
		Profiles: map[string]Profile{
			"local": {
				BaseURL: "http://localhost:8080",
				APIKey:  "admin-123",
			},
		},
	}
	return cfg.Save()
}
