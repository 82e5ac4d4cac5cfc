package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultOutputDir is where components land when neither flags nor config
// name an output directory.
const DefaultOutputDir = "./src/components/generated"

// Config captures per-project settings read from dev.yaml.
type Config struct {
	Version   int            `yaml:"version"`
	Add       AddConfig      `yaml:"add"`
	Packages  PackagesConfig `yaml:"packages"`
	Resources string         `yaml:"resources,omitempty"`
}

// AddConfig holds defaults for the add command.
type AddConfig struct {
	Output    string `yaml:"output"`
	Theme     string `yaml:"theme"`
	Type      string `yaml:"type,omitempty"`
	Framework string `yaml:"framework,omitempty"`
}

// PackagesConfig controls how missing npm packages are installed.
type PackagesConfig struct {
	Manager     string `yaml:"manager,omitempty"`
	SkipInstall bool   `yaml:"skip_install"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Add: AddConfig{
			Output: DefaultOutputDir,
			Theme:  "default",
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures fields fall back to defaults when the YAML omits or
// blanks them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if strings.TrimSpace(c.Add.Output) == "" {
		c.Add.Output = defaults.Add.Output
	}
	if strings.TrimSpace(c.Add.Theme) == "" {
		c.Add.Theme = defaults.Add.Theme
	}
	c.Add.Type = strings.TrimPrefix(strings.TrimSpace(c.Add.Type), ".")
	c.Packages.Manager = strings.ToLower(strings.TrimSpace(c.Packages.Manager))
}

// Overlay applies environment and flag values bound on v (DEV_OUTPUT,
// DEV_THEME, DEV_TYPE, DEV_FRAMEWORK, DEV_PACKAGE_MANAGER, DEV_SKIP_INSTALL,
// DEV_RESOURCES). Keys that are unset leave the file values in place.
func (c *Config) Overlay(v *viper.Viper) {
	if v == nil {
		return
	}
	if s := v.GetString("output"); s != "" {
		c.Add.Output = s
	}
	if s := v.GetString("theme"); s != "" {
		c.Add.Theme = s
	}
	if s := v.GetString("type"); s != "" {
		c.Add.Type = s
	}
	if s := v.GetString("framework"); s != "" {
		c.Add.Framework = s
	}
	if s := v.GetString("package_manager"); s != "" {
		c.Packages.Manager = s
	}
	if v.IsSet("skip_install") {
		c.Packages.SkipInstall = v.GetBool("skip_install")
	}
	if s := v.GetString("resources"); s != "" {
		c.Resources = s
	}
	c.ApplyDefaults()
}

// NewEnv returns a viper instance reading DEV_* environment variables.
func NewEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("DEV")
	v.AutomaticEnv()
	for _, key := range []string{"output", "theme", "type", "framework", "package_manager", "skip_install", "resources"} {
		_ = v.BindEnv(key)
	}
	return v
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}
