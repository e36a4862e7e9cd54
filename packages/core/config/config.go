package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the suiterun configuration file.
type Config struct {
	Filter        string `yaml:"filter,omitempty"`
	Skip          string `yaml:"skip,omitempty"`
	Bail          *bool  `yaml:"bail,omitempty"`
	TimeoutMillis int    `yaml:"timeoutMillis,omitempty"` // suite-level timeout
	Output        string `yaml:"output,omitempty"`        // console, json, junit, tap
	OutputFile    string `yaml:"outputFile,omitempty"`
	MetricsFile   string `yaml:"metricsFile,omitempty"`
	NoColor       *bool  `yaml:"noColor,omitempty"`
	Verbose       *bool  `yaml:"verbose,omitempty"`
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetBail returns the bail setting, defaulting to false
func (c *Config) GetBail() bool {
	return getBool(c.Bail, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetOutput returns the output format, defaulting to console
func (c *Config) GetOutput() string {
	if c.Output == "" {
		return "console"
	}
	return c.Output
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".suiterun.yml",
	".suiterun.yaml",
	"suiterun.yml",
}

// LoadConfig loads configuration from the specified path or searches
// for config files in the current directory.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory.
// A missing config file is not an error; it yields the defaults.
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}
	return &Config{}, nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}
