package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = "voltconsole.yaml"

// Site is a WordPress site the console can log in to.
type Site struct {
	Alias   string `yaml:"alias"`
	BaseURL string `yaml:"base_url"`
}

// Config is the project configuration, a list of known sites.
type Config struct {
	Sites []Site `yaml:"sites"`
}

// Load reads a config file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir reads voltconsole.yaml from the working directory.
func LoadFromCurrentDir() (*Config, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return Load(filepath.Join(currentDir, ConfigFileName))
}

// Save writes the config to the given path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetSiteByAlias returns the site with the given alias.
func (c *Config) GetSiteByAlias(alias string) (*Site, error) {
	for i := range c.Sites {
		if c.Sites[i].Alias == alias {
			return &c.Sites[i], nil
		}
	}
	return nil, fmt.Errorf("site %q not found in %s", alias, ConfigFileName)
}
