package tvimport

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultServiceURL is the journaling service endpoint.
const DefaultServiceURL = "https://www.tradervue.com"

// InstitutionFix declares the real timezone of one institution's trade
// timestamps, keyed like the registry by (organization, fid).
type InstitutionFix struct {
	Organization string `yaml:"organization"`
	FID          string `yaml:"fid"`
	Timezone     string `yaml:"timezone"`
}

// Config is the optional YAML configuration of the importer. It extends the
// built-in registries by data and carries upload defaults.
type Config struct {
	ServiceURL string   `yaml:"service_url"`
	Username   string   `yaml:"username"`
	AccountTag string   `yaml:"account_tag"`
	Tags       []string `yaml:"tags"`

	// Institutions extends the built-in trade-timestamp registry.
	Institutions []InstitutionFix `yaml:"institutions"`
	// TickerRemaps extends or overrides the built-in index ticker table.
	TickerRemaps map[string]string `yaml:"ticker_remaps"`
}

// LoadConfig reads a YAML config file, expanding ${VAR} environment
// references, then applies defaults and validates. An empty path yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ServiceURL == "" {
		c.ServiceURL = DefaultServiceURL
	}
}

// Validate checks the declared institution fixes.
func (c *Config) Validate() error {
	for _, f := range c.Institutions {
		if f.Organization == "" || f.FID == "" {
			return fmt.Errorf("institution fix needs both organization and fid, got %q/%q", f.Organization, f.FID)
		}
		if _, err := time.LoadLocation(f.Timezone); err != nil {
			return fmt.Errorf("institution %s/%s: invalid timezone %q: %w", f.Organization, f.FID, f.Timezone, err)
		}
	}
	return nil
}

// TimeFixes returns the built-in registry extended with the configured
// institution fixes.
func (c *Config) TimeFixes() (*TimeFixes, error) {
	r := NewTimeFixes()
	for _, f := range c.Institutions {
		if err := r.Register(f.Organization, f.FID, f.Timezone); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// TickerRemap returns the built-in table extended with the configured
// remaps; config entries win on conflict.
func (c *Config) TickerRemap() TickerRemap {
	m := DefaultTickerRemap()
	for from, to := range c.TickerRemaps {
		m[from] = to
	}
	return m
}
