package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for measurement and app behavior.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`
	// Measurement parameters
	DefaultUnit string `json:"default_unit"`
	Decimals    int    `json:"decimals"`
	// ClampResize stops an over-drag at zero width/height instead of letting
	// the box invert.
	ClampResize   bool    `json:"clamp_resize"`
	MinConfidence float64 `json:"min_confidence"`

	// View size the captured image is fitted into
	ViewWidth  int `json:"view_width"`
	ViewHeight int `json:"view_height"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:         false,
		DefaultUnit:   "cm",
		Decimals:      2,
		ClampResize:   true,
		MinConfidence: 0.5,
		ViewWidth:     1080,
		ViewHeight:    1920,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.DefaultUnit == "" {
		c.DefaultUnit = "cm"
	}
	if c.Decimals < 0 || c.Decimals > 6 {
		c.Decimals = 2
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		c.MinConfidence = 0.5
	}
	if c.ViewWidth <= 0 {
		c.ViewWidth = 1080
	}
	if c.ViewHeight <= 0 {
		c.ViewHeight = 1920
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
