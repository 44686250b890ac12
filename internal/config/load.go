package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hcrm/internal/logger"
)

const (
	// ConfigFile is the default config file name, looked up in the
	// working directory.
	ConfigFile = "hcrm.yml"

	emojiWarning = "⚠️"
)

var log = logger.PackageLogger("CONFIG", "⚙️ CONFIG")

// Load reads the config file at path (ConfigFile when empty) and fills in
// defaults for anything left unset. A missing file is not an error: the
// stock settings are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("No config file at %s, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("%s Cannot read config: %w", emojiWarning, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s Invalid config format: %w", emojiWarning, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults restores stock values for fields an explicit config file
// left empty.
func (c *Config) applyDefaults() {
	if len(c.WeekendQuotes) == 0 {
		c.WeekendQuotes = append([]string(nil), DefaultWeekendQuotes...)
	}
	if len(c.HitokotoTypes) == 0 {
		c.HitokotoTypes = []string{"a"}
	}
	if c.RenderMode == "" {
		c.RenderMode = "dom"
	}
	if c.Footer == "" {
		c.Footer = "Powered By 狼狼"
	}
}
