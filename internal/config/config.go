// Package config loads runtime tuning from a YAML file. Deployment
// concerns (listen address, database DSN) stay in environment variables;
// the file carries gameplay knobs that ops may adjust between restarts.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	SiegeCooldownHours int `yaml:"siege_cooldown_hours"`

	// Tick intervals for the background loops, in seconds.
	VacancyCheckSeconds int `yaml:"vacancy_check_seconds"`
	CourtTickSeconds    int `yaml:"court_tick_seconds"`
	DailyUpkeepSeconds  int `yaml:"daily_upkeep_seconds"`

	// TaxBase is the kingdom population wealth the daily tax rate
	// applies to.
	TaxBase int64 `yaml:"tax_base"`

	PublishQueueSize int `yaml:"publish_queue_size"`
}

func Default() Config {
	return Config{
		SiegeCooldownHours:  24,
		VacancyCheckSeconds: 30,
		CourtTickSeconds:    300,
		DailyUpkeepSeconds:  86400,
		TaxBase:             200000,
		PublishQueueSize:    64,
	}
}

// Load reads path and overlays it on the defaults. A missing file is not
// an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.SiegeCooldownHours <= 0 {
		return cfg, fmt.Errorf("config %s: siege_cooldown_hours must be positive", path)
	}
	if cfg.TaxBase < 0 {
		return cfg, fmt.Errorf("config %s: tax_base must not be negative", path)
	}
	return cfg, nil
}

func (c Config) SiegeCooldown() time.Duration {
	return time.Duration(c.SiegeCooldownHours) * time.Hour
}

func (c Config) VacancyCheckInterval() time.Duration {
	return time.Duration(c.VacancyCheckSeconds) * time.Second
}

func (c Config) CourtTickInterval() time.Duration {
	return time.Duration(c.CourtTickSeconds) * time.Second
}

func (c Config) DailyUpkeepInterval() time.Duration {
	return time.Duration(c.DailyUpkeepSeconds) * time.Second
}
