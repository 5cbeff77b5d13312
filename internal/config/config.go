// Package config loads the server tuning file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// TickRateHz is how many simulation steps run per second.
	TickRateHz int `yaml:"tick_rate_hz"`
	// SnapshotEveryTicks is the autosave cadence; 0 disables autosave.
	SnapshotEveryTicks int `yaml:"snapshot_every_ticks"`
	// StartingMoney seeds a fresh session.
	StartingMoney uint64 `yaml:"starting_money"`
}

func Defaults() Config {
	return Config{
		TickRateHz:         10,
		SnapshotEveryTicks: 600,
		StartingMoney:      50,
	}
}

func Load(path string) (Config, error) {
	c := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if c.TickRateHz <= 0 {
		return c, fmt.Errorf("%s: tick_rate_hz must be positive", path)
	}
	return c, nil
}
