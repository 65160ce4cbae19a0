package monitor

import (
	"time"

	"github.com/HerbHall/coopsense/internal/engine"
)

// Config holds sampling loop settings. Ranges overrides the built-in
// comfort bands; leave empty to use engine defaults.
type Config struct {
	TickInterval time.Duration  `mapstructure:"tick_interval"`
	AlertDwell   time.Duration  `mapstructure:"alert_dwell"`
	HistorySize  int            `mapstructure:"history_size"`
	Seed         int64          `mapstructure:"seed"`
	Ranges       []engine.Range `mapstructure:"ranges"`
}

// DefaultConfig returns the stock monitor configuration: a 3 second tick,
// a 5 second alert dwell, and a 20 sample history window.
func DefaultConfig() Config {
	return Config{
		TickInterval: 3 * time.Second,
		AlertDwell:   5 * time.Second,
		HistorySize:  20,
	}
}

// withDefaults fills non-positive settings from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.AlertDwell <= 0 {
		c.AlertDwell = def.AlertDwell
	}
	if c.HistorySize <= 0 {
		c.HistorySize = def.HistorySize
	}
	return c
}

// RangeTable builds the validated range table from the configured ranges,
// falling back to the engine defaults when none are set.
func (c Config) RangeTable() (*engine.RangeTable, error) {
	ranges := c.Ranges
	if len(ranges) == 0 {
		ranges = engine.DefaultRanges()
	}
	return engine.NewRangeTable(ranges)
}
