package domain

import (
	"fmt"
	"strings"
)

const ConfigVersion = 2

type StrategyMode string

const (
	StrategyAuto        StrategyMode = "auto"
	StrategyLowestLevel StrategyMode = "lowest"
	StrategyLatestLevel StrategyMode = "latest"
	StrategyFixedSeed   StrategyMode = "fixed"
)

type LoopKind string

const (
	LoopFarm   LoopKind = "farm"
	LoopPatrol LoopKind = "patrol"
)

// IntervalRange bounds the randomized delay between two passes of an
// automation sub-loop, in seconds.
type IntervalRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r IntervalRange) validate(name string) error {
	if r.Min < 1 || r.Max < 1 {
		return fmt.Errorf("%w: %s interval bounds must be >= 1", ErrInvalidConfig, name)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s interval min %d exceeds max %d", ErrInvalidConfig, name, r.Min, r.Max)
	}
	return nil
}

// Strategy selects how the farm loop picks what to plant. The modes are
// mutually exclusive; SeedID only matters for StrategyFixedSeed.
type Strategy struct {
	Mode   StrategyMode `json:"mode"`
	SeedID int          `json:"seed_id,omitempty"`
}

type AlertSettings struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	Secure   bool   `json:"secure,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
}

// RuntimeConfig is the versioned bot configuration. Values are plain data;
// validation happens explicitly via Validate so that callers get reported
// violations instead of silent coercion.
type RuntimeConfig struct {
	Version        int           `json:"version"`
	Platform       string        `json:"platform"`
	FarmInterval   IntervalRange `json:"farm_interval"`
	PatrolInterval IntervalRange `json:"patrol_interval"`
	AutoFarm       bool          `json:"auto_farm"`
	AutoPatrol     bool          `json:"auto_patrol"`
	Strategy       Strategy      `json:"strategy"`
	Alert          AlertSettings `json:"alert"`
}

func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Version:        ConfigVersion,
		Platform:       "sim",
		FarmInterval:   IntervalRange{Min: 30, Max: 60},
		PatrolInterval: IntervalRange{Min: 300, Max: 600},
		AutoFarm:       true,
		AutoPatrol:     false,
		Strategy:       Strategy{Mode: StrategyAuto},
	}
}

func (c RuntimeConfig) Validate() error {
	if strings.TrimSpace(c.Platform) == "" {
		return fmt.Errorf("%w: platform is required", ErrInvalidConfig)
	}
	if err := c.FarmInterval.validate("farm"); err != nil {
		return err
	}
	if err := c.PatrolInterval.validate("patrol"); err != nil {
		return err
	}
	switch c.Strategy.Mode {
	case StrategyAuto, StrategyLowestLevel, StrategyLatestLevel:
	case StrategyFixedSeed:
		if c.Strategy.SeedID <= 0 {
			return fmt.Errorf("%w: fixed seed strategy requires a seed id", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown strategy mode %q", ErrInvalidConfig, c.Strategy.Mode)
	}
	if c.Alert.Enabled {
		var missing []string
		if strings.TrimSpace(c.Alert.Host) == "" {
			missing = append(missing, "host")
		}
		if c.Alert.Port <= 0 {
			missing = append(missing, "port")
		}
		if strings.TrimSpace(c.Alert.From) == "" {
			missing = append(missing, "from")
		}
		if strings.TrimSpace(c.Alert.To) == "" {
			missing = append(missing, "to")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: alerting enabled but transport fields missing: %s", ErrInvalidConfig, strings.Join(missing, ", "))
		}
	}
	return nil
}

// Configured reports whether the alert transport carries every field a
// delivery attempt needs. Credentials are optional as a pair: a username
// without a password (or vice versa) counts as incomplete.
func (a AlertSettings) Configured() bool {
	if !a.Enabled {
		return false
	}
	if a.Host == "" || a.Port <= 0 || a.From == "" || a.To == "" {
		return false
	}
	if (a.Username == "") != (a.Password == "") {
		return false
	}
	return true
}

// ConfigDelta is a partial update: nil fields leave the current value
// untouched.
type ConfigDelta struct {
	Platform       *string        `json:"platform,omitempty"`
	FarmInterval   *IntervalRange `json:"farm_interval,omitempty"`
	PatrolInterval *IntervalRange `json:"patrol_interval,omitempty"`
	AutoFarm       *bool          `json:"auto_farm,omitempty"`
	AutoPatrol     *bool          `json:"auto_patrol,omitempty"`
	Strategy       *Strategy      `json:"strategy,omitempty"`
	Alert          *AlertSettings `json:"alert,omitempty"`
}

func (c RuntimeConfig) WithDelta(d ConfigDelta) RuntimeConfig {
	out := c
	out.Version = ConfigVersion
	if d.Platform != nil {
		out.Platform = *d.Platform
	}
	if d.FarmInterval != nil {
		out.FarmInterval = *d.FarmInterval
	}
	if d.PatrolInterval != nil {
		out.PatrolInterval = *d.PatrolInterval
	}
	if d.AutoFarm != nil {
		out.AutoFarm = *d.AutoFarm
	}
	if d.AutoPatrol != nil {
		out.AutoPatrol = *d.AutoPatrol
	}
	if d.Strategy != nil {
		out.Strategy = *d.Strategy
	}
	if d.Alert != nil {
		out.Alert = *d.Alert
	}
	return out
}
