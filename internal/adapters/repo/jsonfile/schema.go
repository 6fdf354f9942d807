package jsonfile

import (
	"encoding/json"
	"fmt"

	"github.com/gorchard/farmhand/internal/domain"
)

// documentSchema is the on-disk configuration document. The interval
// fields are raw so both accepted shapes decode: the current
// {"min":v,"max":v} range and the legacy bare number. Legacy documents are
// migrated on read; Save only ever emits the current shape.
type documentSchema struct {
	Version        int                  `json:"version"`
	Platform       string               `json:"platform"`
	FarmInterval   json.RawMessage      `json:"farm_interval,omitempty"`
	PatrolInterval json.RawMessage      `json:"patrol_interval,omitempty"`
	AutoFarm       bool                 `json:"auto_farm"`
	AutoPatrol     bool                 `json:"auto_patrol"`
	Strategy       domain.Strategy      `json:"strategy"`
	Alert          domain.AlertSettings `json:"alert"`
}

func decodeInterval(raw json.RawMessage, fallback domain.IntervalRange) (domain.IntervalRange, error) {
	if len(raw) == 0 {
		return fallback, nil
	}

	var single int
	if err := json.Unmarshal(raw, &single); err == nil {
		// Legacy single-value interval: synthesize min = max = value.
		return domain.IntervalRange{Min: single, Max: single}, nil
	}

	var rng domain.IntervalRange
	if err := json.Unmarshal(raw, &rng); err != nil {
		return domain.IntervalRange{}, fmt.Errorf("decode interval: %w", err)
	}
	return rng, nil
}

func fromSchema(doc documentSchema) (domain.RuntimeConfig, error) {
	defaults := domain.DefaultConfig()

	farm, err := decodeInterval(doc.FarmInterval, defaults.FarmInterval)
	if err != nil {
		return domain.RuntimeConfig{}, fmt.Errorf("farm interval: %w", err)
	}
	patrol, err := decodeInterval(doc.PatrolInterval, defaults.PatrolInterval)
	if err != nil {
		return domain.RuntimeConfig{}, fmt.Errorf("patrol interval: %w", err)
	}

	cfg := domain.RuntimeConfig{
		Version:        domain.ConfigVersion,
		Platform:       doc.Platform,
		FarmInterval:   farm,
		PatrolInterval: patrol,
		AutoFarm:       doc.AutoFarm,
		AutoPatrol:     doc.AutoPatrol,
		Strategy:       doc.Strategy,
		Alert:          doc.Alert,
	}
	if cfg.Platform == "" {
		cfg.Platform = defaults.Platform
	}
	if cfg.Strategy.Mode == "" {
		cfg.Strategy.Mode = defaults.Strategy.Mode
	}
	return cfg, nil
}

func toSchema(cfg domain.RuntimeConfig) (documentSchema, error) {
	farm, err := json.Marshal(cfg.FarmInterval)
	if err != nil {
		return documentSchema{}, fmt.Errorf("encode farm interval: %w", err)
	}
	patrol, err := json.Marshal(cfg.PatrolInterval)
	if err != nil {
		return documentSchema{}, fmt.Errorf("encode patrol interval: %w", err)
	}
	return documentSchema{
		Version:        domain.ConfigVersion,
		Platform:       cfg.Platform,
		FarmInterval:   farm,
		PatrolInterval: patrol,
		AutoFarm:       cfg.AutoFarm,
		AutoPatrol:     cfg.AutoPatrol,
		Strategy:       cfg.Strategy,
		Alert:          cfg.Alert,
	}, nil
}
