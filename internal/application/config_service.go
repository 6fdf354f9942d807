package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorchard/farmhand/internal/domain"
	"github.com/gorchard/farmhand/internal/ports"
)

// ConfigService owns the in-memory runtime configuration: reads through the
// repository on construction, validates and persists deltas, and hot-applies
// changes to a running session.
type ConfigService struct {
	repo ports.ConfigRepository
	log  *slog.Logger

	mu      sync.RWMutex
	current domain.RuntimeConfig
}

func NewConfigService(ctx context.Context, repo ports.ConfigRepository, log *slog.Logger) (*ConfigService, error) {
	if log == nil {
		log = slog.Default()
	}
	cfg, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("stored config: %w", err)
	}
	return &ConfigService{repo: repo, log: log, current: cfg}, nil
}

func (s *ConfigService) Get() domain.RuntimeConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set merges the delta into the current configuration, validates, and
// persists the result. On a validation failure the previous configuration
// stays in effect and the error is reported to the caller.
func (s *ConfigService) Set(ctx context.Context, delta domain.ConfigDelta) (domain.RuntimeConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.WithDelta(delta)
	if err := next.Validate(); err != nil {
		return s.current, err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return s.current, fmt.Errorf("persist config: %w", err)
	}
	s.current = next
	return next, nil
}

// ApplyToSession pushes the differences between old and next onto a running
// session: automation flag flips start or stop the named sub-loop
// immediately, interval changes restart a running loop with the new range,
// and strategy changes are forwarded as-is.
func (s *ConfigService) ApplyToSession(ctx context.Context, sess ports.GameSession, old, next domain.RuntimeConfig) {
	s.applyLoop(ctx, sess, domain.LoopFarm, old.AutoFarm, next.AutoFarm, old.FarmInterval, next.FarmInterval)
	s.applyLoop(ctx, sess, domain.LoopPatrol, old.AutoPatrol, next.AutoPatrol, old.PatrolInterval, next.PatrolInterval)

	if old.Strategy != next.Strategy {
		if err := sess.SetStrategy(ctx, next.Strategy); err != nil {
			s.log.Warn("apply strategy failed", "mode", next.Strategy.Mode, "error", err)
		} else {
			s.log.Info("strategy applied", "mode", next.Strategy.Mode, "seed_id", next.Strategy.SeedID)
		}
	}
}

func (s *ConfigService) applyLoop(ctx context.Context, sess ports.GameSession, kind domain.LoopKind, wasOn, isOn bool, oldIv, newIv domain.IntervalRange) {
	if wasOn == isOn && (!isOn || oldIv == newIv) {
		return
	}
	if err := sess.SetLoop(ctx, kind, isOn, newIv); err != nil {
		s.log.Warn("loop transition failed", "loop", kind, "enabled", isOn, "error", err)
		return
	}
	s.log.Info("loop transition", "loop", kind, "enabled", isOn, "interval_min", newIv.Min, "interval_max", newIv.Max)
}

// StartLoops applies the configured automation state to a freshly opened
// session.
func (s *ConfigService) StartLoops(ctx context.Context, sess ports.GameSession) {
	cfg := s.Get()
	off := cfg
	off.AutoFarm = false
	off.AutoPatrol = false
	off.Strategy = domain.Strategy{}
	s.ApplyToSession(ctx, sess, off, cfg)
}
