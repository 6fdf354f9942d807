package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gorchard/farmhand/internal/domain"
	"github.com/gorchard/farmhand/internal/ports"
)

const (
	// statusTickPeriod drives identity and farm view refreshes.
	statusTickPeriod = 1200 * time.Millisecond
	// bagRefreshMinSpacing gates the slower bag refresh, measured between
	// refresh initiations independently of the tick itself.
	bagRefreshMinSpacing = 8000 * time.Millisecond
)

// Supervisor owns the lifecycle of the one external game session: it
// serializes start/stop, wires event subscriptions and refresh timers,
// reacts to fatal conditions, and maintains the status snapshot.
type Supervisor struct {
	dialers  map[string]ports.SessionDialer
	config   *ConfigService
	views    *Materializer
	detector *Detector
	alerter  *Alerter
	clock    ports.Clock
	log      *slog.Logger

	queue *opQueue

	mu        sync.RWMutex
	status    domain.StatusSnapshot
	visits    *domain.VisitLog
	lastBagAt time.Time
	// gen is bumped by every lifecycle transition; a connected callback
	// carries the generation it was issued under and is dropped once the
	// lifecycle has moved past it.
	gen uint64

	// Touched only by lifecycle operations running on the op queue.
	sess      ports.GameSession
	sessionID string
	unsubs    []func()
	tickStop  chan struct{}
	triggers  *domain.TriggerSet

	bagBusy atomic.Bool
}

type SupervisorDeps struct {
	Dialers map[string]ports.SessionDialer
	Config  *ConfigService
	Views   *Materializer
	Alerter *Alerter
	Clock   ports.Clock
	Logger  *slog.Logger
}

func NewSupervisor(deps SupervisorDeps) *Supervisor {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Supervisor{
		dialers:  deps.Dialers,
		config:   deps.Config,
		views:    deps.Views,
		detector: NewDetector(),
		alerter:  deps.Alerter,
		clock:    deps.Clock,
		log:      deps.Logger,
		queue:    newOpQueue(),
		visits:   domain.NewVisitLog(),
	}
}

// Start brings the session up. Overlapping Start/Stop calls run strictly in
// submission order, never interleaved.
func (s *Supervisor) Start(ctx context.Context) error {
	return s.queue.Submit("start", func() error { return s.startOp(ctx) })
}

// Stop tears the session down. Calling it with nothing running is a no-op.
func (s *Supervisor) Stop(ctx context.Context) error {
	return s.queue.Submit("stop", func() error { return s.stopOp(ctx) })
}

// Close stops the session and shuts the op queue down. The supervisor is
// unusable afterwards.
func (s *Supervisor) Close(ctx context.Context) error {
	err := s.Stop(ctx)
	s.queue.Close()
	return err
}

// Status returns a copy of the current snapshot; concurrent readers never
// observe the live value.
func (s *Supervisor) Status() domain.StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.status.Clone()
	snap.Visits = s.visits.Records()
	return snap
}

// ApplyConfig validates and persists the delta, then hot-applies it to the
// running session (if any) through the lifecycle queue.
func (s *Supervisor) ApplyConfig(ctx context.Context, delta domain.ConfigDelta) (domain.RuntimeConfig, error) {
	old := s.config.Get()
	next, err := s.config.Set(ctx, delta)
	if err != nil {
		return old, err
	}
	applyErr := s.queue.Submit("apply-config", func() error {
		if s.sess != nil {
			s.config.ApplyToSession(ctx, s.sess, old, next)
		}
		return nil
	})
	if applyErr != nil {
		return next, applyErr
	}
	return next, nil
}

func (s *Supervisor) startOp(ctx context.Context) error {
	// A restart must never inherit subscriptions, timers or latches from
	// the previous session.
	s.stopOp(ctx)

	cfg := s.config.Get()
	dialer, ok := s.dialers[cfg.Platform]
	if !ok {
		err := fmt.Errorf("%w: %s", domain.ErrUnknownPlatform, cfg.Platform)
		s.setLastError(err.Error())
		return err
	}

	triggers := domain.NewTriggerSet()
	sessionID := uuid.NewString()
	log := s.log.With("session", sessionID, "platform", cfg.Platform)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	sess, err := dialer.Dial(ctx, cfg)
	if err != nil {
		err = fmt.Errorf("dial session: %w", err)
		s.setLastError(err.Error())
		return err
	}

	events := sess.Events()
	unsubs := []func(){
		events.SubscribeLogs(func(ev domain.LogEvent) {
			s.onLogEvent(triggers, ev)
		}),
		events.SubscribeVisits(s.onVisitEvent),
		events.SubscribeClosed(func(cause error) {
			s.onSessionClosed(log, cause)
		}),
	}

	if err := sess.Open(ctx, func() { s.connectIfCurrent(gen) }); err != nil {
		for _, unsub := range unsubs {
			unsub()
		}
		sess.Cleanup()
		s.mu.Lock()
		s.gen++
		s.mu.Unlock()
		err = fmt.Errorf("open session: %w", err)
		s.setLastError(err.Error())
		return err
	}

	s.config.StartLoops(ctx, sess)

	tickStop := make(chan struct{})
	go s.tickLoop(sess, tickStop)

	s.sess = sess
	s.sessionID = sessionID
	s.unsubs = unsubs
	s.tickStop = tickStop
	s.triggers = triggers

	startedAt := s.clock.Now()
	s.mu.Lock()
	s.status.Running = true
	s.status.Platform = cfg.Platform
	s.status.StartedAt = &startedAt
	s.status.LastError = ""
	s.lastBagAt = time.Time{}
	s.mu.Unlock()

	log.Info("session started")
	return nil
}

func (s *Supervisor) stopOp(ctx context.Context) error {
	if s.sess == nil {
		return nil
	}
	log := s.log.With("session", s.sessionID)

	// Flip the externally visible flags first so any refresh already in
	// flight turns into a no-op before teardown proceeds. The generation
	// bump invalidates connected callbacks still in flight for this session.
	s.mu.Lock()
	s.gen++
	s.status.Running = false
	s.status.Connected = false
	s.mu.Unlock()

	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil

	if s.tickStop != nil {
		close(s.tickStop)
		s.tickStop = nil
	}

	if err := s.sess.Close(ctx); err != nil {
		log.Warn("session close failed", "error", err)
	}
	s.sess.Cleanup()
	s.sess = nil
	s.sessionID = ""
	s.triggers = nil

	// Per-session derived state must not leak into the next session.
	s.mu.Lock()
	s.status.Bag = nil
	s.mu.Unlock()

	log.Info("session stopped")
	return nil
}

func (s *Supervisor) tickLoop(sess ports.GameSession, stop <-chan struct{}) {
	ticker := time.NewTicker(statusTickPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.refreshTick(sess)
		}
	}
}

func (s *Supervisor) refreshTick(sess ports.GameSession) {
	if !s.running() {
		return
	}
	ctx := context.Background()

	var user *domain.UserInfo
	identity, err := sess.Identity(ctx)
	if err != nil {
		s.log.Debug("identity refresh failed", "error", err)
	} else {
		user = &domain.UserInfo{
			ID:       identity.UserID,
			Nickname: identity.Nickname,
			Level:    identity.Level,
			Exp:      identity.Exp,
			Money:    identity.Money,
			Progress: s.views.LevelProgress(identity.Level, identity.Exp),
		}
	}

	var farm []domain.FarmPlotView
	plots, err := sess.FarmPlots(ctx)
	if err != nil {
		s.log.Debug("farm refresh failed", "error", err)
	} else {
		farm = s.views.FarmView(plots, s.clock.Now())
	}

	s.mu.Lock()
	if s.status.Running {
		if user != nil {
			s.status.User = user
		}
		if farm != nil {
			s.status.Farm = farm
		}
	}
	s.mu.Unlock()

	s.maybeRefreshBag(sess)
}

// maybeRefreshBag kicks off an asynchronous bag refresh unless one is still
// in flight (dropped, not queued) or the minimum spacing has not elapsed.
func (s *Supervisor) maybeRefreshBag(sess ports.GameSession) {
	now := s.clock.Now()
	s.mu.Lock()
	due := s.lastBagAt.IsZero() || now.Sub(s.lastBagAt) >= bagRefreshMinSpacing
	s.mu.Unlock()
	if !due {
		return
	}
	if !s.bagBusy.CompareAndSwap(false, true) {
		return
	}
	// Stamp only once the refresh actually initiates; a drop must not
	// consume the spacing window.
	s.mu.Lock()
	s.lastBagAt = now
	s.mu.Unlock()

	go func() {
		defer s.bagBusy.Store(false)
		if !s.running() {
			return
		}
		items, err := sess.Inventory(context.Background())
		if err != nil {
			s.log.Debug("inventory refresh failed", "error", err)
			return
		}
		bag, err := s.views.BagView(context.Background(), items)
		if err != nil {
			s.log.Debug("bag view refresh failed", "error", err)
			return
		}
		s.mu.Lock()
		if s.status.Running {
			s.status.Bag = bag
		}
		s.mu.Unlock()
	}()
}

func (s *Supervisor) onLogEvent(triggers *domain.TriggerSet, ev domain.LogEvent) {
	category, fatal := s.detector.Detect(ev)
	if !fatal || !triggers.Trip(category) {
		return
	}
	// Stop and alert run off the event goroutine so a slow teardown never
	// blocks the session's event delivery.
	go s.handleFatal(category, ev.Message)
}

func (s *Supervisor) handleFatal(category domain.TriggerCategory, message string) {
	s.log.Error("fatal session condition", "category", category, "message", message)
	s.setLastError(message)
	if err := s.Stop(context.Background()); err != nil {
		s.log.Warn("stop after fatal condition failed", "error", err)
	}
	s.alerter.Notify(context.Background(),
		fmt.Sprintf("farmhand: session stopped (%s)", category), message)
}

func (s *Supervisor) onVisitEvent(ev domain.VisitEvent) {
	rec := domain.NewVisitRecord(ev)
	s.mu.Lock()
	added := s.visits.Add(rec)
	s.mu.Unlock()
	if added {
		s.log.Debug("visit recorded", "kind", rec.Kind, "direction", rec.Direction, "counterparty", rec.CounterpartyID)
	}
}

func (s *Supervisor) onSessionClosed(log *slog.Logger, cause error) {
	s.mu.Lock()
	s.status.Connected = false
	if cause != nil {
		s.status.LastError = cause.Error()
	}
	s.mu.Unlock()
	if cause != nil {
		log.Warn("session connection closed", "error", cause)
	} else {
		log.Info("session connection closed")
	}
}

func (s *Supervisor) running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status.Running
}

// connectIfCurrent marks the session connected unless the lifecycle has
// already moved past the session the callback belongs to.
func (s *Supervisor) connectIfCurrent(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.status.Connected = true
}

func (s *Supervisor) setLastError(msg string) {
	s.mu.Lock()
	s.status.LastError = msg
	s.mu.Unlock()
}
