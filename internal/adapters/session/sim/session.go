// Package sim provides an in-process game session for local runs and
// end-to-end tests. It honors the full session contract: asynchronous
// connect, event streams, automation loops and fault injection.
package sim

import (
	"context"
	"sync"
	"time"

	"github.com/gorchard/farmhand/internal/domain"
	"github.com/gorchard/farmhand/internal/ports"
)

type Dialer struct{}

var _ ports.SessionDialer = Dialer{}

func (Dialer) Dial(_ context.Context, cfg domain.RuntimeConfig) (ports.GameSession, error) {
	return NewSession(cfg), nil
}

type Session struct {
	cfg domain.RuntimeConfig

	mu        sync.Mutex
	connected bool
	closed    bool
	stop      chan struct{}

	identity domain.RawIdentity
	plots    []domain.RawPlot
	items    []domain.RawItem

	loops    map[domain.LoopKind]bool
	strategy domain.Strategy

	nextSub    int
	logSubs    map[int]func(domain.LogEvent)
	visitSubs  map[int]func(domain.VisitEvent)
	closedSubs map[int]func(error)
}

var _ ports.GameSession = (*Session)(nil)
var _ ports.EventSource = (*Session)(nil)

func NewSession(cfg domain.RuntimeConfig) *Session {
	now := time.Now()
	return &Session{
		cfg: cfg,
		identity: domain.RawIdentity{
			UserID:   "sim-1",
			Nickname: "Sim Farmer",
			Level:    1,
			Exp:      0,
			Money:    500,
		},
		plots:      samplePlots(now),
		items:      sampleItems(),
		loops:      map[domain.LoopKind]bool{},
		logSubs:    map[int]func(domain.LogEvent){},
		visitSubs:  map[int]func(domain.VisitEvent){},
		closedSubs: map[int]func(error){},
	}
}

func (s *Session) Open(_ context.Context, onConnected func()) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return context.Canceled
	}
	s.connected = true
	s.stop = make(chan struct{})
	stop := s.stop
	s.mu.Unlock()

	go func() {
		if onConnected != nil {
			onConnected()
		}
		s.EmitLog(domain.LogInfo, "conn", "connected to sim server")
		s.advanceLoop(stop)
	}()
	return nil
}

func (s *Session) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.connected = false
	s.closed = true
	return nil
}

func (s *Session) Cleanup() {}

func (s *Session) Identity(_ context.Context) (domain.RawIdentity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity, nil
}

func (s *Session) FarmPlots(_ context.Context) ([]domain.RawPlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.RawPlot, len(s.plots))
	copy(out, s.plots)
	return out, nil
}

func (s *Session) Inventory(_ context.Context) ([]domain.RawItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.RawItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Session) SetLoop(_ context.Context, kind domain.LoopKind, enabled bool, _ domain.IntervalRange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loops[kind] = enabled
	return nil
}

func (s *Session) SetStrategy(_ context.Context, strategy domain.Strategy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategy = strategy
	return nil
}

func (s *Session) Events() ports.EventSource { return s }

func (s *Session) SubscribeLogs(fn func(domain.LogEvent)) func() {
	return subscribe(s, s.logSubs, fn)
}

func (s *Session) SubscribeVisits(fn func(domain.VisitEvent)) func() {
	return subscribe(s, s.visitSubs, fn)
}

func (s *Session) SubscribeClosed(fn func(error)) func() {
	return subscribe(s, s.closedSubs, fn)
}

func subscribe[T any](s *Session, subs map[int]T, fn T) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(subs, id)
	}
}

// EmitLog publishes a log event to all subscribers. Exported so tests and
// the fault injection path can script the stream.
func (s *Session) EmitLog(level domain.LogLevel, tag, message string) {
	ev := domain.LogEvent{Level: level, Tag: tag, Message: message, Timestamp: time.Now()}
	for _, fn := range snapshotSubs(s, s.logSubs) {
		fn(ev)
	}
}

func (s *Session) EmitVisit(ev domain.VisitEvent) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	for _, fn := range snapshotSubs(s, s.visitSubs) {
		fn(ev)
	}
}

func (s *Session) EmitClosed(cause error) {
	for _, fn := range snapshotSubs(s, s.closedSubs) {
		fn(cause)
	}
}

func snapshotSubs[T any](s *Session, subs map[int]T) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(subs))
	for _, fn := range subs {
		out = append(out, fn)
	}
	return out
}

// LoopEnabled reports the last automation state pushed by the supervisor.
func (s *Session) LoopEnabled(kind domain.LoopKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loops[kind]
}

func (s *Session) Strategy() domain.Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strategy
}

// advanceLoop drip-feeds progress so a local run has something to show:
// experience and money accrue, and a neighbor drops by periodically.
func (s *Session) advanceLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	tick := 0
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			tick++
			s.mu.Lock()
			s.identity.Exp += 7
			s.identity.Money += 3
			s.identity.Level = 1 + int(s.identity.Exp/240)
			s.mu.Unlock()
			if tick%20 == 0 {
				s.EmitVisit(domain.VisitEvent{
					Direction:        domain.VisitIncoming,
					CounterpartyID:   "neighbor-7",
					CounterpartyName: "Mole",
					Kind:             "water",
					Message:          "watered your crops",
				})
			}
		}
	}
}

func samplePlots(now time.Time) []domain.RawPlot {
	schedule := func(offset time.Duration) []domain.PhaseRecord {
		recs := make([]domain.PhaseRecord, 0, 8)
		for phase := domain.PhaseSeed; phase <= domain.PhaseMature; phase++ {
			recs = append(recs, domain.PhaseRecord{
				Phase:   phase,
				StartAt: now.Add(offset + time.Duration(phase)*45*time.Second),
			})
		}
		return recs
	}
	return []domain.RawPlot{
		{ID: 1, Unlocked: true, CropName: "carrot", Phases: schedule(-3 * time.Minute)},
		{ID: 2, Unlocked: true, CropName: "radish", Phases: schedule(-90 * time.Second), Dryness: 1},
		{ID: 3, Unlocked: true, CropName: "carrot", Phases: schedule(0), WeedOwner: "neighbor-7"},
		{ID: 4, Unlocked: true},
		{ID: 5},
		{ID: 6},
	}
}

func sampleItems() []domain.RawItem {
	return []domain.RawItem{
		{ID: 1001, Count: 500},
		{ID: 2001, Count: 4},
		{ID: 3001, Count: 12},
		{ID: 9001, Count: 1},
	}
}
