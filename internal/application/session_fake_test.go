package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorchard/farmhand/internal/domain"
	"github.com/gorchard/farmhand/internal/ports"
)

// fakeSession is a scriptable in-memory session for supervisor tests. It
// records lifecycle steps in order and lets tests inject events.
type fakeSession struct {
	mu    sync.Mutex
	steps []string

	identity domain.RawIdentity
	plots    []domain.RawPlot
	items    []domain.RawItem

	openErr   error
	closeErr  error
	openDelay time.Duration

	// deferConnect stashes the connected callback instead of firing it,
	// so tests can deliver it after Open has returned.
	deferConnect bool
	connectFn    func()

	openCount    int
	closeCount   int
	cleanupCount int

	loops     map[domain.LoopKind]bool
	intervals map[domain.LoopKind]domain.IntervalRange
	strategy  domain.Strategy

	nextSub    int
	logSubs    map[int]func(domain.LogEvent)
	visitSubs  map[int]func(domain.VisitEvent)
	closedSubs map[int]func(error)
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		identity:   domain.RawIdentity{UserID: "u-1", Nickname: "farmer", Level: 2, Exp: 180, Money: 500},
		loops:      make(map[domain.LoopKind]bool),
		intervals:  make(map[domain.LoopKind]domain.IntervalRange),
		logSubs:    make(map[int]func(domain.LogEvent)),
		visitSubs:  make(map[int]func(domain.VisitEvent)),
		closedSubs: make(map[int]func(error)),
	}
}

func (s *fakeSession) record(step string) {
	s.mu.Lock()
	s.steps = append(s.steps, step)
	s.mu.Unlock()
}

func (s *fakeSession) Steps() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.steps...)
}

func (s *fakeSession) Open(ctx context.Context, onConnected func()) error {
	if s.openDelay > 0 {
		time.Sleep(s.openDelay)
	}
	s.mu.Lock()
	s.openCount++
	err := s.openErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.record("open")
	if s.deferConnect {
		s.mu.Lock()
		s.connectFn = onConnected
		s.mu.Unlock()
		return nil
	}
	if onConnected != nil {
		onConnected()
	}
	return nil
}

// FireConnected delivers a stashed connected callback, emulating a remote
// acknowledgement arriving after Open returned.
func (s *fakeSession) FireConnected() {
	s.mu.Lock()
	fn := s.connectFn
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *fakeSession) Close(ctx context.Context) error {
	s.record("close")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeCount++
	return s.closeErr
}

func (s *fakeSession) Cleanup() {
	s.record("cleanup")
	s.mu.Lock()
	s.cleanupCount++
	s.mu.Unlock()
}

func (s *fakeSession) Identity(ctx context.Context) (domain.RawIdentity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity, nil
}

func (s *fakeSession) FarmPlots(ctx context.Context) ([]domain.RawPlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.RawPlot(nil), s.plots...), nil
}

func (s *fakeSession) Inventory(ctx context.Context) ([]domain.RawItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.RawItem(nil), s.items...), nil
}

func (s *fakeSession) SetLoop(ctx context.Context, kind domain.LoopKind, enabled bool, interval domain.IntervalRange) error {
	s.record(fmt.Sprintf("loop:%s:%t", kind, enabled))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loops[kind] = enabled
	s.intervals[kind] = interval
	return nil
}

func (s *fakeSession) SetStrategy(ctx context.Context, strategy domain.Strategy) error {
	s.record("strategy:" + string(strategy.Mode))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategy = strategy
	return nil
}

func (s *fakeSession) Events() ports.EventSource { return s }

func (s *fakeSession) SubscribeLogs(fn func(domain.LogEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.logSubs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.logSubs, id)
	}
}

func (s *fakeSession) SubscribeVisits(fn func(domain.VisitEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.visitSubs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.visitSubs, id)
	}
}

func (s *fakeSession) SubscribeClosed(fn func(error)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.closedSubs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.closedSubs, id)
	}
}

func (s *fakeSession) EmitLog(ev domain.LogEvent) {
	s.mu.Lock()
	fns := make([]func(domain.LogEvent), 0, len(s.logSubs))
	for _, fn := range s.logSubs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (s *fakeSession) EmitVisit(ev domain.VisitEvent) {
	s.mu.Lock()
	fns := make([]func(domain.VisitEvent), 0, len(s.visitSubs))
	for _, fn := range s.visitSubs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (s *fakeSession) EmitClosed(cause error) {
	s.mu.Lock()
	fns := make([]func(error), 0, len(s.closedSubs))
	for _, fn := range s.closedSubs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(cause)
	}
}

func (s *fakeSession) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logSubs) + len(s.visitSubs) + len(s.closedSubs)
}

func (s *fakeSession) CloseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeCount
}

func (s *fakeSession) Loop(kind domain.LoopKind) (bool, domain.IntervalRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loops[kind], s.intervals[kind]
}

func (s *fakeSession) Strategy() domain.Strategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strategy
}

type fakeDialer struct {
	sess *fakeSession
	err  error
}

func (d fakeDialer) Dial(ctx context.Context, cfg domain.RuntimeConfig) (ports.GameSession, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.sess.record("dial")
	return d.sess, nil
}
