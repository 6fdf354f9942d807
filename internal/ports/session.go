package ports

import (
	"context"

	"github.com/gorchard/farmhand/internal/domain"
)

// GameSession is the handle to one live connection to the remote game
// service. The supervisor owns at most one at a time and treats everything
// it returns as opaque raw data for the materializer.
type GameSession interface {
	// Open connects the session. onConnected fires once the remote side
	// has accepted the connection; it may fire after Open returns.
	Open(ctx context.Context, onConnected func()) error
	Close(ctx context.Context) error
	// Cleanup releases any local resources left after Close. It must be
	// safe to call regardless of whether Close succeeded.
	Cleanup()

	Identity(ctx context.Context) (domain.RawIdentity, error)
	FarmPlots(ctx context.Context) ([]domain.RawPlot, error)
	Inventory(ctx context.Context) ([]domain.RawItem, error)

	// SetLoop starts or stops one automation sub-loop inside the session.
	SetLoop(ctx context.Context, kind domain.LoopKind, enabled bool, interval domain.IntervalRange) error
	SetStrategy(ctx context.Context, strategy domain.Strategy) error

	Events() EventSource
}

// EventSource exposes the session's asynchronous event streams. Each
// subscribe call returns an unsubscribe func scoped to this session; there
// is no process-wide emitter to clear.
type EventSource interface {
	SubscribeLogs(fn func(domain.LogEvent)) (unsubscribe func())
	SubscribeVisits(fn func(domain.VisitEvent)) (unsubscribe func())
	SubscribeClosed(fn func(err error)) (unsubscribe func())
}

// SessionDialer builds a session handle for a platform. Dial performs no
// network I/O; the connection is established by GameSession.Open so the
// supervisor can wire subscriptions before any event can fire.
type SessionDialer interface {
	Dial(ctx context.Context, cfg domain.RuntimeConfig) (GameSession, error)
}
