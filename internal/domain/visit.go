package domain

import (
	"fmt"
	"time"
)

type VisitDirection string

const (
	VisitIncoming VisitDirection = "incoming"
	VisitOutgoing VisitDirection = "outgoing"
)

// VisitEvent is one visit-like event as delivered by the session's event
// stream.
type VisitEvent struct {
	Direction        VisitDirection
	CounterpartyID   string
	CounterpartyName string
	Kind             string
	Message          string
	Timestamp        time.Time
}

type VisitRecord struct {
	ID               string         `json:"id"`
	Timestamp        time.Time      `json:"timestamp"`
	Direction        VisitDirection `json:"direction"`
	CounterpartyID   string         `json:"counterparty_id"`
	CounterpartyName string         `json:"counterparty_name,omitempty"`
	Kind             string         `json:"kind"`
	Message          string         `json:"message,omitempty"`
}

// NewVisitRecord derives a record whose id is a deterministic composite of
// the event identity, so a duplicate delivery of the same logical event
// collides instead of double-inserting.
func NewVisitRecord(ev VisitEvent) VisitRecord {
	return VisitRecord{
		ID:               fmt.Sprintf("%d:%s:%s:%s", ev.Timestamp.Unix(), ev.Direction, ev.CounterpartyID, ev.Kind),
		Timestamp:        ev.Timestamp,
		Direction:        ev.Direction,
		CounterpartyID:   ev.CounterpartyID,
		CounterpartyName: ev.CounterpartyName,
		Kind:             ev.Kind,
		Message:          ev.Message,
	}
}

const VisitLogCapacity = 400

// VisitLog is a bounded, append-only ring of visit records. Duplicate ids
// are ignored (the first record wins); once full, the oldest record is
// evicted to make room.
type VisitLog struct {
	records []VisitRecord
	seen    map[string]struct{}
	cap     int
}

func NewVisitLog() *VisitLog {
	return &VisitLog{
		seen: make(map[string]struct{}, VisitLogCapacity),
		cap:  VisitLogCapacity,
	}
}

// Add appends a record, reporting whether it was inserted. Duplicates are
// dropped.
func (l *VisitLog) Add(rec VisitRecord) bool {
	if _, dup := l.seen[rec.ID]; dup {
		return false
	}
	if len(l.records) >= l.cap {
		evicted := l.records[0]
		l.records = append(l.records[:0], l.records[1:]...)
		delete(l.seen, evicted.ID)
	}
	l.records = append(l.records, rec)
	l.seen[rec.ID] = struct{}{}
	return true
}

func (l *VisitLog) Len() int { return len(l.records) }

// Records returns the log contents in insertion order, oldest first. The
// returned slice is the caller's to keep.
func (l *VisitLog) Records() []VisitRecord {
	return append([]VisitRecord(nil), l.records...)
}
