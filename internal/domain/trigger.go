package domain

import "sync"

type TriggerCategory string

const (
	TriggerConnRejected       TriggerCategory = "connection_rejected"
	TriggerPatrolDisconnected TriggerCategory = "patrol_disconnected"
	TriggerKickedOut          TriggerCategory = "kicked_out"
)

// TriggerSet holds the one-shot fatal latches for a single session. Each
// category trips at most once per set; a new session gets a new set.
type TriggerSet struct {
	mu      sync.Mutex
	tripped map[TriggerCategory]bool
}

func NewTriggerSet() *TriggerSet {
	return &TriggerSet{tripped: make(map[TriggerCategory]bool, 3)}
}

// Trip latches the category and reports whether this call was the first.
func (t *TriggerSet) Trip(cat TriggerCategory) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tripped[cat] {
		return false
	}
	t.tripped[cat] = true
	return true
}

func (t *TriggerSet) Tripped(cat TriggerCategory) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tripped[cat]
}
