package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visitEventAt(i int) VisitEvent {
	return VisitEvent{
		Direction:      VisitIncoming,
		CounterpartyID: fmt.Sprintf("user-%d", i),
		Kind:           "water",
		Message:        fmt.Sprintf("visit %d", i),
		Timestamp:      time.Unix(int64(1700000000+i), 0),
	}
}

func TestVisitLogBoundedEviction(t *testing.T) {
	log := NewVisitLog()
	for i := 0; i < VisitLogCapacity+1; i++ {
		require.True(t, log.Add(NewVisitRecord(visitEventAt(i))))
	}

	records := log.Records()
	require.Len(t, records, VisitLogCapacity)
	assert.Equal(t, "visit 1", records[0].Message, "oldest record evicted first")
	assert.Equal(t, "visit 400", records[len(records)-1].Message)

	for i := 1; i < len(records); i++ {
		assert.True(t, !records[i].Timestamp.Before(records[i-1].Timestamp), "insertion order preserved")
	}
}

func TestVisitLogDuplicateIgnoredKeepsFirst(t *testing.T) {
	log := NewVisitLog()
	ev := visitEventAt(1)
	require.True(t, log.Add(NewVisitRecord(ev)))

	dup := ev
	dup.Message = "replayed delivery"
	assert.False(t, log.Add(NewVisitRecord(dup)))

	records := log.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "visit 1", records[0].Message)
}

func TestVisitRecordDeterministicID(t *testing.T) {
	ev := visitEventAt(3)
	a := NewVisitRecord(ev)
	b := NewVisitRecord(ev)
	assert.Equal(t, a.ID, b.ID)

	other := ev
	other.Direction = VisitOutgoing
	assert.NotEqual(t, a.ID, NewVisitRecord(other).ID)
}

func TestVisitLogEvictionForgetsID(t *testing.T) {
	log := NewVisitLog()
	first := NewVisitRecord(visitEventAt(0))
	require.True(t, log.Add(first))
	for i := 1; i <= VisitLogCapacity; i++ {
		require.True(t, log.Add(NewVisitRecord(visitEventAt(i))))
	}

	// The evicted id is insertable again.
	assert.True(t, log.Add(first))
}
