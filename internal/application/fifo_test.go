package application

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorchard/farmhand/internal/domain"
)

func TestOpQueueRunsInSubmissionOrder(t *testing.T) {
	q := newOpQueue()
	defer q.Close()

	var mu sync.Mutex
	var order []string

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = q.Submit("first", func() error {
			time.Sleep(50 * time.Millisecond)
			mu.Lock()
			order = append(order, "first")
			mu.Unlock()
			return nil
		})
	}()
	time.Sleep(10 * time.Millisecond) // let "first" enter the queue
	go func() {
		defer wg.Done()
		_ = q.Submit("second", func() error {
			mu.Lock()
			order = append(order, "second")
			mu.Unlock()
			return nil
		})
	}()
	wg.Wait()

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestOpQueueSubmitReturnsOpError(t *testing.T) {
	q := newOpQueue()
	defer q.Close()

	err := q.Submit("boom", func() error { return assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
}

func TestOpQueueSubmitAfterClose(t *testing.T) {
	q := newOpQueue()
	q.Close()

	err := q.Submit("late", func() error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSupervisorClosed)
}
