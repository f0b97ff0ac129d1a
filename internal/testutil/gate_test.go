package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGate_BlocksUntilOpened(t *testing.T) {
	gate := NewGate()

	released := make(chan struct{})
	go func() {
		gate.Wait()
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("waiter released before gate opened")
	case <-time.After(10 * time.Millisecond):
	}

	gate.Open()

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("waiter not released after gate opened")
	}
}

func TestGate_OpenIsIdempotent(t *testing.T) {
	gate := NewGate()
	gate.Open()
	gate.Open() // must not panic

	gate.Wait() // returns immediately on an open gate
}

func TestArrivals_OpensGateAtThreshold(t *testing.T) {
	gate := NewGate()
	arrivals := NewArrivals(3, gate)

	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			arrivals.Arrive()
		}()
	}
	wg.Wait()

	gate.Wait() // open now, must not block
}

func TestFixedRunID_Defaults(t *testing.T) {
	assert.Equal(t, "test-run-default", NewFixedRunID("").Generate())
	assert.Equal(t, "run-001", NewFixedRunID("run-001").Generate())
}
