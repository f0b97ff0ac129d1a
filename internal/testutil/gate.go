package testutil

import "sync"

// Gate blocks tasks until a test decides to let them proceed. It is the
// standard way to force a deterministic completion order onto concurrent
// tasks: early-submitted tasks wait on the gate while later ones finish
// first, so order-preservation assertions actually exercise reordering.
//
// Thread-safety: all methods are safe for concurrent use.
type Gate struct {
	once sync.Once
	ch   chan struct{}
}

// NewGate creates a closed gate.
func NewGate() *Gate {
	return &Gate{ch: make(chan struct{})}
}

// Wait blocks until the gate is opened. Returns immediately if it already is.
func (g *Gate) Wait() {
	<-g.ch
}

// Open releases every current and future waiter. Opening an open gate is a
// no-op.
func (g *Gate) Open() {
	g.once.Do(func() { close(g.ch) })
}

// Arrivals counts how many tasks have reached a checkpoint, releasing a gate
// once an expected number of them arrived. Used to hold early tasks hostage
// until all later tasks are known to have completed.
type Arrivals struct {
	mu       sync.Mutex
	expected int
	seen     int
	gate     *Gate
}

// NewArrivals creates a counter that opens gate after expected arrivals.
func NewArrivals(expected int, gate *Gate) *Arrivals {
	return &Arrivals{expected: expected, gate: gate}
}

// Arrive records one arrival, opening the gate when the count is reached.
func (a *Arrivals) Arrive() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seen++
	if a.seen >= a.expected {
		a.gate.Open()
	}
}
