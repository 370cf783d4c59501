// internal/sched/ticker.go

package sched

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"tickshare/internal/counter"
	"tickshare/internal/job"
	"tickshare/internal/logger"
)

// SourceTicker is the source recorded on the shared counter for every tick.
const SourceTicker = "ticker"

var (
	ErrNilCounter       = errors.New("ticker needs a shared counter")
	ErrNegativeTicks    = errors.New("max ticks must not be negative")
	ErrNegativeInterval = errors.New("tick interval must not be negative")
	ErrAlreadyStarted   = errors.New("ticker already started")
	ErrNotStarted       = errors.New("ticker not started")
	ErrAlreadyJoined    = errors.New("ticker already joined")
)

// Ticker increments a shared counter from its own goroutine, a bounded number of times.
type Ticker struct {
	shared   *counter.Shared // not owned, must outlive the ticker
	maxTicks int             // number of increments to perform
	interval time.Duration   // sleep after every increment
	log      logger.Logger

	ticks  atomic.Int64       // increments committed so far
	ctx    context.Context    // canceled by Stop
	cancel context.CancelFunc // stops the tick loop early
	done   chan struct{}      // closed when the goroutine exits

	mu      sync.Mutex // protects the fields below
	state   State
	joining bool
}

// NewTicker binds a ticker to shared. It does not start anything.
func NewTicker(shared *counter.Shared, maxTicks int, interval time.Duration) (*Ticker, error) {
	switch {
	case shared == nil:
		return nil, ErrNilCounter
	case maxTicks < 0:
		return nil, fmt.Errorf("%w: %d", ErrNegativeTicks, maxTicks)
	case interval < 0:
		return nil, fmt.Errorf("%w: %s", ErrNegativeInterval, interval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Ticker{
		shared:   shared,
		maxTicks: maxTicks,
		interval: interval,
		log:      logger.New("ticker"),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
		state:    StateCreated,
	}, nil
}

// Start spawns the tick goroutine. A ticker can be started only once.
func (t *Ticker) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateCreated {
		return ErrAlreadyStarted
	}
	t.state = StateRunning
	go t.run()
	return nil
}

// Join blocks until the tick goroutine has exited. Every tick committed by the
// goroutine is visible to the caller once Join returns.
// The goroutine sleeps one interval after its last tick as well, so Join
// returns about one interval after the final increment unless Stop is called.
func (t *Ticker) Join() error {
	t.mu.Lock()
	if t.state == StateCreated {
		t.mu.Unlock()
		return ErrNotStarted
	}
	if t.joining {
		t.mu.Unlock()
		return ErrAlreadyJoined
	}
	t.joining = true
	t.mu.Unlock()

	<-t.done

	t.mu.Lock()
	t.state = StateJoined
	t.mu.Unlock()
	t.cancel() // release the context
	return nil
}

// Stop asks the tick goroutine to finish early. It is safe to call more than once
// and from any goroutine. Join must still be called to wait for the exit.
func (t *Ticker) Stop() {
	t.cancel()
}

// Done is closed once the tick goroutine has exited.
func (t *Ticker) Done() <-chan struct{} { return t.done }

// Ticks returns how many increments the ticker has committed so far.
func (t *Ticker) Ticks() int { return int(t.ticks.Load()) }

// State returns the current lifecycle state.
func (t *Ticker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Ticker) run() {
	defer func() {
		t.mu.Lock()
		t.state = StateCompleted
		t.mu.Unlock()
		close(t.done)
	}()

	t.log.Debugf("started: %d ticks every %s", t.maxTicks, t.interval)
	for i := 1; i <= t.maxTicks; i++ {
		if t.ctx.Err() != nil {
			t.log.Debugf("stopped after %d/%d ticks", i-1, t.maxTicks)
			return
		}

		v := t.shared.Increment(SourceTicker)
		t.ticks.Add(1)
		t.log.Debugf("tick %d/%d: shared count = %d", i, t.maxTicks, v)

		if err := job.Sleep(t.ctx, t.interval); err != nil {
			t.log.Debugf("stopped after %d/%d ticks", i, t.maxTicks)
			return
		}
	}
	t.log.Debugf("finished %d ticks", t.maxTicks)
}
