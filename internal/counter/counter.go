// internal/counter/counter.go

package counter

import (
	"context"
	"sync"
	"time"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/treemap"
)

// Increment is one committed change of the shared value.
type Increment struct {
	Seq    int       // 1-based commit order
	Source string    // who incremented (e.g. "ticker", "main")
	Value  int       // value right after this increment
	Time   time.Time // commit time
}

// Share is how many increments a single source contributed.
type Share struct {
	Source string
	Count  int
}

// Shared is an integer that two or more goroutines mutate under one mutex.
// The zero value is not usable, use New.
type Shared struct {
	mu      sync.Mutex      // protects everything below
	changed *sync.Cond      // broadcast on every increment
	value   int             // the shared count
	tally   *treemap.Map    // source -> number of increments, ordered by source
	journal *arraylist.List // Increment records in commit order
}

// New creates a shared counter starting at zero.
func New() *Shared {
	s := &Shared{
		tally:   treemap.NewWithStringComparator(),
		journal: arraylist.New(),
	}
	s.changed = sync.NewCond(&s.mu)
	return s
}

// Increment adds one to the value on behalf of source and returns the new value.
func (s *Shared) Increment(source string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value++

	n := 0
	if v, ok := s.tally.Get(source); ok {
		n = v.(int)
	}
	s.tally.Put(source, n+1)

	s.journal.Add(Increment{
		Seq:    s.journal.Size() + 1,
		Source: source,
		Value:  s.value,
		Time:   time.Now(),
	})

	s.changed.Broadcast()
	return s.value
}

// Value returns the current value.
func (s *Shared) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Contributions returns how many increments source has committed so far.
func (s *Shared) Contributions(source string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.tally.Get(source); ok {
		return v.(int)
	}
	return 0
}

// Tally returns every source's contribution, sorted by source name.
func (s *Shared) Tally() []Share {
	s.mu.Lock()
	defer s.mu.Unlock()

	shares := make([]Share, 0, s.tally.Size())
	it := s.tally.Iterator()
	for it.Next() {
		shares = append(shares, Share{Source: it.Key().(string), Count: it.Value().(int)})
	}
	return shares
}

// History returns a copy of the increment journal in commit order.
func (s *Shared) History() []Increment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Increment, 0, s.journal.Size())
	s.journal.Each(func(_ int, v interface{}) {
		out = append(out, v.(Increment))
	})
	return out
}

// WaitUntil blocks until the value is at least target or ctx is done.
// It returns ctx.Err() if the wait was abandoned.
func (s *Shared) WaitUntil(ctx context.Context, target int) error {
	// sync.Cond cannot select on ctx, so wake all waiters once ctx ends.
	stop := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		s.changed.Broadcast()
		s.mu.Unlock()
	})
	defer stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	for s.value < target {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.changed.Wait()
	}
	return nil
}
