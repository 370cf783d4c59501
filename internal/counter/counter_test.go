package counter

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestIncrementAndValue(t *testing.T) {
	s := New()
	require.Equal(t, 0, s.Value())

	assert.Equal(t, 1, s.Increment("main"))
	assert.Equal(t, 2, s.Increment("ticker"))
	assert.Equal(t, 3, s.Increment("main"))
	assert.Equal(t, 3, s.Value())

	assert.Equal(t, 2, s.Contributions("main"))
	assert.Equal(t, 1, s.Contributions("ticker"))
	assert.Equal(t, 0, s.Contributions("nobody"))
}

func TestNoLostUpdates(t *testing.T) {
	const goroutines = 16
	const iterations = 500

	s := New()
	var g errgroup.Group
	g.SetLimit(goroutines)
	for i := 0; i < goroutines; i++ {
		source := fmt.Sprintf("g%02d", i)
		g.Go(func() error {
			for j := 0; j < iterations; j++ {
				s.Increment(source)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.Equal(t, goroutines*iterations, s.Value())
	for _, share := range s.Tally() {
		assert.Equal(t, iterations, share.Count, share.Source)
	}
	assert.Len(t, s.History(), goroutines*iterations)
}

func TestTallyIsOrderedBySource(t *testing.T) {
	s := New()
	s.Increment("ticker")
	s.Increment("main")
	s.Increment("ticker")

	assert.Equal(t, []Share{
		{Source: "main", Count: 1},
		{Source: "ticker", Count: 2},
	}, s.Tally())
}

func TestHistoryIsCommitOrder(t *testing.T) {
	s := New()
	s.Increment("ticker")
	s.Increment("main")

	h := s.History()
	require.Len(t, h, 2)
	assert.Equal(t, 1, h[0].Seq)
	assert.Equal(t, "ticker", h[0].Source)
	assert.Equal(t, 1, h[0].Value)
	assert.Equal(t, 2, h[1].Seq)
	assert.Equal(t, "main", h[1].Source)
	assert.Equal(t, 2, h[1].Value)
	assert.False(t, h[1].Time.Before(h[0].Time))

	// returned slice is a copy
	h[0].Source = "changed"
	assert.Equal(t, "ticker", s.History()[0].Source)
}

func TestWaitUntil(t *testing.T) {
	s := New()

	done := make(chan error, 1)
	go func() {
		done <- s.WaitUntil(context.Background(), 3)
	}()

	for i := 0; i < 3; i++ {
		s.Increment("main")
	}

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("WaitUntil did not return after target was reached")
	}
}

func TestWaitUntilAlreadyReached(t *testing.T) {
	s := New()
	s.Increment("main")
	require.NoError(t, s.WaitUntil(context.Background(), 1))
	require.NoError(t, s.WaitUntil(context.Background(), 0))
}

func TestWaitUntilCanceled(t *testing.T) {
	s := New()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.WaitUntil(ctx, 1)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, s.Value())
}
