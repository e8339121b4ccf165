package engine

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type awaitResult struct {
	c   Completion
	err error
}

func startAwait(ctx context.Context, g *Generator, sub Submission) <-chan awaitResult {
	out := make(chan awaitResult, 1)
	go func() {
		c, err := g.Await(ctx, sub)
		out <- awaitResult{c, err}
	}()
	return out
}

func TestAwaitCompletesAfterLatency(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock := clockwork.NewFakeClock()
	g := NewGenerator(clock, DefaultLatency, nil)

	f := NewForm(KindStory)
	require.NoError(t, f.Open())
	sub, err := f.Submit()
	require.NoError(t, err)

	res := startAwait(ctx, g, sub)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(DefaultLatency - time.Millisecond)
	select {
	case <-res:
		t.Fatal("completed before latency elapsed")
	default:
	}

	clock.Advance(time.Millisecond)
	var r awaitResult
	select {
	case r = <-res:
	case <-ctx.Done():
		t.Fatal("no completion")
	}
	require.NoError(t, r.err)
	assert.Equal(t, sub.Session, r.c.Session)
	assert.Equal(t, DefaultLatency, r.c.CompletedAt.Sub(r.c.SubmittedAt))

	assert.True(t, f.Complete(r.c))
	assert.False(t, f.Submitting())
	assert.Equal(t, Closed, f.Visibility())
}

func TestAwaitIgnoresDraftContents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock := clockwork.NewFakeClock()
	g := NewGenerator(clock, time.Second, nil)

	// empty theme and age group, single blank character
	res := startAwait(ctx, g, Submission{Kind: KindGame, Draft: NewDraft()})
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)
	r := <-res
	require.NoError(t, r.err)
	assert.Equal(t, KindGame, r.c.Kind)
}

func TestAwaitStopsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g := NewGenerator(clockwork.NewFakeClock(), DefaultLatency, nil)
	res := startAwait(ctx, g, Submission{})
	cancel()
	r := <-res
	assert.ErrorIs(t, r.err, context.Canceled)
}

func TestNewGeneratorDefaults(t *testing.T) {
	g := NewGenerator(nil, -time.Second, nil)
	assert.Equal(t, time.Duration(0), g.Latency())
	assert.NotNil(t, g.Clock())
}
