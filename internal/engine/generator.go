package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// DefaultLatency is how long a simulated generation takes.
const DefaultLatency = 3 * time.Second

// Completion reports that a simulated generation finished. It carries no
// generated content.
type Completion struct {
	Session     uuid.UUID
	Kind        Kind
	SubmittedAt time.Time
	CompletedAt time.Time
}

// Generator simulates content generation with a fixed delay. It never fails
// and ignores the draft it is given.
type Generator struct {
	clock   clockwork.Clock
	latency time.Duration
	log     *zap.Logger
}

// NewGenerator builds a generator on clock. A nil clock means wall time; a
// negative latency is treated as zero.
func NewGenerator(clock clockwork.Clock, latency time.Duration, log *zap.Logger) *Generator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if latency < 0 {
		latency = 0
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{clock: clock, latency: latency, log: log}
}

func (g *Generator) Latency() time.Duration { return g.latency }
func (g *Generator) Clock() clockwork.Clock { return g.clock }

// Await blocks for the configured latency and then reports completion. The
// only error is ctx.Err(), when the program shuts down first.
func (g *Generator) Await(ctx context.Context, sub Submission) (Completion, error) {
	start := g.clock.Now()
	g.log.Debug("generation scheduled",
		zap.String("session", sub.Session.String()),
		zap.Stringer("kind", sub.Kind),
		zap.Duration("latency", g.latency))
	select {
	case <-ctx.Done():
		return Completion{}, ctx.Err()
	case now := <-g.clock.After(g.latency):
		g.log.Debug("generation finished", zap.String("session", sub.Session.String()))
		return Completion{Session: sub.Session, Kind: sub.Kind, SubmittedAt: start, CompletedAt: now}, nil
	}
}
