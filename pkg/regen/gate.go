package regen

import (
	"sync"
	"time"

	"github.com/carverauto/brokview/pkg/logger"
)

// Gate is the readers/writer coordination point for the object graph: any
// number of concurrent readers or exactly one writer, with no fairness:
// writers wait until zero readers, readers wait until zero writers.
// Starvation is accepted; writes are sub-millisecond and reads are
// request-scoped. A writer stuck behind readers for longer than warnAfter
// logs a diagnostic and keeps waiting.
type Gate struct {
	mu   sync.Mutex
	cond *sync.Cond

	readers int
	writers int

	warnAfter time.Duration
	logger    logger.Logger
}

func NewGate(warnAfter time.Duration, log logger.Logger) *Gate {
	g := &Gate{
		warnAfter: warnAfter,
		logger:    log,
	}
	g.cond = sync.NewCond(&g.mu)

	return g
}

// AcquireRead blocks until no writer is active.
func (g *Gate) AcquireRead() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for g.writers > 0 {
		g.cond.Wait()
	}

	g.readers++
}

func (g *Gate) ReleaseRead() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.readers--
	g.cond.Broadcast()
}

// AcquireWrite blocks until no reader is active. Waiting longer than the
// warn threshold is an operational signal, never an error.
func (g *Gate) AcquireWrite() {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := time.Now()
	warned := false

	// A wake-up timer guarantees the diagnostic fires even if no reader
	// releases in the meantime.
	var timer *time.Timer
	if g.warnAfter > 0 {
		timer = time.AfterFunc(g.warnAfter, func() {
			g.mu.Lock()
			g.cond.Broadcast()
			g.mu.Unlock()
		})
		defer timer.Stop()
	}

	for g.readers > 0 {
		g.cond.Wait()

		if !warned && g.warnAfter > 0 && time.Since(start) >= g.warnAfter && g.readers > 0 {
			g.logger.Warn().
				Dur("waiting", time.Since(start)).
				Int("readers", g.readers).
				Msg("Writer still waiting for readers to drain")

			warned = true
		}
	}

	g.writers++
}

func (g *Gate) ReleaseWrite() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.writers--
	g.cond.Broadcast()
}
