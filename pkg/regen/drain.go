package regen

import (
	"context"
	"errors"
	"time"

	"github.com/carverauto/brokview/pkg/models"
)

// BrokSource hands out batches of broks from the broker tier. Fetch blocks
// until at least one brok is available or its wait expires; an empty batch
// with a nil error is a normal idle tick.
type BrokSource interface {
	Fetch(ctx context.Context, batch int) ([]*models.Brok, error)
}

const drainBatchSize = 256

// Drain consumes broks until the context is cancelled. The writer side of
// the gate is held per batch, not per brok, so a burst of thousands of
// broks from an initial dump does not make readers requeue thousands of
// times.
func (r *Regenerator) Drain(ctx context.Context, src BrokSource) error {
	for {
		broks, err := src.Fetch(ctx, drainBatchSize)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}

			r.log.Error().Err(err).Msg("Failed to fetch broks")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}

			continue
		}

		if len(broks) == 0 {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			continue
		}

		r.ApplyBatch(broks)
	}
}

// ApplyBatch runs one batch of broks through the dispatcher under a single
// writer acquisition.
func (r *Regenerator) ApplyBatch(broks []*models.Brok) {
	r.gate.AcquireWrite()
	defer r.gate.ReleaseWrite()

	for _, b := range broks {
		r.ManageBrok(b)
	}
}
