package resolver

import (
	"context"
	"fmt"

	"github.com/turtacn/SDF-Library-Mining/internal/application/intersection"
	"github.com/turtacn/SDF-Library-Mining/internal/domain/library"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
)

// ResolvedRow is one line of the resolved table.
type ResolvedRow struct {
	CAS    string
	Name   string
	SMILES string
}

// Resolved reports whether a SMILES string was obtained.
func (r ResolvedRow) Resolved() bool { return r.SMILES != library.Placeholder }

// BatchStats summarises a batch run.
type BatchStats struct {
	Total    int
	Resolved int
	Failed   int
	Skipped  int
}

// Batch resolves an intersection table row by row.
type Batch struct {
	resolver IdentifierResolver
	logger   logging.Logger
	observe  func(ok bool)
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithObserver registers a callback invoked once per attempted lookup.
func WithObserver(fn func(ok bool)) BatchOption {
	return func(b *Batch) { b.observe = fn }
}

// NewBatch builds a Batch around resolver.  A nil logger discards output.
func NewBatch(resolver IdentifierResolver, logger logging.Logger, opts ...BatchOption) *Batch {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	b := &Batch{resolver: resolver, logger: logger}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ResolveAll looks up every row in order.  A failed lookup stores the
// placeholder for that row only.  Cancellation of ctx stops the loop; the
// remaining rows are filled with the placeholder and ctx's error returned.
func (b *Batch) ResolveAll(ctx context.Context, rows []intersection.Row) ([]ResolvedRow, BatchStats, error) {
	out := make([]ResolvedRow, len(rows))
	stats := BatchStats{Total: len(rows)}
	for i, row := range rows {
		out[i] = ResolvedRow{CAS: row.CAS, Name: row.Name, SMILES: library.Placeholder}
	}

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			stats.Skipped = len(rows) - i
			b.logger.Warn("resolution cancelled", logging.Int("remaining", stats.Skipped), logging.Err(err))
			return out, stats, err
		}

		smiles, err := b.resolver.Resolve(ctx, row.CAS)
		progress := fmt.Sprintf("%d/%d", i+1, len(rows))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				stats.Skipped = len(rows) - i
				b.logger.Warn("resolution cancelled", logging.Int("remaining", stats.Skipped), logging.Err(ctxErr))
				return out, stats, ctxErr
			}
			stats.Failed++
			b.notify(false)
			b.logger.Warn("lookup failed",
				logging.String("progress", progress),
				logging.String("cas", row.CAS),
				logging.Err(err))
			continue
		}

		out[i].SMILES = smiles
		stats.Resolved++
		b.notify(true)
		b.logger.Info(progress,
			logging.String("cas", row.CAS),
			logging.String("smiles", smiles))
	}
	return out, stats, nil
}

func (b *Batch) notify(ok bool) {
	if b.observe != nil {
		b.observe(ok)
	}
}

//Personal.AI order the ending
