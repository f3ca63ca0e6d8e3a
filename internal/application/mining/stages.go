package mining

import (
	"context"

	"github.com/turtacn/SDF-Library-Mining/internal/application/intersection"
	"github.com/turtacn/SDF-Library-Mining/internal/application/resolver"
	"github.com/turtacn/SDF-Library-Mining/internal/domain/library"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/tabular"
	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Extract
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) Extract(ctx context.Context, input *ExtractInput) (*ExtractResult, error) {
	if err := requirePath("library path", input.LibraryPath); err != nil {
		return nil, err
	}
	defer s.stage(prom.StageExtract)()

	records, stats, err := s.loadLibrary("library", input.LibraryPath)
	if err != nil {
		return nil, err
	}
	ids := intersection.CASList(records)
	if input.OutputPath != "" {
		if err := tabular.WriteLinesFile(input.OutputPath, ids); err != nil {
			return nil, err
		}
	}
	s.logger.Info("registry list extracted",
		logging.String("library", input.LibraryPath),
		logging.Int("records", stats.Records),
		logging.Int("missing_cas", stats.MissingCAS))
	return &ExtractResult{IDs: ids, Stats: stats}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Intersect
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) Intersect(ctx context.Context, input *IntersectInput) (*IntersectResult, error) {
	if err := requirePath("primary library path", input.PrimaryPath); err != nil {
		return nil, err
	}
	if err := requirePath("reference library path", input.ReferencePath); err != nil {
		return nil, err
	}
	primary, pStats, err := s.loadLibrary("primary", input.PrimaryPath)
	if err != nil {
		return nil, err
	}
	reference, rStats, err := s.loadLibrary("reference", input.ReferencePath)
	if err != nil {
		return nil, err
	}

	result, err := s.intersectRecords(primary, reference, input.ListPath, input.TablePath, input.WithFormula)
	if err != nil {
		return nil, err
	}

	s.logger.Info("intersection computed",
		logging.Int("primary", pStats.Records),
		logging.Int("reference", rStats.Records),
		logging.Int("shared", len(result.IDs)))
	return &IntersectResult{Result: result, PrimaryStats: pStats, ReferenceStats: rStats}, nil
}

func (s *serviceImpl) intersectRecords(primary, reference []library.Record, listPath, tablePath string, withFormula bool) (*intersection.Result, error) {
	defer s.stage(prom.StageIntersect)()

	result, err := intersection.Run(primary, reference, withFormula)
	if err != nil {
		return nil, err
	}
	if listPath != "" {
		if err := tabular.WriteLinesFile(listPath, result.IDs); err != nil {
			return nil, err
		}
	}
	if tablePath != "" {
		if err := tabular.WriteIntersectionTableFile(tablePath, result.Rows, withFormula); err != nil {
			return nil, err
		}
	}
	if s.metrics != nil {
		s.metrics.IntersectionSize.WithLabelValues().Set(float64(len(result.IDs)))
	}
	return result, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Resolve
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) Resolve(ctx context.Context, input *ResolveInput) (*ResolveResult, error) {
	if err := requirePath("intersection table path", input.TablePath); err != nil {
		return nil, err
	}
	rows, err := tabular.ReadIntersectionTableFile(input.TablePath)
	if err != nil {
		return nil, err
	}
	return s.resolveRows(ctx, rows, input.OutputPath)
}

// resolveRows writes whatever was resolved even when the batch is cancelled.
func (s *serviceImpl) resolveRows(ctx context.Context, rows []intersection.Row, outPath string) (*ResolveResult, error) {
	if s.resolver == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeConfigInvalid, "no structure resolver configured")
	}
	defer s.stage(prom.StageResolve)()

	var opts []resolver.BatchOption
	if s.metrics != nil {
		opts = append(opts, resolver.WithObserver(func(ok bool) { prom.RecordLookup(s.metrics, ok) }))
	}
	resolved, stats, batchErr := resolver.NewBatch(s.resolver, s.logger, opts...).ResolveAll(ctx, rows)

	if outPath != "" {
		if err := tabular.WriteResolvedTableFile(outPath, resolved); err != nil {
			return nil, err
		}
	}
	if batchErr != nil {
		return &ResolveResult{Rows: resolved, Stats: stats}, interrupted(batchErr, "resolution interrupted")
	}

	s.logger.Info("structures resolved",
		logging.Int("total", stats.Total),
		logging.Int("resolved", stats.Resolved),
		logging.Int("failed", stats.Failed))
	return &ResolveResult{Rows: resolved, Stats: stats}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Score
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) Score(ctx context.Context, input *ScoreInput) (*ScoreResult, error) {
	if err := requirePath("input table path", input.InputPath); err != nil {
		return nil, err
	}
	rows, err := tabular.ReadResolvedTableFile(input.InputPath, input.Delimiter)
	if err != nil {
		return nil, err
	}
	return s.scoreRows(ctx, rows, input.OutputPath, input.Delimiter)
}

func (s *serviceImpl) scoreRows(ctx context.Context, rows []resolver.ResolvedRow, outPath string, delim rune) (*ScoreResult, error) {
	if s.scorer == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeConfigInvalid, "no scorer configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, interrupted(err, "scoring interrupted")
	}
	defer s.stage(prom.StageScore)()

	scored, stats := s.scorer.ScoreAll(rows)
	codes := s.scorer.Codes()
	if outPath != "" {
		if err := tabular.WriteScoreTableFile(outPath, codes, scored, delim); err != nil {
			return nil, err
		}
	}
	if s.metrics != nil {
		prom.RecordScoring(s.metrics, stats.Scored, stats.Rejected)
	}
	return &ScoreResult{Codes: codes, Rows: scored, Stats: stats}, nil
}

//Personal.AI order the ending
