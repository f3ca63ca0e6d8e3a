// Package mining orchestrates the library mining workflow: registry
// extraction, intersection, structure resolution and similarity scoring,
// with optional archiving and metrics export of each run.
package mining

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/SDF-Library-Mining/internal/application/intersection"
	"github.com/turtacn/SDF-Library-Mining/internal/application/resolver"
	"github.com/turtacn/SDF-Library-Mining/internal/application/scoring"
	"github.com/turtacn/SDF-Library-Mining/internal/domain/library"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/storage/minio"
	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// Service defines the mining operations exposed to the CLI.
type Service interface {
	Extract(ctx context.Context, input *ExtractInput) (*ExtractResult, error)
	Intersect(ctx context.Context, input *IntersectInput) (*IntersectResult, error)
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveResult, error)
	Score(ctx context.Context, input *ScoreInput) (*ScoreResult, error)
	Run(ctx context.Context, input *RunInput) (*RunReport, error)
	// FlushMetrics writes the metrics textfile when metrics are enabled.
	FlushMetrics() error
}

// ExtractInput names a library and the registry list to write.
type ExtractInput struct {
	LibraryPath string
	OutputPath  string
}

// ExtractResult holds the registry numbers of one library in file order.
type ExtractResult struct {
	IDs   []string
	Stats library.LoadStats
}

// IntersectInput names the two libraries and the intersection outputs.
// Empty output paths are skipped.
type IntersectInput struct {
	PrimaryPath   string
	ReferencePath string
	ListPath      string
	TablePath     string
	WithFormula   bool
}

// IntersectResult holds the shared ids, the joined table and both load stats.
type IntersectResult struct {
	Result         *intersection.Result
	PrimaryStats   library.LoadStats
	ReferenceStats library.LoadStats
}

// ResolveInput names an intersection table and the resolved table to write.
type ResolveInput struct {
	TablePath  string
	OutputPath string
}

// ResolveResult holds every resolved row, including placeholders.
type ResolveResult struct {
	Rows  []resolver.ResolvedRow
	Stats resolver.BatchStats
}

// ScoreInput names a reviewed resolved table and the final output.  A zero
// Delimiter selects the one implied by each path.
type ScoreInput struct {
	InputPath  string
	OutputPath string
	Delimiter  rune
}

// ScoreResult holds the scored rows and the reference codes heading them.
type ScoreResult struct {
	Codes []string
	Rows  []scoring.ScoredRow
	Stats scoring.Stats
}

// RunInput drives the whole workflow into OutDir.
type RunInput struct {
	PrimaryPath   string
	ReferencePath string
	OutDir        string
	WithFormula   bool
	SkipResolve   bool
	Score         bool
	// SpreadsheetOutput writes the final table as .xlsx instead of .csv.
	SpreadsheetOutput bool
	// ScoreDelimiter separates the final table columns; zero means comma.
	ScoreDelimiter rune
}

// serviceImpl implements Service.
type serviceImpl struct {
	loader    *library.Loader
	resolver  resolver.IdentifierResolver
	scorer    *scoring.Scorer
	archive   minio.RunArchive
	collector prom.MetricsCollector
	metrics   *prom.PipelineMetrics
	textfile  string
	logger    logging.Logger
	newRunID  func() string
	now       func() time.Time
}

// Option configures the service.
type Option func(*serviceImpl)

// WithResolver sets the structure resolver used by Resolve and Run.
func WithResolver(r resolver.IdentifierResolver) Option {
	return func(s *serviceImpl) { s.resolver = r }
}

// WithScorer sets the scorer used by Score and Run.
func WithScorer(sc *scoring.Scorer) Option {
	return func(s *serviceImpl) { s.scorer = sc }
}

// WithArchive uploads the artifacts of every Run.
func WithArchive(a minio.RunArchive) Option {
	return func(s *serviceImpl) { s.archive = a }
}

// WithMetrics records run metrics on collector and writes them to textfile.
func WithMetrics(collector prom.MetricsCollector, textfile string) Option {
	return func(s *serviceImpl) {
		s.collector = collector
		s.metrics = prom.NewPipelineMetrics(collector)
		s.textfile = textfile
	}
}

// WithRunIDGenerator overrides run id generation.
func WithRunIDGenerator(fn func() string) Option {
	return func(s *serviceImpl) { s.newRunID = fn }
}

// NewService creates a mining Service.
func NewService(loader *library.Loader, logger logging.Logger, opts ...Option) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if loader == nil {
		loader = library.NewLoader(library.DefaultMarkers(), logger)
	}
	s := &serviceImpl{
		loader:   loader,
		logger:   logger,
		newRunID: func() string { return uuid.New().String() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *serviceImpl) FlushMetrics() error {
	if s.collector == nil || s.textfile == "" {
		return nil
	}
	if err := s.collector.WriteTextfile(s.textfile); err != nil {
		return pkgerrors.New(pkgerrors.ErrCodeIOFailed, "failed to write metrics textfile").
			WithDetail("path=" + s.textfile).WithCause(err)
	}
	s.logger.Debug("metrics written", logging.String("path", s.textfile))
	return nil
}

func (s *serviceImpl) stage(name string) func() {
	start := s.now()
	return func() {
		if s.metrics != nil {
			prom.RecordStage(s.metrics, name, s.now().Sub(start))
		}
	}
}

func (s *serviceImpl) loadLibrary(label, path string) ([]library.Record, library.LoadStats, error) {
	records, stats, err := s.loader.LoadFile(path)
	if err != nil {
		return nil, stats, err
	}
	if s.metrics != nil {
		prom.RecordLibrary(s.metrics, label, stats.Records, stats.TrailingLines, map[string]int{
			"name":        stats.MissingName,
			"formula":     stats.MissingFormula,
			"cas":         stats.MissingCAS,
			"coordinates": stats.MissingCoordinates,
		})
	}
	return records, stats, nil
}

func requirePath(name, value string) error {
	if value == "" {
		return pkgerrors.InvalidParam(name + " is required")
	}
	return nil
}

// interrupted wraps a context error: ErrCodeTimeout once the deadline has
// passed, ErrCodeCanceled for any other cancellation.
func interrupted(err error, msg string) error {
	code := pkgerrors.ErrCodeCanceled
	if stderrors.Is(err, context.DeadlineExceeded) {
		code = pkgerrors.ErrCodeTimeout
	}
	return pkgerrors.Wrap(err, code, msg)
}

//Personal.AI order the ending
