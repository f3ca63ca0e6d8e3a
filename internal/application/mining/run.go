package mining

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/turtacn/SDF-Library-Mining/internal/application/intersection"
	"github.com/turtacn/SDF-Library-Mining/internal/application/resolver"
	"github.com/turtacn/SDF-Library-Mining/internal/application/scoring"
	"github.com/turtacn/SDF-Library-Mining/internal/domain/library"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/tabular"
	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// Artifact file names written by Run inside the output directory.
const (
	PrimaryListFile       = "primary_cas.txt"
	ReferenceListFile     = "reference_cas.txt"
	IntersectionListFile  = "intersection.txt"
	IntersectionTableFile = "intersection_full.txt"
	ResolvedTableFile     = "resolved.tsv"
	SimilarityCSVFile     = "similarity.csv"
	SimilarityXLSXFile    = "similarity.xlsx"
)

// RunReport summarises one Run.
type RunReport struct {
	RunID       string
	Primary     library.LoadStats
	Reference   library.LoadStats
	Shared      int
	Resolve     resolver.BatchStats
	Score       scoring.Stats
	Artifacts   []string
	Archived    int
	NeedsReview bool
	Duration    time.Duration
}

// Run chains extract, intersect, resolve and optionally score.  Every
// artifact lands in input.OutDir; when an archive is configured the
// artifacts are uploaded under the run id.
func (s *serviceImpl) Run(ctx context.Context, input *RunInput) (report *RunReport, err error) {
	if err := requirePath("output directory", input.OutDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(input.OutDir, 0o755); err != nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeIOFailed, "failed to create output directory").
			WithDetail("path=" + input.OutDir).WithCause(err)
	}

	start := s.now()
	report = &RunReport{RunID: s.newRunID()}
	log := s.logger.With(logging.String("run_id", report.RunID))
	log.Info("run started",
		logging.String("primary", input.PrimaryPath),
		logging.String("reference", input.ReferencePath),
		logging.String("out_dir", input.OutDir))

	defer func() {
		report.Duration = s.now().Sub(start)
		if s.metrics != nil {
			prom.RecordRun(s.metrics, err == nil, s.now())
		}
		if ferr := s.FlushMetrics(); ferr != nil {
			log.Warn("metrics export failed", logging.Err(ferr))
		}
	}()

	out := func(name string) string { return filepath.Join(input.OutDir, name) }

	doneExtract := s.stage(prom.StageExtract)
	primary, pStats, err := s.loadLibrary("primary", input.PrimaryPath)
	if err != nil {
		return report, err
	}
	reference, rStats, err := s.loadLibrary("reference", input.ReferencePath)
	if err != nil {
		return report, err
	}
	doneExtract()
	report.Primary = pStats
	report.Reference = rStats

	if err := writeList(out(PrimaryListFile), intersection.CASList(primary)); err != nil {
		return report, err
	}
	if err := writeList(out(ReferenceListFile), intersection.CASList(reference)); err != nil {
		return report, err
	}
	report.Artifacts = append(report.Artifacts, out(PrimaryListFile), out(ReferenceListFile))

	inter, err := s.intersectRecords(primary, reference, out(IntersectionListFile), out(IntersectionTableFile), input.WithFormula)
	if err != nil {
		return report, err
	}
	report.Shared = len(inter.IDs)
	report.Artifacts = append(report.Artifacts, out(IntersectionListFile), out(IntersectionTableFile))

	if !input.SkipResolve {
		res, rerr := s.resolveRows(ctx, inter.Rows, out(ResolvedTableFile))
		if res != nil {
			report.Resolve = res.Stats
			report.Artifacts = append(report.Artifacts, out(ResolvedTableFile))
		}
		if rerr != nil {
			return report, rerr
		}
		report.NeedsReview = true

		if input.Score {
			name := SimilarityCSVFile
			if input.SpreadsheetOutput {
				name = SimilarityXLSXFile
			}
			scored, serr := s.scoreRows(ctx, res.Rows, out(name), input.ScoreDelimiter)
			if serr != nil {
				return report, serr
			}
			report.Score = scored.Stats
			report.Artifacts = append(report.Artifacts, out(name))
		}
	}

	if s.archive != nil {
		done := s.stage(prom.StageArchive)
		uploaded, aerr := s.archiveRun(ctx, report)
		done()
		report.Archived = uploaded
		if s.metrics != nil {
			s.metrics.ArchivedObjects.WithLabelValues().Add(float64(uploaded))
		}
		if aerr != nil {
			return report, aerr
		}
	}

	log.Info("run finished",
		logging.Int("shared", report.Shared),
		logging.Int("resolved", report.Resolve.Resolved),
		logging.Int("artifacts", len(report.Artifacts)),
		logging.Duration("elapsed", s.now().Sub(start)))
	return report, nil
}

// writeList stores ids at path and checks that the file reads back to the
// same ids, blank entries included.
func writeList(path string, ids []string) error {
	if err := tabular.WriteLinesFile(path, ids); err != nil {
		return err
	}
	got, err := tabular.ReadLinesFile(path)
	if err != nil {
		return err
	}
	if len(got) != len(ids) {
		return pkgerrors.New(pkgerrors.ErrCodeInvariantViolation, "registry list did not read back intact").
			WithDetail(fmt.Sprintf("path=%s written=%d read=%d", path, len(ids), len(got)))
	}
	for i := range ids {
		if got[i] != strings.TrimSpace(ids[i]) {
			return pkgerrors.New(pkgerrors.ErrCodeInvariantViolation, "registry list did not read back intact").
				WithDetail(fmt.Sprintf("path=%s line=%d", path, i+1))
		}
	}
	return nil
}

// archiveRun uploads the artifacts of report and checks that every uploaded
// key is listed under the run.  It returns the number of uploaded objects.
func (s *serviceImpl) archiveRun(ctx context.Context, report *RunReport) (int, error) {
	uploaded, err := s.archive.UploadRun(ctx, report.RunID, report.Artifacts, map[string]string{"run-id": report.RunID})
	if err != nil {
		return len(uploaded), err
	}
	listed, err := s.archive.List(ctx, report.RunID)
	if err != nil {
		return len(uploaded), err
	}

	stored := make(map[string]struct{}, len(listed))
	for _, obj := range listed {
		stored[obj.ObjectKey] = struct{}{}
	}
	var missing []string
	for _, u := range uploaded {
		if _, ok := stored[u.ObjectKey]; !ok {
			missing = append(missing, u.ObjectKey)
		}
	}
	if len(missing) > 0 {
		return len(uploaded), pkgerrors.New(pkgerrors.ErrCodeArchiveUploadFailed, "archived run is incomplete").
			WithDetail("missing=" + strings.Join(missing, ","))
	}
	return len(uploaded), nil
}

//Personal.AI order the ending
