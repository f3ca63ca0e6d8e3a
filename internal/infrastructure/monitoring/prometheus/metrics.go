package prometheus

import (
	"time"
)

// Stage labels.
const (
	StageExtract   = "extract"
	StageIntersect = "intersect"
	StageResolve   = "resolve"
	StageScore     = "score"
	StageArchive   = "archive"
)

// PipelineMetrics holds every metric a mining run records.
type PipelineMetrics struct {
	RecordsLoaded     CounterVec
	PlaceholderFields CounterVec
	TrailingLines     CounterVec
	IntersectionSize  GaugeVec
	ResolverLookups   CounterVec
	ScoringCandidates CounterVec
	StageDuration     HistogramVec
	RunsTotal         CounterVec
	LastRunTimestamp  GaugeVec
	ArchivedObjects   CounterVec
}

var DefaultStageDurationBuckets = []float64{.01, .1, .5, 1, 5, 10, 30, 60, 300, 900, 3600}

// NewPipelineMetrics registers all pipeline metrics on collector.
func NewPipelineMetrics(collector MetricsCollector) *PipelineMetrics {
	m := &PipelineMetrics{}

	m.RecordsLoaded = collector.RegisterCounter("library_records_total", "Records loaded per library", "library")
	m.PlaceholderFields = collector.RegisterCounter("library_placeholder_fields_total", "Fields filled with the placeholder", "library", "field")
	m.TrailingLines = collector.RegisterCounter("library_trailing_lines_total", "Lines dropped after the last record terminator", "library")
	m.IntersectionSize = collector.RegisterGauge("intersection_size", "Registry numbers shared by the two libraries")
	m.ResolverLookups = collector.RegisterCounter("resolver_lookups_total", "Structure lookups by outcome", "result")
	m.ScoringCandidates = collector.RegisterCounter("scoring_candidates_total", "Scored candidates by outcome", "result")
	m.StageDuration = collector.RegisterHistogram("stage_duration_seconds", "Pipeline stage duration", DefaultStageDurationBuckets, "stage")
	m.RunsTotal = collector.RegisterCounter("runs_total", "Pipeline runs by outcome", "status")
	m.LastRunTimestamp = collector.RegisterGauge("last_run_timestamp_seconds", "Unix time the last run finished", "status")
	m.ArchivedObjects = collector.RegisterCounter("archived_objects_total", "Run artifacts uploaded to the archive")

	return m
}

// Helpers

func RecordLibrary(m *PipelineMetrics, library string, records, trailing int, placeholders map[string]int) {
	m.RecordsLoaded.WithLabelValues(library).Add(float64(records))
	m.TrailingLines.WithLabelValues(library).Add(float64(trailing))
	for field, n := range placeholders {
		m.PlaceholderFields.WithLabelValues(library, field).Add(float64(n))
	}
}

func RecordLookup(m *PipelineMetrics, ok bool) {
	m.ResolverLookups.WithLabelValues(outcome(ok)).Inc()
}

func RecordScoring(m *PipelineMetrics, scored, rejected int) {
	m.ScoringCandidates.WithLabelValues("scored").Add(float64(scored))
	m.ScoringCandidates.WithLabelValues("rejected").Add(float64(rejected))
}

func RecordStage(m *PipelineMetrics, stage string, d time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func RecordRun(m *PipelineMetrics, ok bool, finished time.Time) {
	status := outcome(ok)
	m.RunsTotal.WithLabelValues(status).Inc()
	m.LastRunTimestamp.WithLabelValues(status).Set(float64(finished.Unix()))
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

//Personal.AI order the ending
