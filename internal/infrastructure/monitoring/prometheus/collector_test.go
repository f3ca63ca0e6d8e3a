package prometheus

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test", ConstLabels: map[string]string{"tool": "sdfmine"}}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func scrapeMetrics(t *testing.T, collector MetricsCollector) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics", "sdfmine.prom")
	require.NoError(t, collector.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewMetricsCollector_EmptyNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeConfigInvalid))
}

func TestNewMetricsCollector_PrivateRegistry(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "test"}, nil)
	require.NoError(t, err)
	assert.NotContains(t, scrapeMetrics(t, c), "go_goroutines")
}

func TestWriteTextfile_Unwritable(t *testing.T) {
	c := newTestCollector(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := c.WriteTextfile(filepath.Join(blocker, "sdfmine.prom"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeIOFailed))
}

func TestRegisterCounter_WithLabels(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("lookups_total", "Lookups", "result").WithLabelValues("success").Add(5)

	assert.Contains(t, scrapeMetrics(t, c), `test_lookups_total{result="success",tool="sdfmine"} 5`)
}

func TestRegisterCounter_DuplicateSharesVector(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("dup_counter", "help").WithLabelValues().Inc()
	c.RegisterCounter("dup_counter", "help").WithLabelValues().Inc()

	assert.Contains(t, scrapeMetrics(t, c), `test_dup_counter{tool="sdfmine"} 2`)
}

func TestRegisterGauge(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterGauge("intersection_size", "Size").WithLabelValues().Set(42)

	assert.Contains(t, scrapeMetrics(t, c), `test_intersection_size{tool="sdfmine"} 42`)
}

func TestRegisterHistogram_DefaultBuckets(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterHistogram("latency", "Latency", nil).WithLabelValues().Observe(0.1)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_latency_bucket{tool="sdfmine",le="0.25"} 1`)
	assert.Contains(t, out, `test_latency_count{tool="sdfmine"} 1`)
}

func TestRegister_TypeConflictReturnsNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("conflict", "help").WithLabelValues().Inc()

	gauge := c.RegisterGauge("conflict", "help")
	gauge.WithLabelValues().Set(10)

	assert.Contains(t, scrapeMetrics(t, c), "# TYPE test_conflict counter")
}

func TestRegisterHistogram_ExplicitBuckets(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterHistogram("stage_seconds", "Stage", []float64{1, 60}, "stage").WithLabelValues("resolve").Observe(30)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_stage_seconds_bucket{stage="resolve",tool="sdfmine",le="1"} 0`)
	assert.Contains(t, out, `test_stage_seconds_bucket{stage="resolve",tool="sdfmine",le="60"} 1`)
}

func TestConcurrentRegistration(t *testing.T) {
	c := newTestCollector(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RegisterCounter("concurrent_metric", "help", "id").WithLabelValues("1").Inc()
		}()
	}
	wg.Wait()

	assert.Contains(t, scrapeMetrics(t, c), `test_concurrent_metric{id="1",tool="sdfmine"} 50`)
}

//Personal.AI order the ending
