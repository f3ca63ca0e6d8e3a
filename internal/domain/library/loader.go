package library

import (
	"io"
	"os"

	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// LoadStats summarises one load.
type LoadStats struct {
	Lines              int
	Records            int
	TrailingLines      int
	MissingName        int
	MissingFormula     int
	MissingCAS         int
	MissingCoordinates int
}

// Loader composes the splitter and the field extractor.
type Loader struct {
	markers Markers
	logger  logging.Logger
}

// NewLoader creates a Loader.  Empty markers fall back to their defaults and a
// nil logger discards output.
func NewLoader(markers Markers, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{markers: markers.withDefaults(), logger: logger}
}

// Markers returns the effective markers.
func (l *Loader) Markers() Markers { return l.markers }

// Load reads a whole library from r and returns one Record per block, in file
// order.
func (l *Loader) Load(r io.Reader) ([]Record, LoadStats, error) {
	lines, err := ScanLines(r)
	if err != nil {
		return nil, LoadStats{}, errors.Wrap(err, errors.ErrCodeLibraryReadFailed, "failed to read library")
	}

	blocks, trailing := SplitRecordsBy(lines, l.markers.Terminator)
	stats := LoadStats{Lines: len(lines), Records: len(blocks), TrailingLines: trailing}

	records := make([]Record, 0, len(blocks))
	for _, block := range blocks {
		rec := ExtractRecord(block, l.markers)
		if !rec.HasName() {
			stats.MissingName++
		}
		if !rec.HasFormula() {
			stats.MissingFormula++
		}
		if !rec.HasCAS() {
			stats.MissingCAS++
		}
		if rec.Coordinates.IsPlaceholder() {
			stats.MissingCoordinates++
		}
		records = append(records, rec)
	}

	if trailing > 0 {
		l.logger.Warn("content after last record terminator ignored",
			logging.Int("lines", trailing),
			logging.String("terminator", l.markers.Terminator))
	}
	l.logger.Debug("library loaded",
		logging.Int("records", stats.Records),
		logging.Int("missing_cas", stats.MissingCAS),
		logging.Int("missing_name", stats.MissingName))

	return records, stats, nil
}

// LoadFile opens path, loads it and closes it.
func (l *Loader) LoadFile(path string) ([]Record, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, errors.New(errors.ErrCodeLibraryReadFailed, "failed to open library").
			WithDetail("path=" + path).
			WithCause(err)
	}
	defer f.Close()

	records, stats, err := l.Load(f)
	if err != nil {
		return nil, stats, err
	}
	l.logger.Info("library loaded",
		logging.String("path", path),
		logging.Int("records", stats.Records))
	return records, stats, nil
}

// Load reads a library from r with the default markers.
func Load(r io.Reader) ([]Record, LoadStats, error) {
	return NewLoader(DefaultMarkers(), nil).Load(r)
}

// LoadFile reads the library at path with the default markers.
func LoadFile(path string) ([]Record, LoadStats, error) {
	return NewLoader(DefaultMarkers(), nil).LoadFile(path)
}

// CASNumbers projects the ordered registry numbers of records.
func CASNumbers(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.CAS
	}
	return out
}

//Personal.AI order the ending
