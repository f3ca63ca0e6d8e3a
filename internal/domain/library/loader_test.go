package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

func TestLoad_RecordsInFileOrder(t *testing.T) {
	t.Parallel()

	text := sdfLibrary(
		sdfRecord("Adenosine", "C10H13N5O4", "58-61-7"),
		sdfRecord("Cladribine", "C10H12ClN5O3", "4291-63-8"),
		sdfRecord("Unknown", "", ""),
	)

	records, stats, err := Load(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Adenosine", records[0].Name)
	assert.Equal(t, "C10H13N5O4", records[0].Formula)
	assert.Equal(t, "58-61-7", records[0].CAS)
	assert.False(t, records[0].Coordinates.IsPlaceholder())
	assert.Equal(t, "M  END", records[0].Coordinates.Lines()[records[0].Coordinates.Len()-1])

	assert.Equal(t, "4291-63-8", records[1].CAS)

	assert.Equal(t, "Unknown", records[2].Name)
	assert.Equal(t, Placeholder, records[2].Formula)
	assert.Equal(t, Placeholder, records[2].CAS)

	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, 0, stats.TrailingLines)
	assert.Equal(t, 1, stats.MissingCAS)
	assert.Equal(t, 1, stats.MissingFormula)
	assert.Equal(t, 0, stats.MissingName)
	assert.Equal(t, 0, stats.MissingCoordinates)
}

func TestLoad_RecordsAreIndependent(t *testing.T) {
	t.Parallel()

	// The second record has no CAS; it must not inherit the first one's.
	text := sdfLibrary(
		sdfRecord("A", "F1", "1-1-1"),
		sdfRecord("B", "F2", ""),
	)
	records, _, err := Load(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Placeholder, records[1].CAS)
}

func TestLoad_TrailingContentDroppedAndLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	loader := NewLoader(DefaultMarkers(), logging.NewLoggerFromCore(core))

	text := sdfRecord("A", "F", "1-1-1") + "Orphan\n>  <CAS>\n9-9-9\n"
	records, stats, err := loader.Load(strings.NewReader(text))
	require.NoError(t, err)

	assert.Len(t, records, 1)
	assert.Equal(t, 3, stats.TrailingLines)
	warn := logs.FilterMessage("content after last record terminator ignored")
	require.Equal(t, 1, warn.Len())
	assert.Equal(t, int64(3), warn.All()[0].ContextMap()["lines"])
}

func TestLoad_EmptyInput(t *testing.T) {
	t.Parallel()

	records, stats, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, stats.Records)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lib.sdf")
	require.NoError(t, os.WriteFile(path, []byte(sdfRecord("Adenosine", "C10H13N5O4", "58-61-7")), 0o600))

	records, _, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "58-61-7", records[0].CAS)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, _, err := LoadFile(filepath.Join(t.TempDir(), "absent.sdf"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLibraryReadFailed))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLoader_DefaultsFilled(t *testing.T) {
	t.Parallel()

	l := NewLoader(Markers{NameTag: "<Title>"}, nil)
	m := l.Markers()
	assert.Equal(t, "<Title>", m.NameTag)
	assert.Equal(t, DefaultTerminator, m.Terminator)
	assert.Equal(t, DefaultCASTag, m.CASTag)
}

func TestCASNumbers(t *testing.T) {
	t.Parallel()

	records := []Record{{CAS: "50-02-2"}, {CAS: Placeholder}, {CAS: "69-72-7"}}
	assert.Equal(t, []string{"50-02-2", "nan", "69-72-7"}, CASNumbers(records))
}

//Personal.AI order the ending
