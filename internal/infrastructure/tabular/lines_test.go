package tabular

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SDF-Library-Mining/internal/domain/library"
	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

func TestWriteLines_ReadLines_RoundTrip(t *testing.T) {
	ids := []string{"50-02-2", "nan", "69-72-7", "69-72-7"}

	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, ids))
	assert.Equal(t, "50-02-2\nnan\n69-72-7\n69-72-7\n", buf.String())

	got, err := ReadLines(&buf)
	require.NoError(t, err)
	assert.Equal(t, ids, got)
}

func TestReadLines_TrimsAndKeepsBlank(t *testing.T) {
	got, err := ReadLines(strings.NewReader("  58-61-7 \r\n\n\t118-00-3\n   \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"58-61-7", "", "118-00-3", ""}, got)
}

func TestLines_LibraryWithEmptyCASRoundTrips(t *testing.T) {
	sdf := "Formaldehyde\n<CAS>\n50-02-2\n$$$$\n" +
		"Unregistered\n<CAS>\n\n$$$$\n" +
		"Adenosine\n<CAS>\n58-61-7\n$$$$\n"
	records, _, err := library.NewLoader(library.DefaultMarkers(), nil).Load(strings.NewReader(sdf))
	require.NoError(t, err)
	ids := library.CASNumbers(records)
	require.Equal(t, []string{"50-02-2", "", "58-61-7"}, ids)

	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, ids))
	got, err := ReadLines(&buf)
	require.NoError(t, err)
	assert.Equal(t, ids, got)
}

func TestReadLines_LongLine(t *testing.T) {
	long := strings.Repeat("7", 17*1024*1024)
	got, err := ReadLines(strings.NewReader(long + "\n50-02-2\n"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0], len(long))
}

func TestReadLines_Empty(t *testing.T) {
	got, err := ReadLines(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLinesFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cas.txt")
	require.NoError(t, WriteLinesFile(path, []string{"a", "b"}))

	got, err := ReadLinesFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestReadLinesFile_Missing(t *testing.T) {
	_, err := ReadLinesFile(filepath.Join(t.TempDir(), "absent.txt"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeIOFailed))
}

//Personal.AI order the ending
