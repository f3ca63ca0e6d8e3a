package tabular

import (
	"bytes"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/turtacn/SDF-Library-Mining/internal/application/resolver"
	"github.com/turtacn/SDF-Library-Mining/internal/application/scoring"
)

func scoredFixture() ([]string, []scoring.ScoredRow) {
	codes := []string{"Ado", "Guo"}
	rows := []scoring.ScoredRow{
		{CAS: "58-61-7", Name: "Adenosine", SMILES: "CCO", Scores: scoring.Vector{1, 0.123456}},
		{CAS: "0-00-0", Name: "Unknown", SMILES: "nan", Scores: scoring.PlaceholderVector(2)},
	}
	return codes, rows
}

func TestWriteScoreTable(t *testing.T) {
	codes, rows := scoredFixture()

	var buf bytes.Buffer
	require.NoError(t, WriteScoreTable(&buf, codes, rows, ','))
	assert.Equal(t,
		"CAS,Name,SMILES,Ado,Guo\n"+
			"58-61-7,Adenosine,CCO,1.0000,0.1235\n"+
			"0-00-0,Unknown,nan,nan,nan\n",
		buf.String())
}

func TestScoreRecord_ShortVector(t *testing.T) {
	rec := ScoreRecord(scoring.ScoredRow{CAS: "1", Name: "n", SMILES: "C", Scores: scoring.Vector{0.5}}, 3)
	assert.Equal(t, []string{"1", "n", "C", "0.5000", "nan", "nan"}, rec)
}

func TestWriteScoreTableFile_Delimited(t *testing.T) {
	codes, rows := scoredFixture()
	path := filepath.Join(t.TempDir(), "similarity.tsv")
	require.NoError(t, WriteScoreTableFile(path, codes, rows, 0))

	got, err := ReadResolvedTableFile(path, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Adenosine", got[0].Name)
}

func TestWriteScoreXLSX(t *testing.T) {
	codes, rows := scoredFixture()
	path := filepath.Join(t.TempDir(), "out", "similarity.xlsx")
	require.NoError(t, WriteScoreTableFile(path, codes, rows, 0))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	header, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, []string{"CAS", "Name", "SMILES", "Ado", "Guo"}, header[0])

	raw, err := f.GetCellValue(SheetName, "E2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	score, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.123456, score, 1e-9)

	missing, err := f.GetCellValue(SheetName, "D3")
	require.NoError(t, err)
	assert.Equal(t, "nan", missing)

	back, err := ReadResolvedTableFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []resolver.ResolvedRow{
		{CAS: "58-61-7", Name: "Adenosine", SMILES: "CCO"},
		{CAS: "0-00-0", Name: "Unknown", SMILES: "nan"},
	}, back)
}

//Personal.AI order the ending
