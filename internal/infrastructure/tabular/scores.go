package tabular

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/turtacn/SDF-Library-Mining/internal/application/scoring"
)

// ScoreHeader returns CAS, Name, SMILES followed by the reference codes.
func ScoreHeader(codes []string) []string {
	header := make([]string, 0, len(ResolvedHeader)+len(codes))
	header = append(header, ResolvedHeader...)
	return append(header, codes...)
}

// ScoreRecord renders one scored row with four-decimal scores.
func ScoreRecord(r scoring.ScoredRow, width int) []string {
	rec := make([]string, 0, 3+width)
	rec = append(rec, r.CAS, r.Name, r.SMILES)
	for i := 0; i < width; i++ {
		rec = append(rec, r.Scores.Format(i))
	}
	return rec
}

// WriteScoreTable writes the final table in delimited form.
func WriteScoreTable(w io.Writer, codes []string, rows []scoring.ScoredRow, delim rune) error {
	cw := newWriter(w, delim)
	if err := cw.Write(ScoreHeader(codes)); err != nil {
		return writeErr(err)
	}
	for _, r := range rows {
		if err := cw.Write(ScoreRecord(r, len(codes))); err != nil {
			return writeErr(err)
		}
	}
	return flush(cw)
}

// IsSpreadsheet reports whether path names an .xlsx workbook.
func IsSpreadsheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// WriteScoreTableFile writes the final table to path, as a workbook for
// .xlsx paths and delimited text otherwise.  A zero delim selects the
// delimiter implied by path.
func WriteScoreTableFile(path string, codes []string, rows []scoring.ScoredRow, delim rune) error {
	if IsSpreadsheet(path) {
		return WriteScoreXLSX(path, codes, rows)
	}
	if delim == 0 {
		delim = DelimiterFor(path)
	}
	return withCreatedFile(path, func(w io.Writer) error {
		return WriteScoreTable(w, codes, rows, delim)
	})
}

//Personal.AI order the ending
