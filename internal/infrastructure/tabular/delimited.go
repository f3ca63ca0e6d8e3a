package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/turtacn/SDF-Library-Mining/internal/application/intersection"
	"github.com/turtacn/SDF-Library-Mining/internal/application/resolver"
	"github.com/turtacn/SDF-Library-Mining/internal/domain/library"
	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// Column names of the resolved and scored tables.
const (
	ColumnCAS    = "CAS"
	ColumnName   = "Name"
	ColumnSMILES = "SMILES"
)

// ResolvedHeader is the header row of the resolved table.
var ResolvedHeader = []string{ColumnCAS, ColumnName, ColumnSMILES}

// DelimiterFor picks the delimiter implied by a file extension: comma for
// .csv, tab otherwise.
func DelimiterFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ','
	}
	return '\t'
}

func newWriter(w io.Writer, delim rune) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = delim
	return cw
}

func newReader(r io.Reader, delim rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func flush(cw *csv.Writer) error {
	cw.Flush()
	if err := cw.Error(); err != nil {
		return writeErr(err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Intersection table
// ─────────────────────────────────────────────────────────────────────────────

// WriteIntersectionTable writes CAS, Name and optionally Formula joined by
// tabs, one row per line and without a header.  Values are written as they
// are: no quoting is applied.
func WriteIntersectionTable(w io.Writer, rows []intersection.Row, withFormula bool) error {
	lines := make([]string, len(rows))
	for i, r := range rows {
		cols := []string{r.CAS, r.Name}
		if withFormula {
			cols = append(cols, r.Formula)
		}
		lines[i] = strings.Join(cols, "\t")
	}
	return WriteLines(w, lines)
}

// ReadIntersectionTable reads a table produced by WriteIntersectionTable.
// Every non-blank line splits on tabs into two or three columns; quotes are
// ordinary characters.
func ReadIntersectionTable(r io.Reader) ([]intersection.Row, error) {
	lines, err := library.ScanLines(r)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeIOFailed, "failed to read intersection table")
	}
	rows := make([]intersection.Row, 0, len(lines))
	for i, text := range lines {
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec := strings.Split(text, "\t")
		if len(rec) < 2 || len(rec) > 3 {
			return nil, pkgerrors.New(pkgerrors.ErrCodeTableMalformed, "intersection row must have 2 or 3 columns").
				WithDetail(fmt.Sprintf("line=%d columns=%d", i+1, len(rec)))
		}
		row := intersection.Row{CAS: strings.TrimSpace(rec[0]), Name: rec[1]}
		if len(rec) == 3 {
			row.Formula = rec[2]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteIntersectionTableFile writes the intersection table to path, creating
// parent directories.
func WriteIntersectionTableFile(path string, rows []intersection.Row, withFormula bool) error {
	return withCreatedFile(path, func(w io.Writer) error {
		return WriteIntersectionTable(w, rows, withFormula)
	})
}

// ReadIntersectionTableFile reads the intersection table stored at path.
func ReadIntersectionTableFile(path string) ([]intersection.Row, error) {
	var rows []intersection.Row
	err := withOpenedFile(path, func(r io.Reader) error {
		var err error
		rows, err = ReadIntersectionTable(r)
		return err
	})
	return rows, err
}

// ─────────────────────────────────────────────────────────────────────────────
// Resolved table
// ─────────────────────────────────────────────────────────────────────────────

// WriteResolvedTable writes the CAS, Name, SMILES header followed by rows.
func WriteResolvedTable(w io.Writer, rows []resolver.ResolvedRow, delim rune) error {
	cw := newWriter(w, delim)
	if err := cw.Write(ResolvedHeader); err != nil {
		return writeErr(err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.CAS, r.Name, r.SMILES}); err != nil {
			return writeErr(err)
		}
	}
	return flush(cw)
}

// ReadResolvedTable reads a header-addressed table.  Columns are located by
// name, case-insensitively, so extra or reordered columns from manual
// revision are tolerated.
func ReadResolvedTable(r io.Reader, delim rune) ([]resolver.ResolvedRow, error) {
	records, err := newReader(r, delim).ReadAll()
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeTableMalformed, "unreadable resolved table").WithCause(err)
	}
	return resolvedFromRecords(records)
}

func resolvedFromRecords(records [][]string) ([]resolver.ResolvedRow, error) {
	if len(records) == 0 {
		return nil, pkgerrors.New(pkgerrors.ErrCodeTableMalformed, "table has no header")
	}
	idx, err := locateColumns(records[0], ResolvedHeader)
	if err != nil {
		return nil, err
	}

	rows := make([]resolver.ResolvedRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		rows = append(rows, resolver.ResolvedRow{
			CAS:    strings.TrimSpace(cell(rec, idx[0])),
			Name:   cell(rec, idx[1]),
			SMILES: strings.TrimSpace(cell(rec, idx[2])),
		})
	}
	return rows, nil
}

func locateColumns(header []string, want []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := pos[key]; !seen {
			pos[key] = i
		}
	}
	idx := make([]int, len(want))
	for i, w := range want {
		p, ok := pos[strings.ToLower(w)]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.ErrCodeTableColumnMissing, "required column missing").
				WithDetail("column=" + w)
		}
		idx[i] = p
	}
	return idx, nil
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteResolvedTableFile writes rows using the delimiter implied by path.
func WriteResolvedTableFile(path string, rows []resolver.ResolvedRow) error {
	return withCreatedFile(path, func(w io.Writer) error {
		return WriteResolvedTable(w, rows, DelimiterFor(path))
	})
}

// ReadResolvedTableFile reads a resolved table from a delimited file or an
// .xlsx workbook.  A zero delim selects the delimiter implied by path.
func ReadResolvedTableFile(path string, delim rune) ([]resolver.ResolvedRow, error) {
	if IsSpreadsheet(path) {
		return ReadResolvedXLSX(path)
	}
	if delim == 0 {
		delim = DelimiterFor(path)
	}
	var rows []resolver.ResolvedRow
	err := withOpenedFile(path, func(r io.Reader) error {
		var err error
		rows, err = ReadResolvedTable(r, delim)
		return err
	})
	return rows, err
}

//Personal.AI order the ending
