package tabular

import (
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/turtacn/SDF-Library-Mining/internal/application/resolver"
	"github.com/turtacn/SDF-Library-Mining/internal/application/scoring"
	"github.com/turtacn/SDF-Library-Mining/internal/domain/library"
	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// SheetName is the worksheet that holds the scored table.
const SheetName = "similarity"

// WriteScoreXLSX writes the final table as a single-sheet workbook.  Scores
// are stored as numbers with a four-decimal format; missing scores are the
// placeholder text.
func WriteScoreXLSX(path string, codes []string, rows []scoring.ScoredRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return xlsxErr(path, err)
	}

	header := ScoreHeader(codes)
	if err := setRow(f, 1, toCells(header)); err != nil {
		return xlsxErr(path, err)
	}

	for i, r := range rows {
		cells := make([]interface{}, 0, len(header))
		cells = append(cells, r.CAS, r.Name, r.SMILES)
		for j := range codes {
			if j < len(r.Scores) && !math.IsNaN(r.Scores[j]) {
				cells = append(cells, r.Scores[j])
			} else {
				cells = append(cells, library.Placeholder)
			}
		}
		if err := setRow(f, i+2, cells); err != nil {
			return xlsxErr(path, err)
		}
	}

	if len(codes) > 0 && len(rows) > 0 {
		style, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr("0.0000")})
		if err != nil {
			return xlsxErr(path, err)
		}
		first, _ := excelize.CoordinatesToCellName(len(ResolvedHeader)+1, 2)
		last, _ := excelize.CoordinatesToCellName(len(header), len(rows)+1)
		if err := f.SetCellStyle(SheetName, first, last, style); err != nil {
			return xlsxErr(path, err)
		}
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return xlsxErr(path, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return xlsxErr(path, err)
	}
	return nil
}

// ReadResolvedXLSX reads a header-addressed resolved table from the first
// sheet of a workbook.
func ReadResolvedXLSX(path string) ([]resolver.ResolvedRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeIOFailed, "failed to open workbook").
			WithDetail("path=" + path).WithCause(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, pkgerrors.New(pkgerrors.ErrCodeTableMalformed, "workbook has no sheets").
			WithDetail("path=" + path)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeTableMalformed, "unreadable worksheet").
			WithDetail("path=" + path).WithCause(err)
	}
	return resolvedFromRecords(records)
}

func setRow(f *excelize.File, row int, cells []interface{}) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(SheetName, axis, &cells)
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func ptr(s string) *string { return &s }

func xlsxErr(path string, err error) error {
	return pkgerrors.New(pkgerrors.ErrCodeTableWriteFailed, "failed to write workbook").
		WithDetail("path=" + path).WithCause(err)
}

//Personal.AI order the ending
