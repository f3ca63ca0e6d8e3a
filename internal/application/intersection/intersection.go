// Package intersection finds the registry numbers two libraries have in
// common and joins them back to the primary library's records.
package intersection

import (
	"fmt"

	"github.com/turtacn/SDF-Library-Mining/internal/domain/library"
	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// Row is one line of the intersection table.
type Row struct {
	CAS     string
	Name    string
	Formula string
}

// Result bundles the ordered intersection list and its joined table.
type Result struct {
	IDs         []string
	Rows        []Row
	WithFormula bool
}

// Intersect returns the registry numbers of primary that also occur in
// reference, compared by exact string equality.  The placeholder never
// matches.  Primary order is preserved and duplicates in primary are kept.
func Intersect(primary, reference []string) []string {
	inRef := make(map[string]struct{}, len(reference))
	for _, id := range reference {
		inRef[id] = struct{}{}
	}
	out := make([]string, 0)
	for _, id := range primary {
		if id == library.Placeholder {
			continue
		}
		if _, ok := inRef[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// CASList projects the ordered registry numbers of records.
func CASList(records []library.Record) []string {
	return library.CASNumbers(records)
}

// JoinNames maps every id to the first primary record carrying that registry
// number.  Formula is filled only when withFormula is set.  An id that no
// record carries is an invariant violation: the error names the id and no
// rows are returned.
func JoinNames(primary []library.Record, ids []string, withFormula bool) ([]Row, error) {
	first := make(map[string]int, len(primary))
	for i, r := range primary {
		if _, ok := first[r.CAS]; !ok {
			first[r.CAS] = i
		}
	}

	rows := make([]Row, 0, len(ids))
	for pos, id := range ids {
		idx, ok := first[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.ErrCodeInvariantViolation, "intersection id not present in primary library").
				WithDetail(fmt.Sprintf("id=%q position=%d", id, pos))
		}
		rec := primary[idx]
		row := Row{CAS: rec.CAS, Name: rec.Name}
		if withFormula {
			row.Formula = rec.Formula
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Run computes the intersection of primary against reference and joins it.
func Run(primary, reference []library.Record, withFormula bool) (*Result, error) {
	ids := Intersect(CASList(primary), CASList(reference))
	rows, err := JoinNames(primary, ids, withFormula)
	if err != nil {
		return nil, err
	}
	return &Result{IDs: ids, Rows: rows, WithFormula: withFormula}, nil
}

//Personal.AI order the ending
