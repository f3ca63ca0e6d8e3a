package intersection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SDF-Library-Mining/internal/domain/library"
	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

func records(pairs ...string) []library.Record {
	out := make([]library.Record, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, library.Record{CAS: pairs[i], Name: pairs[i+1], Formula: "F-" + pairs[i+1]})
	}
	return out
}

func TestIntersect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		primary   []string
		reference []string
		want      []string
	}{
		{"single match", []string{"50-02-2", "nan", "69-72-7"}, []string{"69-72-7", "58-08-2"}, []string{"69-72-7"}},
		{"placeholder never matches", []string{"nan", "1-1-1"}, []string{"nan"}, []string{}},
		{"primary order kept", []string{"3-3-3", "1-1-1", "2-2-2"}, []string{"1-1-1", "2-2-2", "3-3-3"}, []string{"3-3-3", "1-1-1", "2-2-2"}},
		{"duplicates in primary kept", []string{"1-1-1", "1-1-1"}, []string{"1-1-1"}, []string{"1-1-1", "1-1-1"}},
		{"exact equality only", []string{"58-61-7 ", "58-61-7"}, []string{"58-61-7"}, []string{"58-61-7"}},
		{"empty reference", []string{"1-1-1"}, nil, []string{}},
		{"empty primary", nil, []string{"1-1-1"}, []string{}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Intersect(tc.primary, tc.reference))
		})
	}
}

func TestJoinNames_FirstMatchWins(t *testing.T) {
	t.Parallel()

	primary := records("1-1-1", "First", "2-2-2", "Other", "1-1-1", "Second")
	rows, err := JoinNames(primary, []string{"1-1-1", "2-2-2", "1-1-1"}, false)
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{CAS: "1-1-1", Name: "First"},
		{CAS: "2-2-2", Name: "Other"},
		{CAS: "1-1-1", Name: "First"},
	}, rows)
}

func TestJoinNames_WithFormula(t *testing.T) {
	t.Parallel()

	rows, err := JoinNames(records("1-1-1", "Adenosine"), []string{"1-1-1"}, true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "F-Adenosine", rows[0].Formula)
}

func TestJoinNames_MissingIDIsInvariantViolation(t *testing.T) {
	t.Parallel()

	rows, err := JoinNames(records("1-1-1", "A"), []string{"1-1-1", "9-9-9"}, false)
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeInvariantViolation))
	assert.Contains(t, err.Error(), `"9-9-9"`)
}

func TestRun_SpecExample(t *testing.T) {
	t.Parallel()

	primary := records("50-02-2", "Dexamethasone", "nan", "Unnamed", "69-72-7", "Salicylic acid")
	reference := records("69-72-7", "Salicylic acid", "58-08-2", "Caffeine")

	res, err := Run(primary, reference, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"69-72-7"}, res.IDs)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, Row{CAS: "69-72-7", Name: "Salicylic acid"}, res.Rows[0])
}

func TestRun_PlaceholderInBothLibraries(t *testing.T) {
	t.Parallel()

	res, err := Run(records("nan", "A"), records("nan", "B"), true)
	require.NoError(t, err)
	assert.Empty(t, res.IDs)
	assert.Empty(t, res.Rows)
	assert.True(t, res.WithFormula)
}

//Personal.AI order the ending
