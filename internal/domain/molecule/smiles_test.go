package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

func mustParse(t *testing.T, smiles string) *Structure {
	t.Helper()
	s, err := NewSMILESParser().Parse(smiles)
	require.NoError(t, err, smiles)
	return s
}

func TestSMILESParser_Chains(t *testing.T) {
	t.Parallel()

	s := mustParse(t, "CCO")
	assert.Equal(t, 3, s.AtomCount())
	assert.Equal(t, 2, s.BondCount())
	assert.Equal(t, "O", s.Atoms[2].Symbol)
	assert.Equal(t, BondSingle, s.Bonds[1].Order)
	assert.Equal(t, -1, s.Atoms[0].HCount)

	s = mustParse(t, "C=O")
	assert.Equal(t, BondDouble, s.Bonds[0].Order)

	s = mustParse(t, "C#N")
	assert.Equal(t, BondTriple, s.Bonds[0].Order)

	s = mustParse(t, "ClCBr")
	assert.Equal(t, []string{"Cl", "C", "Br"}, []string{s.Atoms[0].Symbol, s.Atoms[1].Symbol, s.Atoms[2].Symbol})
}

func TestSMILESParser_Branches(t *testing.T) {
	t.Parallel()

	s := mustParse(t, "CC(=O)O")
	require.Equal(t, 4, s.AtomCount())
	assert.Equal(t, 3, s.Degree(1))
	assert.Equal(t, BondDouble, s.Bonds[s.BondBetween(1, 2)].Order)
	assert.Equal(t, BondSingle, s.Bonds[s.BondBetween(1, 3)].Order)
	assert.Equal(t, -1, s.BondBetween(2, 3))

	s = mustParse(t, "CC(C)(C)C")
	assert.Equal(t, 4, s.Degree(1))
}

func TestSMILESParser_RingClosures(t *testing.T) {
	t.Parallel()

	s := mustParse(t, "C1CC1")
	assert.Equal(t, 3, s.BondCount())
	assert.GreaterOrEqual(t, s.BondBetween(0, 2), 0)

	s = mustParse(t, "C%10CC%10")
	assert.Equal(t, 3, s.BondCount())

	s = mustParse(t, "C=1CC1")
	assert.Equal(t, BondDouble, s.Bonds[s.BondBetween(0, 2)].Order)

	s = mustParse(t, "C1CCCCC1")
	assert.Equal(t, 6, s.BondCount())
	assert.Equal(t, 0, s.AromaticAtomCount())
}

func TestSMILESParser_BracketAtoms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		smiles  string
		symbol  string
		isotope int
		hcount  int
		charge  int
		arom    bool
	}{
		{"[NH4+]", "N", 0, 4, 1, false},
		{"[13CH3-]", "C", 13, 3, -1, false},
		{"[Fe+2]", "Fe", 0, 0, 2, false},
		{"[O--]", "O", 0, 0, -2, false},
		{"[Cl-]", "Cl", 0, 0, -1, false},
		{"[Na+]", "Na", 0, 0, 1, false},
		{"[nH]", "N", 0, 1, 0, true},
		{"[se]", "Se", 0, 0, 0, true},
		{"[C@@H]", "C", 0, 1, 0, false},
		{"[C@TH1H]", "C", 0, 1, 0, false},
		{"[CH2:7]", "C", 0, 2, 0, false},
		{"[H]", "H", 0, 0, 0, false},
		{"[*]", "*", 0, 0, 0, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.smiles, func(t *testing.T) {
			t.Parallel()
			s := mustParse(t, tc.smiles)
			require.Equal(t, 1, s.AtomCount())
			a := s.Atoms[0]
			assert.Equal(t, tc.symbol, a.Symbol)
			assert.Equal(t, tc.isotope, a.Isotope)
			assert.Equal(t, tc.hcount, a.HCount)
			assert.Equal(t, tc.charge, a.Charge)
			assert.Equal(t, tc.arom, a.Aromatic)
		})
	}
}

func TestSMILESParser_Fragments(t *testing.T) {
	t.Parallel()

	s := mustParse(t, "[Na+].[Cl-]")
	assert.Equal(t, 2, s.AtomCount())
	assert.Equal(t, 0, s.BondCount())
	assert.Equal(t, 2, s.FragmentCount())

	s = mustParse(t, "CCO.O")
	assert.Equal(t, 2, s.FragmentCount())
}

func TestSMILESParser_StereoBondsAreSingle(t *testing.T) {
	t.Parallel()

	s := mustParse(t, `F/C=C/F`)
	require.Equal(t, 3, s.BondCount())
	assert.Equal(t, BondSingle, s.Bonds[0].Order)
	assert.Equal(t, BondDouble, s.Bonds[1].Order)
	assert.Equal(t, BondSingle, s.Bonds[2].Order)
}

func TestSMILESParser_WhitespaceAndTitle(t *testing.T) {
	t.Parallel()

	s := mustParse(t, "  CCO ethanol\n")
	assert.Equal(t, "CCO", s.SMILES)
	assert.Equal(t, 3, s.AtomCount())
}

func TestSMILESParser_Errors(t *testing.T) {
	t.Parallel()

	bad := []string{
		"",
		"   ",
		"nan",
		"NaN",
		"C1CC",
		"C(C",
		"C)C",
		"(C)",
		"C=",
		"C==C",
		"=C",
		"CX",
		"[Xx]",
		"[C",
		"[CH2",
		"C11",
		"C12CC12",
		"C=1CC#1",
		"C.=C",
		"C%1",
		"[C:]",
		"Not a SMILES string",
	}

	p := NewSMILESParser()
	for _, smiles := range bad {
		s, err := p.Parse(smiles)
		assert.Error(t, err, "%q should not parse", smiles)
		assert.Nil(t, s)
		assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeInvalidSMILES), smiles)
	}
}

func TestSMILESParser_NucleosidePanel(t *testing.T) {
	t.Parallel()

	for _, ref := range Nucleosides() {
		s := mustParse(t, ref.SMILES)
		assert.Equal(t, 1, s.FragmentCount(), ref.Code)
	}
}

//Personal.AI order the ending
