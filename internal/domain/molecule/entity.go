// Package molecule provides the chemical structure model used for similarity
// scoring: a molecular graph parsed from SMILES, a path-based topological
// fingerprint computed over that graph, and fingerprint similarity metrics.
package molecule

import (
	"fmt"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Bond order
// ─────────────────────────────────────────────────────────────────────────────

// BondOrder classifies a bond between two atoms.
type BondOrder int

const (
	BondSingle    BondOrder = 1
	BondDouble    BondOrder = 2
	BondTriple    BondOrder = 3
	BondQuadruple BondOrder = 4
	BondAromatic  BondOrder = 5
)

// Symbol returns the SMILES bond symbol.
func (o BondOrder) Symbol() string {
	switch o {
	case BondDouble:
		return "="
	case BondTriple:
		return "#"
	case BondQuadruple:
		return "$"
	case BondAromatic:
		return ":"
	default:
		return "-"
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Atom and Bond
// ─────────────────────────────────────────────────────────────────────────────

// Atom is one vertex of the molecular graph.
type Atom struct {
	// Symbol is the element symbol in standard capitalisation ("C", "Cl",
	// "Se") or "*" for a wildcard.
	Symbol string

	// Aromatic is set for atoms written in lowercase and for atoms of rings
	// found aromatic during perception.
	Aromatic bool

	Isotope int
	Charge  int

	// HCount is the explicit hydrogen count of a bracket atom, or -1 when
	// hydrogens are implicit.
	HCount int
}

// Label returns the atom invariant used for fingerprint paths.
func (a Atom) Label() string {
	if a.Aromatic {
		return strings.ToLower(a.Symbol)
	}
	return a.Symbol
}

// Bond is one edge of the molecular graph.
type Bond struct {
	Begin int
	End   int
	Order BondOrder
}

// Other returns the atom index at the opposite end of the bond from atom.
func (b Bond) Other(atom int) int {
	if b.Begin == atom {
		return b.End
	}
	return b.Begin
}

// ─────────────────────────────────────────────────────────────────────────────
// Structure
// ─────────────────────────────────────────────────────────────────────────────

// Structure is a parsed molecular graph.  Hydrogens are implicit unless
// written as bracket atoms.
type Structure struct {
	SMILES string
	Atoms  []Atom
	Bonds  []Bond

	// adj[i] lists the indices into Bonds of every bond incident to atom i.
	adj [][]int
}

func newStructure(smiles string) *Structure {
	return &Structure{SMILES: smiles}
}

func (s *Structure) addAtom(a Atom) int {
	s.Atoms = append(s.Atoms, a)
	s.adj = append(s.adj, nil)
	return len(s.Atoms) - 1
}

func (s *Structure) addBond(begin, end int, order BondOrder) error {
	if begin == end {
		return fmt.Errorf("atom %d bonded to itself", begin)
	}
	if s.BondBetween(begin, end) >= 0 {
		return fmt.Errorf("duplicate bond between atoms %d and %d", begin, end)
	}
	s.Bonds = append(s.Bonds, Bond{Begin: begin, End: end, Order: order})
	idx := len(s.Bonds) - 1
	s.adj[begin] = append(s.adj[begin], idx)
	s.adj[end] = append(s.adj[end], idx)
	return nil
}

// AtomCount returns the number of explicit atoms.
func (s *Structure) AtomCount() int { return len(s.Atoms) }

// BondCount returns the number of bonds.
func (s *Structure) BondCount() int { return len(s.Bonds) }

// Degree returns the number of explicit neighbours of atom i.
func (s *Structure) Degree(i int) int { return len(s.adj[i]) }

// IncidentBonds returns the bond indices incident to atom i.
func (s *Structure) IncidentBonds(i int) []int {
	out := make([]int, len(s.adj[i]))
	copy(out, s.adj[i])
	return out
}

// BondBetween returns the index of the bond joining a and b, or -1.
func (s *Structure) BondBetween(a, b int) int {
	for _, bi := range s.adj[a] {
		if s.Bonds[bi].Other(a) == b {
			return bi
		}
	}
	return -1
}

// FragmentCount returns the number of connected components.
func (s *Structure) FragmentCount() int {
	seen := make([]bool, len(s.Atoms))
	n := 0
	for i := range s.Atoms {
		if seen[i] {
			continue
		}
		n++
		stack := []int{i}
		seen[i] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, bi := range s.adj[cur] {
				nb := s.Bonds[bi].Other(cur)
				if !seen[nb] {
					seen[nb] = true
					stack = append(stack, nb)
				}
			}
		}
	}
	return n
}

// AromaticAtomCount returns the number of atoms flagged aromatic.
func (s *Structure) AromaticAtomCount() int {
	n := 0
	for _, a := range s.Atoms {
		if a.Aromatic {
			n++
		}
	}
	return n
}

//Personal.AI order the ending
