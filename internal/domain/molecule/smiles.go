package molecule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Element tables
// ─────────────────────────────────────────────────────────────────────────────

var elements = map[string]bool{}

func init() {
	for _, sym := range strings.Fields(`H He Li Be B C N O F Ne Na Mg Al Si P S Cl Ar
		K Ca Sc Ti V Cr Mn Fe Co Ni Cu Zn Ga Ge As Se Br Kr Rb Sr Y Zr Nb Mo Tc Ru
		Rh Pd Ag Cd In Sn Sb Te I Xe Cs Ba La Ce Pr Nd Pm Sm Eu Gd Tb Dy Ho Er Tm Yb
		Lu Hf Ta W Re Os Ir Pt Au Hg Tl Pb Bi Po At Rn Fr Ra Ac Th Pa U Np Pu Am Cm
		Bk Cf Es Fm Md No Lr Rf Db Sg Bh Hs Mt Ds Rg Cn Nh Fl Mc Lv Ts Og`) {
		elements[sym] = true
	}
}

// aromaticSymbols are the lowercase symbols accepted inside brackets.
var aromaticSymbols = map[string]string{
	"b": "B", "c": "C", "n": "N", "o": "O", "p": "P", "s": "S",
	"se": "Se", "as": "As", "te": "Te",
}

// ─────────────────────────────────────────────────────────────────────────────
// SMILESParser
// ─────────────────────────────────────────────────────────────────────────────

// SMILESParser converts SMILES strings into molecular graphs.
//
// Supported: the organic subset (B C N O P S F Cl Br I), aromatic b c n o p s,
// bracket atoms with isotope, chirality, hydrogen count, charge and atom
// class, the bond symbols - = # $ : / \, branches, ring closures including
// the %nn form, and dot-separated fragments.  Stereo marks are accepted and
// ignored.  Aromaticity is perceived after parsing (see perceiveAromaticity).
type SMILESParser struct{}

// NewSMILESParser returns a parser.
func NewSMILESParser() *SMILESParser { return &SMILESParser{} }

// Parse implements StructureParser.  Leading and trailing whitespace is
// removed and anything after the first inner whitespace is treated as a
// title and ignored.
func (p *SMILESParser) Parse(smiles string) (*Structure, error) {
	src := strings.TrimSpace(smiles)
	if i := strings.IndexAny(src, " \t\r\n"); i >= 0 {
		src = src[:i]
	}
	if src == "" {
		return nil, errors.New(errors.ErrCodeMoleculeInvalidSMILES, "empty SMILES")
	}
	if strings.EqualFold(src, "nan") {
		return nil, errors.New(errors.ErrCodeMoleculeInvalidSMILES, "missing SMILES")
	}

	ps := &parseState{src: src, st: newStructure(src), prev: -1, rings: map[int]ringOpening{}}
	if err := ps.run(); err != nil {
		return nil, errors.New(errors.ErrCodeMoleculeInvalidSMILES, "invalid SMILES").
			WithDetail(fmt.Sprintf("smiles=%q", src)).
			WithCause(err)
	}
	perceiveAromaticity(ps.st)
	return ps.st, nil
}

// ringOpening records the first half of a ring-closure pair.
type ringOpening struct {
	atom  int
	order BondOrder // 0 when unspecified
}

type parseState struct {
	src string
	pos int
	st  *Structure

	prev        int
	pending     BondOrder // 0 when unspecified
	pendingSeen bool
	branches    []int
	rings       map[int]ringOpening
}

func (ps *parseState) run() error {
	for ps.pos < len(ps.src) {
		c := ps.src[ps.pos]
		switch {
		case c == '(':
			if ps.prev < 0 {
				return ps.errorf("branch opened without a preceding atom")
			}
			if ps.pendingSeen {
				return ps.errorf("bond symbol before branch")
			}
			ps.branches = append(ps.branches, ps.prev)
			ps.pos++

		case c == ')':
			if len(ps.branches) == 0 {
				return ps.errorf("unbalanced ')'")
			}
			if ps.pendingSeen {
				return ps.errorf("bond symbol without a following atom")
			}
			ps.prev = ps.branches[len(ps.branches)-1]
			ps.branches = ps.branches[:len(ps.branches)-1]
			ps.pos++

		case strings.IndexByte(`-=#$:/\`, c) >= 0:
			if ps.prev < 0 {
				return ps.errorf("bond symbol %q without a preceding atom", c)
			}
			if ps.pendingSeen {
				return ps.errorf("consecutive bond symbols")
			}
			ps.pendingSeen = true
			ps.pending = bondFromSymbol(c)
			ps.pos++

		case c == '.':
			if ps.pendingSeen {
				return ps.errorf("bond symbol before '.'")
			}
			ps.prev = -1
			ps.pos++

		case c == '%' || (c >= '0' && c <= '9'):
			if err := ps.ringClosure(); err != nil {
				return err
			}

		case c == '[':
			a, err := ps.bracketAtom()
			if err != nil {
				return err
			}
			if err := ps.attach(a); err != nil {
				return err
			}

		default:
			a, err := ps.organicAtom()
			if err != nil {
				return err
			}
			if err := ps.attach(a); err != nil {
				return err
			}
		}
	}

	if ps.pendingSeen {
		return ps.errorf("bond symbol at end of input")
	}
	if len(ps.branches) > 0 {
		return fmt.Errorf("unbalanced '(': %d branch(es) left open", len(ps.branches))
	}
	if len(ps.rings) > 0 {
		open := make([]int, 0, len(ps.rings))
		for n := range ps.rings {
			open = append(open, n)
		}
		sort.Ints(open)
		return fmt.Errorf("unclosed ring bond(s): %v", open)
	}
	if len(ps.st.Atoms) == 0 {
		return fmt.Errorf("no atoms")
	}
	return nil
}

func (ps *parseState) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("position %d: %s", ps.pos, fmt.Sprintf(format, args...))
}

func bondFromSymbol(c byte) BondOrder {
	switch c {
	case '=':
		return BondDouble
	case '#':
		return BondTriple
	case '$':
		return BondQuadruple
	case ':':
		return BondAromatic
	case '-':
		return BondSingle
	default:
		// '/' and '\' are single bonds carrying stereo only.
		return 0
	}
}

func (ps *parseState) defaultOrder(a, b int) BondOrder {
	if ps.st.Atoms[a].Aromatic && ps.st.Atoms[b].Aromatic {
		return BondAromatic
	}
	return BondSingle
}

// attach adds a to the graph and bonds it to the previous atom.
func (ps *parseState) attach(a Atom) error {
	idx := ps.st.addAtom(a)
	if ps.prev >= 0 {
		order := ps.pending
		if order == 0 {
			order = ps.defaultOrder(ps.prev, idx)
		}
		if err := ps.st.addBond(ps.prev, idx, order); err != nil {
			return ps.errorf("%v", err)
		}
	}
	ps.prev = idx
	ps.pending, ps.pendingSeen = 0, false
	return nil
}

func (ps *parseState) ringClosure() error {
	if ps.prev < 0 {
		return ps.errorf("ring bond without a preceding atom")
	}
	n := 0
	if ps.src[ps.pos] == '%' {
		if ps.pos+2 >= len(ps.src) || !isDigit(ps.src[ps.pos+1]) || !isDigit(ps.src[ps.pos+2]) {
			return ps.errorf("'%%' must be followed by two digits")
		}
		n = int(ps.src[ps.pos+1]-'0')*10 + int(ps.src[ps.pos+2]-'0')
		ps.pos += 3
	} else {
		n = int(ps.src[ps.pos] - '0')
		ps.pos++
	}

	open, ok := ps.rings[n]
	if !ok {
		ps.rings[n] = ringOpening{atom: ps.prev, order: ps.pending}
		ps.pending, ps.pendingSeen = 0, false
		return nil
	}
	delete(ps.rings, n)

	order := open.order
	if ps.pending != 0 {
		if order != 0 && order != ps.pending {
			return ps.errorf("conflicting bond orders on ring bond %d", n)
		}
		order = ps.pending
	}
	if order == 0 {
		order = ps.defaultOrder(open.atom, ps.prev)
	}
	if err := ps.st.addBond(open.atom, ps.prev, order); err != nil {
		return ps.errorf("ring bond %d: %v", n, err)
	}
	ps.pending, ps.pendingSeen = 0, false
	return nil
}

func (ps *parseState) organicAtom() (Atom, error) {
	rest := ps.src[ps.pos:]
	switch {
	case strings.HasPrefix(rest, "Cl"):
		ps.pos += 2
		return Atom{Symbol: "Cl", HCount: -1}, nil
	case strings.HasPrefix(rest, "Br"):
		ps.pos += 2
		return Atom{Symbol: "Br", HCount: -1}, nil
	}
	c := rest[0]
	ps.pos++
	switch c {
	case 'B', 'C', 'N', 'O', 'P', 'S', 'F', 'I':
		return Atom{Symbol: string(c), HCount: -1}, nil
	case 'b', 'c', 'n', 'o', 'p', 's':
		return Atom{Symbol: strings.ToUpper(string(c)), Aromatic: true, HCount: -1}, nil
	case '*':
		return Atom{Symbol: "*", HCount: -1}, nil
	}
	ps.pos--
	return Atom{}, ps.errorf("unexpected character %q", c)
}

func (ps *parseState) bracketAtom() (Atom, error) {
	start := ps.pos
	ps.pos++ // '['
	a := Atom{}

	a.Isotope = ps.readNumber(0)

	sym, aromatic, err := ps.bracketSymbol()
	if err != nil {
		return Atom{}, err
	}
	a.Symbol, a.Aromatic = sym, aromatic

	// Chirality: @, @@, @TH1, @AL2, @SP3, @TB10, @OH25.
	if ps.peek() == '@' {
		ps.pos++
		if ps.peek() == '@' {
			ps.pos++
		} else if ps.pos+1 < len(ps.src) {
			switch ps.src[ps.pos : ps.pos+2] {
			case "TH", "AL", "SP", "TB", "OH":
				ps.pos += 2
				ps.readNumber(0)
			}
		}
	}

	if ps.peek() == 'H' {
		ps.pos++
		a.HCount = ps.readNumber(1)
	}

	switch ps.peek() {
	case '+', '-':
		sign := ps.src[ps.pos]
		ps.pos++
		mag := 1
		if isDigit(ps.peek()) {
			mag = ps.readNumber(1)
		} else {
			for ps.peek() == sign {
				mag++
				ps.pos++
			}
		}
		if sign == '-' {
			mag = -mag
		}
		a.Charge = mag
	}

	if ps.peek() == ':' {
		ps.pos++
		if !isDigit(ps.peek()) {
			return Atom{}, ps.errorf("atom class requires digits")
		}
		ps.readNumber(0)
	}

	if ps.peek() != ']' {
		ps.pos = start
		return Atom{}, ps.errorf("unterminated bracket atom")
	}
	ps.pos++
	return a, nil
}

func (ps *parseState) bracketSymbol() (string, bool, error) {
	c := ps.peek()
	switch {
	case c == '*':
		ps.pos++
		return "*", false, nil
	case c >= 'A' && c <= 'Z':
		if ps.pos+1 < len(ps.src) {
			two := ps.src[ps.pos : ps.pos+2]
			if elements[two] {
				ps.pos += 2
				return two, false, nil
			}
		}
		one := string(c)
		if !elements[one] {
			return "", false, ps.errorf("unknown element %q", one)
		}
		ps.pos++
		return one, false, nil
	case c >= 'a' && c <= 'z':
		if ps.pos+1 < len(ps.src) {
			if sym, ok := aromaticSymbols[ps.src[ps.pos:ps.pos+2]]; ok {
				ps.pos += 2
				return sym, true, nil
			}
		}
		if sym, ok := aromaticSymbols[string(c)]; ok {
			ps.pos++
			return sym, true, nil
		}
		return "", false, ps.errorf("unknown aromatic symbol %q", c)
	}
	return "", false, ps.errorf("bracket atom without element symbol")
}

func (ps *parseState) peek() byte {
	if ps.pos >= len(ps.src) {
		return 0
	}
	return ps.src[ps.pos]
}

// readNumber consumes a run of digits; def is returned when there is none.
func (ps *parseState) readNumber(def int) int {
	if !isDigit(ps.peek()) {
		return def
	}
	n := 0
	for isDigit(ps.peek()) {
		n = n*10 + int(ps.src[ps.pos]-'0')
		ps.pos++
	}
	return n
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

//Personal.AI order the ending
