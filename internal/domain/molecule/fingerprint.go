package molecule

import (
	"hash/fnv"
	"math/bits"
	"strings"

	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// FingerprintType identifies the algorithm that produced a fingerprint.
type FingerprintType string

const (
	FingerprintTopological FingerprintType = "topological"
)

// String returns the string representation of the fingerprint type.
func (t FingerprintType) String() string { return string(t) }

// ─────────────────────────────────────────────────────────────────────────────
// Fingerprint
// ─────────────────────────────────────────────────────────────────────────────

// Fingerprint is a packed bit vector.  Bit i is stored in byte i/8 at bit
// position i%8.
type Fingerprint struct {
	Type      FingerprintType
	Bits      []byte
	Length    int
	NumOnBits int
}

// NewFingerprint returns an all-zero fingerprint of length bits.
func NewFingerprint(fpType FingerprintType, length int) *Fingerprint {
	return &Fingerprint{
		Type:   fpType,
		Bits:   make([]byte, (length+7)/8),
		Length: length,
	}
}

// GetBit returns true if the bit at index is set.
func (fp *Fingerprint) GetBit(index int) bool {
	if index < 0 || index >= fp.Length {
		return false
	}
	return fp.Bits[index/8]&(1<<uint(index%8)) != 0
}

// SetBit sets the bit at index.
func (fp *Fingerprint) SetBit(index int) {
	if index < 0 || index >= fp.Length {
		return
	}
	old := fp.Bits[index/8]
	fp.Bits[index/8] |= 1 << uint(index%8)
	if old != fp.Bits[index/8] {
		fp.NumOnBits++
	}
}

// OnBits returns the indices of all set bits in ascending order.
func (fp *Fingerprint) OnBits() []int {
	out := make([]int, 0, fp.NumOnBits)
	for i, b := range fp.Bits {
		for b != 0 {
			j := bits.TrailingZeros8(b)
			out = append(out, i*8+j)
			b &= b - 1
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Topological (path) fingerprint
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultFingerprintBits = 2048
	DefaultMinPath         = 1
	DefaultMaxPath         = 7
)

// TopologicalGenerator hashes every simple linear path of MinPath..MaxPath
// bonds into a Bits-long vector.  A path is labelled by its atom and bond
// invariants and canonicalised over both walking directions.
type TopologicalGenerator struct {
	Bits    int
	MinPath int
	MaxPath int
}

// NewTopologicalGenerator applies defaults to non-positive arguments.
func NewTopologicalGenerator(nBits, minPath, maxPath int) *TopologicalGenerator {
	if nBits <= 0 {
		nBits = DefaultFingerprintBits
	}
	if minPath < 1 {
		minPath = DefaultMinPath
	}
	if maxPath < minPath {
		maxPath = DefaultMaxPath
		if maxPath < minPath {
			maxPath = minPath
		}
	}
	return &TopologicalGenerator{Bits: nBits, MinPath: minPath, MaxPath: maxPath}
}

// Generate implements FingerprintGenerator.
func (g *TopologicalGenerator) Generate(s *Structure) (*Fingerprint, error) {
	if s == nil || len(s.Atoms) == 0 {
		return nil, errors.New(errors.ErrCodeFingerprintGenerationFailed, "structure has no atoms")
	}
	fp := NewFingerprint(FingerprintTopological, g.Bits)
	for _, key := range g.pathKeys(s) {
		fp.SetBit(int(hashPath(key) % uint64(g.Bits)))
	}
	return fp, nil
}

// pathKeys enumerates the canonical label of every distinct simple path.
func (g *TopologicalGenerator) pathKeys(s *Structure) []string {
	seen := map[string]struct{}{}
	var keys []string

	visited := make([]bool, len(s.Atoms))
	atoms := make([]int, 0, g.MaxPath+1)
	bonds := make([]int, 0, g.MaxPath)

	var walk func(cur int)
	walk = func(cur int) {
		if n := len(bonds); n >= g.MinPath {
			key := canonicalPath(s, atoms, bonds)
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				keys = append(keys, key)
			}
		}
		if len(bonds) == g.MaxPath {
			return
		}
		for _, bi := range s.adj[cur] {
			nb := s.Bonds[bi].Other(cur)
			if visited[nb] {
				continue
			}
			visited[nb] = true
			atoms = append(atoms, nb)
			bonds = append(bonds, bi)
			walk(nb)
			atoms = atoms[:len(atoms)-1]
			bonds = bonds[:len(bonds)-1]
			visited[nb] = false
		}
	}

	for start := range s.Atoms {
		visited[start] = true
		atoms = append(atoms[:0], start)
		bonds = bonds[:0]
		walk(start)
		visited[start] = false
	}
	return keys
}

// canonicalPath labels a path identically whichever end it is read from.
// Distinct atom sets with the same label sequence intentionally collide.
func canonicalPath(s *Structure, atoms, bonds []int) string {
	fwd := pathLabel(s, atoms, bonds, false)
	rev := pathLabel(s, atoms, bonds, true)
	if rev < fwd {
		return rev
	}
	return fwd
}

func pathLabel(s *Structure, atoms, bonds []int, reverse bool) string {
	var sb strings.Builder
	n := len(atoms)
	for k := 0; k < n; k++ {
		i := k
		if reverse {
			i = n - 1 - k
		}
		sb.WriteString(s.Atoms[atoms[i]].Label())
		if k < n-1 {
			bi := k
			if reverse {
				bi = n - 2 - k
			}
			sb.WriteString(s.Bonds[bonds[bi]].Order.Symbol())
		}
	}
	return sb.String()
}

func hashPath(key string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return h.Sum64()
}

//Personal.AI order the ending
