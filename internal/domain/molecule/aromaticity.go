package molecule

import (
	"sort"
	"strconv"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Ring perception
// ─────────────────────────────────────────────────────────────────────────────

// ring is a cycle of atom indices in traversal order.
type ring []int

// ringBonds reports, per bond, whether the bond lies on a cycle.
func ringBonds(s *Structure) []bool {
	out := make([]bool, len(s.Bonds))
	for bi, b := range s.Bonds {
		out[bi] = shortestPath(s, b.Begin, b.End, bi, nil) != nil
	}
	return out
}

// shortestPath returns the atoms of a shortest path from src to dst that does
// not use bond skip, or nil.  When allowed is non-nil only bonds marked true
// are traversed.
func shortestPath(s *Structure, src, dst, skip int, allowed []bool) []int {
	prev := make([]int, len(s.Atoms))
	for i := range prev {
		prev[i] = -2
	}
	prev[src] = -1
	queue := []int{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == dst {
			break
		}
		for _, bi := range s.adj[cur] {
			if bi == skip || (allowed != nil && !allowed[bi]) {
				continue
			}
			nb := s.Bonds[bi].Other(cur)
			if prev[nb] != -2 {
				continue
			}
			prev[nb] = cur
			queue = append(queue, nb)
		}
	}
	if prev[dst] == -2 {
		return nil
	}
	var path []int
	for at := dst; at != -1; at = prev[at] {
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// smallRings returns, for every ring bond, the smallest cycle through it,
// without duplicates.
func smallRings(s *Structure, inRing []bool) []ring {
	seen := map[string]bool{}
	var rings []ring
	for bi, b := range s.Bonds {
		if !inRing[bi] {
			continue
		}
		path := shortestPath(s, b.Begin, b.End, bi, inRing)
		if path == nil {
			continue
		}
		key := ringKey(path)
		if seen[key] {
			continue
		}
		seen[key] = true
		rings = append(rings, ring(path))
	}
	return rings
}

func ringKey(atoms []int) string {
	cp := append([]int(nil), atoms...)
	sort.Ints(cp)
	parts := make([]string, len(cp))
	for i, a := range cp {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, ",")
}

// ─────────────────────────────────────────────────────────────────────────────
// Aromaticity
// ─────────────────────────────────────────────────────────────────────────────

// perceiveAromaticity marks five- and six-membered rings satisfying the
// 4n+2 pi-electron rule as aromatic, so that Kekulé and aromatic spellings of
// the same molecule produce the same graph labels.  Every ring is judged on
// the bond orders as written; marks are applied afterwards.
func perceiveAromaticity(s *Structure) {
	if len(s.Bonds) == 0 {
		return
	}
	inRing := ringBonds(s)
	var aromatic []ring
	for _, r := range smallRings(s, inRing) {
		if len(r) != 5 && len(r) != 6 {
			continue
		}
		if ringIsAromatic(s, r, inRing) {
			aromatic = append(aromatic, r)
		}
	}
	for _, r := range aromatic {
		for i, a := range r {
			s.Atoms[a].Aromatic = true
			next := r[(i+1)%len(r)]
			if bi := s.BondBetween(a, next); bi >= 0 {
				s.Bonds[bi].Order = BondAromatic
			}
		}
	}
}

func ringIsAromatic(s *Structure, r ring, inRing []bool) bool {
	members := make(map[int]bool, len(r))
	allFlagged := true
	for _, a := range r {
		members[a] = true
		if !s.Atoms[a].Aromatic {
			allFlagged = false
		}
	}
	if allFlagged {
		return true
	}
	total := 0
	for _, a := range r {
		e := piElectrons(s, a, inRing)
		if e < 0 {
			return false
		}
		total += e
	}
	return total%4 == 2
}

// piElectrons returns the electrons atom i contributes to a ring it belongs
// to, or -1 when the atom rules the ring out.
func piElectrons(s *Structure, i int, inRing []bool) int {
	a := s.Atoms[i]
	if a.Aromatic {
		switch a.Symbol {
		case "N", "P":
			if a.HCount > 0 || s.Degree(i) == 3 {
				return 2
			}
			return 1
		case "O", "S", "Se", "Te":
			return 2
		case "C", "B":
			if a.Charge < 0 {
				return 2
			}
			return 1
		}
		return -1
	}

	for _, bi := range s.adj[i] {
		b := s.Bonds[bi]
		switch b.Order {
		case BondTriple, BondQuadruple:
			return -1
		case BondAromatic:
			return 1
		case BondDouble:
			if inRing[bi] {
				return 1
			}
			switch s.Atoms[b.Other(i)].Symbol {
			case "O", "N", "S":
				return 0
			}
			return -1
		}
	}

	switch a.Symbol {
	case "N", "P":
		if a.Charge == 0 {
			return 2
		}
	case "O", "S", "Se":
		if a.Charge == 0 {
			return 2
		}
	case "C":
		if a.Charge < 0 {
			return 2
		}
	}
	return -1
}

//Personal.AI order the ending
