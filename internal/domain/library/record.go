// Package library models the molecule records held in SDF-style chemical
// library files and the marker-based scanning that produces them.
//
// A library file is a flat sequence of records, each closed by a line
// containing "$$$$".  Inside a record, metadata is written as a tag line
// (for example "> <Name>") followed by a value line, and the geometry block
// runs from a line containing "csChFnd80" to a line containing "END".
package library

import "strings"

// Placeholder is the single missing-value marker used for record fields,
// resolver output and score vectors.
const Placeholder = "nan"

// ─────────────────────────────────────────────────────────────────────────────
// Markers
// ─────────────────────────────────────────────────────────────────────────────

// Default marker tokens.
const (
	DefaultTerminator       = "$$$$"
	DefaultNameTag          = "<Name>"
	DefaultFormulaTag       = "<Formula>"
	DefaultCASTag           = "<CAS>"
	DefaultCoordinatesStart = "csChFnd80"
	DefaultCoordinatesEnd   = "END"
)

// Markers is the set of substrings used to split and read a library.
// All matches are substring matches on a single line.
type Markers struct {
	Terminator       string
	NameTag          string
	FormulaTag       string
	CASTag           string
	CoordinatesStart string
	CoordinatesEnd   string
}

// DefaultMarkers returns the markers used by the reference library vendor.
func DefaultMarkers() Markers {
	return Markers{
		Terminator:       DefaultTerminator,
		NameTag:          DefaultNameTag,
		FormulaTag:       DefaultFormulaTag,
		CASTag:           DefaultCASTag,
		CoordinatesStart: DefaultCoordinatesStart,
		CoordinatesEnd:   DefaultCoordinatesEnd,
	}
}

// withDefaults returns m with every empty marker replaced by its default.
func (m Markers) withDefaults() Markers {
	d := DefaultMarkers()
	if m.Terminator == "" {
		m.Terminator = d.Terminator
	}
	if m.NameTag == "" {
		m.NameTag = d.NameTag
	}
	if m.FormulaTag == "" {
		m.FormulaTag = d.FormulaTag
	}
	if m.CASTag == "" {
		m.CASTag = d.CASTag
	}
	if m.CoordinatesStart == "" {
		m.CoordinatesStart = d.CoordinatesStart
	}
	if m.CoordinatesEnd == "" {
		m.CoordinatesEnd = d.CoordinatesEnd
	}
	return m
}

// ─────────────────────────────────────────────────────────────────────────────
// CoordinateBlock
// ─────────────────────────────────────────────────────────────────────────────

// CoordinateBlock is the ordered run of raw geometry lines of one record.
// The zero value is the placeholder.
type CoordinateBlock struct {
	lines []string
}

// PlaceholderCoordinates returns the missing-geometry value.
func PlaceholderCoordinates() CoordinateBlock { return CoordinateBlock{} }

// NewCoordinateBlock copies lines into a block.  An empty slice yields the
// placeholder.
func NewCoordinateBlock(lines []string) CoordinateBlock {
	if len(lines) == 0 {
		return CoordinateBlock{}
	}
	cp := make([]string, len(lines))
	copy(cp, lines)
	return CoordinateBlock{lines: cp}
}

// IsPlaceholder reports whether the block carries no geometry.
func (c CoordinateBlock) IsPlaceholder() bool { return len(c.lines) == 0 }

// Lines returns a copy of the geometry lines, or nil for the placeholder.
func (c CoordinateBlock) Lines() []string {
	if c.IsPlaceholder() {
		return nil
	}
	cp := make([]string, len(c.lines))
	copy(cp, c.lines)
	return cp
}

// Len returns the number of geometry lines.
func (c CoordinateBlock) Len() int { return len(c.lines) }

// String renders the block as newline-joined text, or "nan".
func (c CoordinateBlock) String() string {
	if c.IsPlaceholder() {
		return Placeholder
	}
	return strings.Join(c.lines, "\n")
}

// ─────────────────────────────────────────────────────────────────────────────
// Record
// ─────────────────────────────────────────────────────────────────────────────

// Record is one molecule entry of a library.  Every field holds either a real
// value or the placeholder; records are produced only by the Loader.
type Record struct {
	Name        string
	Formula     string
	CAS         string
	Coordinates CoordinateBlock
}

// HasCAS reports whether the registry number is a real value.
func (r Record) HasCAS() bool { return r.CAS != Placeholder }

// HasName reports whether the name is a real value.
func (r Record) HasName() bool { return r.Name != Placeholder }

// HasFormula reports whether the formula is a real value.
func (r Record) HasFormula() bool { return r.Formula != Placeholder }

//Personal.AI order the ending
