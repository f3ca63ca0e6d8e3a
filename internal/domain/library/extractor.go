package library

import "strings"

// ExtractTag returns the value line following the last line of block that
// contains tag.
//
// A tag line arms the scan; the next line that does not itself contain the
// tag becomes the value and disarms it.  The scan runs to the end of the
// block, so a later occurrence overrides an earlier one.  A tag that never
// appears, or appears only with no line after it, yields Placeholder.
func ExtractTag(block []string, tag string) string {
	value := Placeholder
	armed := false
	for _, line := range block {
		if strings.Contains(line, tag) {
			armed = true
		} else if armed {
			value = line
			armed = false
		}
	}
	return value
}

// ExtractName returns the value of the <Name> tag.
func ExtractName(block []string) string { return ExtractTag(block, DefaultNameTag) }

// ExtractFormula returns the value of the <Formula> tag.
func ExtractFormula(block []string) string { return ExtractTag(block, DefaultFormulaTag) }

// ExtractCAS returns the value of the <CAS> tag.
func ExtractCAS(block []string) string { return ExtractTag(block, DefaultCASTag) }

// ExtractCoordinates returns the geometry block delimited by the default
// "csChFnd80" and "END" markers.  See ExtractCoordinatesBetween.
func ExtractCoordinates(block []string) CoordinateBlock {
	return ExtractCoordinatesBetween(block, DefaultCoordinatesStart, DefaultCoordinatesEnd)
}

// ExtractCoordinatesBetween returns lines[start..end] inclusive, where start
// is the index of the last line containing startMarker and end the index of
// the last line containing endMarker.
//
//   - neither marker present: placeholder
//   - only endMarker present: start defaults to line 0
//   - only startMarker present: placeholder
//   - end before start: placeholder
func ExtractCoordinatesBetween(block []string, startMarker, endMarker string) CoordinateBlock {
	start, end := -1, -1
	for i, line := range block {
		if strings.Contains(line, startMarker) {
			start = i
		}
		if strings.Contains(line, endMarker) {
			end = i
		}
	}
	if end < 0 {
		return PlaceholderCoordinates()
	}
	if start < 0 {
		start = 0
	}
	if end < start {
		return PlaceholderCoordinates()
	}
	return NewCoordinateBlock(block[start : end+1])
}

// ExtractRecord populates every field of a Record from one raw block.
// Each field is extracted independently.
func ExtractRecord(block []string, m Markers) Record {
	m = m.withDefaults()
	return Record{
		Name:        ExtractTag(block, m.NameTag),
		Formula:     ExtractTag(block, m.FormulaTag),
		CAS:         ExtractTag(block, m.CASTag),
		Coordinates: ExtractCoordinatesBetween(block, m.CoordinatesStart, m.CoordinatesEnd),
	}
}

//Personal.AI order the ending
