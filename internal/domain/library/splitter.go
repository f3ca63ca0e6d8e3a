package library

import (
	"bufio"
	"io"
	"strings"
)

// ScanLines reads r fully and returns its lines with newline terminators and
// any trailing carriage return removed.  Lines may be of any length.  A final
// newline does not open an empty last line.
func ScanLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// SplitRecords segments lines into raw record blocks using the default
// "$$$$" terminator.  See SplitRecordsBy.
func SplitRecords(lines []string) [][]string {
	blocks, _ := SplitRecordsBy(lines, DefaultTerminator)
	return blocks
}

// SplitRecordsBy segments lines into blocks closed by any line containing
// terminator.  The first block starts at line 0 and each following block
// starts on the line after the previous terminator; terminator lines are
// not part of any block.
//
// Lines after the last terminator do not form a block.  Their count is
// returned as trailing so callers can report it.
//
// The returned blocks are sub-slices of lines and must not be modified.
func SplitRecordsBy(lines []string, terminator string) (blocks [][]string, trailing int) {
	start := 0
	for i, line := range lines {
		if !strings.Contains(line, terminator) {
			continue
		}
		blocks = append(blocks, lines[start:i:i])
		start = i + 1
	}
	return blocks, len(lines) - start
}

// CountTerminators returns the number of lines containing terminator.
func CountTerminators(lines []string, terminator string) int {
	n := 0
	for _, line := range lines {
		if strings.Contains(line, terminator) {
			n++
		}
	}
	return n
}

//Personal.AI order the ending
