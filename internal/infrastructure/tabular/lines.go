// Package tabular reads and writes the pipeline's intermediate and final
// tables: newline-delimited registry lists, the intersection table, the
// resolved table and the scored output in delimited or spreadsheet form.
package tabular

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/turtacn/SDF-Library-Mining/internal/domain/library"
	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// WriteLines writes one value per line.
func WriteLines(w io.Writer, values []string) error {
	bw := bufio.NewWriter(w)
	for _, v := range values {
		if _, err := bw.WriteString(v); err != nil {
			return writeErr(err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return writeErr(err)
		}
	}
	if err := bw.Flush(); err != nil {
		return writeErr(err)
	}
	return nil
}

// ReadLines returns every line with surrounding whitespace removed.  Blank
// lines are kept as "" so a list written by WriteLines reads back unchanged.
func ReadLines(r io.Reader) ([]string, error) {
	lines, err := library.ScanLines(r)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeIOFailed, "failed to read lines")
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimSpace(line)
	}
	return out, nil
}

// WriteLinesFile writes values to path, creating parent directories.
func WriteLinesFile(path string, values []string) error {
	return withCreatedFile(path, func(w io.Writer) error {
		return WriteLines(w, values)
	})
}

// ReadLinesFile reads the list stored at path.
func ReadLinesFile(path string) ([]string, error) {
	var out []string
	err := withOpenedFile(path, func(r io.Reader) error {
		var err error
		out, err = ReadLines(r)
		return err
	})
	return out, err
}

// ─────────────────────────────────────────────────────────────────────────────
// File helpers
// ─────────────────────────────────────────────────────────────────────────────

func withCreatedFile(path string, fn func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return pkgerrors.New(pkgerrors.ErrCodeTableWriteFailed, "failed to create output directory").
				WithDetail("path=" + path).WithCause(mkErr)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return pkgerrors.New(pkgerrors.ErrCodeTableWriteFailed, "failed to create output file").
			WithDetail("path=" + path).WithCause(err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = pkgerrors.New(pkgerrors.ErrCodeTableWriteFailed, "failed to close output file").
				WithDetail("path=" + path).WithCause(cerr)
		}
	}()
	return fn(f)
}

func withOpenedFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return pkgerrors.New(pkgerrors.ErrCodeIOFailed, "failed to open input file").
			WithDetail("path=" + path).WithCause(err)
	}
	defer f.Close()
	return fn(f)
}

func writeErr(err error) error {
	return pkgerrors.Wrap(err, pkgerrors.ErrCodeTableWriteFailed, "failed to write table")
}

//Personal.AI order the ending
