package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	successLabel = color.New(color.FgGreen)
	reviewLabel  = color.New(color.FgYellow, color.Bold)
)

// PrintError reports err on stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	w := cmd.ErrOrStderr()
	errorLabel.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}

func PrintSuccess(cmd *cobra.Command, msg string) {
	w := cmd.OutOrStdout()
	successLabel.Fprint(w, "OK: ")
	fmt.Fprintln(w, msg)
}

// PrintReviewReminder asks the operator to check resolvedPath by hand before
// scoring it.
func PrintReviewReminder(cmd *cobra.Command, resolvedPath string) {
	w := cmd.OutOrStdout()
	reviewLabel.Fprintln(w, "REVIEW REQUIRED")
	fmt.Fprintf(w, "Check the SMILES in %s by hand, fix or drop wrong entries,\n", resolvedPath)
	fmt.Fprintln(w, "then run `sdfmine score` on the revised table.")
}

// FormatTable left-aligns every column to its widest cell, separates columns
// with two spaces and underlines the header.  Short rows are padded.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	measure := func(cells []string) {
		for i := range widths {
			if i < len(cells) && len(cells[i]) > widths[i] {
				widths[i] = len(cells[i])
			}
		}
	}
	measure(headers)
	for _, r := range rows {
		measure(r)
	}

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}

	var sb strings.Builder
	for _, cells := range append([][]string{headers, rule}, rows...) {
		for i, w := range widths {
			if i > 0 {
				sb.WriteString("  ")
			}
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			fmt.Fprintf(&sb, "%-*s", w, cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

//Personal.AI order the ending
