package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/turtacn/SDF-Library-Mining/internal/application/mining"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/tabular"
	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// extract
// ─────────────────────────────────────────────────────────────────────────────

func newExtractCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "extract <library.sdf>",
		Short: "Write the ordered registry numbers of a library",
		Long: "Extract reads every record of an SDF-style library and writes its CAS\n" +
			"registry number, one per line.  Records without a number yield \"nan\".\n" +
			"Without -o the list is printed to stdout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			svc, cleanup, err := buildService(cliCtx, serviceNeeds{})
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := operationContext(cmd, cliCtx)
			defer cancel()

			res, err := svc.Extract(ctx, &mining.ExtractInput{LibraryPath: args[0], OutputPath: output})
			if err != nil {
				return err
			}
			defer flushMetrics(svc, cliCtx.Logger)

			if output == "" {
				return tabular.WriteLines(cmd.OutOrStdout(), res.IDs)
			}
			fmt.Fprint(cmd.OutOrStdout(), FormatTable(
				[]string{"Library", "Records", "Missing CAS", "Trailing lines"},
				[][]string{{args[0], itoa(res.Stats.Records), itoa(res.Stats.MissingCAS), itoa(res.Stats.TrailingLines)}},
			))
			PrintSuccess(cmd, fmt.Sprintf("%d registry numbers written to %s", len(res.IDs), output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "registry list file (default: stdout)")
	return cmd
}

// ─────────────────────────────────────────────────────────────────────────────
// intersect
// ─────────────────────────────────────────────────────────────────────────────

func newIntersectCmd() *cobra.Command {
	var (
		listPath    string
		tablePath   string
		withFormula bool
	)

	cmd := &cobra.Command{
		Use:   "intersect <primary.sdf> <reference.sdf>",
		Short: "Find the registry numbers shared by two libraries",
		Long: "Intersect keeps the primary library's registry numbers that also occur\n" +
			"in the reference library, in primary order, and joins each back to the\n" +
			"first primary record carrying it.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if listPath == "" && tablePath == "" {
				return errors.InvalidParam("at least one of --list or --table is required")
			}
			svc, cleanup, err := buildService(cliCtx, serviceNeeds{})
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := operationContext(cmd, cliCtx)
			defer cancel()

			res, err := svc.Intersect(ctx, &mining.IntersectInput{
				PrimaryPath:   args[0],
				ReferencePath: args[1],
				ListPath:      listPath,
				TablePath:     tablePath,
				WithFormula:   withFormula,
			})
			if err != nil {
				return err
			}
			defer flushMetrics(svc, cliCtx.Logger)

			fmt.Fprint(cmd.OutOrStdout(), FormatTable(
				[]string{"Library", "Records", "Missing CAS"},
				[][]string{
					{args[0], itoa(res.PrimaryStats.Records), itoa(res.PrimaryStats.MissingCAS)},
					{args[1], itoa(res.ReferenceStats.Records), itoa(res.ReferenceStats.MissingCAS)},
				},
			))
			PrintSuccess(cmd, fmt.Sprintf("%d shared registry numbers", len(res.Result.IDs)))
			return nil
		},
	}

	cmd.Flags().StringVar(&listPath, "list", "", "intersection list file")
	cmd.Flags().StringVar(&tablePath, "table", "", "intersection table file (CAS, Name[, Formula])")
	cmd.Flags().BoolVar(&withFormula, "with-formula", false, "add the Formula column to the table")
	return cmd
}

// ─────────────────────────────────────────────────────────────────────────────
// resolve
// ─────────────────────────────────────────────────────────────────────────────

func newResolveCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "resolve <intersection_full.txt>",
		Short: "Look up a SMILES string for every row of an intersection table",
		Long: "Resolve queries the structure resolver for each registry number of an\n" +
			"intersection table.  Failed lookups yield \"nan\" and never stop the\n" +
			"batch.  The output must be reviewed by hand before scoring.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			svc, cleanup, err := buildService(cliCtx, serviceNeeds{resolver: true})
			if err != nil {
				return err
			}
			defer cleanup()
			defer flushMetrics(svc, cliCtx.Logger)

			ctx, cancel := operationContext(cmd, cliCtx)
			defer cancel()

			res, err := svc.Resolve(ctx, &mining.ResolveInput{TablePath: args[0], OutputPath: output})
			if res != nil {
				fmt.Fprint(cmd.OutOrStdout(), FormatTable(
					[]string{"Total", "Resolved", "Failed", "Skipped"},
					[][]string{{itoa(res.Stats.Total), itoa(res.Stats.Resolved), itoa(res.Stats.Failed), itoa(res.Stats.Skipped)}},
				))
			}
			if err != nil {
				return err
			}
			PrintSuccess(cmd, fmt.Sprintf("resolved table written to %s", output))
			PrintReviewReminder(cmd, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "resolved table file (.tsv, .csv)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// ─────────────────────────────────────────────────────────────────────────────
// score
// ─────────────────────────────────────────────────────────────────────────────

func newScoreCmd() *cobra.Command {
	var (
		output    string
		delimiter string
	)

	cmd := &cobra.Command{
		Use:   "score <revised.csv>",
		Short: "Score reviewed structures against the reference nucleosides",
		Long: "Score reads a reviewed resolved table (CAS, Name and SMILES columns,\n" +
			"addressed by header) and writes one Tanimoto similarity per reference\n" +
			"nucleoside.  Unparseable structures get \"nan\" in every column.\n" +
			"An .xlsx output path writes a workbook.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			delim, err := parseDelimiter(delimiter)
			if err != nil {
				return err
			}
			svc, cleanup, err := buildService(cliCtx, serviceNeeds{scorer: true})
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := operationContext(cmd, cliCtx)
			defer cancel()

			res, err := svc.Score(ctx, &mining.ScoreInput{InputPath: args[0], OutputPath: output, Delimiter: delim})
			if err != nil {
				return err
			}
			defer flushMetrics(svc, cliCtx.Logger)

			fmt.Fprint(cmd.OutOrStdout(), FormatTable(
				[]string{"Total", "Scored", "Rejected"},
				[][]string{{itoa(res.Stats.Total), itoa(res.Stats.Scored), itoa(res.Stats.Rejected)}},
			))
			PrintSuccess(cmd, fmt.Sprintf("similarity table written to %s", output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "final table file (.csv, .tsv or .xlsx)")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", `field delimiter for input and output, e.g. "," or "\t" (default: by file extension)`)
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// ─────────────────────────────────────────────────────────────────────────────
// run
// ─────────────────────────────────────────────────────────────────────────────

func newRunCmd() *cobra.Command {
	var (
		outDir      string
		withFormula bool
		skipResolve bool
		score       bool
		xlsx        bool
	)

	cmd := &cobra.Command{
		Use:   "run <primary.sdf> <reference.sdf>",
		Short: "Extract, intersect, resolve and optionally score in one go",
		Long: "Run chains every stage into one output directory under a fresh run id.\n" +
			"Use --skip-resolve to stop after the intersection, and --score to score\n" +
			"the resolved table without manual review.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if score && skipResolve {
				return errors.InvalidParam("--score and --skip-resolve are mutually exclusive")
			}
			delim, err := parseDelimiter(cliCtx.Config.Scoring.Delimiter)
			if err != nil {
				return err
			}
			svc, cleanup, err := buildService(cliCtx, serviceNeeds{resolver: !skipResolve, scorer: score, archive: true})
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := operationContext(cmd, cliCtx)
			defer cancel()

			report, err := svc.Run(ctx, &mining.RunInput{
				PrimaryPath:       args[0],
				ReferencePath:     args[1],
				OutDir:            outDir,
				WithFormula:       withFormula,
				SkipResolve:       skipResolve,
				Score:             score,
				SpreadsheetOutput: xlsx,
				ScoreDelimiter:    delim,
			})
			if report != nil {
				printRunReport(cmd, report)
			}
			if err != nil {
				return err
			}
			PrintSuccess(cmd, fmt.Sprintf("run %s finished in %s", report.RunID, report.Duration.Round(time.Millisecond)))
			if report.NeedsReview && !score {
				PrintReviewReminder(cmd, filepath.Join(outDir, mining.ResolvedTableFile))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory receiving every artifact")
	cmd.Flags().BoolVar(&withFormula, "with-formula", false, "add the Formula column to the intersection table")
	cmd.Flags().BoolVar(&skipResolve, "skip-resolve", false, "stop after the intersection")
	cmd.Flags().BoolVar(&score, "score", false, "score the resolved table without manual review")
	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "write the final table as an .xlsx workbook")
	_ = cmd.MarkFlagRequired("out-dir")
	return cmd
}

func printRunReport(cmd *cobra.Command, r *mining.RunReport) {
	rows := [][]string{
		{"primary records", itoa(r.Primary.Records)},
		{"reference records", itoa(r.Reference.Records)},
		{"shared", itoa(r.Shared)},
	}
	if r.Resolve.Total > 0 {
		rows = append(rows,
			[]string{"resolved", itoa(r.Resolve.Resolved)},
			[]string{"lookup failures", itoa(r.Resolve.Failed)})
	}
	if r.Score.Total > 0 {
		rows = append(rows,
			[]string{"scored", itoa(r.Score.Scored)},
			[]string{"rejected", itoa(r.Score.Rejected)})
	}
	if r.Archived > 0 {
		rows = append(rows, []string{"archived", itoa(r.Archived)})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Run %s\n", r.RunID)
	fmt.Fprint(cmd.OutOrStdout(), FormatTable([]string{"Stage", "Count"}, rows))
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// parseDelimiter accepts a single character, "\t" or "tab".  Empty means
// infer from the file extension.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, errors.InvalidParam(fmt.Sprintf("delimiter must be a single character, got %q", s))
	}
	return r, nil
}

func flushMetrics(svc mining.Service, log logging.Logger) {
	if err := svc.FlushMetrics(); err != nil {
		log.Warn("metrics export failed", logging.Err(err))
	}
}

func itoa(n int) string { return strconv.Itoa(n) }

//Personal.AI order the ending
