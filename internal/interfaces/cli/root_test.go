package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SDF-Library-Mining/internal/config"
	pkgerrors "github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "sdfmine.yaml")
	require.NoError(t, os.WriteFile(p, []byte("log:\n  level: error\n"+body), 0o644))
	return p
}

func writeSDF(t *testing.T, dir, name string, entries ...[2]string) string {
	t.Helper()
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e[0] + "\n  csChFnd80\n\nM  END\n")
		b.WriteString(">  <Name>\n" + e[0] + "\n\n")
		if e[1] != "" {
			b.WriteString(">  <CAS>\n" + e[1] + "\n\n")
		}
		b.WriteString("$$$$\n")
	}
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(b.String()), 0o644))
	return p
}

func fixtures(t *testing.T) (dir, primary, reference string) {
	t.Helper()
	dir = t.TempDir()
	primary = writeSDF(t, dir, "primary.sdf",
		[2]string{"Formaldehyde", "50-02-2"},
		[2]string{"Unknown", ""},
		[2]string{"Salicylic acid", "69-72-7"})
	reference = writeSDF(t, dir, "reference.sdf",
		[2]string{"Salicylic acid", "69-72-7"},
		[2]string{"Caffeine", "58-08-2"})
	return dir, primary, reference
}

func resolverServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/69-72-7/smiles" {
			_, _ = w.Write([]byte("OC(=O)c1ccccc1O\n"))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// ─────────────────────────────────────────────────────────────────────────────
// Root command
// ─────────────────────────────────────────────────────────────────────────────

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "sdfmine", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Contains(t, cmd.Version, Version)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"extract", "intersect", "resolve", "score", "run", "config"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestNewRootCommand_GlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"config", "log-level", "verbose", "no-color", "timeout"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag %q", name)
	}
	assert.Equal(t, "c", cmd.PersistentFlags().Lookup("config").Shorthand)
	assert.Equal(t, "0s", cmd.PersistentFlags().Lookup("timeout").DefValue)
}

func TestGetCLIContext_Missing(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	_, err := GetCLIContext(cmd)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeBadRequest))
}

func TestPersistentPreRun_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: loud\n"), 0o644))

	_, _, err := executeCommand(t, "--config", cfgPath, "config")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeConfigInvalid))
}

func TestFormatTable(t *testing.T) {
	out := FormatTable([]string{"Stage", "Count"}, [][]string{{"shared", "2"}, {"resolved"}})
	assert.Equal(t,
		"Stage     Count\n"+
			"--------  -----\n"+
			"shared    2    \n"+
			"resolved       \n", out)
	assert.Empty(t, FormatTable(nil, nil))
}

func TestRootOptions_LogConfig(t *testing.T) {
	section := config.LogConfig{Level: "warn", Format: "console"}

	lc := (&RootOptions{}).logConfig(section)
	assert.Equal(t, "warn", lc.Level)
	assert.Equal(t, []string{"stderr"}, lc.OutputPaths)
	assert.Equal(t, "console", lc.Format)

	assert.Equal(t, "error", (&RootOptions{LogLevel: "ERROR"}).logConfig(section).Level)
	assert.Equal(t, "debug", (&RootOptions{LogLevel: "error", Verbose: true}).logConfig(section).Level)
}

func TestParseDelimiter(t *testing.T) {
	cases := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"", 0, false},
		{",", ',', false},
		{";", ';', false},
		{`\t`, '\t', false},
		{"tab", '\t', false},
		{"\t", '\t', false},
		{",,", 0, true},
	}
	for _, tc := range cases {
		got, err := parseDelimiter(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Subcommands
// ─────────────────────────────────────────────────────────────────────────────

func TestExtractCmd_Stdout(t *testing.T) {
	dir, primary, _ := fixtures(t)
	cfg := writeConfig(t, dir, "")

	stdout, _, err := executeCommand(t, "--config", cfg, "extract", primary)
	require.NoError(t, err)
	assert.Equal(t, "50-02-2\nnan\n69-72-7\n", stdout)
}

func TestExtractCmd_File(t *testing.T) {
	dir, primary, _ := fixtures(t)
	cfg := writeConfig(t, dir, "")
	out := filepath.Join(dir, "cas.txt")

	stdout, _, err := executeCommand(t, "--config", cfg, "extract", primary, "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "OK: 3 registry numbers written to "+out)
	assert.Equal(t, "50-02-2\nnan\n69-72-7\n", readFile(t, out))
}

func TestExtractCmd_WrongArgCount(t *testing.T) {
	dir, _, _ := fixtures(t)
	_, _, err := executeCommand(t, "--config", writeConfig(t, dir, ""), "extract")
	assert.Error(t, err)
}

func TestIntersectCmd(t *testing.T) {
	dir, primary, reference := fixtures(t)
	cfg := writeConfig(t, dir, "")
	list := filepath.Join(dir, "intersection.txt")
	table := filepath.Join(dir, "intersection_full.txt")

	stdout, _, err := executeCommand(t, "--config", cfg, "intersect", primary, reference, "--list", list, "--table", table)
	require.NoError(t, err)
	assert.Contains(t, stdout, "OK: 1 shared registry numbers")
	assert.Equal(t, "69-72-7\n", readFile(t, list))
	assert.Equal(t, "69-72-7\tSalicylic acid\n", readFile(t, table))
}

func TestIntersectCmd_RequiresAnOutput(t *testing.T) {
	dir, primary, reference := fixtures(t)
	_, _, err := executeCommand(t, "--config", writeConfig(t, dir, ""), "intersect", primary, reference)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeBadRequest))
}

func TestResolveCmd_PrintsReviewReminder(t *testing.T) {
	srv := resolverServer(t)
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "resolver:\n  base_url: "+srv.URL+"\n")
	table := filepath.Join(dir, "intersection_full.txt")
	require.NoError(t, os.WriteFile(table, []byte("69-72-7\tSalicylic acid\n58-08-2\tCaffeine\n"), 0o644))
	out := filepath.Join(dir, "resolved.tsv")

	stdout, _, err := executeCommand(t, "--config", cfg, "resolve", table, "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "REVIEW REQUIRED")
	assert.Equal(t,
		"CAS\tName\tSMILES\n69-72-7\tSalicylic acid\tOC(=O)c1ccccc1O\n58-08-2\tCaffeine\tnan\n",
		readFile(t, out))
}

func TestResolveCmd_OutputRequired(t *testing.T) {
	dir := t.TempDir()
	_, _, err := executeCommand(t, "--config", writeConfig(t, dir, ""), "resolve", filepath.Join(dir, "t.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}

func TestScoreCmd(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "")
	in := filepath.Join(dir, "revised.txt")
	require.NoError(t, os.WriteFile(in, []byte(
		"CAS;Name;SMILES\n"+
			"58-61-7;Adenosine;C1=NC(=C2C(=N1)N(C=N2)C3C(C(C(O3)CO)O)O)N\n"+
			"0-00-0;Mystery;C1CC\n"), 0o644))
	out := filepath.Join(dir, "similarity.txt")

	stdout, _, err := executeCommand(t, "--config", cfg, "score", in, "-o", out, "--delimiter", ";")
	require.NoError(t, err)
	assert.Contains(t, stdout, "OK: similarity table written to "+out)

	lines := strings.Split(strings.TrimSpace(readFile(t, out)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "CAS;Name;SMILES;Ado;"))
	assert.True(t, strings.HasPrefix(lines[1], "58-61-7;Adenosine;"))
	assert.Contains(t, lines[1], ";1.0000;")
	assert.Equal(t, "0-00-0;Mystery;C1CC"+strings.Repeat(";nan", 10), lines[2])
}

func TestScoreCmd_BadDelimiter(t *testing.T) {
	dir := t.TempDir()
	_, _, err := executeCommand(t, "--config", writeConfig(t, dir, ""), "score", "in.csv", "-o", "out.csv", "--delimiter", "::")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeBadRequest))
}

func TestRunCmd_SkipResolve(t *testing.T) {
	dir, primary, reference := fixtures(t)
	textfile := filepath.Join(dir, "metrics", "sdfmine.prom")
	cfg := writeConfig(t, dir, "metrics:\n  enabled: true\n  textfile: "+textfile+"\n")
	outDir := filepath.Join(dir, "out")

	stdout, _, err := executeCommand(t, "--config", cfg, "run", primary, reference, "--out-dir", outDir, "--skip-resolve")
	require.NoError(t, err)
	assert.Contains(t, stdout, "shared")
	assert.NotContains(t, stdout, "REVIEW REQUIRED")
	assert.Equal(t, "69-72-7\n", readFile(t, filepath.Join(outDir, "intersection.txt")))
	assert.Contains(t, readFile(t, textfile), `sdfmine_runs_total{status="success"} 1`)
}

func TestRunCmd_ResolveAndScore(t *testing.T) {
	srv := resolverServer(t)
	dir, primary, reference := fixtures(t)
	cfg := writeConfig(t, dir, "resolver:\n  base_url: "+srv.URL+"\n")
	outDir := filepath.Join(dir, "out")

	stdout, _, err := executeCommand(t, "--config", cfg, "run", primary, reference, "--out-dir", outDir, "--score")
	require.NoError(t, err)
	assert.Contains(t, stdout, "resolved")
	assert.NotContains(t, stdout, "REVIEW REQUIRED")

	final := readFile(t, filepath.Join(outDir, "similarity.csv"))
	assert.True(t, strings.HasPrefix(final, "CAS,Name,SMILES,Ado,"))
	assert.Contains(t, final, "69-72-7,Salicylic acid,OC(=O)c1ccccc1O,")
}

func TestRunCmd_ScoreAndSkipResolveExclusive(t *testing.T) {
	dir, primary, reference := fixtures(t)
	_, _, err := executeCommand(t, "--config", writeConfig(t, dir, ""),
		"run", primary, reference, "--out-dir", dir, "--score", "--skip-resolve")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeBadRequest))
}

func TestConfigCmd_PrintsYAMLWithoutSecrets(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir,
		"resolver:\n  base_url: https://resolver.example/structure\n"+
			"archive:\n  access_key: AKIA\n  secret_key: s3cr3t\n"+
			"cache:\n  password: hunter2\n")

	stdout, _, err := executeCommand(t, "--config", cfg, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "base_url: https://resolver.example/structure")
	assert.Contains(t, stdout, "access_key: AKIA")
	assert.NotContains(t, stdout, "s3cr3t")
	assert.NotContains(t, stdout, "hunter2")
}

func TestConfigCmd_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "resolver:\n  base_url: https://resolver.example/structure\n")

	stdout, _, err := executeCommand(t, "--config", cfg, "config", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, stdout, "base_url: http://cactus.nci.nih.gov/chemical/structure")
	assert.Contains(t, stdout, "record_terminator:")
}

//Personal.AI order the ending
