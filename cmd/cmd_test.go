package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/logger"
	"jarvis/internal/registry"
)

const testDB = `{"bowtie": {"categories": ["alignment"], "commands": ["bowtie", "bowtie-build"], "dependencies": [], "description": "Short read aligner", "installation method": "conda", "previous versions": ["0.12.9(to 2016-01-01)"], "version": "1.1.2"}, "samtools": {"categories": ["alignment", "formats"], "commands": ["samtools"], "dependencies": ["htslib"], "description": "Utilities for SAM files", "installation method": "source", "previous versions": [], "version": ""}}`

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func writeDB(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "utils.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the CLI against db with a fixed 79-column width and returns
// everything written to stdout.
func run(t *testing.T, db, stdin string, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("width: 79\n"), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfg, "--database", db}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func loadRecord(t *testing.T, db, name string) registry.Record {
	t.Helper()
	st, err := registry.LoadFile(db)
	require.NoError(t, err)
	rec, err := st.Get(name)
	require.NoError(t, err)
	return rec
}

func TestListAll(t *testing.T) {
	out, err := run(t, writeDB(t, testDB), "", "list")
	require.NoError(t, err)
	assert.Equal(t,
		"bowtie(1.1.2):      Short read aligner\n"+
			"samtools            Utilities for SAM files\n", out)
}

func TestListBrief(t *testing.T) {
	out, err := run(t, writeDB(t, testDB), "", "list", "--brief")
	require.NoError(t, err)
	assert.Equal(t, "bowtie\nsamtools\n", out)
}

func TestListCategoriesUnderscoreFlag(t *testing.T) {
	out, err := run(t, writeDB(t, testDB), "", "list", "--list_categories")
	require.NoError(t, err)
	assert.Equal(t, "alignment\nformats\n", out)
}

func TestListByCategory(t *testing.T) {
	out, err := run(t, writeDB(t, testDB), "", "list", "-c", "formats,nosuch")
	require.NoError(t, err)

	rule := strings.Repeat("-", 79)
	assert.Contains(t, out, "\n"+rule+"\n"+strings.Repeat(" ", 36)+"formats\n"+rule+"\n"+
		"samtools            Utilities for SAM files\n")
	assert.Contains(t, out, "No such category: nosuch\n")
	assert.NotContains(t, out, "bowtie")
}

func TestListFlagsAreExclusive(t *testing.T) {
	_, err := run(t, writeDB(t, testDB), "", "list", "-c", "formats", "--list-categories")
	assert.Error(t, err)
}

func TestListMissingDatabase(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "absent.json"), "", "list")
	assert.Error(t, err)
}

func TestShowAssumedName(t *testing.T) {
	out, err := run(t, writeDB(t, testDB), "", "show", "sam", "-c", "-d")
	require.NoError(t, err)
	assert.Equal(t,
		"Assuming \"sam\" meant \"samtools\"\n\n"+
			"samtools            Utilities for SAM files\n"+
			"commands:           samtools\n"+
			"dependencies:       htslib\n", out)
}

func TestShowFieldsSortedByKey(t *testing.T) {
	out, err := run(t, writeDB(t, testDB), "", "show", "BOWTIE", "-p", "-i")
	require.NoError(t, err)
	assert.Equal(t,
		"bowtie(1.1.2):      Short read aligner\n"+
			"installation method:\n"+
			"                    conda\n"+
			"previous versions:  0.12.9(to 2016-01-01)\n", out)
}

func TestShowEmptyFieldIsNA(t *testing.T) {
	out, err := run(t, writeDB(t, testDB), "", "show", "samtools", "--prev")
	require.NoError(t, err)
	assert.Contains(t, out, "previous versions:  NA\n")
}

func TestShowMisspelledName(t *testing.T) {
	out, err := run(t, writeDB(t, testDB), "", "show", "smatools")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Assuming \"smatools\" meant \"samtools\"\n"))
}

func TestShowResolutionErrors(t *testing.T) {
	db := writeDB(t, `{"bowtie": {}, "bowtie2": {}, "bwa": {}}`)

	out, err := run(t, db, "", "show", "bow")
	require.NoError(t, err, "a shared prefix falls back to the first candidate")
	assert.True(t, strings.HasPrefix(out, "Assuming \"bow\" meant \"bowtie\"\n"))

	_, err = run(t, db, "", "show", "b")
	var amb *ambiguousError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, []string{"bowtie", "bowtie2", "bwa"}, amb.candidates)
	assert.Contains(t, err.Error(), "Did you mean one of the following:\nbowtie\nbowtie2\nbwa")

	_, err = run(t, db, "", "show", "zzz")
	var none *noMatchError
	assert.ErrorAs(t, err, &none)
}

func TestShowNoMatchLogsClosestEntry(t *testing.T) {
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() {
		logger.SetOutput(io.Discard)
		logger.Init(false)
	})

	_, err := run(t, writeDB(t, testDB), "", "--debug", "show", "samtoolz-extra")
	var none *noMatchError
	require.ErrorAs(t, err, &none)
	assert.Contains(t, logs.String(), `Closest entry to "samtoolz-extra" is "samtools"`)
	assert.Contains(t, logs.String(), "cutoff 0.75")
}

func TestClosestEntry(t *testing.T) {
	name, score := closestEntry("bwa", []string{"bowtie", "bwa2"})
	assert.Equal(t, "bwa2", name)
	assert.InDelta(t, 6.0/7.0, score, 1e-9)

	name, _ = closestEntry("zzz", nil)
	assert.Empty(t, name)
}

func TestEditAppend(t *testing.T) {
	db := writeDB(t, testDB)
	_, err := run(t, db, "", "edit", "bwa", "-a",
		"-v", "0.7.17", "-s", "Burrows-Wheeler aligner",
		"-c", "bwa,,bwa-mem", "-t", "alignment", "-i", "conda")
	require.NoError(t, err)

	rec := loadRecord(t, db, "bwa")
	assert.Equal(t, "0.7.17", rec.Version)
	assert.Equal(t, "Burrows-Wheeler aligner", rec.Description)
	assert.Equal(t, []string{"bwa", "bwa-mem"}, rec.Commands)
	assert.Equal(t, []string{"alignment"}, rec.Categories)
	assert.Equal(t, []string{}, rec.Dependencies)
	assert.Equal(t, "conda", rec.InstallationMethod)
}

func TestEditAppendExisting(t *testing.T) {
	db := writeDB(t, testDB)
	_, err := run(t, db, "", "edit", "bowtie", "--append", "-v", "2.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	raw, err := os.ReadFile(db)
	require.NoError(t, err)
	assert.Equal(t, testDB, string(raw))
}

func TestEditAppendCreatesDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "new.json")
	_, err := run(t, db, "", "edit", "blast", "-a", "-s", "search")
	require.NoError(t, err)

	raw, err := os.ReadFile(db)
	require.NoError(t, err)
	assert.Equal(t, `{"blast": {"categories": [], "commands": [], "dependencies": [], "description": "search", "installation method": "", "previous versions": [], "version": ""}}`, string(raw))
}

func TestEditFields(t *testing.T) {
	db := writeDB(t, testDB)
	_, err := run(t, db, "", "edit", "bowt", "-e",
		"-c", "+,bowtie-inspect", "-v", "-", "-t", "-", "-p", "1.0,1.1")
	require.NoError(t, err)

	rec := loadRecord(t, db, "bowtie")
	assert.Equal(t, []string{"bowtie", "bowtie-build", "bowtie-inspect"}, rec.Commands)
	assert.Equal(t, "", rec.Version)
	assert.Equal(t, []string{}, rec.Categories)
	assert.Equal(t, []string{"1.0", "1.1"}, rec.PreviousVersions)
	assert.Equal(t, "Short read aligner", rec.Description)
}

func TestEditEmptyValueLeavesFieldAlone(t *testing.T) {
	db := writeDB(t, testDB)
	_, err := run(t, db, "", "edit", "bowtie", "-e", "--commands", "", "-s", "new")
	require.NoError(t, err)

	rec := loadRecord(t, db, "bowtie")
	assert.Equal(t, []string{"bowtie", "bowtie-build"}, rec.Commands)
	assert.Equal(t, "new", rec.Description)
}

func TestEditInvalidClear(t *testing.T) {
	db := writeDB(t, testDB)
	_, err := run(t, db, "", "edit", "bowtie", "-e", "-c", "-,bowtie")
	require.Error(t, err)

	raw, err := os.ReadFile(db)
	require.NoError(t, err)
	assert.Equal(t, testDB, string(raw))
}

func TestEditActionFlags(t *testing.T) {
	db := writeDB(t, testDB)

	_, err := run(t, db, "", "edit", "bowtie", "-v", "2")
	assert.Error(t, err, "one action is required")

	_, err = run(t, db, "", "edit", "bowtie", "-e", "-r")
	assert.Error(t, err, "actions are exclusive")
}

func TestEditRemove(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantErr  bool
		removed  bool
		contains string
	}{
		{name: "yes", stdin: "y\n", removed: true, contains: `Delete "bowtie" [y, n]? `},
		{name: "upper case yes", stdin: "Y\n", removed: true},
		{name: "no", stdin: "n\n", wantErr: true, contains: `Delete "bowtie" [y, n]? `},
		{name: "invalid answer", stdin: "maybe\n", wantErr: true},
		{name: "no input", stdin: "", wantErr: true},
		{name: "skip prompt", args: []string{"--yes"}, removed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := writeDB(t, testDB)
			args := append([]string{"edit", "bowtie", "-r"}, tt.args...)
			out, err := run(t, db, tt.stdin, args...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.contains != "" {
				assert.Contains(t, out, tt.contains)
			}

			st, err := registry.LoadFile(db)
			require.NoError(t, err)
			assert.Equal(t, !tt.removed, st.Has("bowtie"))
			assert.True(t, st.Has("samtools"))
		})
	}
}

func TestCheck(t *testing.T) {
	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "samtools"), []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("PATH", bin)
	db := writeDB(t, testDB)

	out, err := run(t, db, "", "check", "samtools")
	require.NoError(t, err)
	assert.Equal(t, "samtools:           ok (1 found)\n", out)

	out, err = run(t, db, "", "check")
	require.Error(t, err)
	assert.Contains(t, out, "bowtie:             missing bowtie, bowtie-build\n")
	assert.Contains(t, err.Error(), "2 recorded command(s)")
}

func TestCommaList(t *testing.T) {
	var values []string
	l := newCommaList(&values)

	require.NoError(t, l.Set("a,,b,"))
	assert.Equal(t, []string{"a", "b"}, values)
	require.NoError(t, l.Set("c"))
	assert.Equal(t, []string{"a", "b", "c"}, values)
	assert.Equal(t, "a,b,c", l.String())
	assert.Equal(t, "list", l.Type())
}

func TestParseListUpdate(t *testing.T) {
	op, err := parseListUpdate([]string{"+", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, registry.OpAppend, op.Kind())
	assert.Equal(t, []string{"a", "b"}, op.Values())

	op, err = parseListUpdate([]string{"-"})
	require.NoError(t, err)
	assert.Equal(t, registry.OpClear, op.Kind())

	op, err = parseListUpdate([]string{"a"})
	require.NoError(t, err)
	assert.Equal(t, registry.OpReplace, op.Kind())

	_, err = parseListUpdate([]string{"-", "a"})
	assert.Error(t, err)

	assert.Equal(t, registry.OpClear, parseScalarUpdate("-").Kind())
	assert.Equal(t, registry.OpReplace, parseScalarUpdate("1.0").Kind())
}
