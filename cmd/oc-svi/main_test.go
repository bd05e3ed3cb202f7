package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KarchinLab/open-cravat-extras/internal/duckdb"
	"github.com/KarchinLab/open-cravat-extras/internal/variant"
)

// execute runs the root command against a fresh viper and home directory.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OCSVI_LOG_LEVEL", "error")

	a := &app{logger: zap.NewNop()}
	cmd := newRootCmd(a)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestResolveCmd(t *testing.T) {
	stdout, _, err := execute(t, "resolve", "RS334", "NM_000000.1:c.76A>T")
	require.NoError(t, err)

	assert.Equal(t,
		"dbsnp\t"+variant.DefaultReportURL+"?dbsnp=rs334\n"+
			"hgvs\t"+variant.DefaultReportURL+"?hgvs=NM_000000.1%3Ac.76A%3ET\n",
		stdout)
}

func TestResolveCmd_Assembly(t *testing.T) {
	stdout, _, err := execute(t, "resolve", "-a", "hg19", "chr7 117559590 a t")
	require.NoError(t, err)
	assert.Contains(t, stdout, "coords\t")
	assert.Contains(t, stdout, "assembly=hg19&chrom=chr7")
}

func TestResolveCmd_Unrecognized(t *testing.T) {
	stdout, stderr, err := execute(t, "resolve", "rs1", "braf v600e")
	require.Error(t, err)
	assert.ErrorIs(t, err, errUnrecognized)
	assert.Contains(t, stdout, "dbsnp")
	assert.Contains(t, stderr, `Could not determine input type: "braf v600e"`)
}

func TestResolveCmd_BadAssembly(t *testing.T) {
	_, _, err := execute(t, "resolve", "-a", "hg18", "chr1 1 a t")
	var ue usageError
	require.ErrorAs(t, err, &ue)
	assert.ErrorIs(t, err, variant.ErrInvalidAssembly)
}

func TestResolveCmd_NoArgs(t *testing.T) {
	_, _, err := execute(t, "resolve")
	var ue usageError
	assert.ErrorAs(t, err, &ue)
}

func TestResolveCmd_JSON(t *testing.T) {
	stdout, _, err := execute(t, "resolve", "--json", "ca123")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "clingen", got["category"])
	assert.Equal(t, variant.DefaultReportURL+"?clingen=ca123", got["url"])
}

func TestBatchCmd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "variants.txt")
	require.NoError(t, os.WriteFile(in, []byte("# header\nrs334\njunk\nchr1 100 a -\n"), 0644))
	out := filepath.Join(dir, "out.tsv")
	db := filepath.Join(dir, "out.duckdb")

	_, _, err := execute(t, "batch", "-j", "2", "-o", out, "--duckdb", db, in)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "#Input\t"))
	assert.True(t, strings.HasPrefix(lines[1], "rs334\tdbsnp\t"))
	assert.True(t, strings.HasPrefix(lines[2], "junk\terror\t"))
	assert.True(t, strings.HasPrefix(lines[3], "chr1 100 a -\tcoords\tchr1\t100\ta\t-\thg38\t"))

	store, err := duckdb.Open(db)
	require.NoError(t, err)
	defer store.Close()

	counts, err := store.CountByCategory()
	require.NoError(t, err)
	assert.Equal(t, 1, counts[variant.DbSnp])
	assert.Equal(t, 1, counts[variant.Unrecognized])
	assert.Equal(t, 1, counts[variant.Coordinates])

	exports, err := store.Exports()
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, in, exports[0].Path)
}

func TestBatchCmd_YAML(t *testing.T) {
	in := filepath.Join(t.TempDir(), "variants.txt")
	require.NoError(t, os.WriteFile(in, []byte("rs1\n"), 0644))

	stdout, _, err := execute(t, "batch", "-f", "yaml", in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "category: dbsnp")
}

func TestBatchCmd_BadFormat(t *testing.T) {
	in := filepath.Join(t.TempDir(), "variants.txt")
	require.NoError(t, os.WriteFile(in, []byte("rs1\n"), 0644))

	_, _, err := execute(t, "batch", "-f", "csv", in)
	var ue usageError
	assert.ErrorAs(t, err, &ue)
}

func TestBatchCmd_MissingFile(t *testing.T) {
	_, _, err := execute(t, "batch", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigCmd_GetSet(t *testing.T) {
	stdout, _, err := execute(t, "config", "get", "report.assembly")
	require.NoError(t, err)
	assert.Equal(t, "hg38\n", stdout)

	cfgFile := filepath.Join(t.TempDir(), "oc-svi.yaml")
	stdout, _, err = execute(t, "--config", cfgFile, "config", "set", "report.assembly", "hg19")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Set report.assembly = hg19")

	data, err := os.ReadFile(cfgFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "assembly: hg19")

	stdout, _, err = execute(t, "--config", cfgFile, "config", "get", "report.assembly")
	require.NoError(t, err)
	assert.Equal(t, "hg19\n", stdout)
}

func TestConfigCmd_SetRejectsInvalid(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "oc-svi.yaml")
	_, _, err := execute(t, "--config", cfgFile, "config", "set", "report.assembly", "grch38")
	var ue usageError
	require.ErrorAs(t, err, &ue)

	_, statErr := os.Stat(cfgFile)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestConfigCmd_GetUnset(t *testing.T) {
	_, _, err := execute(t, "config", "get", "no.such.key")
	assert.Error(t, err)
}

func TestConfigCmd_Show(t *testing.T) {
	stdout, _, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "report:")
	assert.Contains(t, stdout, "base_url: "+variant.DefaultReportURL)
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug", "json")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = newLogger("loud", "console")
	assert.Error(t, err)
}

func TestRun_ExitCodes(t *testing.T) {
	viper.Reset()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OCSVI_LOG_LEVEL", "error")

	assert.Equal(t, ExitUsage, run([]string{"resolve"}))
	viper.Reset()
	assert.Equal(t, ExitError, run([]string{"resolve", "not a variant"}))
	viper.Reset()
	assert.Equal(t, ExitSuccess, run([]string{"--version"}))
}
