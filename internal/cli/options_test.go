package cli

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, argv ...string) (Options, error) {
	t.Helper()
	fs := NewFlagSet("viraldb")
	fs.SetOutput(io.Discard)
	return ParseArgs(fs, argv)
}

func TestParseDefaults(t *testing.T) {
	opt, err := parse(t, "--db", "swissprot")
	require.NoError(t, err)
	assert.Equal(t, DBSwissProt, opt.DB)
	assert.Equal(t, DefaultOutput, opt.Output)
	assert.False(t, opt.KeepIntermediate)
	assert.False(t, opt.SkipTaxonomy)
	assert.False(t, opt.SkipTaxID)
	assert.False(t, opt.SkipMMseqs)
	assert.False(t, opt.Quiet)
}

func TestParseAllFlags(t *testing.T) {
	opt, err := parse(t,
		"--db", "trembl",
		"--output", "out/map.tsv",
		"--config", "viraldb.toml",
		"--keep-intermediate",
		"--skip-taxonomy",
		"--skip-taxid",
		"--skip-mmseqs",
		"--quiet",
	)
	require.NoError(t, err)
	assert.Equal(t, DBTrEMBL, opt.DB)
	assert.Equal(t, "out/map.tsv", opt.Output)
	assert.Equal(t, "viraldb.toml", opt.ConfigFile)
	assert.True(t, opt.KeepIntermediate)
	assert.True(t, opt.SkipTaxonomy)
	assert.True(t, opt.SkipTaxID)
	assert.True(t, opt.SkipMMseqs)
	assert.True(t, opt.Quiet)
}

func TestParseMissingDB(t *testing.T) {
	_, err := parse(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--db is required")
}

func TestParseInvalidDB(t *testing.T) {
	_, err := parse(t, "--db", "refseq")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --db "refseq"`)
}

func TestParseEmptyOutput(t *testing.T) {
	_, err := parse(t, "--db", "swissprot", "--output", "")
	require.Error(t, err)
}

func TestParseHelp(t *testing.T) {
	_, err := parse(t, "-h")
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestParseVersionSkipsValidation(t *testing.T) {
	opt, err := parse(t, "-v")
	require.NoError(t, err)
	assert.True(t, opt.Version)
}
