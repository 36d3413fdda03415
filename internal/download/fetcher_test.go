package download

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agudeloromero/mmseq-viral-db/internal/toolrun"
)

type runRecorder struct {
	calls []toolrun.Command
	err   error
}

func (r *runRecorder) Run(_ context.Context, cmd toolrun.Command, _, _ io.Writer) error {
	r.calls = append(r.calls, cmd)
	return r.err
}

func TestFetchBuildsAria2cCommand(t *testing.T) {
	rec := &runRecorder{}
	dest := filepath.Join(t.TempDir(), "swissprot", "viral_proteomes_swissprot.fasta.gz")
	f := Fetcher{Runner: rec, Connections: 10}

	require.NoError(t, f.Fetch(context.Background(), "https://example.org/stream", dest))

	require.Len(t, rec.calls, 1)
	cmd := rec.calls[0]
	assert.Equal(t, "aria2c", cmd.Name)
	assert.Equal(t, []string{
		"--file-allocation=none", "-c",
		"-x", "10", "-s", "10",
		"-d", filepath.Dir(dest), "-o", "viral_proteomes_swissprot.fasta.gz",
		"https://example.org/stream",
	}, cmd.Args)

	// parent directory was created up front
	fi, err := os.Stat(filepath.Dir(dest))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestFetchClampsConnections(t *testing.T) {
	rec := &runRecorder{}
	f := Fetcher{Runner: rec}
	dest := filepath.Join(t.TempDir(), "x.gz")

	require.NoError(t, f.Fetch(context.Background(), "https://example.org/x", dest))
	assert.Contains(t, rec.calls[0].Args, "-x")
	assert.Equal(t, "1", rec.calls[0].Args[3])
}

func TestFetchCustomBinary(t *testing.T) {
	rec := &runRecorder{}
	f := Fetcher{Runner: rec, Aria2c: "/usr/local/bin/aria2c"}

	require.NoError(t, f.Fetch(context.Background(), "u", filepath.Join(t.TempDir(), "f")))
	assert.Equal(t, "/usr/local/bin/aria2c", rec.calls[0].Name)
}

func TestFetchWrapsRunnerFailure(t *testing.T) {
	rec := &runRecorder{err: assert.AnError}
	f := Fetcher{Runner: rec}

	err := f.Fetch(context.Background(), "https://example.org/x", filepath.Join(t.TempDir(), "f"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download https://example.org/x")
}

func TestFetchReportsProgress(t *testing.T) {
	rec := &runRecorder{}
	var buf bytes.Buffer
	f := Fetcher{Runner: rec, Progress: &buf}

	require.NoError(t, f.Fetch(context.Background(), "https://example.org/x", filepath.Join(t.TempDir(), "f")))
	assert.Contains(t, buf.String(), "starting download: https://example.org/x")
	assert.Contains(t, buf.String(), "download completed:")
}
