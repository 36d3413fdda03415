package gzipio

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGz(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.fasta.gz")
	fh, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())
	return path
}

func TestDecompressRoundTrip(t *testing.T) {
	const payload = ">sp|P12345|GAG_HIV1 Gag OX=11676\nMGARASVLSG\n"
	gz := writeGz(t, payload)
	out := filepath.Join(t.TempDir(), "sample.fasta")

	require.NoError(t, Decompress(gz, out, Options{}))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))
}

func TestDecompressOverwritesOutput(t *testing.T) {
	gz := writeGz(t, "fresh\n")
	out := filepath.Join(t.TempDir(), "sample.fasta")
	require.NoError(t, os.WriteFile(out, []byte("stale contents"), 0o644))

	require.NoError(t, Decompress(gz, out, Options{}))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", string(got))
}

func TestDecompressTruncatedStream(t *testing.T) {
	gz := writeGz(t, ">seq1\nACGTACGTACGTACGTACGTACGT\n")
	raw, err := os.ReadFile(gz)
	require.NoError(t, err)
	trunc := filepath.Join(t.TempDir(), "trunc.fasta.gz")
	require.NoError(t, os.WriteFile(trunc, raw[:len(raw)/2], 0o644))

	err = Decompress(trunc, filepath.Join(t.TempDir(), "out.fasta"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), trunc)
}

func TestDecompressNotGzip(t *testing.T) {
	plain := filepath.Join(t.TempDir(), "plain.fasta.gz")
	require.NoError(t, os.WriteFile(plain, []byte("not gzip at all"), 0o644))

	err := Decompress(plain, filepath.Join(t.TempDir(), "out.fasta"), Options{})
	require.Error(t, err)
}

func TestDecompressMissingInput(t *testing.T) {
	err := Decompress(filepath.Join(t.TempDir(), "nope.gz"), filepath.Join(t.TempDir(), "out"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")
}

func TestRemoveSource(t *testing.T) {
	gz := writeGz(t, "x")
	var log bytes.Buffer

	RemoveSource(gz, &log)

	_, err := os.Stat(gz)
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, log.String(), "has been deleted")
}

func TestRemoveSourceMissingIsNotFatal(t *testing.T) {
	var log bytes.Buffer
	RemoveSource(filepath.Join(t.TempDir(), "gone.gz"), &log)
	assert.Contains(t, log.String(), "WARN")
}
