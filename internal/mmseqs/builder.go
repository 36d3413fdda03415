// internal/mmseqs/builder.go
package mmseqs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/agudeloromero/mmseq-viral-db/internal/toolrun"
)

// Builder drives mmseqs createdb/createtaxdb. The database format is the
// tool's own; only the exit status matters here.
type Builder struct {
	Runner   toolrun.Runner
	MMseqs   string // binary name, "" means "mmseqs"
	DBName   string // database basename inside the output directory
	Progress io.Writer
}

// DBPath returns the path of the database file inside dbDir, the artifact
// callers gate re-runs on.
func (b Builder) DBPath(dbDir string) string {
	return filepath.Join(dbDir, b.name())
}

// Build creates the sequence database from fasta and attaches taxonomy
// information from taxidTSV and taxonomyDir, writing into dbDir.
func (b Builder) Build(ctx context.Context, fasta, taxidTSV, taxonomyDir, dbDir string) error {
	for _, pre := range []struct{ path, desc string }{
		{fasta, "FASTA file"},
		{taxidTSV, "taxid mapping file"},
		{filepath.Join(taxonomyDir, "nodes.dmp"), "taxonomy nodes.dmp file"},
	} {
		if _, err := os.Stat(pre.path); err != nil {
			return errors.Wrapf(err, "required %s missing", pre.desc)
		}
	}

	tmpDir := filepath.Join(dbDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return errors.Wrap(err, "create database directory")
	}

	dbPath := b.DBPath(dbDir)
	if b.Progress != nil {
		_, _ = fmt.Fprintf(b.Progress, "creating MMseqs2 database at: %s\n", dbPath)
	}
	createdb := toolrun.Command{Name: b.binary(), Args: []string{"createdb", fasta, dbPath}}
	if err := b.Runner.Run(ctx, createdb, b.Progress, b.Progress); err != nil {
		return errors.Wrap(err, "mmseqs createdb")
	}

	if b.Progress != nil {
		_, _ = fmt.Fprintln(b.Progress, "creating MMseqs2 taxonomy database...")
	}
	createtaxdb := toolrun.Command{Name: b.binary(), Args: []string{
		"createtaxdb", dbPath, tmpDir,
		"--ncbi-tax-dump", taxonomyDir,
		"--tax-mapping-file", taxidTSV,
	}}
	if err := b.Runner.Run(ctx, createtaxdb, b.Progress, b.Progress); err != nil {
		return errors.Wrap(err, "mmseqs createtaxdb")
	}
	return nil
}

func (b Builder) binary() string {
	if b.MMseqs != "" {
		return b.MMseqs
	}
	return "mmseqs"
}

func (b Builder) name() string {
	if b.DBName != "" {
		return b.DBName
	}
	return "viral.aa.fnaDB"
}
