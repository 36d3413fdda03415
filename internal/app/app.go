// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/agudeloromero/mmseq-viral-db/internal/cli"
	"github.com/agudeloromero/mmseq-viral-db/internal/config"
	"github.com/agudeloromero/mmseq-viral-db/internal/download"
	"github.com/agudeloromero/mmseq-viral-db/internal/fsgate"
	"github.com/agudeloromero/mmseq-viral-db/internal/gzipio"
	"github.com/agudeloromero/mmseq-viral-db/internal/mmseqs"
	"github.com/agudeloromero/mmseq-viral-db/internal/pipeline"
	"github.com/agudeloromero/mmseq-viral-db/internal/taxmap"
	"github.com/agudeloromero/mmseq-viral-db/internal/taxonomy"
	"github.com/agudeloromero/mmseq-viral-db/internal/toolrun"
	"github.com/agudeloromero/mmseq-viral-db/internal/version"
)

// artifacts is the full set of paths the pipeline produces. Each one is
// created by exactly one step and consumed by at most one downstream step.
type artifacts struct {
	gz       string
	fasta    string
	taxidTSV string
	taxDir   string
	dbDir    string
}

func artifactPaths(opts cli.Options, conf config.Config) artifacts {
	gz := filepath.Join(opts.DB, "viral_proteomes_"+opts.DB+".fasta.gz")
	return artifacts{
		gz:       gz,
		fasta:    strings.TrimSuffix(gz, ".fasta.gz") + ".fasta",
		taxidTSV: opts.Output,
		taxDir:   conf.TaxonomyDir,
		dbDir:    conf.DatabaseDir,
	}
}

// RunContext parses argv, loads configuration and drives the pipeline.
// Exit codes: 0 ok/help, 2 usage error, 1 runtime failure.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("viraldb")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "viraldb version %s\n", version.Version)
		return 0
	}

	conf, err := config.Load(opts.ConfigFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}

	if err := run(parent, opts, conf, toolrun.ExecRunner{}, outw, stderr); err != nil {
		_, _ = fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// run wires the components into the step sequence and executes it. The
// runner is injected so orchestration is testable without aria2c/tar/mmseqs.
func run(ctx context.Context, opts cli.Options, conf config.Config, runner toolrun.Runner, stdout, stderr io.Writer) error {
	paths := artifactPaths(opts, conf)

	var progress io.Writer
	if !opts.Quiet {
		progress = stderr
	}

	fetcher := download.Fetcher{
		Runner:      runner,
		Aria2c:      conf.Aria2c,
		Connections: conf.Connections,
		Progress:    progress,
	}
	taxFetcher := taxonomy.Fetcher{
		Downloader: fetcher,
		Runner:     runner,
		Tar:        conf.Tar,
		Progress:   progress,
	}
	builder := mmseqs.Builder{
		Runner:   runner,
		MMseqs:   conf.MMseqs,
		DBName:   conf.DatabaseName,
		Progress: progress,
	}

	url := conf.SwissProtURL
	if opts.DB == cli.DBTrEMBL {
		url = conf.TrEMBLURL
	}

	p := &pipeline.Pipeline{
		Gate: fsgate.Gate{Notices: progress},
		Steps: []pipeline.Step{
			{
				State:       pipeline.Fetching,
				Artifacts:   []string{paths.gz, paths.fasta},
				Description: "proteome download",
				Run: func(ctx context.Context) error {
					return fetcher.Fetch(ctx, url, paths.gz)
				},
			},
			{
				State:       pipeline.Decompressing,
				Artifacts:   []string{paths.fasta},
				Description: "decompressed FASTA",
				Run: func(context.Context) error {
					if err := gzipio.Decompress(paths.gz, paths.fasta, gzipio.Options{Progress: progress}); err != nil {
						return err
					}
					if !opts.KeepIntermediate {
						gzipio.RemoveSource(paths.gz, progress)
					}
					return nil
				},
			},
			{
				State:       pipeline.Mapping,
				Skip:        opts.SkipTaxID,
				Artifacts:   []string{paths.taxidTSV},
				Description: "taxid mapping table",
				Run: func(context.Context) error {
					rows, err := taxmap.Extract(paths.fasta, paths.taxidTSV, taxmap.Options{
						Progress: progress,
						EveryN:   100000,
						Notify: func(n int) {
							if progress != nil {
								_, _ = fmt.Fprintf(progress, "processed %d records\n", n)
							}
						},
					})
					if err != nil {
						return err
					}
					if progress != nil {
						_, _ = fmt.Fprintf(progress, "wrote %d mapping rows to %s\n", rows, paths.taxidTSV)
					}
					return nil
				},
			},
			{
				State:       pipeline.FetchingTaxonomy,
				Skip:        opts.SkipTaxonomy,
				Artifacts:   []string{filepath.Join(paths.taxDir, taxonomy.Sentinel)},
				Description: "taxonomy directory",
				Run: func(ctx context.Context) error {
					return taxFetcher.Fetch(ctx, conf.TaxonomyURL, paths.taxDir)
				},
			},
			{
				State:       pipeline.Building,
				Skip:        opts.SkipMMseqs,
				Artifacts:   []string{builder.DBPath(paths.dbDir)},
				Description: "MMseqs2 database",
				Run: func(ctx context.Context) error {
					return builder.Build(ctx, paths.fasta, paths.taxidTSV, paths.taxDir, paths.dbDir)
				},
			},
		},
	}

	if _, err := p.Run(ctx); err != nil {
		return err
	}

	report(stdout, opts, paths)
	return nil
}

// report prints the locations of the artifacts the run left behind.
func report(w io.Writer, opts cli.Options, paths artifacts) {
	_, _ = fmt.Fprintf(w, "FASTA: %s\n", paths.fasta)
	if !opts.SkipTaxID {
		_, _ = fmt.Fprintf(w, "taxid mapping: %s\n", paths.taxidTSV)
	}
	if !opts.SkipTaxonomy {
		_, _ = fmt.Fprintf(w, "taxonomy: %s\n", paths.taxDir)
	}
	if !opts.SkipMMseqs {
		_, _ = fmt.Fprintf(w, "database: %s\n", paths.dbDir)
	}
	_, _ = fmt.Fprintln(w, "all steps completed successfully")
}
