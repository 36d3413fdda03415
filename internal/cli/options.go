// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"github.com/agudeloromero/mmseq-viral-db/internal/version"
)

// Dataset selections for --db.
const (
	DBSwissProt = "swissprot"
	DBTrEMBL    = "trembl"
)

// DefaultOutput is the mapping-table path used when --output is not given.
const DefaultOutput = "taxid_aa/taxid_aa.tsv"

// Options holds all CLI flags. Immutable once parsed; it drives every step
// of the pipeline.
type Options struct {
	DB               string
	Output           string
	ConfigFile       string
	KeepIntermediate bool
	SkipTaxonomy     bool
	SkipTaxID        bool
	SkipMMseqs       bool
	Quiet            bool
	Version          bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: prepare an MMseqs2 taxonomy database from UniProtKB viral proteomes

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.DB, "db", "", "proteome dataset: swissprot | trembl [*]")
	fs.StringVar(&opt.Output, "output", DefaultOutput, "taxid mapping TSV path ["+DefaultOutput+"]")
	fs.StringVar(&opt.ConfigFile, "config", "", "TOML file overriding URLs and tool names [none]")
	fs.BoolVar(&opt.KeepIntermediate, "keep-intermediate", false, "keep the .fasta.gz after decompression [false]")
	fs.BoolVar(&opt.SkipTaxonomy, "skip-taxonomy", false, "skip the NCBI taxdump fetch [false]")
	fs.BoolVar(&opt.SkipTaxID, "skip-taxid", false, "skip the FASTA taxid extraction [false]")
	fs.BoolVar(&opt.SkipMMseqs, "skip-mmseqs", false, "skip the MMseqs2 database build [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress output [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	// Validation
	switch opt.DB {
	case DBSwissProt, DBTrEMBL:
	case "":
		return opt, errors.New("--db is required")
	default:
		return opt, fmt.Errorf("invalid --db %q (want %s or %s)", opt.DB, DBSwissProt, DBTrEMBL)
	}
	if opt.Output == "" {
		return opt, errors.New("--output must not be empty")
	}
	return opt, nil
}
