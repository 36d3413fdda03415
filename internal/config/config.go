// internal/config/config.go
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config carries everything the pipeline needs to know about the outside
// world: dataset URLs, external tool names, and output naming. Values are
// immutable once loaded.
type Config struct {
	SwissProtURL string
	TrEMBLURL    string
	TaxonomyURL  string

	Aria2c      string
	Tar         string
	MMseqs      string
	Connections int

	TaxonomyDir  string
	DatabaseDir  string
	DatabaseName string
}

// Default matches the released behavior: UniProtKB viral (taxonomy 10239)
// REST streams and the NCBI taxdump.
var Default = Config{
	SwissProtURL: "https://rest.uniprot.org/uniprotkb/stream?compressed=true&format=fasta&query=%28%28taxonomy_id%3A10239%29+AND+%28reviewed%3Atrue%29%29",
	TrEMBLURL:    "https://rest.uniprot.org/uniprotkb/stream?compressed=true&format=fasta&query=%28%28taxonomy_id%3A10239%29+AND+%28reviewed%3Afalse%29%29",
	TaxonomyURL:  "ftp://ftp.ncbi.nlm.nih.gov/pub/taxonomy/taxdump.tar.gz",
	Aria2c:       "aria2c",
	Tar:          "tar",
	MMseqs:       "mmseqs",
	Connections:  10,
	TaxonomyDir:  "TAX",
	DatabaseDir:  "DB_MMSEQ2_aa",
	DatabaseName: "viral.aa.fnaDB",
}

// Load decodes a TOML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	conf := Default
	if path == "" {
		return conf, nil
	}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return conf, errors.Wrapf(err, "config %s", path)
	}
	if conf.Connections < 1 {
		conf.Connections = 1
	}
	return conf, nil
}
