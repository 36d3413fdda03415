// internal/taxmap/mapper.go
package taxmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
)

// Row is one identifier→taxon mapping extracted from a FASTA header.
type Row struct {
	ID    string
	TaxID string // decimal NCBI taxon id, "" when the header carried none
}

// Options controls progress reporting during extraction.
type Options struct {
	Progress io.Writer         // nil disables the byte-progress bar
	EveryN   int               // notify every N headers (0 disables)
	Notify   func(records int) // record-count callback, purely observational
}

// Scanner sizing: description lines stay short, but single-line sequence
// payloads in real dumps can be enormous.
const (
	scanBuf = 64 * 1024
	maxLine = 64 * 1024 * 1024
)

// Extract streams fastaPath and writes one "id<TAB>taxid" line per header to
// outPath, in encounter order. It returns the number of rows written.
// Malformed headers degrade to rows with missing fields; only whole-file I/O
// failures are errors.
func Extract(fastaPath, outPath string, opts Options) (int, error) {
	in, err := os.Open(fastaPath)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s", fastaPath)
	}
	defer func() { _ = in.Close() }()

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, errors.Wrap(err, "create output directory")
		}
	}
	out, err := os.Create(outPath)
	if err != nil {
		return 0, errors.Wrapf(err, "create %s", outPath)
	}

	var src io.Reader = in
	var bar *pb.ProgressBar
	if opts.Progress != nil {
		if fi, serr := in.Stat(); serr == nil {
			bar = pb.New64(fi.Size()).SetUnits(pb.U_BYTES)
			bar.Output = opts.Progress
			bar.Start()
			src = bar.NewProxyReader(in)
		}
	}

	w := bufio.NewWriter(out)
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, scanBuf), maxLine)

	rows := 0
	for sc.Scan() {
		line := sc.Text()
		if len(line) == 0 || line[0] != '>' {
			continue
		}
		row := ParseHeader(line)
		if _, err := fmt.Fprintf(w, "%s\t%s\n", row.ID, row.TaxID); err != nil {
			_ = out.Close()
			return rows, errors.Wrapf(err, "write %s", outPath)
		}
		rows++
		if opts.EveryN > 0 && opts.Notify != nil && rows%opts.EveryN == 0 {
			opts.Notify(rows)
		}
	}
	if err := sc.Err(); err != nil {
		_ = out.Close()
		return rows, errors.Wrapf(err, "scan %s", fastaPath)
	}
	if err := w.Flush(); err != nil {
		_ = out.Close()
		return rows, errors.Wrapf(err, "flush %s", outPath)
	}
	if err := out.Close(); err != nil {
		return rows, errors.Wrapf(err, "close %s", outPath)
	}
	if bar != nil {
		bar.Finish()
	}
	return rows, nil
}

// ParseHeader extracts the accession and OX taxon id from one ">" line.
//
// UniProt composite headers look like
//
//	>sp|P12345|GAG_HIV1 Gag protein OS=... OX=11676 GN=gag PE=1 SV=1
//
// The accession is pipe field 2 of the first token; headers without the
// composite form fall back to the raw first token. The taxon id is the first
// OX= annotation anywhere on the line; a non-numeric value counts as absent.
// Nothing here is fatal: real UniProt dumps contain non-conforming headers,
// and every header must still yield a row.
func ParseHeader(line string) Row {
	fields := strings.Fields(strings.TrimPrefix(line, ">"))

	var row Row
	if len(fields) > 0 {
		row.ID = fields[0]
		if parts := strings.Split(fields[0], "|"); len(parts) >= 2 && parts[1] != "" {
			row.ID = parts[1]
		}
	}
	for _, f := range fields {
		v, ok := strings.CutPrefix(f, "OX=")
		if !ok {
			continue
		}
		if _, err := strconv.ParseUint(v, 10, 64); err == nil {
			row.TaxID = v
		}
		break
	}
	return row
}
