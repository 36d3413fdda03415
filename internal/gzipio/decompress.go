// internal/gzipio/decompress.go
package gzipio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"
)

// Options controls progress reporting during decompression.
type Options struct {
	Progress io.Writer // nil disables the byte-progress bar
}

const copyBuf = 256 * 1024

// Decompress streams gzPath into outPath through a bounded buffer,
// overwriting outPath if present. Proteome archives run to gigabytes, so
// the whole file is never held in memory.
func Decompress(gzPath, outPath string, opts Options) error {
	in, err := os.Open(gzPath)
	if err != nil {
		return errors.Wrapf(err, "open %s", gzPath)
	}
	defer func() { _ = in.Close() }()

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

	gz, err := gzip.NewReader(src)
	if err != nil {
		return errors.Wrapf(err, "gzip %s", gzPath)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", outPath)
	}

	w := bufio.NewWriterSize(out, copyBuf)
	if _, err := io.CopyBuffer(w, gz, make([]byte, copyBuf)); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "decompress %s", gzPath)
	}
	if err := gz.Close(); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "gzip %s", gzPath)
	}
	if err := w.Flush(); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "flush %s", outPath)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "close %s", outPath)
	}
	if bar != nil {
		bar.Finish()
	}
	return nil
}

// RemoveSource deletes the compressed intermediate after a successful
// decompression. Best effort: a failure is logged, never fatal.
func RemoveSource(gzPath string, log io.Writer) {
	if err := os.Remove(gzPath); err != nil {
		if log != nil {
			_, _ = fmt.Fprintf(log, "WARN: could not remove %s: %v\n", gzPath, err)
		}
		return
	}
	if log != nil {
		_, _ = fmt.Fprintf(log, "intermediate file %s has been deleted\n", gzPath)
	}
}
