// internal/taxonomy/fetcher.go
package taxonomy

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/agudeloromero/mmseq-viral-db/internal/download"
	"github.com/agudeloromero/mmseq-viral-db/internal/toolrun"
)

// Sentinel marks an already-extracted taxdump; callers gate on it.
const Sentinel = "nodes.dmp"

// Fetcher downloads the NCBI taxdump archive and unpacks it. The archive
// layout is NCBI's; extraction stays an external tar invocation.
type Fetcher struct {
	Downloader download.Fetcher
	Runner     toolrun.Runner
	Tar        string // binary name, "" means "tar"
	Progress   io.Writer
}

// Fetch downloads the archive at url into outDir, extracts it in place and
// removes the archive on success.
func (f Fetcher) Fetch(ctx context.Context, url, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "create taxonomy directory")
	}

	archive := filepath.Join(outDir, path.Base(url))
	if err := f.Downloader.Fetch(ctx, url, archive); err != nil {
		return err
	}

	if f.Progress != nil {
		_, _ = fmt.Fprintf(f.Progress, "extracting taxonomy data: %s\n", archive)
	}
	cmd := toolrun.Command{Name: f.tar(), Args: []string{"-xzf", archive, "-C", outDir}}
	if err := f.Runner.Run(ctx, cmd, f.Progress, f.Progress); err != nil {
		return errors.Wrapf(err, "extract %s", archive)
	}

	if err := os.Remove(archive); err != nil {
		return errors.Wrapf(err, "remove %s", archive)
	}
	if f.Progress != nil {
		_, _ = fmt.Fprintf(f.Progress, "taxonomy data extracted to: %s\n", outDir)
	}
	return nil
}

func (f Fetcher) tar() string {
	if f.Tar != "" {
		return f.Tar
	}
	return "tar"
}
