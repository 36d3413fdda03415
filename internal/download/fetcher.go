// internal/download/fetcher.go
package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/agudeloromero/mmseq-viral-db/internal/toolrun"
)

// Fetcher downloads files with aria2c, streaming the tool's own progress
// output through to the caller. Retry policy stays aria2c's business.
type Fetcher struct {
	Runner      toolrun.Runner
	Aria2c      string // binary name, "" means "aria2c"
	Connections int    // parallel connections per download, <1 clamps to 1
	Progress    io.Writer
}

// Fetch downloads url to dest, creating dest's parent directory first.
func (f Fetcher) Fetch(ctx context.Context, url, dest string) error {
	dir := filepath.Dir(dest)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create download directory")
		}
	}
	if f.Progress != nil {
		_, _ = fmt.Fprintf(f.Progress, "starting download: %s\n", url)
	}

	n := f.Connections
	if n < 1 {
		n = 1
	}
	cmd := toolrun.Command{
		Name: f.binary(),
		Args: []string{
			"--file-allocation=none", "-c",
			"-x", strconv.Itoa(n), "-s", strconv.Itoa(n),
			"-d", dir, "-o", filepath.Base(dest),
			url,
		},
	}
	if err := f.Runner.Run(ctx, cmd, f.Progress, f.Progress); err != nil {
		return errors.Wrapf(err, "download %s", url)
	}
	if f.Progress != nil {
		_, _ = fmt.Fprintf(f.Progress, "download completed: %s\n", dest)
	}
	return nil
}

func (f Fetcher) binary() string {
	if f.Aria2c != "" {
		return f.Aria2c
	}
	return "aria2c"
}
