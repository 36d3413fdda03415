// internal/toolrun/runner.go
package toolrun

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Command describes one external tool invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// Runner abstracts subprocess execution so orchestration can be tested
// without the real binaries on PATH.
type Runner interface {
	Run(ctx context.Context, cmd Command, stdout, stderr io.Writer) error
}

// ExecRunner runs commands with os/exec, streaming both pipes to the caller
// while keeping a bounded tail of stderr for failure reports.
type ExecRunner struct{}

const captureLimit = 8 << 10

func (ExecRunner) Run(ctx context.Context, c Command, stdout, stderr io.Writer) error {
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return errors.Wrapf(err, "%s not found in PATH", c.Name)
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, c.Name)
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return errors.Wrap(err, c.Name)
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, c.Name)
	}

	capture := &tailBuffer{limit: captureLimit}
	g := new(errgroup.Group)
	g.Go(func() error {
		_, err := io.Copy(orDiscard(stdout), outPipe)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(io.MultiWriter(orDiscard(stderr), capture), errPipe)
		return err
	})
	copyErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		if tail := capture.String(); tail != "" {
			return errors.Wrapf(err, "%s failed: %s", c.Name, tail)
		}
		return errors.Wrapf(err, "%s failed", c.Name)
	}
	if copyErr != nil {
		return errors.Wrap(copyErr, c.Name)
	}
	return nil
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// tailBuffer keeps only the last limit bytes written to it.
type tailBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf.Write(p)
	if t.buf.Len() > t.limit {
		tail := append([]byte(nil), t.buf.Bytes()[t.buf.Len()-t.limit:]...)
		t.buf.Reset()
		t.buf.Write(tail)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string { return strings.TrimSpace(t.buf.String()) }
