// internal/fsgate/gate.go
package fsgate

import (
	"fmt"
	"io"
	"os"
)

// Gate short-circuits steps whose target artifact already exists on disk,
// so re-running the pipeline never repeats finished work.
type Gate struct {
	Notices io.Writer // nil silences skip notices
}

// Exists reports whether path is already present, emitting a skip notice
// when it is. Absence is a normal outcome, never an error.
func (g Gate) Exists(path, description string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	if g.Notices != nil {
		_, _ = fmt.Fprintf(g.Notices, "%s already present at %s, skipping\n", description, path)
	}
	return true
}
