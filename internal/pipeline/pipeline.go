// internal/pipeline/pipeline.go
package pipeline

import (
	"context"

	"github.com/pkg/errors"

	"github.com/agudeloromero/mmseq-viral-db/internal/fsgate"
)

// State names the pipeline's position for failure reports.
type State string

const (
	Pending          State = "pending"
	Fetching         State = "fetching"
	Decompressing    State = "decompressing"
	Mapping          State = "mapping"
	FetchingTaxonomy State = "fetching-taxonomy"
	Building         State = "building"
	Done             State = "done"
	Aborted          State = "aborted"
)

// Step is one pipeline state together with its entry-guard inputs. A step
// with several Artifacts is satisfied by any one of them (the download step
// is satisfied by either the archive or the already-decompressed FASTA).
type Step struct {
	State       State
	Skip        bool     // governing --skip flag
	Artifacts   []string // target paths; empty means the step always runs
	Description string   // human name used in the FileGate skip notice
	Run         func(context.Context) error
}

// ShouldRun is the pure entry guard: a step runs iff it is not skipped and
// its target artifact does not already exist.
func ShouldRun(skip, exists bool) bool {
	return !skip && !exists
}

// Pipeline executes steps strictly in order, aborting on the first failure.
// There is no rollback: artifacts from completed steps stay on disk.
type Pipeline struct {
	Gate  fsgate.Gate
	Steps []Step
}

// Run returns Done on success, or Aborted together with an error naming the
// failing state.
func (p *Pipeline) Run(ctx context.Context) (State, error) {
	for _, s := range p.Steps {
		exists := false
		for _, a := range s.Artifacts {
			if p.Gate.Exists(a, s.Description) {
				exists = true
				break
			}
		}
		if !ShouldRun(s.Skip, exists) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return Aborted, errors.Wrap(err, string(s.State))
		}
		if err := s.Run(ctx); err != nil {
			return Aborted, errors.Wrap(err, string(s.State))
		}
	}
	return Done, nil
}
