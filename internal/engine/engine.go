// Package engine orchestrates the merge pipeline.
//
// One Engine serves one run: validate the configuration, scan for
// candidates, build the plan, snapshot the root if asked, then execute.
// The engine holds no state across runs beyond what the filesystem itself
// records, and performs no internal parallelism; callers wanting a
// responsive front end run the whole pipeline on their own worker.
//
// Key components:
//   - Run: the single entry point (validate, scan, plan, backup, execute)
//   - executor: applies the plan, recursive merges and conflict resolution
//   - Stats/RunResult: counters and outcome handed back to the caller
package engine

import (
	"github.com/danieljhkim/foldmerge/internal/backup"
	"github.com/danieljhkim/foldmerge/internal/clock"
	"github.com/danieljhkim/foldmerge/internal/fsops"
	"github.com/danieljhkim/foldmerge/internal/hash"
)

// Engine runs the scan/plan/backup/execute pipeline.
// Construct a fresh Engine per run; it is not a process-wide singleton.
type Engine struct {
	fs     fsops.FS
	hasher hash.Hasher
	clock  clock.Clock
}

// New creates a new Engine with the given dependencies.
func New(fs fsops.FS, hasher hash.Hasher, clk clock.Clock) *Engine {
	return &Engine{
		fs:     fs,
		hasher: hasher,
		clock:  clk,
	}
}

// newBackupManager builds the backup manager for one run.
func (e *Engine) newBackupManager(dir string) *backup.Manager {
	return backup.NewManager(e.clock, dir)
}
