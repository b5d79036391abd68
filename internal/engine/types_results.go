package engine

import (
	"github.com/danieljhkim/foldmerge/internal/planner"
	"github.com/danieljhkim/foldmerge/internal/report"
)

// Stats accumulates counters over one run.
type Stats struct {
	// FoldersPlanned is the number of operations in the plan.
	FoldersPlanned int

	// FoldersMerged counts folders merged into an existing destination.
	FoldersMerged int

	// FoldersRenamed counts plain suffix-strip renames.
	FoldersRenamed int

	// FilesMoved counts files that reached a destination.
	FilesMoved int

	// NameConflicts counts filename collisions the resolver handled.
	NameConflicts int

	// ItemsSkipped counts entries left in place by the SKIP policy.
	ItemsSkipped int

	// DirsRemoved counts emptied source directories that were deleted.
	DirsRemoved int

	// BackupsCreated is 1 when the pre-run archive was written.
	BackupsCreated int

	// OperationsDone, OperationsFailed, OperationsSkipped count terminal
	// operation states. In dry-run mode simulated operations count as done.
	OperationsDone    int
	OperationsFailed  int
	OperationsSkipped int
}

// RunResult is the outcome of one merge run.
type RunResult struct {
	// Plan is the executed (or simulated) merge plan.
	Plan *planner.MergePlan

	// Log is the full operation log for the run.
	Log *report.Log

	// Stats are the run counters.
	Stats Stats

	// ArchivePath is the backup archive location, when one was created.
	ArchivePath string

	// Cancelled reports that the run stopped at an operation boundary
	// because the caller cancelled it. Completed operations stay applied.
	Cancelled bool
}
