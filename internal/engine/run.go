package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/foldmerge/internal/planner"
	"github.com/danieljhkim/foldmerge/internal/report"
	"github.com/danieljhkim/foldmerge/internal/scanner"
)

// Run executes one merge run.
//
// Pipeline:
//  1. Validate configuration (ErrValidation aborts, nothing logged yet)
//  2. Scan for candidates, bottom-up
//  3. Build the merge plan (empty-base candidates abort with ErrValidation)
//  4. Create the backup archive (ErrBackup aborts before any mutation)
//  5. Execute (or simulate) the plan in order
//
// Recoverable conditions (unreadable directories, rejected candidates,
// failed operations) become log entries and counters; only validation and
// backup failures abort the run.
func (e *Engine) Run(ctx context.Context, req *RunRequest) (*RunResult, error) {
	if err := req.Config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	cfg := req.Config
	log := report.NewLog(e.clock, req.Sink)
	result := &RunResult{Log: log}

	log.Infof("merging folders with suffix %q under %s", cfg.Suffix, cfg.Root)
	if cfg.DryRun {
		log.Infof("dry run: no changes will be made")
	}

	candidates, err := scanner.Scan(e.fs, cfg.Root, scanner.Options{
		Suffix:     cfg.Suffix,
		IgnoreCase: cfg.IgnoreCase,
		Exclude:    cfg.Exclude,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	plan, err := planner.BuildMergePlan(e.fs, candidates, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	result.Plan = plan
	result.Stats.FoldersPlanned = len(plan.Operations)

	if plan.IsEmpty() {
		log.Infof("no folders found with suffix %q", cfg.Suffix)
		return result, nil
	}
	log.Infof("planned %d operation(s)", len(plan.Operations))

	if cfg.Backup && !cfg.DryRun {
		archive, err := e.newBackupManager(cfg.BackupDir).Create(cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackup, err)
		}
		result.ArchivePath = archive
		result.Stats.BackupsCreated++
		log.Infof("backup created: %s", archive)
	}

	x := &executor{
		fs:       e.fs,
		resolver: planner.NewResolver(e.fs, e.hasher, cfg.Policy),
		log:      log,
		stats:    &result.Stats,
		dryRun:   cfg.DryRun,
	}
	result.Cancelled = x.run(ctx, plan)
	if result.Cancelled {
		log.Warnf("CANCELLED: run stopped after %d of %d operation(s)",
			result.Stats.OperationsDone+result.Stats.OperationsFailed+result.Stats.OperationsSkipped,
			len(plan.Operations))
		return result, nil
	}

	log.Infof("finished: %d done, %d failed, %d skipped",
		result.Stats.OperationsDone, result.Stats.OperationsFailed, result.Stats.OperationsSkipped)
	return result, nil
}
