package engine

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/danieljhkim/foldmerge/internal/fsops"
	"github.com/danieljhkim/foldmerge/internal/planner"
	"github.com/danieljhkim/foldmerge/internal/report"
)

// executor applies one merge plan in order. Each operation reaches exactly
// one terminal state (done, failed, skipped, or simulated in dry-run) and
// produces one terminal log entry; a failed operation never rolls back and
// never stops the remaining operations.
type executor struct {
	fs       fsops.FS
	resolver *planner.Resolver
	log      *report.Log
	stats    *Stats
	dryRun   bool
}

// run executes the plan. It returns true when the context was cancelled;
// cancellation is checked at operation boundaries only, never mid-merge.
func (x *executor) run(ctx context.Context, plan *planner.MergePlan) bool {
	for _, op := range plan.Operations {
		select {
		case <-ctx.Done():
			return true
		default:
		}
		x.executeOp(op)
	}
	return false
}

func (x *executor) executeOp(op planner.MergeOperation) {
	exists, err := x.fs.Exists(op.Source)
	if err != nil {
		x.fail(op, fmt.Errorf("failed to check source: %w", err))
		return
	}
	if !exists {
		// An earlier merge may have consumed a nested candidate, or the
		// tree changed underneath us. Not an error.
		x.log.Warnf("skipped %s: source no longer exists", op.Source)
		x.stats.OperationsSkipped++
		return
	}

	switch op.Kind {
	case planner.OpRenameOnly:
		x.renameOnly(op)
	case planner.OpMergeInto:
		x.mergeInto(op)
	default:
		x.fail(op, fmt.Errorf("unknown operation kind %q", op.Kind))
	}
}

func (x *executor) renameOnly(op planner.MergeOperation) {
	// The plan chose a plain rename because the destination was absent.
	// If it appeared mid-run the rename would clobber it; skip instead.
	exists, err := x.fs.Exists(op.Dest)
	if err != nil {
		x.fail(op, fmt.Errorf("failed to check destination: %w", err))
		return
	}
	if exists {
		x.fail(op, fmt.Errorf("destination %s appeared during the run", op.Dest))
		return
	}

	if !x.dryRun {
		if err := x.fs.Rename(op.Source, op.Dest); err != nil {
			x.fail(op, err)
			return
		}
	}

	x.stats.FoldersRenamed++
	x.done(op)
}

func (x *executor) mergeInto(op planner.MergeOperation) {
	if _, err := x.mergeTrees(op.Source, op.Dest, ""); err != nil {
		x.fail(op, err)
		return
	}
	x.stats.FoldersMerged++
	x.done(op)
}

// mergeTrees recursively merges src into dst and returns how many entries
// were left behind in src (skipped by policy or unremovable). A fully
// drained source directory is removed; in dry-run mode every decision is
// computed and logged but nothing is touched.
func (x *executor) mergeTrees(src, dst, rel string) (remaining int, err error) {
	exists, err := x.fs.Exists(dst)
	if err != nil {
		return 0, fmt.Errorf("failed to check %s: %w", dst, err)
	}
	if !exists {
		if x.dryRun {
			x.log.Infof("  would create directory %s", dst)
		} else if err := x.fs.MkdirAll(dst, 0755); err != nil {
			return 0, fmt.Errorf("failed to create %s: %w", dst, err)
		}
	}

	entries, err := x.fs.ReadDir(src)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s: %w", src, err)
	}

	for _, entry := range entries {
		srcItem := filepath.Join(src, entry.Name())
		dstItem := filepath.Join(dst, entry.Name())
		relItem := path.Join(rel, entry.Name())

		var left int
		if entry.IsDir() {
			left, err = x.mergeDir(srcItem, dstItem, relItem)
		} else {
			left, err = x.mergeFile(srcItem, dstItem, relItem)
		}
		if err != nil {
			return remaining + left + 1, err
		}
		remaining += left
	}

	if remaining > 0 {
		return remaining, nil
	}

	if x.dryRun {
		x.log.Infof("  would remove emptied directory %s", src)
		x.stats.DirsRemoved++
		return 0, nil
	}
	if err := x.fs.Remove(src); err != nil {
		x.log.Warnf("could not remove emptied directory %s: %v", src, err)
		return 1, nil
	}
	x.stats.DirsRemoved++
	return 0, nil
}

// mergeDir handles a source subdirectory: recurse when the destination is
// a directory, move wholesale when it is absent, and treat a non-directory
// destination as a type conflict.
func (x *executor) mergeDir(srcItem, dstItem, relItem string) (int, error) {
	info, err := x.fs.Lstat(dstItem)
	if err == nil && info.IsDir() {
		left, err := x.mergeTrees(srcItem, dstItem, relItem)
		if err != nil {
			return left, err
		}
		if left > 0 {
			// Subtree kept entries, so the subdirectory itself stays.
			return 1, nil
		}
		return 0, nil
	}
	if err == nil {
		return x.typeConflict(srcItem, dstItem, relItem, true)
	}

	if x.dryRun {
		x.log.Infof("  would move folder %s", relItem)
		return 0, nil
	}
	if err := x.fs.Rename(srcItem, dstItem); err != nil {
		return 1, fmt.Errorf("failed to move folder %s: %w", relItem, err)
	}
	return 0, nil
}

// mergeFile handles a single source file (or symlink): direct move when
// the destination is free, conflict resolution when it is a file, and a
// type conflict when it is a directory.
func (x *executor) mergeFile(srcItem, dstItem, relItem string) (int, error) {
	info, err := x.fs.Lstat(dstItem)
	if err != nil {
		// Destination free: direct move, no resolver involved.
		if x.dryRun {
			x.log.Infof("  would move file %s", relItem)
			x.stats.FilesMoved++
			return 0, nil
		}
		if err := x.fs.Move(srcItem, dstItem); err != nil {
			return 1, fmt.Errorf("failed to move file %s: %w", relItem, err)
		}
		x.stats.FilesMoved++
		return 0, nil
	}
	if info.IsDir() {
		return x.typeConflict(srcItem, dstItem, relItem, false)
	}

	record, err := x.resolver.Resolve(relItem, srcItem, dstItem)
	if err != nil {
		return 1, err
	}
	x.stats.NameConflicts++

	note := ""
	if record.Identical {
		note = " (identical content)"
	}

	switch record.Resolution {
	case planner.ResolutionSkip:
		x.log.Infof("  skip existing file %s%s", relItem, note)
		x.stats.ItemsSkipped++
		return 1, nil

	case planner.ResolutionOverwrite:
		if x.dryRun {
			x.log.Infof("  would overwrite %s%s", relItem, note)
			x.stats.FilesMoved++
			return 0, nil
		}
		if err := x.fs.Move(srcItem, dstItem); err != nil {
			return 1, fmt.Errorf("failed to overwrite %s: %w", relItem, err)
		}
		x.log.Infof("  overwrote %s%s", relItem, note)
		x.stats.FilesMoved++
		return 0, nil

	case planner.ResolutionRename:
		target := filepath.Join(filepath.Dir(dstItem), record.ResolvedName)
		if x.dryRun {
			x.log.Infof("  would rename %s -> %s%s", relItem, record.ResolvedName, note)
			x.stats.FilesMoved++
			return 0, nil
		}
		if err := x.fs.Move(srcItem, target); err != nil {
			return 1, fmt.Errorf("failed to move %s to %s: %w", relItem, record.ResolvedName, err)
		}
		x.log.Infof("  renamed %s -> %s%s", relItem, record.ResolvedName, note)
		x.stats.FilesMoved++
		return 0, nil

	default:
		return 1, fmt.Errorf("unknown resolution %q for %s", record.Resolution, relItem)
	}
}

// typeConflict handles a file landing on a directory or vice versa.
// SKIP leaves the source entry in place; any other policy moves it under a
// generated unique name so neither side is lost.
func (x *executor) typeConflict(srcItem, dstItem, relItem string, srcIsDir bool) (int, error) {
	x.stats.NameConflicts++

	kinds := "file vs folder"
	if srcIsDir {
		kinds = "folder vs file"
	}

	if x.resolver.Policy() == planner.PolicySkip {
		x.log.Infof("  skip (%s): %s", kinds, relItem)
		x.stats.ItemsSkipped++
		return 1, nil
	}

	name, err := planner.UniqueName(x.fs, filepath.Dir(dstItem), filepath.Base(dstItem))
	if err != nil {
		return 1, err
	}
	target := filepath.Join(filepath.Dir(dstItem), name)

	if x.dryRun {
		x.log.Infof("  would rename (%s): %s -> %s", kinds, relItem, name)
		if !srcIsDir {
			x.stats.FilesMoved++
		}
		return 0, nil
	}

	if srcIsDir {
		if err := x.fs.Rename(srcItem, target); err != nil {
			return 1, fmt.Errorf("failed to move folder %s: %w", relItem, err)
		}
	} else {
		if err := x.fs.Move(srcItem, target); err != nil {
			return 1, fmt.Errorf("failed to move file %s: %w", relItem, err)
		}
		x.stats.FilesMoved++
	}
	x.log.Infof("  renamed (%s): %s -> %s", kinds, relItem, name)
	return 0, nil
}

func (x *executor) done(op planner.MergeOperation) {
	state := "DONE"
	if x.dryRun {
		state = "SIMULATED"
	}
	x.log.Infof("%s %s: %s -> %s", state, op.Kind, op.Source, op.Dest)
	x.stats.OperationsDone++
}

func (x *executor) fail(op planner.MergeOperation, err error) {
	x.log.Errorf("FAILED %s: %s -> %s: %v", op.Kind, op.Source, op.Dest, err)
	x.stats.OperationsFailed++
}
