package planner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/foldmerge/internal/fsops"
	"github.com/danieljhkim/foldmerge/internal/report"
	"github.com/danieljhkim/foldmerge/internal/scanner"
)

// BuildMergePlan pairs each candidate with its destination, in the
// scanner's bottom-up order.
//
// Destination resolution per candidate:
//   - destination exists as a directory: merge into it
//   - destination absent: plain rename
//   - destination exists as a non-directory: candidate rejected with an
//     ERROR entry, planning continues
//
// When two candidates resolve to the same destination, the first claims it
// and every later one becomes a merge, so a rename never collides with a
// destination the plan itself is about to create.
//
// A candidate whose base name is empty (folder named exactly the suffix)
// aborts planning: there is no defensible destination for it.
func BuildMergePlan(fsys fsops.FS, candidates []scanner.Candidate, log *report.Log) (*MergePlan, error) {
	plan := NewMergePlan()
	claimed := make(map[string]bool)

	for _, c := range candidates {
		if c.BaseName == "" {
			return nil, fmt.Errorf("folder %q is named exactly the suffix; stripping it leaves no destination name", c.Path)
		}

		dest := filepath.Join(filepath.Dir(c.Path), c.BaseName)

		if claimed[dest] {
			// An earlier operation already targets this destination; once it
			// runs the destination exists, so this one merges into it.
			plan.AddOperation(MergeOperation{Source: c.Path, Dest: dest, Kind: OpMergeInto})
			continue
		}

		info, err := fsys.Lstat(dest)
		switch {
		case err == nil && info.IsDir():
			plan.AddOperation(MergeOperation{Source: c.Path, Dest: dest, Kind: OpMergeInto})
		case err == nil:
			log.Errorf("cannot merge %s: destination %s exists and is not a directory", c.Path, dest)
			plan.Rejected++
			continue
		case os.IsNotExist(err):
			plan.AddOperation(MergeOperation{Source: c.Path, Dest: dest, Kind: OpRenameOnly})
		default:
			log.Errorf("cannot merge %s: failed to check destination %s: %v", c.Path, dest, err)
			plan.Rejected++
			continue
		}

		claimed[dest] = true
	}

	return plan, nil
}
