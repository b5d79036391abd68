package planner

// OpKind distinguishes how a candidate folder reaches its destination.
type OpKind string

const (
	// OpMergeInto merges the source tree into an existing destination folder.
	OpMergeInto OpKind = "merge_into_existing"

	// OpRenameOnly renames the source folder to the destination path.
	OpRenameOnly OpKind = "rename_only"
)

// MergeOperation is a single planned folder consolidation.
type MergeOperation struct {
	// Source is the absolute path of the suffixed folder.
	Source string

	// Dest is the absolute sibling path with the suffix stripped.
	Dest string

	// Kind is how the folder reaches Dest.
	Kind OpKind
}

// MergePlan is the ordered list of operations for one run. Order follows
// the scanner's bottom-up candidate order: a folder nested inside another
// suffixed folder is always handled before its ancestor.
type MergePlan struct {
	Operations []MergeOperation

	// Rejected counts candidates excluded during planning (destination
	// collisions with non-directories).
	Rejected int
}

// NewMergePlan creates an empty MergePlan.
func NewMergePlan() *MergePlan {
	return &MergePlan{Operations: []MergeOperation{}}
}

// AddOperation appends an operation to the plan.
func (p *MergePlan) AddOperation(op MergeOperation) {
	p.Operations = append(p.Operations, op)
}

// IsEmpty reports whether the plan contains no operations.
func (p *MergePlan) IsEmpty() bool {
	return len(p.Operations) == 0
}
