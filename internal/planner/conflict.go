package planner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/foldmerge/internal/fsops"
	"github.com/danieljhkim/foldmerge/internal/hash"
)

// Policy decides what happens when a moved file collides with an existing
// destination file.
type Policy string

const (
	// PolicyRename copies the source under a generated unique name.
	PolicyRename Policy = "rename"

	// PolicyOverwrite replaces the destination file with the source file.
	PolicyOverwrite Policy = "overwrite"

	// PolicySkip leaves the source file in place and the destination untouched.
	PolicySkip Policy = "skip"
)

// ParsePolicy validates a policy string.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyRename, PolicyOverwrite, PolicySkip:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown conflict policy %q (want rename, overwrite, or skip)", s)
	}
}

// Resolution is the decision recorded for one colliding file.
type Resolution string

const (
	ResolutionRename    Resolution = "RENAME"
	ResolutionOverwrite Resolution = "OVERWRITE"
	ResolutionSkip      Resolution = "SKIP"
)

// ConflictRecord captures one filename collision and how it was resolved.
// Created lazily during execution; never persisted.
type ConflictRecord struct {
	// RelPath is the file's path relative to the operation's source root.
	RelPath string

	// Source is the absolute path of the colliding source file.
	Source string

	// Dest is the absolute destination path that already exists.
	Dest string

	// Resolution is the applied policy decision.
	Resolution Resolution

	// ResolvedName is the generated unique filename. Set only for RENAME.
	ResolvedName string

	// Identical reports that source and destination have the same content.
	// Informational only; the policy decision is unchanged.
	Identical bool
}

// Resolver decides, per colliding file, how the configured policy applies.
type Resolver struct {
	fs     fsops.FS
	hasher hash.Hasher
	policy Policy
}

// NewResolver creates a Resolver for one run.
func NewResolver(fs fsops.FS, hasher hash.Hasher, policy Policy) *Resolver {
	return &Resolver{fs: fs, hasher: hasher, policy: policy}
}

// Policy returns the configured policy.
func (r *Resolver) Policy() Policy {
	return r.policy
}

// Resolve produces the record for a source file whose destination path
// already exists. Callers must only invoke it on an actual collision;
// non-colliding files move directly.
func (r *Resolver) Resolve(relPath, src, dest string) (*ConflictRecord, error) {
	record := &ConflictRecord{
		RelPath:   relPath,
		Source:    src,
		Dest:      dest,
		Identical: r.sameContent(src, dest),
	}

	switch r.policy {
	case PolicySkip:
		record.Resolution = ResolutionSkip
	case PolicyOverwrite:
		record.Resolution = ResolutionOverwrite
	case PolicyRename:
		name, err := UniqueName(r.fs, filepath.Dir(dest), filepath.Base(dest))
		if err != nil {
			return nil, fmt.Errorf("failed to generate unique name for %s: %w", dest, err)
		}
		record.Resolution = ResolutionRename
		record.ResolvedName = name
	default:
		return nil, fmt.Errorf("unknown conflict policy %q", r.policy)
	}

	return record, nil
}

// sameContent reports whether both paths are regular files with equal
// hashes. Any stat or hash failure just means "not known identical".
func (r *Resolver) sameContent(src, dest string) bool {
	for _, p := range []string{src, dest} {
		info, err := r.fs.Lstat(p)
		if err != nil || !info.Mode().IsRegular() {
			return false
		}
	}
	srcHash, err := r.hasher.HashFile(src)
	if err != nil {
		return false
	}
	destHash, err := r.hasher.HashFile(dest)
	if err != nil {
		return false
	}
	return srcHash == destHash
}

// UniqueName returns a filename that does not exist in dir, formed by
// inserting " (N)" before the extension and incrementing N until free.
func UniqueName(fs fsops.FS, dir, name string) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
		exists, err := fs.Exists(filepath.Join(dir, candidate))
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}
