// Package scanner discovers merge candidates under a root directory.
//
// The walk is post-order with lexicographically sorted listings, so
// candidates come out deepest first and in a deterministic order: a
// suffixed folder nested inside another suffixed folder is always yielded
// before its ancestor.
package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/foldmerge/internal/fsops"
	"github.com/danieljhkim/foldmerge/internal/report"
)

// Candidate is a folder whose name matches the configured suffix.
// Immutable once produced.
type Candidate struct {
	// Path is the absolute path of the suffixed folder.
	Path string

	// Depth is the nesting level below the root (direct children are 1).
	Depth int

	// BaseName is the folder name with the suffix stripped. Empty when the
	// folder is named exactly the suffix; the planner refuses such candidates.
	BaseName string

	// HasSibling reports whether a directory already exists at the
	// destination path (parent/BaseName) at scan time.
	HasSibling bool
}

// Options controls a scan.
type Options struct {
	// Suffix is the folder-name suffix to match. Case-sensitive unless
	// IgnoreCase is set.
	Suffix string

	// IgnoreCase matches the suffix case-insensitively.
	IgnoreCase bool

	// Exclude lists folder-name glob patterns to skip entirely (the folder
	// and everything beneath it).
	Exclude []string
}

// Scan walks root bottom-up and returns candidates in post-order.
// The root itself is never a candidate. Unreadable directories are skipped
// with a WARN entry; symlinked directories are never traversed or matched.
func Scan(fsys fsops.FS, root string, opts Options, log *report.Log) ([]Candidate, error) {
	root = filepath.Clean(root)
	var candidates []Candidate
	if err := walk(fsys, root, root, 0, opts, log, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func walk(fsys fsops.FS, root, dir string, depth int, opts Options, log *report.Log, out *[]Candidate) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if dir == root {
			return fmt.Errorf("failed to list root directory: %w", err)
		}
		log.Warnf("skipping unreadable directory %s: %v", dir, err)
		return nil
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := fsys.Stat(path)
			if err == nil && info.IsDir() {
				log.Warnf("refusing to traverse symlinked directory %s", path)
			}
			continue
		}
		if !entry.IsDir() {
			continue
		}
		if excluded(entry.Name(), opts.Exclude) {
			continue
		}

		// Children before the folder itself: bottom-up guarantee.
		if err := walk(fsys, root, path, depth+1, opts, log, out); err != nil {
			return err
		}

		base, ok := stripSuffix(entry.Name(), opts)
		if !ok {
			continue
		}

		sibling := filepath.Join(dir, base)
		hasSibling := false
		if base != "" {
			if info, err := fsys.Lstat(sibling); err == nil && info.IsDir() {
				hasSibling = true
			}
		}

		*out = append(*out, Candidate{
			Path:       path,
			Depth:      depth + 1,
			BaseName:   base,
			HasSibling: hasSibling,
		})
	}

	return nil
}

// stripSuffix reports whether name carries the suffix and returns the base.
func stripSuffix(name string, opts Options) (string, bool) {
	if opts.Suffix == "" {
		return "", false
	}
	if opts.IgnoreCase {
		if !strings.HasSuffix(strings.ToLower(name), strings.ToLower(opts.Suffix)) {
			return "", false
		}
	} else if !strings.HasSuffix(name, opts.Suffix) {
		return "", false
	}
	return name[:len(name)-len(opts.Suffix)], true
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
		if name == pattern {
			return true
		}
	}
	return false
}
