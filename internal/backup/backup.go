// Package backup creates pre-run zip snapshots of the managed tree.
//
// The archive is the run's only safety net: merge execution never rolls
// back, so backup failure is fatal and aborts the run before any mutation.
package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/danieljhkim/foldmerge/internal/clock"
)

// Manager writes full-tree snapshots of a root directory.
type Manager struct {
	clock clock.Clock

	// dir overrides where archives are written; empty means the root's parent.
	dir string
}

// NewManager creates a Manager. dir may be empty.
func NewManager(clk clock.Clock, dir string) *Manager {
	return &Manager{clock: clk, dir: dir}
}

// ArchivePath returns the deterministic archive path for root at the
// current clock time: <dir>/<rootname>_backup_<YYYYMMDD_HHMMSS>.zip.
func (m *Manager) ArchivePath(root string) (string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root path: %w", err)
	}

	name := filepath.Base(rootAbs)
	if name == "." || name == string(filepath.Separator) {
		name = "backup"
	}

	dir := m.dir
	if dir == "" {
		dir = filepath.Dir(rootAbs)
	}

	stamp := m.clock.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_backup_%s.zip", name, stamp)), nil
}

// Create snapshots root into a zip archive and returns the archive path.
// The archive lands outside root (the parent directory or the configured
// backup dir), never inside a folder that will be merged. Any failure
// removes the partial archive and is returned to the caller.
func (m *Manager) Create(root string) (string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root path: %w", err)
	}

	archivePath, err := m.ArchivePath(root)
	if err != nil {
		return "", err
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return "", fmt.Errorf("failed to create archive file: %w", err)
	}

	if err := writeArchive(f, rootAbs); err != nil {
		_ = f.Close()
		_ = os.Remove(archivePath)
		return "", err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(archivePath)
		return "", fmt.Errorf("failed to close archive file: %w", err)
	}

	return archivePath, nil
}

func writeArchive(f *os.File, rootAbs string) error {
	zw := zip.NewWriter(f)

	err := filepath.WalkDir(rootAbs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}

		rel, err := filepath.Rel(rootAbs, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			// Explicit directory entries so empty directories survive the
			// round trip.
			if _, err := zw.Create(rel + "/"); err != nil {
				return fmt.Errorf("failed to add directory %s: %w", rel, err)
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return fmt.Errorf("failed to build header for %s: %w", rel, err)
		}
		hdr.Name = rel
		hdr.Method = zip.Deflate

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", rel, err)
		}

		src, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		if _, err := io.Copy(w, src); err != nil {
			_ = src.Close()
			return fmt.Errorf("failed to archive %s: %w", rel, err)
		}
		return src.Close()
	})
	if err != nil {
		_ = zw.Close()
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}
