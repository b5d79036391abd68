package backup

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/foldmerge/internal/clock"
)

func fixedClock() *clock.FixedClock {
	return clock.NewFixedClock(time.Date(2024, 6, 1, 14, 5, 9, 0, time.UTC))
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0755); err != nil {
				t.Fatalf("failed to create dir %s: %v", rel, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create parent of %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer func() {
		_ = r.Close()
	}()

	contents := make(map[string]string)
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, "/") {
			contents[f.Name] = ""
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s in archive: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s in archive: %v", f.Name, err)
		}
		contents[f.Name] = string(data)
	}
	return contents
}

func TestManager_ArchivePath(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "MyApp")
	if err := os.Mkdir(root, 0755); err != nil {
		t.Fatalf("failed to create root: %v", err)
	}

	m := NewManager(fixedClock(), "")
	got, err := m.ArchivePath(root)
	if err != nil {
		t.Fatalf("ArchivePath() error = %v", err)
	}

	want := filepath.Join(parent, "MyApp_backup_20240601_140509.zip")
	if got != want {
		t.Errorf("ArchivePath() = %q, want %q", got, want)
	}
}

func TestManager_ArchivePath_CustomDir(t *testing.T) {
	parent := t.TempDir()
	backups := t.TempDir()
	root := filepath.Join(parent, "data")
	if err := os.Mkdir(root, 0755); err != nil {
		t.Fatalf("failed to create root: %v", err)
	}

	m := NewManager(fixedClock(), backups)
	got, err := m.ArchivePath(root)
	if err != nil {
		t.Fatalf("ArchivePath() error = %v", err)
	}
	if filepath.Dir(got) != backups {
		t.Errorf("archive dir = %q, want %q", filepath.Dir(got), backups)
	}
}

func TestManager_Create_RoundTrip(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "project")
	writeTree(t, root, map[string]string{
		"a.txt":          "alpha",
		"sub/b.txt":      "beta",
		"sub/deep/c.txt": "gamma",
		"empty/":         "",
	})

	m := NewManager(fixedClock(), "")
	archive, err := m.Create(root)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Archive lands outside the root
	if filepath.Dir(archive) != parent {
		t.Errorf("archive written to %q, want parent %q", filepath.Dir(archive), parent)
	}

	contents := readArchive(t, archive)
	wantFiles := map[string]string{
		"a.txt":          "alpha",
		"sub/b.txt":      "beta",
		"sub/deep/c.txt": "gamma",
	}
	for name, want := range wantFiles {
		got, ok := contents[name]
		if !ok {
			t.Errorf("archive missing %s", name)
			continue
		}
		if got != want {
			t.Errorf("archive %s = %q, want %q", name, got, want)
		}
	}
	if _, ok := contents["empty/"]; !ok {
		t.Error("archive missing empty directory entry")
	}
}

func TestManager_Create_MissingRoot(t *testing.T) {
	m := NewManager(fixedClock(), "")
	if _, err := m.Create(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root, got nil")
	}
}

func TestManager_Create_FailureLeavesNoPartialArchive(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "gone")
	if err := os.Mkdir(root, 0755); err != nil {
		t.Fatalf("failed to create root: %v", err)
	}

	m := NewManager(fixedClock(), filepath.Join(parent, "no-such-dir"))
	if _, err := m.Create(root); err == nil {
		t.Fatal("expected error for unwritable backup dir, got nil")
	}

	entries, err := os.ReadDir(parent)
	if err != nil {
		t.Fatalf("failed to list parent: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".zip") {
			t.Errorf("partial archive left behind: %s", e.Name())
		}
	}
}
