package fsops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRealFS_Exists(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	exists, err := fs.Exists(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true for missing path")
	}

	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	exists, err = fs.Exists(path)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false for existing path")
	}
}

func TestRealFS_ReadDir_Sorted(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	// Create out of lexical order
	for _, name := range []string{"zebra", "apple", "mango"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
	}

	entries, err := fs.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	want := []string{"apple", "mango", "zebra"}
	if len(entries) != len(want) {
		t.Fatalf("ReadDir() returned %d entries, want %d", len(entries), len(want))
	}
	for i, entry := range entries {
		if entry.Name() != want[i] {
			t.Errorf("entry[%d] = %q, want %q", i, entry.Name(), want[i])
		}
	}
}

func TestRealFS_Move_File(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "sub", "dst.txt")
	if err := os.WriteFile(src, []byte("payload"), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	if err := fs.Move(src, dst); err != nil {
		t.Fatalf("Move() error = %v", err)
	}

	if _, err := os.Lstat(src); !os.IsNotExist(err) {
		t.Error("source still exists after Move")
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read destination: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("destination content = %q, want %q", data, "payload")
	}
}

func TestRealFS_Rename_Directory(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()

	src := filepath.Join(dir, "old")
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0755); err != nil {
		t.Fatalf("failed to create source tree: %v", err)
	}

	dst := filepath.Join(dir, "new")
	if err := fs.Rename(src, dst); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}

	info, err := os.Lstat(filepath.Join(dst, "nested"))
	if err != nil {
		t.Fatalf("nested dir missing after rename: %v", err)
	}
	if !info.IsDir() {
		t.Error("nested entry is not a directory")
	}
}

func TestRealFS_AtomicWrite(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "out.log")

	if err := fs.AtomicWrite(path, []byte("line1\nline2\n"), 0644); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != "line1\nline2\n" {
		t.Errorf("content = %q, want %q", data, "line1\nline2\n")
	}

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("failed to list dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after write, got %d", len(entries))
	}
}

func TestRealFS_AtomicWrite_Overwrite(t *testing.T) {
	fs := NewRealFS()
	path := filepath.Join(t.TempDir(), "out.txt")

	if err := fs.AtomicWrite(path, []byte("first"), 0644); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}
	if err := fs.AtomicWrite(path, []byte("second"), 0644); err != nil {
		t.Fatalf("AtomicWrite() overwrite error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}
}
