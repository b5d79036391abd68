package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/foldmerge/internal/fsops"
	"github.com/danieljhkim/foldmerge/internal/hash"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"rename", PolicyRename, false},
		{"overwrite", PolicyOverwrite, false},
		{"skip", PolicySkip, false},
		{"", "", true},
		{"RENAME", "", true},
		{"merge", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePolicy(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePolicy(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestResolver_Resolve_Policies(t *testing.T) {
	tests := []struct {
		policy       Policy
		wantRes      Resolution
		wantResolved string
	}{
		{PolicySkip, ResolutionSkip, ""},
		{PolicyOverwrite, ResolutionOverwrite, ""},
		{PolicyRename, ResolutionRename, "file (1).txt"},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "src", "file.txt")
			dest := filepath.Join(dir, "dst", "file.txt")
			writeFile(t, src, "source")
			writeFile(t, dest, "destination")

			r := NewResolver(fsops.NewRealFS(), hash.NewSHA256Hasher(), tt.policy)
			record, err := r.Resolve("file.txt", src, dest)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}

			if record.Resolution != tt.wantRes {
				t.Errorf("Resolution = %s, want %s", record.Resolution, tt.wantRes)
			}
			if record.ResolvedName != tt.wantResolved {
				t.Errorf("ResolvedName = %q, want %q", record.ResolvedName, tt.wantResolved)
			}
			if record.Identical {
				t.Error("Identical = true for differing content")
			}
		})
	}
}

func TestResolver_Resolve_IdenticalContent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "file.txt")
	dest := filepath.Join(dir, "dst", "file.txt")
	writeFile(t, src, "same bytes")
	writeFile(t, dest, "same bytes")

	r := NewResolver(fsops.NewRealFS(), hash.NewSHA256Hasher(), PolicyRename)
	record, err := r.Resolve("file.txt", src, dest)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !record.Identical {
		t.Error("Identical = false for equal content")
	}
	// The policy decision is unchanged by the annotation.
	if record.Resolution != ResolutionRename {
		t.Errorf("Resolution = %s, want %s", record.Resolution, ResolutionRename)
	}
}

func TestUniqueName_IncrementsUntilFree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), "0")
	writeFile(t, filepath.Join(dir, "notes (1).txt"), "1")
	writeFile(t, filepath.Join(dir, "notes (2).txt"), "2")

	got, err := UniqueName(fsops.NewRealFS(), dir, "notes.txt")
	if err != nil {
		t.Fatalf("UniqueName() error = %v", err)
	}
	if got != "notes (3).txt" {
		t.Errorf("UniqueName() = %q, want %q", got, "notes (3).txt")
	}
}

func TestUniqueName_NoExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Makefile"), "all:")

	got, err := UniqueName(fsops.NewRealFS(), dir, "Makefile")
	if err != nil {
		t.Fatalf("UniqueName() error = %v", err)
	}
	if got != "Makefile (1)" {
		t.Errorf("UniqueName() = %q, want %q", got, "Makefile (1)")
	}
}

func TestUniqueName_ExtensionPreserved(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "archive.tar.gz"), "x")

	got, err := UniqueName(fsops.NewRealFS(), dir, "archive.tar.gz")
	if err != nil {
		t.Fatalf("UniqueName() error = %v", err)
	}
	// Only the final extension moves; this matches how the marker is
	// inserted before ".gz".
	if got != "archive.tar (1).gz" {
		t.Errorf("UniqueName() = %q, want %q", got, "archive.tar (1).gz")
	}
}
