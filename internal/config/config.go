// Package config manages run configuration for foldmerge.
//
// A run is fully described by a Run value, validated once before the engine
// starts. Defaults for the optional knobs (conflict policy, exclude
// patterns, backup directory) can come from a YAML file; flags override
// file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/foldmerge/internal/planner"
)

// Run is the immutable configuration for a single engine run.
type Run struct {
	// Root is the directory whose subfolders are consolidated.
	Root string

	// Suffix is the folder-name suffix to match and strip. Must be non-empty.
	Suffix string

	// IgnoreCase matches the suffix case-insensitively.
	IgnoreCase bool

	// DryRun simulates the run without mutating the filesystem.
	DryRun bool

	// Backup creates a zip snapshot of Root before any mutation.
	Backup bool

	// BackupDir overrides where the archive is written (default: Root's parent).
	BackupDir string

	// Policy decides what happens when a moved file collides with an
	// existing destination file.
	Policy planner.Policy

	// Exclude lists folder-name glob patterns the scanner skips entirely.
	Exclude []string
}

// Validate checks the configuration before a run starts.
func (r *Run) Validate() error {
	if r.Root == "" {
		return fmt.Errorf("root path must not be empty")
	}
	info, err := os.Stat(r.Root)
	if err != nil {
		return fmt.Errorf("root path %q: %w", r.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path %q is not a directory", r.Root)
	}
	if r.Suffix == "" {
		return fmt.Errorf("suffix must not be empty")
	}
	if _, err := planner.ParsePolicy(string(r.Policy)); err != nil {
		return err
	}
	if r.BackupDir != "" {
		info, err := os.Stat(r.BackupDir)
		if err != nil {
			return fmt.Errorf("backup dir %q: %w", r.BackupDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("backup dir %q is not a directory", r.BackupDir)
		}
	}
	return nil
}

// File holds defaults loaded from the optional YAML config file.
type File struct {
	// OnConflict is the default conflict policy (rename, overwrite, skip).
	OnConflict string `yaml:"on_conflict"`

	// Exclude lists folder-name patterns the scanner skips.
	Exclude []string `yaml:"exclude"`

	// BackupDir is where backup archives are written.
	BackupDir string `yaml:"backup_dir"`
}

// DefaultFile returns the built-in defaults used when no config file exists.
func DefaultFile() *File {
	return &File{
		OnConflict: string(planner.PolicyRename),
		Exclude: []string{
			".git",
			".svn",
			"node_modules",
		},
	}
}

// DefaultFilePath returns the config file location: the FOLDMERGE_CONFIG
// environment variable when set, otherwise .foldmerge.yaml in the current
// directory.
func DefaultFilePath() string {
	if path := os.Getenv("FOLDMERGE_CONFIG"); path != "" {
		return path
	}
	return ".foldmerge.yaml"
}

// LoadFile reads defaults from path. A missing file is not an error; the
// built-in defaults are returned.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultFile(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	f := DefaultFile()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if f.Exclude == nil {
		f.Exclude = []string{}
	}
	return f, nil
}
