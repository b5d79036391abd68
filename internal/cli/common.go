package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/foldmerge/internal/clock"
	"github.com/danieljhkim/foldmerge/internal/config"
	"github.com/danieljhkim/foldmerge/internal/engine"
	"github.com/danieljhkim/foldmerge/internal/fsops"
	"github.com/danieljhkim/foldmerge/internal/hash"
	"github.com/danieljhkim/foldmerge/internal/planner"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() *engine.Engine {
	return engine.New(fsops.NewRealFS(), hash.NewSHA256Hasher(), &clock.RealClock{})
}

// signalContext returns a context cancelled on the first interrupt. A second
// interrupt kills the process via the default handler.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// runFlags holds the flag values shared by merge and scan.
type runFlags struct {
	suffix     string
	ignoreCase bool
	onConflict string
	exclude    []string
	backupDir  string
	configPath string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.suffix, "suffix", "s", "", "Folder-name suffix to match and strip (required)")
	cmd.Flags().BoolVar(&f.ignoreCase, "ignore-case", false, "Match the suffix case-insensitively")
	cmd.Flags().StringVar(&f.onConflict, "on-conflict", "", "Filename conflict policy: rename, overwrite, or skip")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "Folder-name patterns to skip (repeatable)")
	cmd.Flags().StringVar(&f.configPath, "config", "", "Config file path (default: $FOLDMERGE_CONFIG or .foldmerge.yaml)")
	_ = cmd.MarkFlagRequired("suffix")
}

// buildRunConfig merges config-file defaults with flag values. Flags the
// user set explicitly win over file values.
func (f *runFlags) buildRunConfig(cmd *cobra.Command, root string) (config.Run, error) {
	path := f.configPath
	if path == "" {
		path = config.DefaultFilePath()
	}
	file, err := config.LoadFile(path)
	if err != nil {
		return config.Run{}, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return config.Run{}, fmt.Errorf("failed to resolve root path: %w", err)
	}

	run := config.Run{
		Root:       absRoot,
		Suffix:     f.suffix,
		IgnoreCase: f.ignoreCase,
		Policy:     planner.Policy(file.OnConflict),
		Exclude:    file.Exclude,
		BackupDir:  file.BackupDir,
	}
	if cmd.Flags().Changed("on-conflict") {
		run.Policy = planner.Policy(f.onConflict)
	}
	if cmd.Flags().Changed("exclude") {
		run.Exclude = f.exclude
	}
	if f.backupDir != "" {
		run.BackupDir = f.backupDir
	}
	return run, nil
}
