package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/foldmerge/internal/engine"
	"github.com/danieljhkim/foldmerge/internal/fsops"
)

var (
	mergeFlags   runFlags
	mergeDryRun  bool
	mergeBackup  bool
	mergeLogFile string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <root>",
	Short: "Merge suffixed folders under a root directory",
	Long: `Merge every folder under <root> whose name ends with the suffix into its
unsuffixed sibling, or rename it when no sibling exists.

Nested suffixed folders are handled bottom-up, so children are consolidated
before their parents. Filename collisions follow the --on-conflict policy.
Press Ctrl-C to stop at the next operation boundary; completed operations
stay applied.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := mergeFlags.buildRunConfig(cmd, args[0])
		if err != nil {
			return err
		}
		cfg.DryRun = mergeDryRun
		cfg.Backup = mergeBackup

		ctx, stop := signalContext()
		defer stop()

		eng := newEngine()
		result, err := eng.Run(ctx, &engine.RunRequest{
			Config: cfg,
			Sink:   PrintEntry,
		})
		if err != nil {
			return err
		}

		if mergeLogFile != "" {
			if err := result.Log.Export(fsops.NewRealFS(), mergeLogFile); err != nil {
				return err
			}
			PrintInfo(fmt.Sprintf("log written to %s", mergeLogFile))
		}

		stats := result.Stats
		if result.Plan.IsEmpty() && result.Plan.Rejected == 0 {
			PrintEmptyState("nothing to do")
			return nil
		}

		PrintSection("Summary")
		PrintStats(stats)
		if result.ArchivePath != "" {
			PrintLabelValue("Backup archive", result.ArchivePath)
		}
		fmt.Println()

		switch {
		case result.Cancelled:
			PrintWarning("run cancelled; completed operations stay applied")
			return fmt.Errorf("cancelled after %s", PrintCount(stats.OperationsDone, "operation", "operations"))
		case stats.OperationsFailed > 0:
			return fmt.Errorf("%s failed", PrintCount(stats.OperationsFailed, "operation", "operations"))
		case mergeDryRun:
			PrintSuccess(fmt.Sprintf("dry run: %s simulated", PrintCount(stats.OperationsDone, "operation", "operations")))
		default:
			PrintSuccess(fmt.Sprintf("%s completed", PrintCount(stats.OperationsDone, "operation", "operations")))
		}
		return nil
	},
}

func init() {
	mergeFlags.register(mergeCmd)
	mergeCmd.Flags().BoolVarP(&mergeDryRun, "dry-run", "n", false, "Simulate the run without changing anything")
	mergeCmd.Flags().BoolVarP(&mergeBackup, "backup", "b", false, "Zip the root directory before the first change")
	mergeCmd.Flags().StringVar(&mergeFlags.backupDir, "backup-dir", "", "Directory for backup archives (default: root's parent)")
	mergeCmd.Flags().StringVar(&mergeLogFile, "log-file", "", "Write the full operation log to this file")
}
