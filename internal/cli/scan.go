package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/foldmerge/internal/engine"
	"github.com/danieljhkim/foldmerge/internal/planner"
	"github.com/danieljhkim/foldmerge/internal/report"
)

var scanFlags runFlags

var scanCmd = &cobra.Command{
	Use:   "scan <root>",
	Short: "Preview the merge plan without changing anything",
	Long: `Scan <root> for folders matching the suffix and print the plan that
'merge' would execute. Nothing on disk is touched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := scanFlags.buildRunConfig(cmd, args[0])
		if err != nil {
			return err
		}
		cfg.DryRun = true

		ctx, stop := signalContext()
		defer stop()

		eng := newEngine()
		result, err := eng.Run(ctx, &engine.RunRequest{Config: cfg})
		if err != nil {
			return err
		}

		if result.Plan.IsEmpty() && result.Plan.Rejected == 0 {
			PrintEmptyState(fmt.Sprintf("no folders found with suffix %q", cfg.Suffix))
			return nil
		}

		PrintSection("Planned Operations")
		for _, op := range result.Plan.Operations {
			switch op.Kind {
			case planner.OpMergeInto:
				PrintInfo(fmt.Sprintf("  merge   %s -> %s", op.Source, op.Dest))
			case planner.OpRenameOnly:
				PrintInfo(fmt.Sprintf("  rename  %s -> %s", op.Source, op.Dest))
			}
		}
		fmt.Println()
		PrintInfo(PrintCount(len(result.Plan.Operations), "operation planned", "operations planned"))
		if result.Plan.Rejected > 0 {
			PrintWarning(fmt.Sprintf("%s rejected:", PrintCount(result.Plan.Rejected, "candidate", "candidates")))
			for _, e := range result.Log.Entries() {
				if e.Severity == report.SeverityError {
					PrintError(e.Message)
				}
			}
		}
		return nil
	},
}

func init() {
	scanFlags.register(scanCmd)
}
