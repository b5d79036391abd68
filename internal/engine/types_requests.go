package engine

import (
	"github.com/danieljhkim/foldmerge/internal/config"
	"github.com/danieljhkim/foldmerge/internal/report"
)

// RunRequest describes one merge run.
type RunRequest struct {
	// Config is the validated run configuration.
	Config config.Run

	// Sink, when set, receives each log entry as it is produced.
	Sink report.Sink
}
