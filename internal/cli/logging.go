package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// cliLogger logs engine events to stderr in verbose mode and discards them otherwise
func cliLogger(cmd *cobra.Command) *slog.Logger {
	if cfg != nil && cfg.Verbose {
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
