// Package cli provides the cobra command tree driving the capture engine.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opengrama/gramasurvey/internal/core/ports/driven"
	"github.com/opengrama/gramasurvey/internal/core/ports/driving"
	"github.com/opengrama/gramasurvey/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root. Commands check for nil so a
// partially wired binary fails with a clear message instead of a panic.
var (
	captureService  driving.CaptureService
	syncCoordinator driving.SyncCoordinator
	authService     driving.AuthService
	syncLogStore    driven.SyncLogStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gramasurvey",
	Short: "Offline household survey capture",
	Long: `Capture household survey data in the field and sync it to the
panchayat server when connectivity allows.

Drafts are saved on this device first. A draft is only removed after the
server confirms it was received, so patchy connectivity never loses data.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// SetServices wires the service implementations into the command tree.
func SetServices(
	capture driving.CaptureService,
	coordinator driving.SyncCoordinator,
	auth driving.AuthService,
	syncLog driven.SyncLogStore,
) {
	captureService = capture
	syncCoordinator = coordinator
	authService = auth
	syncLogStore = syncLog
}

// background runs long-lived tasks (connectivity probing, auto resync)
// for the TUI session. Set by the composition root; one-shot commands
// never start it.
var background func(ctx context.Context)

// SetBackground wires the background tasks started by long-running
// commands.
func SetBackground(f func(ctx context.Context)) {
	background = f
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
