package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/opengrama/gramasurvey/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Shows the current draft, its section fill state and the sync status.

Controls:
  ↑/k, ↓/j - Scroll sections
  s        - Save and sync
  r        - Refresh
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if captureService == nil || syncCoordinator == nil || authService == nil {
		return errors.New("services not configured")
	}

	// Panic recovery with a stack trace: a crashed TUI otherwise leaves a
	// garbled terminal and no diagnostics.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// The TUI is the one long-running surface, so connectivity probing and
	// auto resync run for its lifetime.
	if background != nil {
		bgCtx, bgCancel := context.WithCancel(context.Background())
		defer bgCancel()
		go background(bgCtx)
	}

	app, err := tui.NewApp(&tui.Ports{
		Capture: captureService,
		Sync:    syncCoordinator,
		Auth:    authService,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
