package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/opengrama/gramasurvey/internal/core/domain"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push the pending draft to the server",
	Long: `Re-attempt the push of a draft saved while offline or after a
failure. Does nothing when no draft is pending.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if syncCoordinator == nil {
		return errors.New("sync service not configured")
	}

	state, err := syncCoordinator.SyncPending(context.Background())
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	printState(cmd, state)
	return nil
}

// printState renders a sync state snapshot for the operator.
func printState(cmd *cobra.Command, state domain.SyncState) {
	switch state.Status {
	case domain.SyncSynced:
		cmd.Println("Synced.")
	case domain.SyncOffline:
		cmd.Printf("Offline: %s\n", state.Message)
	case domain.SyncError:
		cmd.Printf("Sync error: %s\n", state.Message)
	case domain.SyncSyncing:
		cmd.Println("Syncing...")
	default:
		if state.PendingDraft {
			cmd.Println("Draft pending sync.")
		} else {
			cmd.Println("Nothing to sync.")
		}
	}

	if !state.LastSynced.IsZero() {
		cmd.Printf("Last synced: %s\n", state.LastSynced.Local().Format(time.RFC822))
	}
}
