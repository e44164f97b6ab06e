package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sign-in and sync status",
	RunE:  runStatus,
}

var statusHistory int

func init() {
	statusCmd.Flags().IntVar(
		&statusHistory, "history", 0, "Also show the last N synced households")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if authService == nil || syncCoordinator == nil {
		return errors.New("services not configured")
	}

	ctx := context.Background()

	if authService.Authenticated(ctx) {
		session, err := authService.Session(ctx)
		if err == nil {
			cmd.Printf("Signed in as %s\n", session.Username)
		} else {
			cmd.Println("Signed in")
		}
	} else {
		cmd.Println("Not signed in")
	}

	state := syncCoordinator.State(ctx)
	if state.PendingDraft {
		cmd.Println("Draft: pending sync")
	} else {
		cmd.Println("Draft: none pending")
	}
	if state.Message != "" {
		cmd.Printf("Last result: %s\n", state.Message)
	}
	if !state.LastSynced.IsZero() {
		cmd.Printf("Last synced: %s\n", state.LastSynced.Local().Format(time.RFC822))
	}

	if statusHistory > 0 && syncLogStore != nil {
		entries, err := syncLogStore.List(ctx, statusHistory)
		if err != nil {
			return fmt.Errorf("read sync history: %w", err)
		}
		if len(entries) > 0 {
			cmd.Println()
			cmd.Println("Recent syncs:")
			for _, e := range entries {
				cmd.Printf("  %s  household %s\n",
					e.SyncedAt.Local().Format(time.RFC822), e.HouseholdID)
			}
		}
	}

	return nil
}
