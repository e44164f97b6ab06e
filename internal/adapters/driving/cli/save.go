package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opengrama/gramasurvey/internal/core/domain"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the draft and sync it if possible",
	Long: `Save the current draft durably on this device and push it to the
server.

The draft is written locally before any network activity, so a failed or
offline push never loses data. With --file, a completed form export is
loaded as the draft first.`,
	RunE: runSave,
}

var saveFile string

func init() {
	saveCmd.Flags().StringVarP(
		&saveFile, "file", "f", "", "Load the draft from a JSON form export before saving")
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, _ []string) error {
	if syncCoordinator == nil {
		return errors.New("sync service not configured")
	}

	ctx := context.Background()

	if saveFile != "" {
		if captureService == nil {
			return errors.New("capture service not configured")
		}
		data, err := os.ReadFile(saveFile)
		if err != nil {
			return fmt.Errorf("read %s: %w", saveFile, err)
		}
		var draft domain.Draft
		if err := json.Unmarshal(data, &draft); err != nil {
			return fmt.Errorf("parse %s: %w", saveFile, err)
		}
		if err := captureService.Replace(ctx, &draft); err != nil {
			return fmt.Errorf("load draft: %w", err)
		}
		cmd.Printf("Loaded draft from %s\n", saveFile)
	}

	state, err := syncCoordinator.Save(ctx)
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	printState(cmd, state)
	return nil
}
