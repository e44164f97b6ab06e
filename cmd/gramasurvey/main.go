// Command gramasurvey is the offline household survey capture tool.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	configfile "github.com/opengrama/gramasurvey/internal/adapters/driven/config/file"
	"github.com/opengrama/gramasurvey/internal/adapters/driven/connectivity"
	"github.com/opengrama/gramasurvey/internal/adapters/driven/remote"
	"github.com/opengrama/gramasurvey/internal/adapters/driven/storage/sqlite"
	"github.com/opengrama/gramasurvey/internal/adapters/driving/cli"
	"github.com/opengrama/gramasurvey/internal/core/services"
)

// version is overridden at build time via ldflags.
var version = "dev"

// defaultBaseURL points at the panchayat survey server; override with the
// api.url config key.
const defaultBaseURL = "https://survey.opengrama.org"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err := sqlite.NewStore(config.GetString("data.dir"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	drafts := store.DraftStore()
	sessions := store.SessionStore()
	syncLog := store.SyncLogStore()

	baseURL := config.GetString("api.url")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	var timeout time.Duration
	if secs := config.GetInt("api.timeout_seconds"); secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	household, err := remote.NewClient(remote.Config{
		BaseURL: baseURL,
		Timeout: timeout,
	}, sessions)
	if err != nil {
		return fmt.Errorf("creating API client: %w", err)
	}

	monitor := connectivity.NewMonitor(household, 0)

	capture := services.NewCapture(drafts)
	coordinator := services.NewCoordinator(capture, drafts, sessions, syncLog, household, monitor)
	auth := services.NewAuth(sessions, household, coordinator)

	cli.SetServices(capture, coordinator, auth, syncLog)
	cli.SetVersion(version)
	cli.SetBackground(func(ctx context.Context) {
		// Reload the config when it is edited on disk.
		if err := config.Watch(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "config watch: %v\n", err)
		}
		coordinator.WatchConnectivity(ctx)
		monitor.Start(ctx)
	})

	return cli.Execute()
}
