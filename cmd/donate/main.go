// Command donate extracts and donates data download packages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/donation-cli/internal/adapters/driven/archive/zipfs"
	"github.com/custodia-labs/donation-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/donation-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/donation-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driving"
	"github.com/custodia-labs/donation-cli/internal/core/services"
	"github.com/custodia-labs/donation-cli/internal/extractors/facebook"
	"github.com/custodia-labs/donation-cli/internal/extractors/tiktok"
	"github.com/custodia-labs/donation-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx)
	_ = logger.Sync()
	stop()
	os.Exit(code)
}

// run wires the services and executes the command line. Cobra reports
// command errors itself, so only wiring errors are printed here.
func run(ctx context.Context) int {
	cleanup, err := configure()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	defer cleanup()

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}

func configure() (func(), error) {
	home, err := file.DefaultDir()
	if err != nil {
		return nil, err
	}
	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	opener := zipfs.NewOpener(0)
	registry := services.NewExtractorRegistry(
		tiktok.New(opener, tiktok.Options{Window: settings.Window, SessionGap: settings.SessionGap}),
		facebook.New(opener, 0),
	)
	extraction := services.NewExtractionService(registry, opener)

	dataDir := settings.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(home, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening donation store: %w", err)
	}
	logger.Debug("donations stored in %s", store.Path())

	cli.SetVersion(version)
	cli.Configure(cli.Services{
		Extraction: extraction,
		Registry:   registry,
		Donations:  services.NewDonationService(store.DonationStore()),
		Settings:   settingsService,
		NewScript: func(sessionID string) (driving.DonationScript, error) {
			script, err := services.NewScript(sessionID, services.PlatformFlows(registry, extraction))
			if err != nil {
				return nil, err
			}
			return script, nil
		},
	})

	return func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing donation store: %v", err)
		}
	}, nil
}
