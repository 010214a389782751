// Command sigplace places signature boxes on PDF pages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/sigplace/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sigplace/internal/adapters/driven/pdf/pdfcpu"
	"github.com/custodia-labs/sigplace/internal/adapters/driven/signing/httpapi"
	"github.com/custodia-labs/sigplace/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sigplace/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sigplace/internal/adapters/driven/watch/fswatch"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/cli"
	"github.com/custodia-labs/sigplace/internal/core/ports/driven"
	"github.com/custodia-labs/sigplace/internal/core/services"
	"github.com/custodia-labs/sigplace/internal/logger"
)

// version is set via -ldflags at build time.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// bootstrap is the composition root: it picks adapters for the global
// flags and hands the resulting services to the CLI.
func bootstrap(opts cli.Options) (*cli.Services, func() error, error) {
	configStore, sessionStore, closeStore, err := openStores(opts)
	if err != nil {
		return nil, nil, err
	}

	settingsService := services.NewSettingsService(configStore)
	placementService := services.NewPlacementService(pdfcpu.NewLoader(), sessionStore, settingsService)

	var submitter driven.Submitter
	if settings, err := settingsService.Get(); err == nil && settings.API.IsConfigured() {
		client, err := httpapi.NewClient(settings.API.BaseURL, settings.API.RatePerSecond)
		if err != nil {
			logger.Warn("signing API disabled: %v", err)
		} else {
			logger.Debug("signing API: %s", settings.API.BaseURL)
			submitter = client
		}
	}

	return &cli.Services{
		Placement:  placementService,
		Submission: services.NewSubmissionService(sessionStore, submitter),
		Settings:   settingsService,
		Watcher:    fswatch.NewWatcher(fswatch.DefaultDebounce),
	}, closeStore, nil
}

// openStores returns the config and session stores. The cleanup closes
// whatever was opened.
func openStores(opts cli.Options) (driven.ConfigStore, driven.SessionStore, func() error, error) {
	noop := func() error { return nil }
	if opts.Memory {
		logger.Debug("storage: memory")
		return memory.NewConfigStore(), memory.NewSessionStore(), noop, nil
	}

	configStore, err := file.NewConfigStore(opts.DataDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening config: %w", err)
	}

	dataDir := ""
	if opts.DataDir != "" {
		dataDir = filepath.Join(opts.DataDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening session store: %w", err)
	}
	logger.Debug("storage: %s", store.Path())

	return configStore, store.SessionStore(), store.Close, nil
}
