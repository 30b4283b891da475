// Package app wires the driven adapters and core services behind the CLI.
package app

import (
	"fmt"
	"path/filepath"

	configfile "github.com/custodia-labs/st-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/st-cli/internal/adapters/driven/manifest"
	"github.com/custodia-labs/st-cli/internal/adapters/driven/probe"
	"github.com/custodia-labs/st-cli/internal/adapters/driven/process"
	"github.com/custodia-labs/st-cli/internal/adapters/driven/providers"
	storagefile "github.com/custodia-labs/st-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/st-cli/internal/adapters/driven/watcher"
	"github.com/custodia-labs/st-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/st-cli/internal/core/services"
	"github.com/custodia-labs/st-cli/internal/logger"
)

// Build wires services for one invocation rooted at opts.Dir.
func Build(opts cli.Options) (*cli.Services, error) {
	configStore, err := configfile.NewConfigStore(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	versionPath := settings.VersionFile
	if !filepath.IsAbs(versionPath) {
		versionPath = filepath.Join(opts.Dir, versionPath)
	}
	versionService := services.NewVersionService(storagefile.NewVersionStore(versionPath))

	var runnerOpts []process.Option
	if opts.ChildStdin != nil {
		runnerOpts = append(runnerOpts, process.WithStdin(opts.ChildStdin))
	}
	if opts.ChildStdout != nil {
		runnerOpts = append(runnerOpts, process.WithStdout(opts.ChildStdout))
	}

	registry := providers.NewRegistry(providers.Deps{
		Dir:       opts.Dir,
		Runner:    process.NewRunner(runnerOpts...),
		Probe:     probe.New(),
		Manifests: manifest.NewReader(),
		Versions:  versionService,
		Settings:  settings,
	})

	dispatcherOpts := []services.DispatcherOption{
		services.WithSettings(settings),
		services.WithVersionRecorder(versionService),
	}
	if opts.Interactive != nil {
		dispatcherOpts = append(dispatcherOpts, services.WithInteractive(opts.Interactive))
	}
	if opts.OnEvent != nil {
		dispatcherOpts = append(dispatcherOpts, services.WithEventHandler(opts.OnEvent))
	}
	dispatcher := services.NewDispatcher(registry.Providers(), dispatcherOpts...)

	watchService := services.NewWatchService(
		dispatcher,
		watcher.New(opts.Dir, watcher.DefaultIgnores, watcher.WithIgnoredFiles(versionPath)),
		services.DefaultMinInterval,
		services.DefaultSettle,
	)

	logger.Debug("project %s, config %s, versions %s", opts.Dir, configStore.Path(), versionPath)

	return &cli.Services{
		Dispatcher: dispatcher,
		Versions:   versionService,
		Settings:   settingsService,
		Watch:      watchService,
		Django:     registry.Django,
	}, nil
}
