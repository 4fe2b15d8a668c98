package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gradlekit/scriptdefs/internal/contributor"
	"github.com/gradlekit/scriptdefs/internal/runnables/defcache"
	"github.com/gradlekit/scriptdefs/internal/runnables/settingswatcher"
	"github.com/gradlekit/scriptdefs/internal/settings"
	"github.com/robbyt/go-supervisor/supervisor"
	"github.com/urfave/cli/v3"
)

var watchCmd = &cli.Command{
	Name:  "watch",
	Usage: "Keep definition caches warm and follow settings changes until interrupted",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "settings",
			Aliases:  []string{"s"},
			Usage:    "Path to the TOML settings file",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Usage:   "Project root to watch (repeatable; defaults to every linked project)",
		},
		&cli.StringFlag{
			Name:  "script",
			Usage: "Risor descriptor script to load definitions with, instead of jar manifests",
		},
	},
	Action: watchAction,
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	settingsPath := cmd.String("settings")
	logger := slog.Default()

	projects := cmd.StringSlice("project")
	if len(projects) == 0 {
		var err error
		projects, err = linkedProjects(settingsPath)
		if err != nil {
			return cli.Exit(err, 1)
		}
	}
	if len(projects) == 0 {
		return cli.Exit("no linked projects to watch", 1)
	}

	ldr, err := buildLoader(cmd, logger.Handler())
	if err != nil {
		return cli.Exit(err, 1)
	}

	provider := settings.NewFileProvider(settingsPath)
	registry := contributor.NewRegistry()

	var runnables []supervisor.Runnable
	for _, projectRoot := range projects {
		contrib, err := contributor.New(projectRoot, provider, ldr, nil)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to create contributor for %s: %w", projectRoot, err), 1)
		}

		cache, err := defcache.NewRunner(
			contrib,
			defcache.WithLogger(logger.With("component", "defcache", "project", projectRoot)),
			defcache.WithContext(ctx),
		)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to create cache runner for %s: %w", projectRoot, err), 1)
		}

		contrib.SetRequester(cache)
		if err := registry.Register(contrib); err != nil {
			return cli.Exit(fmt.Errorf("failed to register contributor: %w", err), 1)
		}

		go logDefinitionChanges(ctx, logger, projectRoot, cache)
		runnables = append(runnables, cache)
	}

	watcher, err := settingswatcher.NewRunner(
		settingsPath,
		registry,
		settingswatcher.WithLogger(logger.With("component", "settingswatcher")),
		settingswatcher.WithContext(ctx),
	)
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to create settings watcher: %w", err), 1)
	}
	runnables = append(runnables, watcher)

	super, err := supervisor.New(
		supervisor.WithRunnables(runnables...),
		supervisor.WithLogHandler(logger.Handler()),
		supervisor.WithContext(ctx),
	)
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to create supervisor: %w", err), 1)
	}
	if err := super.Run(); err != nil {
		return cli.Exit(fmt.Errorf("failed to run watcher: %w", err), 1)
	}

	logger.Info("Watch shutdown complete")
	return nil
}

// linkedProjects returns every project root recorded in the settings file.
func linkedProjects(settingsPath string) ([]string, error) {
	file, err := settings.FromFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	roots := make([]string, 0, len(file.Projects))
	for i := range file.Projects {
		roots = append(roots, file.Projects[i].ProjectRoot)
	}
	return roots, nil
}

// logDefinitionChanges follows a cache runner's broadcast channel and logs
// each replacement definition set.
func logDefinitionChanges(
	ctx context.Context,
	logger *slog.Logger,
	projectRoot string,
	cache *defcache.Runner,
) {
	ch := cache.GetDefinitionsChan()
	for {
		select {
		case defs, ok := <-ch:
			if !ok {
				return
			}
			logger.Info("Definition set updated",
				"project", projectRoot,
				"definitions", len(defs),
			)
		case <-ctx.Done():
			return
		}
	}
}
