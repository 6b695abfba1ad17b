package main

import (
	"context"
	"errors"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotter/internal/repositories"
	"github.com/desertthunder/spotter/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	if err := shared.ApplyEnv(config, ".env"); err != nil {
		logger.Fatalf("configuration error: %v", err)
	}
	if err := shared.SetLogLevel(logger, config.Log.Level); err != nil {
		logger.Warn("ignoring log level", "error", err)
	}
	// Child loggers copy the level when created, so --verbose must apply before the runner is built.
	if slices.Contains(os.Args[1:], "--verbose") {
		logger.SetLevel(log.DebugLevel)
	}

	db, err := shared.OpenStorage(config.Storage)
	if err != nil {
		logger.Fatalf("failed to open local storage: %v", err)
	}
	defer db.Close()

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: "config.toml",
		Store:      repositories.NewLocalStorage(db),
		Logger:     logger,
	})

	app := &cli.Command{
		Name:    "spotter",
		Usage:   "Workouts, recipes, classes and challenges from the Spotter backend",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if isUserError(err) {
			logger.Warn(err.Error())
			db.Close()
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}

// isUserError reports errors the user can act on; they are printed without the fatal banner.
func isUserError(err error) bool {
	for _, target := range []error{
		shared.ErrValidation,
		shared.ErrNotAuthenticated,
		shared.ErrSessionInvalid,
		shared.ErrCannotConnect,
		shared.ErrAuthFailed,
		shared.ErrMissingArgument,
		shared.ErrInvalidArgument,
		shared.ErrAPIRequest,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
