package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/desertthunder/spotter/internal/formatter"
	"github.com/desertthunder/spotter/internal/server"
	"github.com/desertthunder/spotter/internal/shared"
	"github.com/desertthunder/spotter/internal/tasks"
	"github.com/urfave/cli/v3"
)

func (r *Runner) profileUser(cmd *cli.Command) string {
	if user := cmd.String("user"); user != "" {
		return user
	}
	return r.config.Profile.UserID
}

// ProfileShow loads and prints the workout and challenge history.
//
// Section failures are part of the output, not errors.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	opts, stop := r.finderOpts()
	defer stop()

	profile := tasks.NewProfileLoader(r.spotter, opts).Load(ctx, r.profileUser(cmd))

	if cmd.Bool("json") {
		return r.writeJSON(server.NewProfileJSON(profile), true)
	}
	if cmd.Bool("html") {
		page, err := formatter.ProfileHTML(profile)
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", page)
	}
	return r.writePlain("%s", formatter.ProfileText(profile))
}

// ProfileServe serves the rendered profile page until interrupted.
//
// Every page load fetches fresh data from the backend.
func (r *Runner) ProfileServe(ctx context.Context, cmd *cli.Command) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.PreviewAddr()
	}
	userID := r.profileUser(cmd)
	logger := shared.WithLogger(r.logger, "component", "preview")

	loader := tasks.NewProfileLoader(r.spotter, tasks.FinderOpts{Logger: r.logger})
	router := server.NewMuxRouter()
	router.Use(server.Recover(logger), server.Logging(logger))
	router.Handler(server.NewProfileHandler(loader, userID, logger))

	url := fmt.Sprintf("http://%s/", addr)
	ready := func() {
		r.writePlain("Serving profile for %s at %s (Ctrl+C to stop)\n", userID, url)
		if cmd.Bool("no-browser") {
			return
		}
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("could not open browser automatically", "error", err)
		}
	}

	return server.Serve(ctx, addr, router, logger, ready)
}
