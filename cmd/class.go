package main

import (
	"context"

	"github.com/desertthunder/spotter/internal/formatter"
	"github.com/desertthunder/spotter/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ClassFind suggests fitness classes for a location and set of class types.
func (r *Runner) ClassFind(ctx context.Context, cmd *cli.Command) error {
	opts, stop := r.finderOpts()
	defer stop()

	finder := tasks.NewClassFinder(r.spotter, opts)
	if err := finder.SetLocation(cmd.String("location")); err != nil {
		return err
	}
	finder.SetClassTypes(cmd.StringSlice("type"))

	classes, err := finder.Submit(ctx)
	if err != nil {
		return err
	}

	return r.emit(cmd, classes,
		func() string { return formatter.ClassesText(classes) },
		func() (string, error) { return formatter.ClassesHTML(classes) },
	)
}
