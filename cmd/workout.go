package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spotter/internal/formatter"
	"github.com/desertthunder/spotter/internal/models"
	"github.com/desertthunder/spotter/internal/shared"
	"github.com/desertthunder/spotter/internal/tasks"
	"github.com/urfave/cli/v3"
)

// WorkoutMuscles lists the muscles the backend knows for one body part.
func (r *Runner) WorkoutMuscles(ctx context.Context, cmd *cli.Command) error {
	part := strings.TrimSpace(cmd.StringArg("part"))
	if part == "" {
		return fmt.Errorf("%w: body part is required", shared.ErrMissingArgument)
	}

	muscles, err := r.spotter.Muscles(ctx, part)
	if err != nil {
		return err
	}

	options := make([]models.MuscleOption, 0, len(muscles))
	for _, m := range muscles {
		options = append(options, models.NewMuscleOption(m))
	}

	if cmd.Bool("json") {
		return r.writeJSON(options, true)
	}
	r.writePlainHeader(fmt.Sprintf("Muscles: %s", part))
	return r.writePlain("%s", formatter.MusclesText(options))
}

// WorkoutSuggest runs the new-workout flow: body parts, then muscles, then a routine request.
//
// Body parts are toggled in flag order, so naming a part twice deselects it.
func (r *Runner) WorkoutSuggest(ctx context.Context, cmd *cli.Command) error {
	opts, stop := r.finderOpts()
	defer stop()

	finder := tasks.NewWorkoutFinder(r.spotter, opts)
	for _, part := range cmd.StringSlice("part") {
		if part = strings.TrimSpace(part); part != "" {
			finder.Toggle(part)
		}
	}

	if muscles := cmd.StringSlice("muscle"); len(muscles) > 0 {
		finder.RefreshMuscles(ctx)
		for _, m := range muscles {
			if _, err := finder.ToggleMuscle(strings.TrimSpace(m)); err != nil {
				return err
			}
		}
	}

	r.logger.Info("requesting routine", "body_parts", finder.BodyParts(), "muscles", finder.Muscles())
	routine, err := finder.Submit(ctx)
	if err != nil {
		return err
	}

	return r.emit(cmd, routine,
		func() string { return formatter.RoutineText(routine) },
		func() (string, error) { return formatter.RoutineHTML(routine) },
	)
}

// WorkoutLog posts a workout to the feed, or saves it privately with --save.
func (r *Runner) WorkoutLog(ctx context.Context, cmd *cli.Command) error {
	opts, stop := r.finderOpts()
	defer stop()

	logger := tasks.NewWorkoutLogger(r.spotter, r.config.Profile.UserID, opts)
	logger.SetDescription(cmd.String("description"))
	logger.SetPersonalRecord(cmd.String("pr"))
	if media := cmd.String("media"); media != "" {
		logger.AttachMedia(media)
	}

	var resp *models.LogWorkoutResponse
	var err error
	if cmd.Bool("save") {
		resp, err = logger.SaveToProfile(ctx)
	} else {
		resp, err = logger.PostToFeed(ctx)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(resp, true)
	}
	if cmd.Bool("html") {
		card, err := formatter.WorkoutCard(resp.Workout)
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", card)
	}

	r.writePlain("✓ %s\n", tasks.LoggedMessage(resp))
	return r.writePlain("%s", formatter.WorkoutText(resp.Workout))
}
