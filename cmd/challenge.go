package main

import (
	"context"

	"github.com/desertthunder/spotter/internal/formatter"
	"github.com/desertthunder/spotter/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ChallengeCreate builds a challenge from flags and submits it.
func (r *Runner) ChallengeCreate(ctx context.Context, cmd *cli.Command) error {
	opts, stop := r.finderOpts()
	defer stop()

	builder := tasks.NewChallengeBuilder(r.spotter, r.config.Profile.UserID, opts)
	builder.SetStartDate(cmd.String("start"))
	builder.SetEndDate(cmd.String("end"))
	builder.SetDescription(cmd.String("description"))
	if privacy := cmd.String("privacy"); privacy != "" {
		if err := builder.SetPrivacy(privacy); err != nil {
			return err
		}
	}
	builder.AttachRoutine(cmd.Bool("routine"))
	for _, goal := range cmd.StringSlice("goal") {
		builder.AddGoal(goal)
	}
	for _, friend := range cmd.StringSlice("friend") {
		builder.AddFriend(friend)
	}

	resp, err := builder.Submit(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(resp, true)
	}
	if cmd.Bool("html") {
		card, err := formatter.ChallengeCard(resp.Challenge)
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", card)
	}

	r.writePlain("✓ Challenge created\n")
	return r.writePlain("%s", formatter.ChallengeText(resp.Challenge))
}

// ChallengeSave saves a quick challenge.
func (r *Runner) ChallengeSave(ctx context.Context, cmd *cli.Command) error {
	quick := tasks.QuickChallenge{
		Title:       cmd.String("title"),
		Start:       cmd.String("start"),
		End:         cmd.String("end"),
		Goal:        cmd.String("goal"),
		Description: cmd.String("description"),
		Invited:     cmd.StringSlice("invite"),
		Private:     cmd.Bool("private"),
	}

	r.logger.Info("saving challenge", "title", quick.Request().Title)
	resp, err := quick.Save(ctx, r.spotter)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(resp, true)
	}

	msg := resp.Message
	if msg == "" {
		msg = "Challenge saved"
	}
	return r.writePlain("✓ %s\n", msg)
}
