package main

import (
	"context"

	"github.com/desertthunder/spotter/internal/formatter"
	"github.com/desertthunder/spotter/internal/tasks"
	"github.com/urfave/cli/v3"
)

// RecipeSuggest asks for a recipe matching a meal type and fitness goal.
func (r *Runner) RecipeSuggest(ctx context.Context, cmd *cli.Command) error {
	opts, stop := r.finderOpts()
	defer stop()

	finder := tasks.NewRecipeFinder(r.spotter, opts)
	finder.SelectMealType(cmd.String("meal"))
	finder.SelectFitnessGoal(cmd.String("goal"))

	recipe, err := finder.Submit(ctx)
	if err != nil {
		return err
	}

	return r.emit(cmd, recipe,
		func() string { return formatter.RecipeText(recipe) },
		func() (string, error) { return formatter.RecipeHTML(recipe) },
	)
}
