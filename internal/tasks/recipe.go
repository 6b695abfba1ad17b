package tasks

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotter/internal/models"
)

// RecipeFinder is the find-recipes page: one meal type and one fitness goal.
type RecipeFinder struct {
	client   RecipeClient
	logger   *log.Logger
	progress chan<- ProgressUpdate

	mu       sync.Mutex
	mealType string
	goal     string

	*outcome[*models.Recipe]
}

func NewRecipeFinder(client RecipeClient, opts FinderOpts) *RecipeFinder {
	return &RecipeFinder{
		client:   client,
		logger:   opts.logger(),
		progress: opts.Progress,
		outcome:  newOutcome[*models.Recipe](LabelGetRecipes),
	}
}

// SelectMealType replaces the meal type. Values are lower-cased.
func (f *RecipeFinder) SelectMealType(mealType string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mealType = strings.ToLower(strings.TrimSpace(mealType))
}

// SelectFitnessGoal replaces the goal. "Build Muscle" and "build_muscle" are the same goal.
func (f *RecipeFinder) SelectFitnessGoal(goal string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.goal = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(goal)), " ", "_")
}

// BuildRequest checks the meal type first, then the goal.
func (f *RecipeFinder) BuildRequest() (models.RecipeRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.mealType == "" {
		return models.RecipeRequest{}, invalid(MsgSelectMealType)
	}
	if f.goal == "" {
		return models.RecipeRequest{}, invalid(MsgSelectFitnessGoal)
	}
	return models.RecipeRequest{MealType: f.mealType, FitnessGoal: f.goal}, nil
}

// Submit requests a recipe. A nil recipe with a nil error means nothing matched.
func (f *RecipeFinder) Submit(ctx context.Context) (*models.Recipe, error) {
	req, err := f.BuildRequest()
	if err != nil {
		return nil, f.reject(err)
	}
	if err := f.begin(); err != nil {
		return nil, err
	}
	sendProgress(f.progress, submitUpdate("recipe"))
	f.logger.Debug("requesting recipe", "meal_type", req.MealType, "fitness_goal", req.FitnessGoal)

	resp, err := f.client.RecipeSuggestion(ctx, req)
	var recipe *models.Recipe
	if err == nil && resp != nil {
		recipe = resp.Recipe
	}
	return f.finish(recipe, err)
}

func (f *RecipeFinder) State() FlowState {
	s, _, _ := f.snapshot()
	return s
}

func (f *RecipeFinder) Err() error {
	_, _, err := f.snapshot()
	return err
}

func (f *RecipeFinder) Control() *Control { return f.control }
