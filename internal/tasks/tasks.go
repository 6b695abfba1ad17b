package tasks

import (
	"context"

	"github.com/desertthunder/spotter/internal/models"
)

// MuscleLister looks up the muscles of one body part.
type MuscleLister interface {
	Muscles(ctx context.Context, bodyPart string) ([]string, error)
}

// WorkoutClient is the backend surface used by [WorkoutFinder].
type WorkoutClient interface {
	MuscleLister
	WeightliftingSuggestions(ctx context.Context, req models.WeightliftingRequest) (*models.RoutineResponse, error)
}

// RecipeClient is the backend surface used by [RecipeFinder].
type RecipeClient interface {
	RecipeSuggestion(ctx context.Context, req models.RecipeRequest) (*models.RecipeResponse, error)
}

// ClassClient is the backend surface used by [ClassFinder].
type ClassClient interface {
	ClassSuggestions(ctx context.Context, req models.ClassRequest) (*models.ClassResponse, error)
}

// WorkoutLogClient is the backend surface used by [WorkoutLogger].
type WorkoutLogClient interface {
	LogWorkout(ctx context.Context, req models.LogWorkoutRequest) (*models.LogWorkoutResponse, error)
}

// ChallengeClient is the backend surface used by [ChallengeBuilder] and [QuickChallenge].
type ChallengeClient interface {
	CreateChallenge(ctx context.Context, req models.CreateChallengeRequest) (*models.CreateChallengeResponse, error)
	SaveChallenge(ctx context.Context, req models.QuickChallengeRequest) (*models.QuickChallengeResponse, error)
}

// ProfileClient is the backend surface used by [ProfileLoader].
type ProfileClient interface {
	Debug(ctx context.Context) (*models.DebugResponse, error)
	Workouts(ctx context.Context, userID string) ([]models.Workout, error)
	Challenges(ctx context.Context, userID string) ([]models.Challenge, error)
}

// Body parts offered by the workout finder.
var BodyParts = []string{"Arms", "Legs", "Chest", "Back", "Shoulders", "Abs"}

// Meal types and fitness goals offered by the recipe finder.
var (
	MealTypes    = []string{"breakfast", "lunch", "dinner", "dessert", "snack"}
	FitnessGoals = []string{"lose_weight", "gain_weight", "build_muscle"}
)

// ClassTypes offered by the class finder.
var ClassTypes = []string{"BOXING", "CARDIO", "CYCLING", "DANCE", "PILATES", "YOGA", "STRENGTH", "HIIT", "SPINNING"}
