package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/desertthunder/spotter/internal/models"
)

// fakeClient implements every client interface of this package.
type fakeClient struct {
	mu sync.Mutex

	muscles    map[string][]string
	muscleErrs map[string]error
	lookups    []string

	routine    *models.RoutineResponse
	recipe     *models.RecipeResponse
	classes    *models.ClassResponse
	logged     *models.LogWorkoutResponse
	challenge  *models.CreateChallengeResponse
	quick      *models.QuickChallengeResponse
	debug      *models.DebugResponse
	workouts   []models.Workout
	challenges []models.Challenge

	err           error
	debugErr      error
	workoutsErr   error
	challengesErr error

	// block, when set, holds submissions until closed.
	block chan struct{}

	calls    int
	requests []any
}

func (f *fakeClient) record(req any) {
	f.mu.Lock()
	f.calls++
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeClient) lastRequest() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

func (f *fakeClient) Muscles(_ context.Context, part string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, part)
	if err := f.muscleErrs[part]; err != nil {
		return nil, err
	}
	return f.muscles[strings.ToLower(part)], nil
}

func (f *fakeClient) WeightliftingSuggestions(_ context.Context, req models.WeightliftingRequest) (*models.RoutineResponse, error) {
	f.record(req)
	if f.err != nil {
		return nil, f.err
	}
	return f.routine, nil
}

func (f *fakeClient) RecipeSuggestion(_ context.Context, req models.RecipeRequest) (*models.RecipeResponse, error) {
	f.record(req)
	if f.err != nil {
		return nil, f.err
	}
	return f.recipe, nil
}

func (f *fakeClient) ClassSuggestions(_ context.Context, req models.ClassRequest) (*models.ClassResponse, error) {
	f.record(req)
	if f.err != nil {
		return nil, f.err
	}
	return f.classes, nil
}

func (f *fakeClient) LogWorkout(_ context.Context, req models.LogWorkoutRequest) (*models.LogWorkoutResponse, error) {
	f.record(req)
	if f.err != nil {
		return nil, f.err
	}
	return f.logged, nil
}

func (f *fakeClient) CreateChallenge(_ context.Context, req models.CreateChallengeRequest) (*models.CreateChallengeResponse, error) {
	f.record(req)
	if f.err != nil {
		return nil, f.err
	}
	return f.challenge, nil
}

func (f *fakeClient) SaveChallenge(_ context.Context, req models.QuickChallengeRequest) (*models.QuickChallengeResponse, error) {
	f.record(req)
	if f.err != nil {
		return nil, f.err
	}
	return f.quick, nil
}

func (f *fakeClient) Debug(context.Context) (*models.DebugResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.debugErr != nil {
		return nil, f.debugErr
	}
	return f.debug, nil
}

func (f *fakeClient) Workouts(_ context.Context, userID string) ([]models.Workout, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.workoutsErr != nil {
		return nil, f.workoutsErr
	}
	return f.workouts, nil
}

func (f *fakeClient) Challenges(_ context.Context, userID string) ([]models.Challenge, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.challengesErr != nil {
		return nil, f.challengesErr
	}
	return f.challenges, nil
}

var errBackend = errors.New("backend exploded")

func errNotFound(part string) error { return fmt.Errorf("no muscles for %s", part) }
