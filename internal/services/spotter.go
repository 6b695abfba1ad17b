package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/spotter/internal/models"
)

// Spotter backend endpoints, relative to the base URL.
const (
	EndpointVerify        = "/verify"
	EndpointLogout        = "/logout"
	EndpointLogin         = "/login"
	EndpointRegister      = "/register"
	EndpointMuscles       = "/muscles"
	EndpointWeightlifting = "/weightlifting-suggestions"
	EndpointClasses       = "/exercise-class-suggestions"
	EndpointRecipe        = "/recipe-suggestion"
	EndpointLogWorkout    = "/log-workout"
	EndpointWorkouts      = "/workouts"
	EndpointCreate        = "/create-challenge"
	EndpointChallenges    = "/challenges"
	EndpointDebug         = "/debug"
)

// SpotterService exposes the Spotter backend as typed methods.
type SpotterService struct {
	api *APIService
}

// NewSpotterService wraps api.
func NewSpotterService(api *APIService) *SpotterService {
	return &SpotterService{api: api}
}

// API returns the underlying client for untyped requests.
func (s *SpotterService) API() *APIService { return s.api }

// Verify checks the current session. Any non-2xx status means the session is invalid.
//
// Only the status matters; a body that does not decode is ignored.
func (s *SpotterService) Verify(ctx context.Context) (*models.VerifyResponse, error) {
	resp, err := s.api.Raw(ctx, http.MethodGet, EndpointVerify, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, newAPIError(resp)
	}

	var verify models.VerifyResponse
	_ = json.Unmarshal(resp.Body, &verify)
	return &verify, nil
}

// Logout ends the session server-side.
func (s *SpotterService) Logout(ctx context.Context) error {
	return s.api.Post(ctx, EndpointLogout, nil, nil)
}

// Login exchanges credentials for a session token.
func (s *SpotterService) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := s.api.Post(ctx, EndpointLogin, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns a session token.
func (s *SpotterService) Register(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := s.api.Post(ctx, EndpointRegister, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Muscles lists the muscles trainable for a body part. The part is sent lower-cased.
func (s *SpotterService) Muscles(ctx context.Context, bodyPart string) ([]string, error) {
	var resp models.MusclesResponse
	endpoint := EndpointMuscles + "?body_part=" + url.QueryEscape(strings.ToLower(bodyPart))
	if err := s.api.Get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Muscles, nil
}

// WeightliftingSuggestions requests a routine for the selected body parts and muscles.
func (s *SpotterService) WeightliftingSuggestions(ctx context.Context, req models.WeightliftingRequest) (*models.RoutineResponse, error) {
	var resp models.RoutineResponse
	if err := s.api.Post(ctx, EndpointWeightlifting, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClassSuggestions requests exercise classes matching the preferences.
func (s *SpotterService) ClassSuggestions(ctx context.Context, req models.ClassRequest) (*models.ClassResponse, error) {
	var resp models.ClassResponse
	if err := s.api.Post(ctx, EndpointClasses, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RecipeSuggestion requests a recipe for a meal type and fitness goal.
func (s *SpotterService) RecipeSuggestion(ctx context.Context, req models.RecipeRequest) (*models.RecipeResponse, error) {
	var resp models.RecipeResponse
	if err := s.api.Post(ctx, EndpointRecipe, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LogWorkout records a workout.
func (s *SpotterService) LogWorkout(ctx context.Context, req models.LogWorkoutRequest) (*models.LogWorkoutResponse, error) {
	var resp models.LogWorkoutResponse
	if err := s.api.Post(ctx, EndpointLogWorkout, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Workouts lists the workouts a user saved to their profile, newest first.
func (s *SpotterService) Workouts(ctx context.Context, userID string) ([]models.Workout, error) {
	var resp models.WorkoutsResponse
	if err := s.api.Get(ctx, EndpointWorkouts+"?user_id="+url.QueryEscape(userID), &resp); err != nil {
		return nil, err
	}
	return resp.Workouts, nil
}

// Challenges lists the challenges a user created, newest first.
func (s *SpotterService) Challenges(ctx context.Context, userID string) ([]models.Challenge, error) {
	var resp models.ChallengesResponse
	if err := s.api.Get(ctx, EndpointChallenges+"?user_id="+url.QueryEscape(userID), &resp); err != nil {
		return nil, err
	}
	return resp.Challenges, nil
}

// CreateChallenge creates a challenge from the full challenge form.
func (s *SpotterService) CreateChallenge(ctx context.Context, req models.CreateChallengeRequest) (*models.CreateChallengeResponse, error) {
	var resp models.CreateChallengeResponse
	if err := s.api.Post(ctx, EndpointCreate, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveChallenge stores a challenge from the quick challenge form.
func (s *SpotterService) SaveChallenge(ctx context.Context, req models.QuickChallengeRequest) (*models.QuickChallengeResponse, error) {
	var resp models.QuickChallengeResponse
	if err := s.api.Post(ctx, EndpointChallenges, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Debug reports server status; it is used as a reachability probe.
func (s *SpotterService) Debug(ctx context.Context) (*models.DebugResponse, error) {
	var resp models.DebugResponse
	if err := s.api.Get(ctx, EndpointDebug, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
