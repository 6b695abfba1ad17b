package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FlexString accepts either a JSON string or a JSON number and keeps its text form.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// Privacy values shared by workouts and challenges.
const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

// Class locations accepted by the class suggestion endpoint.
const (
	LocationOnCampus  = "on_campus"
	LocationOffCampus = "off_campus"
)

// DefaultClassDistance is the only search radius the backend understands.
const DefaultClassDistance = "5 miles"

// DefaultRoutineID is attached to a challenge when the user opts to include a routine.
const DefaultRoutineID = 1

// WeightliftingRequest is the body of POST /weightlifting-suggestions.
type WeightliftingRequest struct {
	BodyParts []string `json:"body_parts"`
	Muscles   []string `json:"muscles"`
}

// Exercise is one entry of a suggested routine.
type Exercise struct {
	Exercise string     `json:"exercise"`
	Sets     FlexString `json:"sets"`
	Reps     FlexString `json:"reps"`
	RestTime FlexString `json:"rest_time"`
}

// RoutineResponse is returned by POST /weightlifting-suggestions.
type RoutineResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Routine []Exercise `json:"routine"`
}

// MusclesResponse is returned by GET /muscles.
type MusclesResponse struct {
	Muscles []string `json:"muscles"`
}

// MuscleOption is a selectable muscle; Value is the backend identifier and Label its display form.
type MuscleOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// NewMuscleOption builds an option whose label is the value split on "_", each word capitalized
// and re-joined with spaces ("lower_back" -> "Lower Back").
func NewMuscleOption(value string) MuscleOption {
	words := strings.Split(value, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return MuscleOption{Value: value, Label: strings.Join(words, " ")}
}

// ClassRequest is the body of POST /exercise-class-suggestions.
type ClassRequest struct {
	LikedClasses    []string `json:"liked_classes"`
	DislikedClasses []string `json:"disliked_classes"`
	Distance        string   `json:"distance"`
	Location        string   `json:"location"`
}

// ClassSuggestion is a single suggested exercise class.
type ClassSuggestion struct {
	Name       string `json:"name"`
	Location   string `json:"location"`
	Distance   string `json:"distance"`
	Time       string `json:"time"`
	Instructor string `json:"instructor"`
}

// ClassResponse is returned by POST /exercise-class-suggestions.
type ClassResponse struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message,omitempty"`
	Suggestions []ClassSuggestion `json:"suggestions"`
}

// RecipeRequest is the body of POST /recipe-suggestion.
type RecipeRequest struct {
	MealType    string `json:"meal_type"`
	FitnessGoal string `json:"fitness_goal"`
}

// NutritionInfo holds per-serving macros; values are free text ("25-35g").
type NutritionInfo struct {
	Calories FlexString `json:"calories"`
	Protein  FlexString `json:"protein"`
	Carbs    FlexString `json:"carbs"`
	Fats     FlexString `json:"fats"`
}

// Recipe is a suggested meal.
type Recipe struct {
	Name          string        `json:"name"`
	MealType      string        `json:"meal_type"`
	FitnessGoal   string        `json:"fitness_goal"`
	Ingredients   []string      `json:"ingredients"`
	Instructions  []string      `json:"instructions"`
	NutritionInfo NutritionInfo `json:"nutrition_info"`
}

// RecipeResponse is returned by POST /recipe-suggestion. Recipe is nil when nothing matched.
type RecipeResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Recipe  *Recipe `json:"recipe"`
}

// LogWorkoutRequest is the body of POST /log-workout.
type LogWorkoutRequest struct {
	Description    string `json:"description"`
	Privacy        string `json:"privacy"`
	PhotoURL       string `json:"photo_url"`
	PersonalRecord string `json:"personal_record"`
	UserID         string `json:"user_id"`
	SavedToProfile bool   `json:"saved_to_profile"`
}

// Workout is a logged workout as stored by the backend.
type Workout struct {
	ID             FlexString `json:"id"`
	Description    string     `json:"description"`
	Privacy        string     `json:"privacy"`
	PhotoURL       string     `json:"photo_url"`
	PersonalRecord string     `json:"personal_record"`
	Timestamp      string     `json:"timestamp"`
	UserID         string     `json:"user_id"`
	SavedToProfile bool       `json:"saved_to_profile"`
}

// LogWorkoutResponse is returned by POST /log-workout.
type LogWorkoutResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Workout Workout `json:"workout"`
}

// WorkoutsResponse is returned by GET /workouts.
type WorkoutsResponse struct {
	Workouts []Workout `json:"workouts"`
}

// CreateChallengeRequest is the body of POST /create-challenge.
//
// RoutineID is null unless a routine is attached.
type CreateChallengeRequest struct {
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Description string   `json:"description"`
	Privacy     string   `json:"privacy"`
	Goals       []string `json:"goals"`
	Friends     []string `json:"friends"`
	RoutineID   *int     `json:"routine_id"`
	UserID      string   `json:"user_id"`
}

// Challenge is a challenge as stored by the backend.
type Challenge struct {
	ID          FlexString `json:"id"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Description string     `json:"description"`
	Privacy     string     `json:"privacy"`
	Goals       []string   `json:"goals"`
	Friends     []string   `json:"friends"`
	RoutineID   *int       `json:"routine_id"`
	Timestamp   string     `json:"timestamp"`
	UserID      string     `json:"user_id"`
}

// CreateChallengeResponse is returned by POST /create-challenge.
type CreateChallengeResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Challenge Challenge `json:"challenge"`
}

// ChallengesResponse is returned by GET /challenges.
type ChallengesResponse struct {
	Success    bool        `json:"success"`
	Challenges []Challenge `json:"challenges"`
}

// QuickChallengeRequest is the body of POST /challenges used by the quick challenge form.
type QuickChallengeRequest struct {
	Title      string   `json:"title"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	Goals      []string `json:"goals"`
	Invited    []string `json:"invited"`
	Visibility string   `json:"visibility"`
	Desc       string   `json:"desc"`
}

// QuickChallengeResponse is returned by POST /challenges.
type QuickChallengeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// DebugResponse is returned by GET /debug and doubles as a health probe.
type DebugResponse struct {
	Status          string `json:"status"`
	TotalWorkouts   int    `json:"total_workouts"`
	TotalChallenges int    `json:"total_challenges"`
}

// Credentials is the body of POST /login and POST /register.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by POST /login and POST /register.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	Email   string `json:"email"`
}

// VerifyResponse is returned by GET /verify for a live session.
type VerifyResponse struct {
	Valid bool   `json:"valid"`
	Email string `json:"email,omitempty"`
}

// AuthSession is the locally persisted session. An empty Token means signed out.
type AuthSession struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Active reports whether a token is present.
func (s AuthSession) Active() bool { return s.Token != "" }
