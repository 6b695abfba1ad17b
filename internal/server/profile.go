package server

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotter/internal/formatter"
	"github.com/desertthunder/spotter/internal/models"
	"github.com/desertthunder/spotter/internal/shared"
	"github.com/desertthunder/spotter/internal/tasks"
)

// ProfileSource loads a profile. [tasks.ProfileLoader] is the production implementation.
type ProfileSource interface {
	Load(ctx context.Context, userID string) *tasks.Profile
}

// ProfileHandler serves one user's profile, reloaded on every request.
type ProfileHandler struct {
	source ProfileSource
	userID string
	logger *log.Logger
}

// NewProfileHandler creates a handler for userID's profile.
func NewProfileHandler(source ProfileSource, userID string, logger *log.Logger) *ProfileHandler {
	return &ProfileHandler{source: source, userID: userID, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *ProfileHandler) Routes() []string {
	return []string{"/", "/profile", "/profile.json"}
}

// ProfileJSON is the JSON form of a profile, as served on /profile.json. Section errors are flattened to their messages.
type ProfileJSON struct {
	UserID          string                `json:"user_id"`
	Offline         bool                  `json:"offline"`
	Server          *models.DebugResponse `json:"server,omitempty"`
	Workouts        []models.Workout      `json:"workouts"`
	WorkoutsError   string                `json:"workouts_error,omitempty"`
	Challenges      []models.Challenge    `json:"challenges"`
	ChallengesError string                `json:"challenges_error,omitempty"`
}

// NewProfileJSON flattens p for encoding. Missing sections encode as empty lists.
func NewProfileJSON(p *tasks.Profile) ProfileJSON {
	body := ProfileJSON{
		UserID:     p.UserID,
		Offline:    p.Offline,
		Server:     p.Server,
		Workouts:   p.Workouts.Items,
		Challenges: p.Challenges.Items,
	}
	if body.Workouts == nil {
		body.Workouts = []models.Workout{}
	}
	if body.Challenges == nil {
		body.Challenges = []models.Challenge{}
	}
	if p.Workouts.Err != nil {
		body.WorkoutsError = p.Workouts.Err.Error()
	}
	if p.Challenges.Err != nil {
		body.ChallengesError = p.Challenges.Err.Error()
	}
	return body
}

// ServeHTTP loads the profile and writes it as HTML, or as JSON on /profile.json.
//
// An offline backend still answers 200: the page carries the offline message.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	profile := h.source.Load(r.Context(), h.userID)

	if r.URL.Path == "/profile.json" {
		data, err := shared.MarshalJSON(NewProfileJSON(profile), true)
		if err != nil {
			h.logger.Error("failed to encode profile", "error", err)
			http.Error(w, "Failed to encode profile", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	page, err := formatter.ProfilePage(profile)
	if err != nil {
		h.logger.Error("failed to render profile", "error", err)
		http.Error(w, "Failed to render profile", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(page))
}
