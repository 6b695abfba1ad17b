package tasks

import (
	"context"
	"encoding/base64"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotter/internal/models"
)

// LoggedSuffix is appended to the server's message after a workout is saved.
const LoggedSuffix = " - You can now view it on your Profile page!"

// WorkoutLogger is the log-workout page.
type WorkoutLogger struct {
	client   WorkoutLogClient
	logger   *log.Logger
	progress chan<- ProgressUpdate
	userID   string
	readFile func(string) ([]byte, error)

	mu             sync.Mutex
	description    string
	personalRecord string
	mediaPath      string

	*outcome[*models.LogWorkoutResponse]
}

// NewWorkoutLogger creates an empty form logging as userID.
func NewWorkoutLogger(client WorkoutLogClient, userID string, opts FinderOpts) *WorkoutLogger {
	return &WorkoutLogger{
		client:   client,
		logger:   opts.logger(),
		progress: opts.Progress,
		userID:   userID,
		readFile: os.ReadFile,
		outcome:  newOutcome[*models.LogWorkoutResponse](LabelPostToFeed),
	}
}

func (w *WorkoutLogger) SetDescription(s string) {
	w.mu.Lock()
	w.description = strings.TrimSpace(s)
	w.mu.Unlock()
}

func (w *WorkoutLogger) SetPersonalRecord(s string) {
	w.mu.Lock()
	w.personalRecord = strings.TrimSpace(s)
	w.mu.Unlock()
}

// AttachMedia sets the photo or video file sent with the workout. It is read at submit time.
func (w *WorkoutLogger) AttachMedia(path string) {
	w.mu.Lock()
	w.mediaPath = strings.TrimSpace(path)
	w.mu.Unlock()
}

// BuildRequest validates the form. Posting to the feed is public; saving to the profile is private.
func (w *WorkoutLogger) BuildRequest(saveToProfile bool) (models.LogWorkoutRequest, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.description == "" {
		return models.LogWorkoutRequest{}, invalid(MsgDescribeWorkout)
	}

	req := models.LogWorkoutRequest{
		Description:    w.description,
		Privacy:        models.PrivacyPublic,
		PersonalRecord: w.personalRecord,
		UserID:         w.userID,
		SavedToProfile: saveToProfile,
	}
	if saveToProfile {
		req.Privacy = models.PrivacyPrivate
	}
	if w.mediaPath != "" {
		req.PhotoURL = w.mediaURL(w.mediaPath)
	}
	return req, nil
}

// mediaURL inlines the file as a base64 data URI, falling back to its bare name when it cannot be read.
func (w *WorkoutLogger) mediaURL(path string) string {
	data, err := w.readFile(path)
	if err != nil {
		w.logger.Warn("failed to read media file, sending its name instead", "path", path, "error", err)
		return filepath.Base(path)
	}
	return DataURI(filepath.Ext(path), data)
}

// DataURI encodes data as "data:<mime>;base64,<payload>". The type comes from ext, or is sniffed.
func DataURI(ext string, data []byte) string {
	mimeType := mime.TypeByExtension(strings.ToLower(ext))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// PostToFeed logs the workout publicly.
func (w *WorkoutLogger) PostToFeed(ctx context.Context) (*models.LogWorkoutResponse, error) {
	return w.submit(ctx, false)
}

// SaveToProfile logs the workout privately and marks it for the profile page.
func (w *WorkoutLogger) SaveToProfile(ctx context.Context) (*models.LogWorkoutResponse, error) {
	return w.submit(ctx, true)
}

func (w *WorkoutLogger) submit(ctx context.Context, saveToProfile bool) (*models.LogWorkoutResponse, error) {
	req, err := w.BuildRequest(saveToProfile)
	if err != nil {
		return nil, w.reject(err)
	}
	if err := w.begin(); err != nil {
		return nil, err
	}
	sendProgress(w.progress, submitUpdate("workout log"))

	resp, err := w.client.LogWorkout(ctx, req)
	if err == nil {
		w.reset()
	}
	return w.finish(resp, err)
}

func (w *WorkoutLogger) reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.description = ""
	w.personalRecord = ""
	w.mediaPath = ""
}

// Description returns the current description; it is empty after a successful submit.
func (w *WorkoutLogger) Description() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.description
}

func (w *WorkoutLogger) State() FlowState {
	s, _, _ := w.snapshot()
	return s
}

func (w *WorkoutLogger) Err() error {
	_, _, err := w.snapshot()
	return err
}

func (w *WorkoutLogger) Control() *Control { return w.control }

// LoggedMessage is the confirmation shown after a successful log.
func LoggedMessage(resp *models.LogWorkoutResponse) string {
	msg := "Workout logged successfully"
	if resp != nil && resp.Message != "" {
		msg = resp.Message
	}
	return msg + LoggedSuffix
}
