package tasks

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotter/internal/models"
)

// ClassFinder is the find-class page: a location and any number of class types.
type ClassFinder struct {
	client   ClassClient
	logger   *log.Logger
	progress chan<- ProgressUpdate

	mu       sync.Mutex
	location string
	types    *OrderedSet[string, string]

	*outcome[[]models.ClassSuggestion]
}

// NewClassFinder creates a finder defaulting to on-campus classes.
func NewClassFinder(client ClassClient, opts FinderOpts) *ClassFinder {
	return &ClassFinder{
		client:   client,
		logger:   opts.logger(),
		progress: opts.Progress,
		location: models.LocationOnCampus,
		types:    NewStringSet(),
		outcome:  newOutcome[[]models.ClassSuggestion](LabelFindClass),
	}
}

// SetLocation picks on_campus or off_campus.
func (f *ClassFinder) SetLocation(location string) error {
	location = strings.ToLower(strings.TrimSpace(location))
	if location != models.LocationOnCampus && location != models.LocationOffCampus {
		return invalid(MsgInvalidLocation)
	}
	f.mu.Lock()
	f.location = location
	f.mu.Unlock()
	return nil
}

// ToggleClassType adds or removes a class type and reports whether it is now selected.
func (f *ClassFinder) ToggleClassType(classType string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.types.Toggle(strings.ToUpper(strings.TrimSpace(classType)))
}

// SetClassTypes replaces the selection, dropping blanks and duplicates.
func (f *ClassFinder) SetClassTypes(types []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types.Clear()
	for _, t := range types {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			f.types.Add(t)
		}
	}
}

// BuildRequest never fails: an empty selection asks for popular classes.
func (f *ClassFinder) BuildRequest() models.ClassRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.ClassRequest{
		LikedClasses:    f.types.Values(),
		DislikedClasses: []string{},
		Distance:        models.DefaultClassDistance,
		Location:        f.location,
	}
}

// Submit requests class suggestions.
func (f *ClassFinder) Submit(ctx context.Context) ([]models.ClassSuggestion, error) {
	req := f.BuildRequest()
	if err := f.begin(); err != nil {
		return nil, err
	}
	sendProgress(f.progress, submitUpdate("classes"))
	f.logger.Debug("requesting classes", "location", req.Location, "types", req.LikedClasses)

	resp, err := f.client.ClassSuggestions(ctx, req)
	var suggestions []models.ClassSuggestion
	if err == nil && resp != nil {
		suggestions = resp.Suggestions
	}
	return f.finish(suggestions, err)
}

func (f *ClassFinder) State() FlowState {
	s, _, _ := f.snapshot()
	return s
}

func (f *ClassFinder) Err() error {
	_, _, err := f.snapshot()
	return err
}

func (f *ClassFinder) Control() *Control { return f.control }
