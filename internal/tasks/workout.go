package tasks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotter/internal/models"
)

// FinderOpts configures a collector. Zero values fall back to defaults.
type FinderOpts struct {
	Logger   *log.Logger
	Progress chan<- ProgressUpdate
}

func (o FinderOpts) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// MuscleLookup is one muscle refresh. Generation ties it to the selection it was started for.
type MuscleLookup struct {
	Generation int
	Parts      []string
	Options    []models.MuscleOption
}

// WorkoutFinder is the new-workout page: pick body parts, refine by muscle, request a routine.
type WorkoutFinder struct {
	client   WorkoutClient
	logger   *log.Logger
	progress chan<- ProgressUpdate

	mu         sync.Mutex
	parts      *OrderedSet[string, string]
	options    *OrderedSet[string, models.MuscleOption]
	muscles    *OrderedSet[string, string]
	generation int

	*outcome[[]models.Exercise]
}

// NewWorkoutFinder creates a finder with nothing selected.
func NewWorkoutFinder(client WorkoutClient, opts FinderOpts) *WorkoutFinder {
	return &WorkoutFinder{
		client:   client,
		logger:   opts.logger(),
		progress: opts.Progress,
		parts:    NewStringSet(),
		options:  NewOrderedSet(func(m models.MuscleOption) string { return m.Value }),
		muscles:  NewStringSet(),
		outcome:  newOutcome[[]models.Exercise](LabelGetWorkout),
	}
}

// Toggle adds or removes a body part and reports whether it is now selected.
//
// The muscle options are cleared; a refresh must follow (see [WorkoutFinder.RefreshMuscles]).
func (f *WorkoutFinder) Toggle(part string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	selected := f.parts.Toggle(part)
	f.options.Clear()
	f.generation++

	if f.parts.Len() == 0 {
		f.muscles.Clear()
		f.setState(NoSelection)
	} else {
		f.setState(PartialSelection)
	}
	return selected
}

// ToggleBodyPart toggles part and refreshes the muscle options.
func (f *WorkoutFinder) ToggleBodyPart(ctx context.Context, part string) bool {
	selected := f.Toggle(part)
	f.RefreshMuscles(ctx)
	return selected
}

// RefreshMuscles looks up muscles for the current selection and applies them.
func (f *WorkoutFinder) RefreshMuscles(ctx context.Context) {
	f.ApplyMuscles(f.CollectMuscles(ctx, f.BeginLookup()))
}

// BeginLookup snapshots the selection for a muscle refresh.
func (f *WorkoutFinder) BeginLookup() MuscleLookup {
	f.mu.Lock()
	defer f.mu.Unlock()
	return MuscleLookup{Generation: f.generation, Parts: f.parts.Values()}
}

// CollectMuscles looks up each part of lookup in order and merges the answers by muscle value.
//
// It does not touch the finder's selection, so it can run off the UI goroutine.
// A failed lookup is logged and skipped.
func (f *WorkoutFinder) CollectMuscles(ctx context.Context, lookup MuscleLookup) MuscleLookup {
	merged := NewOrderedSet(func(m models.MuscleOption) string { return m.Value })
	for i, part := range lookup.Parts {
		sendProgress(f.progress, lookupMusclesUpdate(i+1, len(lookup.Parts), part))

		muscles, err := f.client.Muscles(ctx, part)
		if err != nil {
			f.logger.Warn("failed to fetch muscles", "body_part", part, "error", err)
			continue
		}
		for _, m := range muscles {
			merged.Add(models.NewMuscleOption(m))
		}
	}
	lookup.Options = merged.Values()
	return lookup
}

// ApplyMuscles installs the options of lookup unless the selection changed since it began.
//
// Selected muscles that are no longer offered are dropped. It reports whether lookup was applied.
func (f *WorkoutFinder) ApplyMuscles(lookup MuscleLookup) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if lookup.Generation != f.generation {
		f.logger.Debug("discarding stale muscle lookup", "generation", lookup.Generation, "current", f.generation)
		return false
	}

	f.options.Clear()
	for _, opt := range lookup.Options {
		f.options.Add(opt)
	}
	for _, m := range f.muscles.Values() {
		if !f.options.Contains(m) {
			f.muscles.Remove(m)
		}
	}

	switch {
	case f.parts.Len() == 0:
		f.setState(NoSelection)
	case f.options.Len() > 0:
		f.setState(MusclesLoaded)
	default:
		f.setState(PartialSelection)
	}
	return true
}

// ToggleMuscle selects or deselects an offered muscle and reports whether it is now selected.
func (f *WorkoutFinder) ToggleMuscle(value string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.options.Contains(value) {
		return false, invalid(fmt.Sprintf("%q is not a muscle of the selected body parts", value))
	}
	return f.muscles.Toggle(value), nil
}

// BodyParts returns the selected body parts in selection order.
func (f *WorkoutFinder) BodyParts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.parts.Values()
}

// IsSelected reports whether part is selected.
func (f *WorkoutFinder) IsSelected(part string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.parts.Contains(part)
}

// MuscleOptions returns the offered muscles in merge order.
func (f *WorkoutFinder) MuscleOptions() []models.MuscleOption {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.options.Values()
}

// Muscles returns the selected muscles.
func (f *WorkoutFinder) Muscles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muscles.Values()
}

// IsMuscleSelected reports whether the muscle value is selected.
func (f *WorkoutFinder) IsMuscleSelected(value string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muscles.Contains(value)
}

// BuildRequest validates the selection and returns the request body.
func (f *WorkoutFinder) BuildRequest() (models.WeightliftingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.parts.Len() == 0 {
		return models.WeightliftingRequest{}, invalid(MsgSelectBodyPart)
	}
	return models.WeightliftingRequest{BodyParts: f.parts.Values(), Muscles: f.muscles.Values()}, nil
}

// Begin validates and disables the submit control. Every successful Begin must be paired with Finish.
func (f *WorkoutFinder) Begin() (models.WeightliftingRequest, error) {
	req, err := f.BuildRequest()
	if err != nil {
		return req, f.reject(err)
	}
	if err := f.begin(); err != nil {
		return req, err
	}
	sendProgress(f.progress, submitUpdate("workout"))
	return req, nil
}

// Finish records the response of a request started with Begin and re-enables the control.
func (f *WorkoutFinder) Finish(resp *models.RoutineResponse, err error) ([]models.Exercise, error) {
	var routine []models.Exercise
	if err == nil && resp != nil {
		routine = resp.Routine
	}
	return f.finish(routine, err)
}

// Submit requests a routine for the current selection.
func (f *WorkoutFinder) Submit(ctx context.Context) ([]models.Exercise, error) {
	req, err := f.Begin()
	if err != nil {
		return nil, err
	}
	resp, err := f.client.WeightliftingSuggestions(ctx, req)
	return f.Finish(resp, err)
}

// State returns the flow state.
func (f *WorkoutFinder) State() FlowState {
	s, _, _ := f.snapshot()
	return s
}

// Routine returns the last successful routine.
func (f *WorkoutFinder) Routine() []models.Exercise {
	_, r, _ := f.snapshot()
	return r
}

// Err returns the error shown on the page, if any.
func (f *WorkoutFinder) Err() error {
	_, _, err := f.snapshot()
	return err
}

// Control returns the submit control.
func (f *WorkoutFinder) Control() *Control { return f.control }
