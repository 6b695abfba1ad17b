package tasks

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/spotter/internal/models"
	"github.com/desertthunder/spotter/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMuscleClient() *fakeClient {
	return &fakeClient{
		muscles: map[string][]string{
			"arms": {"biceps", "triceps", "forearms"},
			"back": {"lats", "lower_back", "traps"},
			"legs": {"quads", "hamstrings", "calves"},
			// Back and Shoulders both answer with traps.
			"shoulders": {"front_delts", "traps"},
		},
		routine: &models.RoutineResponse{Routine: []models.Exercise{
			{Exercise: "Curl", Sets: "3", Reps: "10", RestTime: "60"},
		}},
	}
}

func TestWorkoutFinderToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("Selection Is Parts Toggled An Odd Number Of Times", func(t *testing.T) {
		f := NewWorkoutFinder(newMuscleClient(), FinderOpts{})
		for _, part := range []string{"Arms", "Legs", "Arms", "Back", "Legs", "Arms", "Back", "Back"} {
			f.Toggle(part)
		}
		assert.Equal(t, []string{"Arms", "Back"}, f.BodyParts())
		assert.True(t, f.IsSelected("Arms"))
		assert.False(t, f.IsSelected("Legs"))
	})

	t.Run("Toggle Twice Restores The Selection", func(t *testing.T) {
		f := NewWorkoutFinder(newMuscleClient(), FinderOpts{})
		assert.True(t, f.ToggleBodyPart(ctx, "Arms"))
		assert.Equal(t, MusclesLoaded, f.State())
		assert.False(t, f.ToggleBodyPart(ctx, "Arms"))
		assert.Empty(t, f.BodyParts())
		assert.Empty(t, f.MuscleOptions())
		assert.Equal(t, NoSelection, f.State())
	})

	t.Run("Lookups Follow Selection Order", func(t *testing.T) {
		client := newMuscleClient()
		f := NewWorkoutFinder(client, FinderOpts{})
		f.ToggleBodyPart(ctx, "Legs")
		f.ToggleBodyPart(ctx, "Arms")

		// One lookup for the first toggle, then one per selected part.
		assert.Equal(t, []string{"Legs", "Legs", "Arms"}, client.lookups)

		var values []string
		for _, opt := range f.MuscleOptions() {
			values = append(values, opt.Value)
		}
		assert.Equal(t, []string{"quads", "hamstrings", "calves", "biceps", "triceps", "forearms"}, values)
	})
}

func TestWorkoutFinderMuscles(t *testing.T) {
	ctx := context.Background()

	t.Run("Same Muscle From Two Parts Is One Option", func(t *testing.T) {
		f := NewWorkoutFinder(newMuscleClient(), FinderOpts{})
		f.ToggleBodyPart(ctx, "Back")
		f.ToggleBodyPart(ctx, "Shoulders")

		options := f.MuscleOptions()
		count := 0
		for _, opt := range options {
			if opt.Value == "traps" {
				count++
			}
		}
		assert.Equal(t, 1, count)
		assert.Len(t, options, 4)
	})

	t.Run("Labels Are Title Cased Words", func(t *testing.T) {
		f := NewWorkoutFinder(newMuscleClient(), FinderOpts{})
		f.ToggleBodyPart(ctx, "Back")
		assert.Contains(t, f.MuscleOptions(), models.MuscleOption{Value: "lower_back", Label: "Lower Back"})
	})

	t.Run("Failed Part Is Skipped", func(t *testing.T) {
		client := newMuscleClient()
		client.muscleErrs = map[string]error{"Legs": errNotFound("legs")}
		progress := make(chan ProgressUpdate, 10)
		f := NewWorkoutFinder(client, FinderOpts{Progress: progress})

		f.Toggle("Legs")
		f.Toggle("Arms")
		f.RefreshMuscles(ctx)

		assert.Len(t, f.MuscleOptions(), 3)
		assert.Equal(t, MusclesLoaded, f.State())
		assert.NoError(t, f.Err())

		close(progress)
		var phases []Phase
		for u := range progress {
			phases = append(phases, u.Phase)
		}
		assert.Equal(t, []Phase{LookupMuscles, LookupMuscles}, phases)
	})

	t.Run("All Parts Failing Leaves A Partial Selection", func(t *testing.T) {
		client := newMuscleClient()
		client.muscleErrs = map[string]error{"Arms": errBackend}
		f := NewWorkoutFinder(client, FinderOpts{})
		f.ToggleBodyPart(ctx, "Arms")

		assert.Empty(t, f.MuscleOptions())
		assert.Equal(t, PartialSelection, f.State())
	})

	t.Run("Stale Lookup Is Discarded", func(t *testing.T) {
		f := NewWorkoutFinder(newMuscleClient(), FinderOpts{})
		f.Toggle("Arms")
		lookup := f.CollectMuscles(ctx, f.BeginLookup())

		f.Toggle("Legs")
		assert.False(t, f.ApplyMuscles(lookup))
		assert.Empty(t, f.MuscleOptions())

		assert.True(t, f.ApplyMuscles(f.CollectMuscles(ctx, f.BeginLookup())))
		assert.Len(t, f.MuscleOptions(), 6)
	})

	t.Run("Muscle Must Be Offered", func(t *testing.T) {
		f := NewWorkoutFinder(newMuscleClient(), FinderOpts{})
		f.ToggleBodyPart(ctx, "Arms")

		_, err := f.ToggleMuscle("quads")
		assert.ErrorIs(t, err, shared.ErrValidation)

		selected, err := f.ToggleMuscle("biceps")
		require.NoError(t, err)
		assert.True(t, selected)
		assert.True(t, f.IsMuscleSelected("biceps"))
	})

	t.Run("Selected Muscles Drop With Their Part", func(t *testing.T) {
		f := NewWorkoutFinder(newMuscleClient(), FinderOpts{})
		f.ToggleBodyPart(ctx, "Arms")
		f.ToggleBodyPart(ctx, "Legs")
		_, _ = f.ToggleMuscle("biceps")
		_, _ = f.ToggleMuscle("quads")

		f.ToggleBodyPart(ctx, "Arms")
		assert.Equal(t, []string{"quads"}, f.Muscles())
	})
}

func TestWorkoutFinderSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("No Body Part Sends Nothing", func(t *testing.T) {
		client := newMuscleClient()
		f := NewWorkoutFinder(client, FinderOpts{})

		_, err := f.Submit(ctx)
		assert.EqualError(t, err, MsgSelectBodyPart)
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Zero(t, client.callCount())
		assert.Equal(t, NoSelection, f.State())
		assert.Equal(t, err, f.Err())
	})

	t.Run("Success Stores Routine And Restores Control", func(t *testing.T) {
		client := newMuscleClient()
		f := NewWorkoutFinder(client, FinderOpts{})
		f.ToggleBodyPart(ctx, "Arms")
		_, _ = f.ToggleMuscle("biceps")

		routine, err := f.Submit(ctx)
		require.NoError(t, err)
		assert.Len(t, routine, 1)
		assert.Equal(t, ResultReady, f.State())
		assert.Equal(t, routine, f.Routine())
		assert.NoError(t, f.Err())
		assert.False(t, f.Control().Disabled())
		assert.Equal(t, LabelGetWorkout, f.Control().Label())

		req := client.lastRequest().(models.WeightliftingRequest)
		assert.Equal(t, []string{"Arms"}, req.BodyParts)
		assert.Equal(t, []string{"biceps"}, req.Muscles)
	})

	t.Run("Failure Keeps Previous Routine", func(t *testing.T) {
		client := newMuscleClient()
		f := NewWorkoutFinder(client, FinderOpts{})
		f.ToggleBodyPart(ctx, "Arms")
		first, err := f.Submit(ctx)
		require.NoError(t, err)

		client.err = errBackend
		_, err = f.Submit(ctx)
		assert.ErrorIs(t, err, errBackend)
		assert.Equal(t, Failed, f.State())
		assert.Equal(t, first, f.Routine())
		assert.False(t, f.Control().Disabled())
		assert.Equal(t, LabelGetWorkout, f.Control().Label())
	})

	t.Run("Error Cleared By Next Success", func(t *testing.T) {
		client := newMuscleClient()
		client.err = errBackend
		f := NewWorkoutFinder(client, FinderOpts{})
		f.ToggleBodyPart(ctx, "Arms")
		_, _ = f.Submit(ctx)
		require.Error(t, f.Err())

		client.err = nil
		_, err := f.Submit(ctx)
		require.NoError(t, err)
		assert.NoError(t, f.Err())
	})

	t.Run("Concurrent Submit Is Rejected", func(t *testing.T) {
		client := newMuscleClient()
		f := NewWorkoutFinder(client, FinderOpts{})
		f.ToggleBodyPart(ctx, "Arms")
		client.block = make(chan struct{})

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.Submit(ctx)
		}()

		require.Eventually(t, func() bool { return client.callCount() == 1 }, time.Second, time.Millisecond)
		assert.True(t, f.Control().Disabled())
		assert.Equal(t, LoadingLabel, f.Control().Label())
		assert.Equal(t, Submitting, f.State())

		_, err := f.Submit(ctx)
		assert.ErrorIs(t, err, shared.ErrSubmitInFlight)

		close(client.block)
		wg.Wait()
		assert.Equal(t, 1, client.callCount())
		assert.False(t, f.Control().Disabled())
	})

	t.Run("Begin And Finish", func(t *testing.T) {
		f := NewWorkoutFinder(newMuscleClient(), FinderOpts{})
		f.Toggle("Chest")

		req, err := f.Begin()
		require.NoError(t, err)
		assert.Equal(t, []string{"Chest"}, req.BodyParts)
		assert.NotNil(t, req.Muscles)

		routine, err := f.Finish(&models.RoutineResponse{}, nil)
		require.NoError(t, err)
		assert.Empty(t, routine)
		assert.Equal(t, ResultReady, f.State())
	})
}
