package formatter

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/spotter/internal/models"
	"github.com/desertthunder/spotter/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Naive With Fraction", "2025-03-07T14:05:09.123456", "03/07/2025"},
		{"Naive", "2025-03-07T14:05:09", "03/07/2025"},
		{"RFC3339", "2024-12-31T23:59:59Z", "12/31/2024"},
		{"Space Separated", "2024-01-02 08:00:00", "01/02/2024"},
		{"Date Only", "2024-01-02", "01/02/2024"},
		{"Empty", "", ""},
		{"Garbage", "yesterday", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

func TestFormatMuscleLabel(t *testing.T) {
	assert.Equal(t, "LOWER BACK", FormatMuscleLabel(models.NewMuscleOption("lower_back")))
	assert.Equal(t, "BICEPS", FormatMuscleLabel(models.NewMuscleOption("biceps")))
}

func TestWorkoutCard(t *testing.T) {
	t.Run("Free Text Is Escaped", func(t *testing.T) {
		html, err := WorkoutCard(models.Workout{Description: "<script>x</script>", PersonalRecord: "a & b"})
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "&lt;script&gt;x&lt;/script&gt;")
		assert.Contains(t, html, "a &amp; b")
	})

	t.Run("Inline Image", func(t *testing.T) {
		html, err := WorkoutCard(models.Workout{PhotoURL: "data:image/png;base64,AQI="})
		require.NoError(t, err)
		assert.Contains(t, html, `<img src="data:image/png;base64,AQI="`)
		assert.NotContains(t, html, "Photo:")
	})

	t.Run("File Name Placeholder", func(t *testing.T) {
		html, err := WorkoutCard(models.Workout{PhotoURL: "bench.png"})
		require.NoError(t, err)
		assert.Contains(t, html, "Photo: bench.png")
		assert.NotContains(t, html, "<img")
	})

	t.Run("Non Image Data Is Not Inlined", func(t *testing.T) {
		html, err := WorkoutCard(models.Workout{PhotoURL: "data:text/html;base64,PHNjcmlwdD4="})
		require.NoError(t, err)
		assert.NotContains(t, html, "<img")
		assert.Contains(t, html, "Photo: data:text/html")
	})

	t.Run("Empty Fields Are Omitted", func(t *testing.T) {
		html, err := WorkoutCard(models.Workout{Description: "Leg day", Timestamp: "2025-01-15T10:30:00"})
		require.NoError(t, err)
		assert.Contains(t, html, "01/15/2025")
		assert.Contains(t, html, "DESCRIPTION")
		assert.NotContains(t, html, "PICTURE")
		assert.NotContains(t, html, "PERSONAL RECORD")
	})
}

func TestChallengeCard(t *testing.T) {
	html, err := ChallengeCard(models.Challenge{
		StartDate:   "01/01/2025",
		EndDate:     "01/31/2025",
		Goals:       []string{"Run 5k", "<b>Swim</b>"},
		Description: "January",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>START:</strong> 01/01/2025")
	assert.Contains(t, html, "<li>Run 5k</li>")
	assert.Contains(t, html, "<li>&lt;b&gt;Swim&lt;/b&gt;</li>")
	assert.Contains(t, html, "CHALLENGE GOALS")

	html, err = ChallengeCard(models.Challenge{StartDate: "01/01/2025", EndDate: "01/31/2025"})
	require.NoError(t, err)
	assert.NotContains(t, html, "CHALLENGE GOALS")
}

func TestResultFragments(t *testing.T) {
	t.Run("Recipe", func(t *testing.T) {
		html, err := RecipeHTML(&models.Recipe{
			Name:          "Protein Oats",
			MealType:      "breakfast",
			FitnessGoal:   "build_muscle",
			Ingredients:   []string{"oats", "whey"},
			Instructions:  []string{"mix", "eat"},
			NutritionInfo: models.NutritionInfo{Calories: "450", Protein: "35g"},
		})
		require.NoError(t, err)
		assert.Contains(t, html, "<h4>Protein Oats</h4>")
		assert.Contains(t, html, "BREAKFAST")
		assert.Contains(t, html, "BUILD MUSCLE")
		assert.Contains(t, html, "<li>whey</li>")
		assert.Contains(t, html, "<strong>Calories:</strong> 450")
	})

	t.Run("Recipe Empty", func(t *testing.T) {
		html, err := RecipeHTML(nil)
		require.NoError(t, err)
		assert.Contains(t, html, EmptyRecipe)
	})

	t.Run("Routine Is Numbered", func(t *testing.T) {
		html, err := RoutineHTML([]models.Exercise{
			{Exercise: "Squat", Sets: "3", Reps: "8", RestTime: "90 seconds"},
			{Exercise: "Lunge", Sets: "3", Reps: "12", RestTime: "60 seconds"},
		})
		require.NoError(t, err)
		assert.Contains(t, html, "<h4>1. Squat</h4>")
		assert.Contains(t, html, "<h4>2. Lunge</h4>")
		assert.Contains(t, html, "<strong>Rest Time:</strong> 90 seconds")
	})

	t.Run("Routine Empty", func(t *testing.T) {
		html, err := RoutineHTML(nil)
		require.NoError(t, err)
		assert.Contains(t, html, EmptyRoutine)
	})

	t.Run("Classes", func(t *testing.T) {
		html, err := ClassesHTML([]models.ClassSuggestion{{Name: "Yoga Flow", Instructor: "Kim"}})
		require.NoError(t, err)
		assert.Contains(t, html, "<h4>Yoga Flow</h4>")
		assert.Contains(t, html, "<strong>Instructor:</strong> Kim")

		html, err = ClassesHTML([]models.ClassSuggestion{})
		require.NoError(t, err)
		assert.Contains(t, html, EmptyClasses)
	})
}

func TestProfile(t *testing.T) {
	loaded := &tasks.Profile{
		UserID:     "default_user",
		Workouts:   tasks.Section[models.Workout]{Items: []models.Workout{{Description: "first"}, {Description: "second"}}},
		Challenges: tasks.Section[models.Challenge]{Items: []models.Challenge{}},
	}

	t.Run("Cards Keep Server Order", func(t *testing.T) {
		html, err := ProfileHTML(loaded)
		require.NoError(t, err)
		first := strings.Index(html, "first")
		second := strings.Index(html, "second")
		require.NotEqual(t, -1, first)
		assert.Less(t, first, second)
		assert.Contains(t, html, EmptyChallenges)
		assert.NotContains(t, html, EmptyWorkouts)
	})

	t.Run("Offline", func(t *testing.T) {
		p := &tasks.Profile{Offline: true, ProbeErr: errors.New("refused")}
		html, err := ProfileHTML(p)
		require.NoError(t, err)
		assert.Contains(t, html, OfflineWorkouts)
		assert.Contains(t, html, OfflineChallenges)
		assert.NotContains(t, html, EmptyWorkouts)
	})

	t.Run("Section Error", func(t *testing.T) {
		p := &tasks.Profile{Workouts: tasks.Section[models.Workout]{Err: errors.New("HTTP 500: Internal Server Error")}}
		assert.Equal(t,
			"Error loading workouts: HTTP 500: Internal Server Error. Please check if the backend server is running.",
			WorkoutsMessage(p))
		assert.Equal(t, EmptyChallenges, ChallengesMessage(p))
	})

	t.Run("Page", func(t *testing.T) {
		html, err := ProfilePage(loaded)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
		assert.Contains(t, html, "<title>"+ProfileTitle+"</title>")
		assert.Contains(t, html, `<section id="workouts">`)
	})

	t.Run("Text", func(t *testing.T) {
		out := ProfileText(loaded)
		assert.Contains(t, out, "MY WORKOUTS")
		assert.Contains(t, out, "first")
		assert.Contains(t, out, EmptyChallenges)

		out = ProfileText(&tasks.Profile{Offline: true})
		assert.Contains(t, out, OfflineWorkouts)
	})
}

func TestTextRenderers(t *testing.T) {
	t.Run("Workout", func(t *testing.T) {
		out := WorkoutText(models.Workout{Description: "Leg day", PhotoURL: "legs.jpg"})
		assert.Contains(t, out, "Leg day")
		assert.Contains(t, out, "Photo: legs.jpg")

		out = WorkoutText(models.Workout{PhotoURL: "data:image/png;base64,AQI="})
		assert.Contains(t, out, "[inline image]")
		assert.NotContains(t, out, "base64")
	})

	t.Run("Challenge", func(t *testing.T) {
		out := ChallengeText(models.Challenge{StartDate: "01/01/2025", Goals: []string{"Swim"}})
		assert.Contains(t, out, "01/01/2025")
		assert.Contains(t, out, "- Swim")
	})

	t.Run("Empty States", func(t *testing.T) {
		assert.Contains(t, RecipeText(nil), EmptyRecipe)
		assert.Contains(t, RoutineText(nil), EmptyRoutine)
		assert.Contains(t, ClassesText(nil), EmptyClasses)
	})

	t.Run("Routine", func(t *testing.T) {
		out := RoutineText([]models.Exercise{{Exercise: "Squat", Sets: "3", Reps: "8", RestTime: "90"}})
		assert.Contains(t, out, "1. Squat")
		assert.Contains(t, out, "Sets: 3")
	})

	t.Run("Recipe", func(t *testing.T) {
		out := RecipeText(&models.Recipe{Name: "Oats", FitnessGoal: "lose_weight", Instructions: []string{"boil"}})
		assert.Contains(t, out, "Oats")
		assert.Contains(t, out, "LOSE WEIGHT")
		assert.Contains(t, out, "1. boil")
	})

	t.Run("Muscles", func(t *testing.T) {
		out := MusclesText([]models.MuscleOption{models.NewMuscleOption("lower_back")})
		assert.Contains(t, out, "lower_back")
		assert.Contains(t, out, "LOWER BACK")
	})
}
