// package formatter renders backend results as HTML fragments (html/template) and as terminal text.
package formatter

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/desertthunder/spotter/internal/models"
	"github.com/desertthunder/spotter/internal/tasks"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Empty-state messages shown in place of a result list.
const (
	EmptyRoutine    = "No exercises found for your selection"
	EmptyClasses    = "No classes found matching your preferences"
	EmptyRecipe     = "No recipe found matching your criteria"
	EmptyWorkouts   = "No workouts saved yet. Log a workout to see it here!"
	EmptyChallenges = "No challenges created yet. Create a challenge to see it here!"

	OfflineWorkouts   = "Cannot connect to server. Please start the backend server and reload your profile."
	OfflineChallenges = "Cannot connect to server. Please start the backend server."
)

// ProfileTitle is the document title of the rendered profile page.
const ProfileTitle = "Spotter Profile"

var templates = template.Must(template.New("fragments").Funcs(template.FuncMap{
	"date":         FormatDate,
	"upper":        strings.ToUpper,
	"goal":         formatGoal,
	"inc":          func(i int) int { return i + 1 },
	"isImage":      IsImageData,
	"imageURL":     func(s string) template.URL { return template.URL(s) },
	"emptyRecipe":  func() string { return EmptyRecipe },
	"emptyRoutine": func() string { return EmptyRoutine },
	"emptyClasses": func() string { return EmptyClasses },
}).ParseFS(templateFiles, "templates/*.html"))

// IsImageData reports whether a photo URL carries inline image data rather than a file name.
func IsImageData(photoURL string) bool {
	return strings.HasPrefix(photoURL, "data:image/")
}

// dateLayouts are tried in order. The backend writes naive ISO timestamps.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// FormatDate converts an ISO timestamp to MM/DD/YYYY in the timestamp's own zone.
// Empty or unparseable input gives "".
func FormatDate(iso string) string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("01/02/2006")
		}
	}
	return ""
}

// FormatMuscleLabel is the display form of a muscle option: its label upper-cased.
func FormatMuscleLabel(opt models.MuscleOption) string {
	return strings.ToUpper(opt.Label)
}

func formatGoal(goal string) string {
	return strings.ToUpper(strings.ReplaceAll(goal, "_", " "))
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// WorkoutCard renders one logged workout.
func WorkoutCard(w models.Workout) (string, error) { return render("workout", w) }

// ChallengeCard renders one challenge.
func ChallengeCard(c models.Challenge) (string, error) { return render("challenge", c) }

// RecipeHTML renders a recipe, or the empty-state message when r is nil.
func RecipeHTML(r *models.Recipe) (string, error) { return render("recipe", r) }

// RoutineHTML renders a numbered routine, or the empty-state message.
func RoutineHTML(routine []models.Exercise) (string, error) { return render("routine", routine) }

// ClassesHTML renders class suggestions, or the empty-state message.
func ClassesHTML(classes []models.ClassSuggestion) (string, error) { return render("classes", classes) }

// sectionView is one profile section. Message replaces the cards when set.
type sectionView struct {
	ID         string
	Title      string
	Message    string
	Workouts   []models.Workout
	Challenges []models.Challenge
}

type profileView struct {
	Workouts   sectionView
	Challenges sectionView
}

func newProfileView(p *tasks.Profile) profileView {
	v := profileView{
		Workouts:   sectionView{ID: "workouts", Title: "MY WORKOUTS"},
		Challenges: sectionView{ID: "challenges", Title: "MY CHALLENGES"},
	}
	v.Workouts.Message = WorkoutsMessage(p)
	v.Challenges.Message = ChallengesMessage(p)
	if v.Workouts.Message == "" {
		v.Workouts.Workouts = p.Workouts.Items
	}
	if v.Challenges.Message == "" {
		v.Challenges.Challenges = p.Challenges.Items
	}
	return v
}

// WorkoutsMessage is the text shown instead of workout cards, or "" when there are cards to show.
func WorkoutsMessage(p *tasks.Profile) string {
	switch {
	case p.Offline:
		return OfflineWorkouts
	case p.Workouts.Err != nil:
		return fmt.Sprintf("Error loading workouts: %s. Please check if the backend server is running.", p.Workouts.Err)
	case len(p.Workouts.Items) == 0:
		return EmptyWorkouts
	}
	return ""
}

// ChallengesMessage is the text shown instead of challenge cards, or "" when there are cards to show.
func ChallengesMessage(p *tasks.Profile) string {
	switch {
	case p.Offline:
		return OfflineChallenges
	case p.Challenges.Err != nil:
		return fmt.Sprintf("Error loading challenges: %s. Please check if the backend server is running.", p.Challenges.Err)
	case len(p.Challenges.Items) == 0:
		return EmptyChallenges
	}
	return ""
}

// ProfileHTML renders both profile sections as a fragment.
func ProfileHTML(p *tasks.Profile) (string, error) {
	return render("profile", newProfileView(p))
}

// ProfilePage renders the profile as a complete HTML document.
func ProfilePage(p *tasks.Profile) (string, error) {
	return render("page", struct {
		Title   string
		Profile profileView
	}{ProfileTitle, newProfileView(p)})
}
