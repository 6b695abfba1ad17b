package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/spotter/internal/models"
	"github.com/desertthunder/spotter/internal/tasks"
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

func field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "  %s %s\n", labelStyle.Render(label+":"), value)
}

// WorkoutText renders a workout for the terminal.
func WorkoutText(w models.Workout) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("WORKOUT"))
	if d := FormatDate(w.Timestamp); d != "" {
		b.WriteString(" " + mutedStyle.Render(d))
	}
	b.WriteString("\n")
	field(&b, "Description", w.Description)
	if w.PhotoURL != "" {
		if IsImageData(w.PhotoURL) {
			field(&b, "Picture", "[inline image]")
		} else {
			field(&b, "Picture", "Photo: "+w.PhotoURL)
		}
	}
	field(&b, "Personal Record", w.PersonalRecord)
	return b.String()
}

// ChallengeText renders a challenge for the terminal.
func ChallengeText(c models.Challenge) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("CHALLENGE"))
	if d := FormatDate(c.Timestamp); d != "" {
		b.WriteString(" " + mutedStyle.Render(d))
	}
	b.WriteString("\n")
	field(&b, "Start", c.StartDate)
	field(&b, "End", c.EndDate)
	if len(c.Goals) > 0 {
		fmt.Fprintf(&b, "  %s\n", labelStyle.Render("Goals:"))
		for _, g := range c.Goals {
			fmt.Fprintf(&b, "    - %s\n", g)
		}
	}
	field(&b, "Description", c.Description)
	return b.String()
}

// RecipeText renders a recipe, or the empty-state message when r is nil.
func RecipeText(r *models.Recipe) string {
	if r == nil {
		return mutedStyle.Render(EmptyRecipe) + "\n"
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(r.Name) + "\n")
	field(&b, "Meal Type", strings.ToUpper(r.MealType))
	field(&b, "Fitness Goal", formatGoal(r.FitnessGoal))

	b.WriteString(labelStyle.Render("INGREDIENTS") + "\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "  - %s\n", ing)
	}
	b.WriteString(labelStyle.Render("INSTRUCTIONS") + "\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}
	b.WriteString(labelStyle.Render("NUTRITION INFORMATION") + "\n")
	n := r.NutritionInfo
	fmt.Fprintf(&b, "  Calories: %s  Protein: %s  Carbs: %s  Fats: %s\n", n.Calories, n.Protein, n.Carbs, n.Fats)
	return b.String()
}

// RoutineText renders a numbered routine, or the empty-state message.
func RoutineText(routine []models.Exercise) string {
	if len(routine) == 0 {
		return mutedStyle.Render(EmptyRoutine) + "\n"
	}

	var b strings.Builder
	for i, e := range routine {
		fmt.Fprintf(&b, "%s\n", headingStyle.Render(fmt.Sprintf("%d. %s", i+1, e.Exercise)))
		fmt.Fprintf(&b, "  Sets: %s  Reps: %s  Rest: %s\n", e.Sets, e.Reps, e.RestTime)
	}
	return b.String()
}

// ClassesText renders class suggestions, or the empty-state message.
func ClassesText(classes []models.ClassSuggestion) string {
	if len(classes) == 0 {
		return mutedStyle.Render(EmptyClasses) + "\n"
	}

	var b strings.Builder
	for _, c := range classes {
		b.WriteString(headingStyle.Render(c.Name) + "\n")
		field(&b, "Location", c.Location)
		field(&b, "Distance", c.Distance)
		field(&b, "Time", c.Time)
		field(&b, "Instructor", c.Instructor)
	}
	return b.String()
}

// MusclesText lists muscle options with their display labels.
func MusclesText(options []models.MuscleOption) string {
	var b strings.Builder
	for _, opt := range options {
		fmt.Fprintf(&b, "  %-20s %s\n", opt.Value, FormatMuscleLabel(opt))
	}
	return b.String()
}

// ProfileText renders both profile sections for the terminal.
func ProfileText(p *tasks.Profile) string {
	var b strings.Builder

	b.WriteString(headingStyle.Render("MY WORKOUTS") + "\n")
	if msg := WorkoutsMessage(p); msg != "" {
		b.WriteString(sectionMessage(p, p.Workouts.Err, msg))
	} else {
		for _, w := range p.Workouts.Items {
			b.WriteString(WorkoutText(w))
		}
	}

	b.WriteString("\n" + headingStyle.Render("MY CHALLENGES") + "\n")
	if msg := ChallengesMessage(p); msg != "" {
		b.WriteString(sectionMessage(p, p.Challenges.Err, msg))
	} else {
		for _, c := range p.Challenges.Items {
			b.WriteString(ChallengeText(c))
		}
	}
	return b.String()
}

func sectionMessage(p *tasks.Profile, err error, msg string) string {
	if p.Offline || err != nil {
		return errorStyle.Render(msg) + "\n"
	}
	return mutedStyle.Render(msg) + "\n"
}
