package tasks

import (
	"sync"

	"github.com/desertthunder/spotter/internal/shared"
)

// LoadingLabel replaces a control's label while its request is in flight.
const LoadingLabel = "LOADING..."

// Submit button labels per page.
const (
	LabelGetWorkout    = "GET WORKOUT"
	LabelGetRecipes    = "GET RECIPES"
	LabelFindClass     = "FIND CLASS"
	LabelPostToFeed    = "POST TO FEED"
	LabelSaveToProfile = "SAVE TO PROFILE"
	LabelSaveChallenge = "SAVE CHALLENGE"
)

// Control is a submit trigger. While acquired it is disabled and shows [LoadingLabel].
type Control struct {
	mu       sync.Mutex
	label    string
	idle     string
	disabled bool
}

// NewControl creates an enabled control showing label.
func NewControl(label string) *Control {
	return &Control{label: label, idle: label}
}

// Acquire disables the control. It fails with [shared.ErrSubmitInFlight] when already disabled.
func (c *Control) Acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled {
		return shared.ErrSubmitInFlight
	}
	c.disabled = true
	c.label = LoadingLabel
	return nil
}

// Release re-enables the control and restores its label.
func (c *Control) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = false
	c.label = c.idle
}

// Run calls fn with the control acquired and releases it however fn returns.
func (c *Control) Run(fn func() error) error {
	if err := c.Acquire(); err != nil {
		return err
	}
	defer c.Release()
	return fn()
}

func (c *Control) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

func (c *Control) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

// FlowState is the position of a page in the suggestion flow.
type FlowState int

const (
	NoSelection FlowState = iota
	PartialSelection
	MusclesLoaded
	Submitting
	ResultReady
	Failed
)

func (s FlowState) String() string {
	switch s {
	case NoSelection:
		return "no_selection"
	case PartialSelection:
		return "partial_selection"
	case MusclesLoaded:
		return "muscles_loaded"
	case Submitting:
		return "submitting"
	case ResultReady:
		return "result"
	case Failed:
		return "error"
	default:
		return ""
	}
}
