package tasks

import "github.com/desertthunder/spotter/internal/shared"

// Validation messages shown to the user.
const (
	MsgSelectBodyPart    = "Please select at least one body part"
	MsgSelectMealType    = "Please select a type of meal"
	MsgSelectFitnessGoal = "Please select your fitness goals"
	MsgDescribeWorkout   = "Please enter a description of your workout"
	MsgEnterDates        = "Please enter both start and end dates"
	MsgDescribeChallenge = "Please enter a challenge description"
	MsgSelectPrivacy     = "Please select whether the challenge should be private or public"
	MsgInvalidPrivacy    = "Privacy must be either public or private"
	MsgInvalidLocation   = "Location must be either on_campus or off_campus"
)

// ValidationError is a client-side rejection of the current selection. No request was sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == shared.ErrValidation }

func invalid(msg string) error { return &ValidationError{Message: msg} }
