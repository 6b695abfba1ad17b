package tasks

import "fmt"

// ProgressUpdate represents a progress event during a multi-request operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	LookupMuscles Phase = iota
	SubmitRequest
	ProbeServer
	FetchWorkouts
	FetchChallenges
)

func (p Phase) String() string {
	switch p {
	case LookupMuscles:
		return "lookup_muscles"
	case SubmitRequest:
		return "submit_request"
	case ProbeServer:
		return "probe_server"
	case FetchWorkouts:
		return "fetch_workouts"
	case FetchChallenges:
		return "fetch_challenges"
	default:
		return ""
	}
}

// sendProgress sends update without blocking; a nil, full or unread channel drops it.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func lookupMusclesUpdate(step, total int, bodyPart string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LookupMuscles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Looking up muscles for %s...", bodyPart),
		Data:    bodyPart,
	}
}

func submitUpdate(what string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SubmitRequest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Requesting %s...", what),
	}
}

func probeUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: ProbeServer, Step: 1, Total: 3, Message: "Checking backend server..."}
}

func fetchWorkoutsUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: FetchWorkouts, Step: 2, Total: 3, Message: "Loading workouts..."}
}

func fetchChallengesUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: FetchChallenges, Step: 3, Total: 3, Message: "Loading challenges..."}
}
