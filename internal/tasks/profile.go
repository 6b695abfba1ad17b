package tasks

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotter/internal/models"
)

// Section is one list on the profile page: the items in server order, or the error that replaced them.
type Section[T any] struct {
	Items []T
	Err   error
}

// Profile is the loaded profile page.
//
// When Offline is set the backend probe failed, ProbeErr holds why, and neither section was fetched.
type Profile struct {
	UserID     string
	Offline    bool
	ProbeErr   error
	Server     *models.DebugResponse
	Workouts   Section[models.Workout]
	Challenges Section[models.Challenge]
}

// ProfileLoader loads a user's workout and challenge history.
type ProfileLoader struct {
	client   ProfileClient
	logger   *log.Logger
	progress chan<- ProgressUpdate
}

func NewProfileLoader(client ProfileClient, opts FinderOpts) *ProfileLoader {
	return &ProfileLoader{client: client, logger: opts.logger(), progress: opts.Progress}
}

// Load probes the backend and, when it answers, fetches both histories independently.
func (l *ProfileLoader) Load(ctx context.Context, userID string) *Profile {
	profile := &Profile{UserID: userID}

	sendProgress(l.progress, probeUpdate())
	server, err := l.client.Debug(ctx)
	if err != nil {
		l.logger.Warn("backend probe failed", "error", err)
		profile.Offline = true
		profile.ProbeErr = err
		return profile
	}
	profile.Server = server

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		sendProgress(l.progress, fetchWorkoutsUpdate())
		items, err := l.client.Workouts(ctx, userID)
		if err != nil {
			l.logger.Error("failed to load workouts", "user_id", userID, "error", err)
		}
		profile.Workouts = Section[models.Workout]{Items: items, Err: err}
	}()
	go func() {
		defer wg.Done()
		sendProgress(l.progress, fetchChallengesUpdate())
		items, err := l.client.Challenges(ctx, userID)
		if err != nil {
			l.logger.Error("failed to load challenges", "user_id", userID, "error", err)
		}
		profile.Challenges = Section[models.Challenge]{Items: items, Err: err}
	}()
	wg.Wait()

	return profile
}
