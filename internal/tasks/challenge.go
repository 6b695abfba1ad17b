package tasks

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotter/internal/models"
)

// FormatDateInput masks free typing into MM/DD/YYYY: non-digits are dropped, slashes are inserted
// after the month and day, and anything past four year digits is cut.
func FormatDateInput(value string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)

	if len(digits) >= 2 {
		digits = digits[:2] + "/" + digits[2:]
	}
	if len(digits) >= 5 {
		year := digits[5:]
		if len(year) > 4 {
			year = year[:4]
		}
		digits = digits[:5] + "/" + year
	}
	return digits
}

// ChallengeBuilder is the new-challenge page.
type ChallengeBuilder struct {
	client   ChallengeClient
	logger   *log.Logger
	progress chan<- ProgressUpdate
	userID   string

	mu            sync.Mutex
	startDate     string
	endDate       string
	description   string
	privacy       string
	attachRoutine *bool
	goals         *OrderedSet[string, string]
	friends       *OrderedSet[string, string]

	*outcome[*models.CreateChallengeResponse]
}

// NewChallengeBuilder creates an empty form creating challenges as userID.
func NewChallengeBuilder(client ChallengeClient, userID string, opts FinderOpts) *ChallengeBuilder {
	return &ChallengeBuilder{
		client:   client,
		logger:   opts.logger(),
		progress: opts.Progress,
		userID:   userID,
		goals:    NewStringSet(),
		friends:  NewStringSet(),
		outcome:  newOutcome[*models.CreateChallengeResponse](LabelSaveChallenge),
	}
}

// SetStartDate stores value through the MM/DD/YYYY input mask and returns the masked text.
func (b *ChallengeBuilder) SetStartDate(value string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.startDate = FormatDateInput(value)
	return b.startDate
}

// SetEndDate stores value through the MM/DD/YYYY input mask and returns the masked text.
func (b *ChallengeBuilder) SetEndDate(value string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.endDate = FormatDateInput(value)
	return b.endDate
}

func (b *ChallengeBuilder) SetDescription(s string) {
	b.mu.Lock()
	b.description = strings.TrimSpace(s)
	b.mu.Unlock()
}

// SetPrivacy accepts "public" or "private".
func (b *ChallengeBuilder) SetPrivacy(privacy string) error {
	privacy = strings.ToLower(strings.TrimSpace(privacy))
	if privacy != models.PrivacyPublic && privacy != models.PrivacyPrivate {
		return invalid(MsgInvalidPrivacy)
	}
	b.mu.Lock()
	b.privacy = privacy
	b.mu.Unlock()
	return nil
}

// AttachRoutine answers the "attach one of your saved routines" question.
func (b *ChallengeBuilder) AttachRoutine(attach bool) {
	b.mu.Lock()
	b.attachRoutine = &attach
	b.mu.Unlock()
}

// AddGoal appends a goal unless blank or already listed, and reports whether it was added.
func (b *ChallengeBuilder) AddGoal(goal string) bool {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.goals.Add(goal)
}

func (b *ChallengeBuilder) RemoveGoal(goal string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.goals.Remove(goal)
}

// AddFriend appends a friend unless blank or already invited, and reports whether it was added.
func (b *ChallengeBuilder) AddFriend(friend string) bool {
	friend = strings.TrimSpace(friend)
	if friend == "" {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.friends.Add(friend)
}

func (b *ChallengeBuilder) RemoveFriend(friend string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.friends.Remove(friend)
}

func (b *ChallengeBuilder) Goals() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.goals.Values()
}

func (b *ChallengeBuilder) Friends() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.friends.Values()
}

// BuildRequest validates dates, then description, then privacy.
func (b *ChallengeBuilder) BuildRequest() (models.CreateChallengeRequest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.startDate == "" || b.endDate == "" {
		return models.CreateChallengeRequest{}, invalid(MsgEnterDates)
	}
	if b.description == "" {
		return models.CreateChallengeRequest{}, invalid(MsgDescribeChallenge)
	}
	if b.privacy == "" {
		return models.CreateChallengeRequest{}, invalid(MsgSelectPrivacy)
	}

	req := models.CreateChallengeRequest{
		StartDate:   b.startDate,
		EndDate:     b.endDate,
		Description: b.description,
		Privacy:     b.privacy,
		Goals:       b.goals.Values(),
		Friends:     b.friends.Values(),
		UserID:      b.userID,
	}
	if b.attachRoutine != nil && *b.attachRoutine {
		id := models.DefaultRoutineID
		req.RoutineID = &id
	}
	return req, nil
}

// Submit creates the challenge and clears the form on success.
func (b *ChallengeBuilder) Submit(ctx context.Context) (*models.CreateChallengeResponse, error) {
	req, err := b.BuildRequest()
	if err != nil {
		return nil, b.reject(err)
	}
	if err := b.begin(); err != nil {
		return nil, err
	}
	sendProgress(b.progress, submitUpdate("challenge"))

	resp, err := b.client.CreateChallenge(ctx, req)
	if err == nil {
		b.reset()
	}
	return b.finish(resp, err)
}

func (b *ChallengeBuilder) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.startDate, b.endDate, b.description, b.privacy = "", "", "", ""
	b.attachRoutine = nil
	b.goals.Clear()
	b.friends.Clear()
}

func (b *ChallengeBuilder) State() FlowState {
	s, _, _ := b.snapshot()
	return s
}

func (b *ChallengeBuilder) Err() error {
	_, _, err := b.snapshot()
	return err
}

func (b *ChallengeBuilder) Control() *Control { return b.control }

// QuickChallengeTitle is used when the quick form leaves the title blank.
const QuickChallengeTitle = "New Challenge"

// QuickChallenge is the single-screen challenge form saved through POST /challenges.
type QuickChallenge struct {
	Title       string
	Start       string
	End         string
	Goal        string
	Description string
	Invited     []string
	Private     bool
}

// Request builds the payload. A blank goal is left out and invitees are de-duplicated.
func (q QuickChallenge) Request() models.QuickChallengeRequest {
	title := strings.TrimSpace(q.Title)
	if title == "" {
		title = QuickChallengeTitle
	}

	goals := []string{}
	if g := strings.TrimSpace(q.Goal); g != "" {
		goals = append(goals, g)
	}

	invited := NewStringSet()
	for _, f := range q.Invited {
		if f = strings.TrimSpace(f); f != "" {
			invited.Add(f)
		}
	}

	visibility := models.PrivacyPublic
	if q.Private {
		visibility = models.PrivacyPrivate
	}

	return models.QuickChallengeRequest{
		Title:      title,
		Start:      strings.TrimSpace(q.Start),
		End:        strings.TrimSpace(q.End),
		Goals:      goals,
		Invited:    invited.Values(),
		Visibility: visibility,
		Desc:       strings.TrimSpace(q.Description),
	}
}

// Save posts the quick challenge.
func (q QuickChallenge) Save(ctx context.Context, client ChallengeClient) (*models.QuickChallengeResponse, error) {
	return client.SaveChallenge(ctx, q.Request())
}
