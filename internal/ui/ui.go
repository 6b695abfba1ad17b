package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotter/internal/formatter"
	"github.com/desertthunder/spotter/internal/models"
	"github.com/desertthunder/spotter/internal/shared"
	"github.com/desertthunder/spotter/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BodyPartView ViewState = iota
	MuscleView
	SubmitView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	client  tasks.WorkoutClient
	finder  *tasks.WorkoutFinder
	width   int
	height  int
	parts   list.Model
	muscles list.Model
	spinner spinner.Model
	loading bool
	routine []models.Exercise
	err     error
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model with nothing selected.
func NewModel(ctx context.Context, client tasks.WorkoutClient, opts tasks.FinderOpts) *Model {
	m := &Model{
		ctx:     ctx,
		view:    BodyPartView,
		client:  client,
		finder:  tasks.NewWorkoutFinder(client, opts),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.parts = newChoiceList("SELECT BODY PARTS", bodyPartItems(tasks.BodyParts, m.finder.IsSelected))
	m.muscles = newChoiceList("SELECT MUSCLES", nil)
	return m
}

// Finder exposes the underlying flow state.
func (m *Model) Finder() *tasks.WorkoutFinder { return m.finder }

// Init does nothing until the first body part is toggled.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.parts.SetSize(msg.Width-4, msg.Height-8)
		m.muscles.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		switch m.view {
		case BodyPartView:
			return m.handleBodyPartKeys(msg)
		case MuscleView:
			return m.handleMuscleKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading && m.view != SubmitView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		switch msg.kind {
		case MsgMusclesLoaded:
			return m.applyMuscles(msg.data.(tasks.MuscleLookup))
		case MsgRoutineReceived:
			r := msg.data.(routineResult)
			m.routine, m.err = m.finder.Finish(r.resp, r.err)
			m.view = ResultView
			return m, nil
		}
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case BodyPartView:
		return m.renderList(m.parts)
	case MuscleView:
		return m.renderList(m.muscles)
	case SubmitView:
		return m.renderSubmit()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleBodyPartKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.toggle):
		item, ok := m.parts.SelectedItem().(choiceItem)
		if !ok {
			return m, nil
		}
		m.finder.Toggle(item.value)
		m.err = nil
		m.parts.SetItems(bodyPartItems(tasks.BodyParts, m.finder.IsSelected))
		m.muscles.SetItems(nil)
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.lookupMuscles(m.finder.BeginLookup()))
	case key.Matches(msg, m.keys.next):
		if len(m.finder.MuscleOptions()) > 0 {
			m.view = MuscleView
		}
		return m, nil
	case key.Matches(msg, m.keys.submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.parts, cmd = m.parts.Update(msg)
	return m, cmd
}

func (m *Model) handleMuscleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.toggle):
		item, ok := m.muscles.SelectedItem().(choiceItem)
		if !ok {
			return m, nil
		}
		if _, err := m.finder.ToggleMuscle(item.value); err != nil {
			m.err = err
			return m, nil
		}
		m.muscles.SetItems(muscleItems(m.finder.MuscleOptions(), m.finder.IsMuscleSelected))
		return m, nil
	case key.Matches(msg, m.keys.next), key.Matches(msg, m.keys.back):
		m.view = BodyPartView
		return m, nil
	case key.Matches(msg, m.keys.submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.muscles, cmd = m.muscles.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = BodyPartView
		m.err = nil
		return m, nil
	case key.Matches(msg, m.keys.restart):
		fresh := NewModel(m.ctx, m.client, tasks.FinderOpts{})
		fresh.width, fresh.height = m.width, m.height
		fresh.parts.SetSize(m.parts.Width(), m.parts.Height())
		fresh.muscles.SetSize(m.muscles.Width(), m.muscles.Height())
		return fresh, nil
	}
	return m, nil
}

// submit validates the selection and starts the routine request. Validation errors stay on the current view.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	req, err := m.finder.Begin()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.view = SubmitView
	return m, tea.Batch(m.spinner.Tick, m.fetchRoutine(req))
}

func (m *Model) applyMuscles(lookup tasks.MuscleLookup) (tea.Model, tea.Cmd) {
	if !m.finder.ApplyMuscles(lookup) {
		return m, nil
	}
	m.loading = false
	m.muscles.SetItems(muscleItems(m.finder.MuscleOptions(), m.finder.IsMuscleSelected))
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BodyPartView:
		m.parts, cmd = m.parts.Update(msg)
	case MuscleView:
		m.muscles, cmd = m.muscles.Update(msg)
	}
	return m, cmd
}

func (m *Model) lookupMuscles(lookup tasks.MuscleLookup) tea.Cmd {
	return func() tea.Msg {
		return musclesLoadedMsg(m.finder.CollectMuscles(m.ctx, lookup))
	}
}

func (m *Model) fetchRoutine(req models.WeightliftingRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.WeightliftingSuggestions(m.ctx, req)
		return routineReceivedMsg(resp, err)
	}
}

func (m *Model) renderList(l list.Model) string {
	status := m.renderStatus()
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.toggle, m.keys.next, m.keys.submit, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", l.View(), status, helpView)
}

func (m *Model) renderStatus() string {
	switch {
	case m.err != nil:
		return styles.err.Render(m.err.Error())
	case m.loading:
		return fmt.Sprintf("%s %s", m.spinner.View(), styles.help.Render("Loading muscles..."))
	case len(m.finder.BodyParts()) == 0:
		return styles.help.Render(tasks.MsgSelectBodyPart)
	case len(m.finder.MuscleOptions()) > 0:
		return styles.ok.Render(fmt.Sprintf("%d muscles available (tab to choose)", len(m.finder.MuscleOptions())))
	default:
		return ""
	}
}

func (m *Model) renderSubmit() string {
	title := styles.title.Render("Building your workout")
	return fmt.Sprintf("%s\n\n%s %s", title, m.spinner.View(), m.finder.Control().Label())
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.restart, m.keys.quit})

	if m.err != nil {
		msg := m.err.Error()
		if errors.Is(m.err, shared.ErrCannotConnect) {
			return fmt.Sprintf("%s\n\n%s", styles.warn.Render(msg), helpView)
		}
		return fmt.Sprintf("%s\n\n%s", styles.err.Render("Error: "+msg), helpView)
	}

	title := styles.title.Render("YOUR WORKOUT")
	return fmt.Sprintf("%s\n%s\n%s", title, formatter.RoutineText(m.routine), helpView)
}
