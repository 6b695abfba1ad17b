package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotter/internal/models"
	"github.com/desertthunder/spotter/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgMusclesLoaded MsgKind = iota
	MsgRoutineReceived
)

type routineResult struct {
	resp *models.RoutineResponse
	err  error
}

// musclesLoadedMsg is the constructor for [MsgMusclesLoaded]
func musclesLoadedMsg(lookup tasks.MuscleLookup) Msg {
	return Msg{kind: MsgMusclesLoaded, data: lookup}
}

// routineReceivedMsg is the constructor for [MsgRoutineReceived]
func routineReceivedMsg(resp *models.RoutineResponse, err error) Msg {
	return Msg{kind: MsgRoutineReceived, data: routineResult{resp, err}}
}
