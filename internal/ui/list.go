package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/spotter/internal/formatter"
	"github.com/desertthunder/spotter/internal/models"
)

var _ list.Item = choiceItem{}

// choiceItem is one checkable row: a body part or a muscle option.
type choiceItem struct {
	value    string
	label    string
	selected bool
}

func (i choiceItem) FilterValue() string { return i.label }
func (i choiceItem) Title() string {
	if i.selected {
		return "[x] " + i.label
	}
	return "[ ] " + i.label
}
func (i choiceItem) Description() string { return i.value }

func bodyPartItems(parts []string, selected func(string) bool) []list.Item {
	items := make([]list.Item, len(parts))
	for i, p := range parts {
		items[i] = choiceItem{value: p, label: p, selected: selected(p)}
	}
	return items
}

func muscleItems(options []models.MuscleOption, selected func(string) bool) []list.Item {
	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = choiceItem{value: opt.Value, label: formatter.FormatMuscleLabel(opt), selected: selected(opt.Value)}
	}
	return items
}

func newChoiceList(title string, items []list.Item) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, 40, 14)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}
