// Package ui implements the interactive workout finder using bubbletea's Elm architecture.
//
// The finder walks through the suggestion flow:
//  1. [BodyPartView] : Toggle body parts; each toggle refreshes the muscle options
//  2. [MuscleView] : Optionally narrow the selection to specific muscles
//  3. [SubmitView] : Wait for the backend to suggest a routine
//  4. [ResultView] : Read the routine or the error
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Network calls run in commands; their results are applied to the [tasks.WorkoutFinder] in Update,
// so a muscle lookup that finishes after a newer toggle is discarded.
//
// Keyboard navigation uses vim-style bindings (j/k, space, tab, g, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
