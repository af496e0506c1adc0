// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
)

// StepReceived carries the next suspension of the donation script.
type StepReceived struct {
	Step domain.Step
	Err  error
}

// PayloadSubmitted is sent by a view when the participant answers a page.
type PayloadSubmitted struct {
	Payload domain.Payload
}

// DonationRecorded signals that a Donate command was persisted.
type DonationRecorded struct {
	Donation *domain.Donation
	Err      error
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLoading is shown while the script is working.
	ViewLoading ViewType = iota
	// ViewFilePrompt asks for an export archive.
	ViewFilePrompt
	// ViewConfirm offers a yes/no choice.
	ViewConfirm
	// ViewConsent shows the extracted tables for review.
	ViewConsent
	// ViewEnd is the final page.
	ViewEnd
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewFilePrompt:
		return "file_prompt"
	case ViewConfirm:
		return "confirm"
	case ViewConsent:
		return "consent"
	case ViewEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// Submit wraps a payload in a command for the app to pick up.
func Submit(p domain.Payload) tea.Cmd {
	return func() tea.Msg { return PayloadSubmitted{Payload: p} }
}
