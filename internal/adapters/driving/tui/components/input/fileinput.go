// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui/styles"
)

// FileInput wraps a bubbles textinput for entering an archive path.
type FileInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewFileInput creates a focused path input.
func NewFileInput(s *styles.Styles) *FileInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "/path/to/export.zip"
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 50

	return &FileInput{
		textinput: ti,
		styles:    s,
		label:     "File: ",
		width:     50,
	}
}

// Init starts the cursor blink.
func (f *FileInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *FileInput) Update(msg tea.Msg) (*FileInput, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and input.
func (f *FileInput) View() string {
	label := f.styles.Subtitle.Render(f.label)
	field := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Path returns the entered path with surrounding blanks and quotes removed.
// Terminals often quote paths dropped onto them.
func (f *FileInput) Path() string {
	p := strings.TrimSpace(f.textinput.Value())
	if len(p) >= 2 && (p[0] == '\'' || p[0] == '"') && p[len(p)-1] == p[0] {
		p = p[1 : len(p)-1]
	}
	return p
}

// SetValue sets the input value.
func (f *FileInput) SetValue(value string) {
	f.textinput.SetValue(value)
}

// SetLabel changes the text shown before the input.
func (f *FileInput) SetLabel(label string) {
	f.label = label
}

// Focused returns whether the input is focused.
func (f *FileInput) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *FileInput) SetWidth(width int) {
	f.width = width
	f.textinput.Width = max(width-lipgloss.Width(f.label)-4, 20)
}

// Width returns the current width.
func (f *FileInput) Width() int {
	return f.width
}

// Reset clears the input.
func (f *FileInput) Reset() {
	f.textinput.Reset()
}
