package domain

import (
	"strings"
	"time"
)

// FlowState is a state of the donation flow.
type FlowState int

const (
	// StateAwaitFile waits for the user to choose a file.
	StateAwaitFile FlowState = iota

	// StateExtracting runs the extraction pipeline on the chosen file.
	StateExtracting

	// StateRetryOffer asks the user whether to retry after a read failure.
	StateRetryOffer

	// StateConsentPrompt waits for the user to approve or decline the tables.
	StateConsentPrompt

	// StateDonating is reached after a donate command was emitted.
	StateDonating

	// StateSkippedNext is reached when the user supplied no file.
	StateSkippedNext

	// StateDeclined is reached when the user declined consent.
	StateDeclined
)

// String returns the string representation of the state.
func (s FlowState) String() string {
	switch s {
	case StateAwaitFile:
		return "await_file"
	case StateExtracting:
		return "extracting"
	case StateRetryOffer:
		return "retry_offer"
	case StateConsentPrompt:
		return "consent_prompt"
	case StateDonating:
		return "donating"
	case StateSkippedNext:
		return "skipped_next"
	case StateDeclined:
		return "declined"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transition is possible.
func (s FlowState) IsTerminal() bool {
	return s == StateDonating || s == StateSkippedNext || s == StateDeclined
}

// LogEntry is one line of the flow audit log.
type LogEntry struct {
	Level   string
	Message string
}

// Log levels of the flow audit log.
const (
	LogLevelDebug = "debug"
	LogLevelError = "error"
)

// LogTable renders log entries as a two-column table.
func LogTable(entries []LogEntry) Table {
	t := NewTable("type", "message")
	for _, e := range entries {
		t.Append(e.Level, e.Message)
	}
	return t
}

// DonationKey builds the key under which a platform's payload is donated.
func DonationKey(sessionID, platform string) string {
	return sessionID + "-" + platform
}

// ParseDonationKey splits a donation key at its last dash.
// Session ids may contain dashes, platform names do not.
func ParseDonationKey(key string) (sessionID, platform string, err error) {
	i := strings.LastIndex(key, "-")
	if i <= 0 || i == len(key)-1 {
		return "", "", ErrInvalidInput
	}
	return key[:i], key[i+1:], nil
}

// Donation is a stored donate command.
type Donation struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	SessionID string    `json:"session_id"`
	Platform  string    `json:"platform"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}
