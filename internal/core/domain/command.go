package domain

import (
	"encoding/json"
	"fmt"
)

// Command is a message the donation flow sends to the host.
// The set of commands is closed: RenderPage, Donate and RenderEnd.
type Command interface {
	isCommand()
}

// RenderPage asks the host to display a page for a platform.
type RenderPage struct {
	// Platform is the platform label shown in the page header.
	Platform string

	// Body is the prompt displayed on the page.
	Body PageBody

	// Progress is the overall progress counter shown in the footer.
	Progress int
}

// Donate asks the host to transmit a consented payload.
type Donate struct {
	// Key identifies the donation as "<sessionId>-<platform>".
	Key string

	// JSON is the payload to transmit.
	JSON string
}

// RenderEnd asks the host to display the closing page.
type RenderEnd struct{}

func (RenderPage) isCommand() {}
func (Donate) isCommand()     {}
func (RenderEnd) isCommand()  {}

// PageBody is the prompt carried by a RenderPage command.
// The set of bodies is closed: FileInputPrompt, ConfirmPrompt and ConsentForm.
type PageBody interface {
	isPageBody()
}

// FileInputPrompt asks the user to choose an export file.
type FileInputPrompt struct {
	Description Translatable
	// Extensions lists accepted MIME types, e.g. "application/zip, text/plain".
	Extensions string
}

// ConfirmPrompt asks the user to choose between two options.
// Choosing Ok resumes the flow with PayloadTrue.
type ConfirmPrompt struct {
	Text   Translatable
	Ok     Translatable
	Cancel Translatable
}

// ConsentTable is a table displayed on the consent form.
type ConsentTable struct {
	ID    string
	Title Translatable
	Table Table
}

// ConsentForm presents extracted tables for approval.
// MetaTables hold the flow log so users can audit what was done.
type ConsentForm struct {
	Tables     []ConsentTable
	MetaTables []ConsentTable
}

func (FileInputPrompt) isPageBody() {}
func (ConfirmPrompt) isPageBody()   {}
func (ConsentForm) isPageBody()     {}

// PayloadKind tags a host response.
type PayloadKind int

const (
	// PayloadNone means no selection, or an unrecognised response.
	PayloadNone PayloadKind = iota

	// PayloadString carries a file handle.
	PayloadString

	// PayloadJSON carries a consent decision with the approved tables.
	PayloadJSON

	// PayloadTrue carries a positive confirmation.
	PayloadTrue

	// PayloadFalse carries a negative confirmation.
	PayloadFalse
)

// String returns the host tag for the kind.
func (k PayloadKind) String() string {
	switch k {
	case PayloadString:
		return "PayloadString"
	case PayloadJSON:
		return "PayloadJSON"
	case PayloadTrue:
		return "PayloadTrue"
	case PayloadFalse:
		return "PayloadFalse"
	default:
		return "PayloadVoid"
	}
}

// ParsePayloadKind maps a host tag to a kind. Unknown or empty tags map to PayloadNone.
func ParsePayloadKind(tag string) PayloadKind {
	switch tag {
	case "PayloadString":
		return PayloadString
	case "PayloadJSON":
		return PayloadJSON
	case "PayloadTrue":
		return PayloadTrue
	case "PayloadFalse":
		return PayloadFalse
	default:
		return PayloadNone
	}
}

// Payload is a host response to a suspended flow.
type Payload struct {
	Kind  PayloadKind
	Value string
}

// NoSelection returns an empty payload.
func NoSelection() Payload { return Payload{Kind: PayloadNone} }

// FilePayload returns a payload carrying a file handle.
func FilePayload(path string) Payload { return Payload{Kind: PayloadString, Value: path} }

// JSONPayload returns a payload carrying a consent decision.
func JSONPayload(data string) Payload { return Payload{Kind: PayloadJSON, Value: data} }

// ConfirmPayload returns PayloadTrue or PayloadFalse.
func ConfirmPayload(ok bool) Payload {
	if ok {
		return Payload{Kind: PayloadTrue}
	}
	return Payload{Kind: PayloadFalse}
}

// donatedTable is the wire shape of one consented table.
type donatedTable struct {
	ID      string   `json:"id"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NewConsentPayload encodes the tables a user approved as a PayloadJSON.
func NewConsentPayload(tables []ConsentTable) (Payload, error) {
	out := make([]donatedTable, 0, len(tables))
	for _, t := range tables {
		rows := t.Table.Rows
		if rows == nil {
			rows = [][]any{}
		}
		out = append(out, donatedTable{ID: t.ID, Columns: t.Table.Columns, Rows: rows})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return Payload{}, fmt.Errorf("encoding consent payload: %w", err)
	}
	return JSONPayload(string(data)), nil
}

// Step is the outcome of starting or resuming a flow.
// Command is nil when a flow ends without anything left to send.
type Step struct {
	Command Command
	Done    bool
}
