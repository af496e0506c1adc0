package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    FlowState
		terminal bool
	}{
		{StateAwaitFile, false},
		{StateExtracting, false},
		{StateRetryOffer, false},
		{StateConsentPrompt, false},
		{StateDonating, true},
		{StateSkippedNext, true},
		{StateDeclined, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.state.IsTerminal())
		})
	}
}

func TestFlowState_String(t *testing.T) {
	assert.Equal(t, "await_file", StateAwaitFile.String())
	assert.Equal(t, "skipped_next", StateSkippedNext.String())
	assert.Equal(t, "unknown", FlowState(99).String())
}

func TestLogTable(t *testing.T) {
	tbl := LogTable([]LogEntry{
		{Level: LogLevelDebug, Message: "TikTok: extracting file"},
	})

	assert.Equal(t, []string{"type", "message"}, tbl.Columns)
	assert.Equal(t, []any{"debug", "TikTok: extracting file"}, tbl.Rows[0])
}

func TestDonationKey(t *testing.T) {
	assert.Equal(t, "abc-TikTok", DonationKey("abc", "TikTok"))
}

func TestParseDonationKey(t *testing.T) {
	sessionID, platform, err := ParseDonationKey("1f0e-77aa-TikTok")
	require.NoError(t, err)
	assert.Equal(t, "1f0e-77aa", sessionID)
	assert.Equal(t, "TikTok", platform)

	for _, bad := range []string{"", "nodash", "-TikTok", "abc-"} {
		_, _, err := ParseDonationKey(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}
