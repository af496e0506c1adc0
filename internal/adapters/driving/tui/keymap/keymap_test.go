package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"ctrl+c"}},
		{"submit", km.Submit, []string{"enter"}},
		{"back", km.Back, []string{"esc"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"left", km.Left, []string{"left", "h"}},
		{"right", km.Right, []string{"right", "l"}},
		{"next table", km.NextTable, []string{"tab"}},
		{"previous table", km.PrevTable, []string{"shift+tab"}},
		{"delete row", km.DeleteRow, []string{"d", "delete"}},
		{"close", km.Close, []string{"q", "enter", "esc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_QuitDoesNotCaptureTyping(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("q", km.Quit))
	assert.False(t, Matches("d", km.Quit))
}

func TestKeyMap_HelpSets(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 1)
	assert.Len(t, km.FilePromptHelp(), 3)
	assert.Len(t, km.ConfirmHelp(), 4)
	assert.Len(t, km.ConsentHelp(), 5)
	assert.Len(t, km.EndHelp(), 1)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("enter", km.Submit))
	assert.True(t, Matches("delete", km.DeleteRow))
	assert.False(t, Matches("x", km.DeleteRow))
	assert.False(t, Matches("", km.Submit))
}
