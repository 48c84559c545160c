package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetActionKey(t *testing.T) {
	kb := DefaultKeybindings()

	tests := []struct {
		action string
		want   string
	}{
		{"new_conversation", "alt+n"},
		{"retry", "alt+r"},
		{"scroll_to_bottom", "alt+G"},
		{"page_down", "pgdown"},
		{"suggestion_accept", "tab"},
		{"does_not_exist", ""},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			assert.Equal(t, tt.want, kb.GetActionKey(tt.action))
		})
	}
}

func TestActionOverrideAndModifiers(t *testing.T) {
	kb := &KeyBindingsConfig{
		Modifiers: ModifierConfig{Primary: "ctrl", Secondary: "ctrl+shift"},
		Actions:   map[string]string{"retry": "f5"},
	}

	assert.Equal(t, "f5", kb.GetActionKey("retry"))
	assert.Equal(t, "ctrl+n", kb.GetActionKey("new_conversation"))
	assert.True(t, kb.Matches("ctrl+y", "yank_last_response"))
	assert.False(t, kb.Matches("alt+y", "yank_last_response"))
	assert.False(t, kb.Matches("", "does_not_exist"))

	ok, warning := kb.Validate()
	assert.True(t, ok)
	assert.Contains(t, warning, "Ctrl")
}

func TestDisplayActionKey(t *testing.T) {
	kb := DefaultKeybindings()
	assert.Equal(t, "Alt+N", kb.DisplayActionKey("new_conversation"))
	assert.Equal(t, "Alt+Shift+G", kb.DisplayActionKey("scroll_to_bottom"))
	assert.Equal(t, "", kb.DisplayActionKey("nope"))
}

func TestLoadKeybindings(t *testing.T) {
	dir := t.TempDir()

	kb, err := LoadKeybindings(dir)
	require.NoError(t, err)
	assert.Equal(t, "alt", kb.Primary())
	assert.FileExists(t, filepath.Join(dir, "keybindings.toml"))

	custom := "[modifiers]\nprimary = \"super\"\n\n[actions]\nquit = \"ctrl+q\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keybindings.toml"), []byte(custom), 0600))

	kb, err = LoadKeybindings(dir)
	require.NoError(t, err)
	assert.Equal(t, "super+h", kb.GetActionKey("help"))
	assert.Equal(t, "alt+shift", kb.Secondary())
	assert.Equal(t, "ctrl+q", kb.GetActionKey("quit"))
}
