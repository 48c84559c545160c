package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeyBindingsConfig holds modifier customization and optional per-action overrides
type KeyBindingsConfig struct {
	Modifiers ModifierConfig    `toml:"modifiers"`
	Actions   map[string]string `toml:"actions"` // Optional overrides for specific actions
}

type ModifierConfig struct {
	Primary   string `toml:"primary"`   // e.g., "alt", "ctrl", "meta", "super"
	Secondary string `toml:"secondary"` // e.g., "alt+shift", "ctrl+shift"
}

// actionDef defines the default modifier and key for an action
type actionDef struct {
	modifier string // "primary", "secondary", or "none"
	key      string
}

// actionRegistry maps action names to their default keybindings.
// Users can override any of these in the [actions] section of keybindings.toml.
var actionRegistry = map[string]actionDef{
	"help":             {"primary", "h"},
	"about":            {"secondary", "a"},
	"new_conversation": {"primary", "n"},
	"retry":            {"primary", "r"},
	"quit":             {"primary", "q"},

	"scroll_down":      {"primary", "j"},
	"scroll_up":        {"primary", "k"},
	"half_page_down":   {"secondary", "j"},
	"half_page_up":     {"secondary", "k"},
	"page_down":        {"none", "pgdown"},
	"page_up":          {"none", "pgup"},
	"scroll_to_top":    {"primary", "g"},
	"scroll_to_bottom": {"secondary", "g"},

	"yank_last_response": {"primary", "y"},
	"yank_conversation":  {"primary", "c"},
	"clear_input":        {"primary", "u"},

	// Welcome screen suggestion list
	"suggestion_down":   {"none", "down"},
	"suggestion_up":     {"none", "up"},
	"suggestion_accept": {"none", "tab"},
}

// DefaultKeybindings returns default configuration
func DefaultKeybindings() *KeyBindingsConfig {
	return &KeyBindingsConfig{
		Modifiers: ModifierConfig{
			Primary:   "alt",
			Secondary: "alt+shift",
		},
	}
}

// LoadKeybindings loads keybindings.toml from the data directory, writing
// the commented template on first run.
func LoadKeybindings(dataDir string) (*KeyBindingsConfig, error) {
	cfg := DefaultKeybindings()
	keybindingsPath := filepath.Join(dataDir, "keybindings.toml")

	if !FileExists(keybindingsPath) {
		if err := CreateDefaultKeybindings(dataDir); err != nil {
			return nil, fmt.Errorf("failed to create keybindings: %w", err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(keybindingsPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse keybindings: %w", err)
	}

	if cfg.Modifiers.Primary == "" {
		cfg.Modifiers.Primary = "alt"
	}
	if cfg.Modifiers.Secondary == "" {
		cfg.Modifiers.Secondary = "alt+shift"
	}

	return cfg, nil
}

// CreateDefaultKeybindings creates default keybindings.toml
func CreateDefaultKeybindings(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	keybindingsPath := filepath.Join(dataDir, "keybindings.toml")
	if FileExists(keybindingsPath) {
		return nil
	}

	if err := os.WriteFile(keybindingsPath, []byte(GenerateKeybindingsTemplate()), 0600); err != nil {
		return fmt.Errorf("failed to write keybindings: %w", err)
	}

	return nil
}

// GenerateKeybindingsTemplate returns the default TOML template
func GenerateKeybindingsTemplate() string {
	return `# Idea2Grow Keybindings Configuration
# Location: <data_directory>/keybindings.toml

[modifiers]
primary = "alt"          # Default: alt (Options: alt, ctrl, meta, super)
secondary = "alt+shift"  # Default: alt+shift

# For tmux users (Alt may conflict):
#   primary = "ctrl"
#   secondary = "ctrl+shift"

[actions]
# Override single actions here. Available actions:
#   help, about, new_conversation, retry, quit,
#   scroll_down, scroll_up, half_page_down, half_page_up, page_down, page_up,
#   scroll_to_top, scroll_to_bottom, yank_last_response, yank_conversation,
#   clear_input, suggestion_down, suggestion_up, suggestion_accept
#
# Example:
#   new_conversation = "ctrl+t"
`
}

// Primary returns the primary modifier
func (kb *KeyBindingsConfig) Primary() string {
	if kb.Modifiers.Primary == "" {
		return "alt"
	}
	return kb.Modifiers.Primary
}

// Secondary returns the secondary modifier
func (kb *KeyBindingsConfig) Secondary() string {
	if kb.Modifiers.Secondary == "" {
		return "alt+shift"
	}
	return kb.Modifiers.Secondary
}

// PrimaryKey builds a keybinding string with primary modifier
// Example: PrimaryKey("n") returns "alt+n" (or "ctrl+n" if primary is "ctrl")
func (kb *KeyBindingsConfig) PrimaryKey(key string) string {
	return kb.Primary() + "+" + key
}

// SecondaryKey builds a keybinding string with secondary modifier.
// A shifted single letter is reported by terminals as the uppercase letter,
// so SecondaryKey("g") returns "alt+G" rather than "alt+shift+g".
func (kb *KeyBindingsConfig) SecondaryKey(key string) string {
	secondary := kb.Secondary()

	if strings.Contains(strings.ToLower(secondary), "shift") && len(key) == 1 && key[0] >= 'a' && key[0] <= 'z' {
		var mods []string
		for _, part := range strings.Split(secondary, "+") {
			if strings.ToLower(part) != "shift" {
				mods = append(mods, part)
			}
		}
		if len(mods) > 0 {
			return strings.Join(mods, "+") + "+" + strings.ToUpper(key)
		}
		return strings.ToUpper(key)
	}

	return secondary + "+" + key
}

// GetActionKey returns the keybinding for an action: the user override if
// present, otherwise the registry default. Unknown actions return "".
func (kb *KeyBindingsConfig) GetActionKey(action string) string {
	if override, ok := kb.Actions[action]; ok && override != "" {
		return override
	}

	if def, ok := actionRegistry[action]; ok {
		switch def.modifier {
		case "primary":
			return kb.PrimaryKey(def.key)
		case "secondary":
			return kb.SecondaryKey(def.key)
		case "none":
			return def.key
		}
	}

	return ""
}

// Matches reports whether a pressed key string triggers action.
func (kb *KeyBindingsConfig) Matches(pressed, action string) bool {
	k := kb.GetActionKey(action)
	return k != "" && k == pressed
}

// DisplayActionKey returns a display-friendly version of an action's keybinding
// Example: "ctrl+shift+j" -> "Ctrl+Shift+J"
func (kb *KeyBindingsConfig) DisplayActionKey(action string) string {
	key := kb.GetActionKey(action)
	if key == "" {
		return ""
	}
	return capitalizeKeybinding(key)
}

// capitalizeKeybinding capitalizes a keybinding string for display.
// An uppercase letter after a modifier is shown as Shift+<letter>:
//
//	"alt+G" -> "Alt+Shift+G"
//	"alt+j" -> "Alt+J"
func capitalizeKeybinding(key string) string {
	parts := strings.Split(key, "+")
	hasShift := false
	for _, p := range parts {
		if strings.ToLower(p) == "shift" {
			hasShift = true
			break
		}
	}

	var result []string
	for i, part := range parts {
		if part == "" {
			continue
		}
		if len(part) == 1 && part[0] >= 'A' && part[0] <= 'Z' {
			if !hasShift && i > 0 {
				result = append(result, "Shift")
			}
			result = append(result, part)
			continue
		}
		result = append(result, strings.ToUpper(part[:1])+part[1:])
	}

	return strings.Join(result, "+")
}

// Validate checks if the configuration is valid
// Returns (isValid, warningMessage)
func (kb *KeyBindingsConfig) Validate() (bool, string) {
	primary := kb.Primary()
	secondary := kb.Secondary()

	if primary == "shift" || secondary == "shift" {
		return false, "Shift alone conflicts with typing"
	}

	if strings.Contains(primary, "ctrl") || strings.Contains(secondary, "ctrl") {
		return true, "Warning: Ctrl may conflict with terminal shortcuts (Ctrl+C, Ctrl+Z, Ctrl+D)"
	}

	return true, ""
}
