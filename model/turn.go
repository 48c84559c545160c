package model

import (
	"fmt"
	"time"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser   Role = "user"
	RoleModel  Role = "model"
	RoleSystem Role = "system"
)

// ParseRole converts a stored role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleModel, RoleSystem:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// DefaultCitationTitle is used when a grounding source carries no title.
const DefaultCitationTitle = "Source"

// Citation identifies a web source used to ground a model answer.
type Citation struct {
	Title string
	URI   string
}

// Turn is one message in the conversation.
type Turn struct {
	ID        string
	Role      Role
	Content   string // Raw text, may contain **bold** and list markup
	Timestamp time.Time
	Sources   []Citation // Only set on grounded model turns
}

// HistoryEntry is the role/content pair sent to the completion gateway.
type HistoryEntry struct {
	Role    Role
	Content string
}

// BuildHistory maps turns to outbound history entries.
// System turns are dropped: the persona travels as the system instruction.
func BuildHistory(turns []Turn) []HistoryEntry {
	history := make([]HistoryEntry, 0, len(turns))
	for _, t := range turns {
		if t.Role == RoleSystem {
			continue
		}
		history = append(history, HistoryEntry{
			Role:    t.Role,
			Content: t.Content,
		})
	}
	return history
}

func cloneTurn(t Turn) Turn {
	if t.Sources != nil {
		t.Sources = append([]Citation(nil), t.Sources...)
	}
	return t
}
