package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

const ASCIIArt = ` ___    _            ____   ____
|_ _|__| | ___  __ _|___ \ / ___|_ __ _____      __
 | |/ _' |/ _ \/ _' | __) | |  _| '__/ _ \ \ /\ / /
 | | (_| |  __/ (_| |/ __/| |_| | | | (_) \ V  V /
|___\__,_|\___|\__,_|_____|\____|_|  \___/ \_/\_/`

var Features = []string{
	"Strategic growth ideas, grounded in live web search",
	"Answers cite their sources",
	"Trends, business ideas and AI platforms for 2026",
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	featureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	suggestionStyle = lipgloss.NewStyle().
			Width(56).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))

	selectedSuggestionStyle = lipgloss.NewStyle().
				Width(56).
				Padding(0, 2).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("10")).
				Foreground(lipgloss.Color("10")).
				Bold(true)
)

// suggestionList is the welcome screen's prompt picker. Typing in the input
// narrows it with a fuzzy match.
type suggestionList struct {
	all      []string
	filtered []string
	selected int
}

func newSuggestionList(items []string) suggestionList {
	return suggestionList{
		all:      items,
		filtered: items,
	}
}

// Filter narrows the list to fuzzy matches of query, best match first.
// An empty query restores the full list.
func (s *suggestionList) Filter(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.filtered = s.all
	} else {
		matches := fuzzy.Find(query, s.all)
		s.filtered = make([]string, 0, len(matches))
		for _, m := range matches {
			s.filtered = append(s.filtered, m.Str)
		}
	}
	if s.selected >= len(s.filtered) {
		s.selected = 0
	}
}

func (s *suggestionList) Next() {
	if len(s.filtered) == 0 {
		return
	}
	s.selected = (s.selected + 1) % len(s.filtered)
}

func (s *suggestionList) Prev() {
	if len(s.filtered) == 0 {
		return
	}
	s.selected = (s.selected - 1 + len(s.filtered)) % len(s.filtered)
}

// Selected returns the highlighted suggestion.
func (s suggestionList) Selected() (string, bool) {
	if len(s.filtered) == 0 {
		return "", false
	}
	return s.filtered[s.selected], true
}

func (s suggestionList) Items() []string {
	return s.filtered
}

func (a AppView) renderWelcome(width, height int) string {
	kb := a.keys

	var sb strings.Builder
	for _, line := range strings.Split(ASCIIArt, "\n") {
		sb.WriteString(titleStyle.Render(line))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	for _, feature := range Features {
		sb.WriteString(featureStyle.Render(feature))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	items := a.suggestions.Items()
	if len(items) == 0 {
		sb.WriteString(DimStyle.Render("No matching suggestions. Press Enter to ask anyway."))
		sb.WriteString("\n")
	}
	for i, item := range items {
		if i == a.suggestions.selected {
			sb.WriteString(selectedSuggestionStyle.Render(item))
		} else {
			sb.WriteString(suggestionStyle.Render(item))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	hint := FormatFooter(
		"↑/↓", "Choose",
		kb.DisplayActionKey("suggestion_accept"), "Edit",
		"Enter", "Ask",
		kb.DisplayActionKey("help"), "Help",
	)
	sb.WriteString(hint)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, sb.String())
}
