package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (a AppView) renderHelpModal(width, height int) string {
	kb := a.keys

	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("Idea2Grow - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Global Actions"),
		fmt.Sprintf("• %-13s New conversation", kb.DisplayActionKey("new_conversation")),
		fmt.Sprintf("• %-13s Retry last prompt", kb.DisplayActionKey("retry")),
		fmt.Sprintf("• %-13s About", kb.DisplayActionKey("about")),
		fmt.Sprintf("• %-13s Toggle this help", kb.DisplayActionKey("help")),
		fmt.Sprintf("• %-13s Quit", kb.DisplayActionKey("quit")),
	)

	welcome := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Welcome Screen"),
		"• ↑/↓           Choose a suggestion",
		fmt.Sprintf("• %-13s Edit the suggestion", kb.DisplayActionKey("suggestion_accept")),
		"• Enter         Ask the suggestion",
	)

	chatNavigation := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat Navigation"),
		fmt.Sprintf("• %-13s Scroll down 1 line", kb.DisplayActionKey("scroll_down")),
		fmt.Sprintf("• %-13s Scroll up 1 line", kb.DisplayActionKey("scroll_up")),
		fmt.Sprintf("• %-13s Half page down", kb.DisplayActionKey("half_page_down")),
		fmt.Sprintf("• %-13s Half page up", kb.DisplayActionKey("half_page_up")),
		fmt.Sprintf("• %-13s Jump to top", kb.DisplayActionKey("scroll_to_top")),
		fmt.Sprintf("• %-13s Jump to bottom", kb.DisplayActionKey("scroll_to_bottom")),
	)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat Actions"),
		"• Enter         Send message",
		"• Alt+Enter     New line",
		fmt.Sprintf("• %-13s Clear input", kb.DisplayActionKey("clear_input")),
		fmt.Sprintf("• %-13s Copy last answer", kb.DisplayActionKey("yank_last_response")),
		fmt.Sprintf("• %-13s Copy conversation", kb.DisplayActionKey("yank_conversation")),
	)

	columnStyle := lipgloss.NewStyle().Width(42).PaddingLeft(4)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, globalActions, "", welcome)),
		columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, chatNavigation, "", chatActions)),
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render(fmt.Sprintf("Press %s or Esc to close this help", kb.DisplayActionKey("help")))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}
