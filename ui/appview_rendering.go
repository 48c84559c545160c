package ui

import (
	"fmt"
	"strings"

	appmodel "idea2grow/model"
	"idea2grow/render"
)

const loadingText = "Surveying idea2grow.com and the web..."

func roleLabel(role appmodel.Role) string {
	switch role {
	case appmodel.RoleUser:
		return "You"
	case appmodel.RoleModel:
		return "Idea2Grow"
	default:
		return "System"
	}
}

func (a *AppView) updateViewportContent(gotoBottom bool) {
	contentWidth := a.width - 2
	if contentWidth < 20 {
		contentWidth = 20
	}
	if contentWidth != a.renderedWidth {
		a.rendered = make(map[string]string)
		a.renderedWidth = contentWidth
	}

	var content strings.Builder

	for _, turn := range a.conv.Turns() {
		timestamp := DimStyle.Render(turn.Timestamp.Format("[15:04]"))

		switch turn.Role {
		case appmodel.RoleUser:
			content.WriteString(formatUserMessage(timestamp, UserStyle.Render(roleLabel(turn.Role)), turn.Content))
		case appmodel.RoleModel:
			content.WriteString(fmt.Sprintf("%s %s\n%s\n", timestamp, AssistantStyle.Render(roleLabel(turn.Role)), a.renderTurn(turn)))
			if lines := render.SourceLines(turn.Sources, contentWidth); len(lines) > 0 {
				content.WriteString("\n")
				content.WriteString(SourceHeaderStyle.Render("Sources"))
				content.WriteString("\n")
				for _, line := range lines {
					content.WriteString(DimStyle.Render(line))
					content.WriteString("\n")
				}
			}
			content.WriteString("\n")
		default:
			content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, DimStyle.Render(roleLabel(turn.Role)), turn.Content))
		}
	}

	if a.conv.IsLoading() {
		content.WriteString(fmt.Sprintf("%s %s\n", a.spinner.View(), loadingText))
	}

	if errMsg := a.conv.Err(); errMsg != "" {
		banner := ErrorStyle.Render(errMsg) + "\n" +
			FormatFooter(a.keys.DisplayActionKey("retry"), "Retry", a.keys.DisplayActionKey("new_conversation"), "New conversation")
		content.WriteString(ErrorBannerStyle.Width(contentWidth).Render(banner))
		content.WriteString("\n")
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// renderTurn returns the terminal rendering of a model turn, cached by ID.
func (a *AppView) renderTurn(turn appmodel.Turn) string {
	if out, ok := a.rendered[turn.ID]; ok {
		return out
	}
	out := render.Terminal(turn.Content, a.renderedWidth)
	a.rendered[turn.ID] = out
	return out
}

func formatUserMessage(timestamp, role, content string) string {
	bar := UserStyle.Render("┃")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))
	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}
	result.WriteString("\n")

	return result.String()
}
