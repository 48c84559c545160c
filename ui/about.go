package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const WebsiteURL = "idea2grow.com"

func (a AppView) renderAboutModal(width, height int) string {
	var sb strings.Builder

	asciiStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")).
		Bold(true)

	sb.WriteString(asciiStyle.Render(ASCIIArt))
	sb.WriteString("\n\n")

	for _, feature := range Features {
		sb.WriteString(featureStyle.Render(feature))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("7"))

	rows := [][2]string{
		{"Version: ", a.version},
		{"Backend: ", a.backendLabel()},
		{"Website: ", WebsiteURL},
	}
	for _, row := range rows {
		sb.WriteString(labelStyle.Render(row[0]))
		sb.WriteString(valueStyle.Render(row[1]))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(featureStyle.Render(fmt.Sprintf("Press Esc or %s to close", a.keys.DisplayActionKey("about"))))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxStyle.Render(sb.String()))
}
