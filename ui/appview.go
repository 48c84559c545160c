package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"idea2grow/config"
	appmodel "idea2grow/model"
)

// Options wires the view to its collaborators.
type Options struct {
	Conversation *appmodel.Conversation
	Keybindings  *config.KeyBindingsConfig
	Suggestions  []string
	ProviderName string
	Model        string
	Version      string
}

type AppView struct {
	// Reference to the conversation owned by this view
	conv *appmodel.Conversation
	keys *config.KeyBindingsConfig

	providerName string
	modelName    string
	version      string

	// UI Components
	viewport    viewport.Model
	textarea    textarea.Model
	spinner     spinner.Model
	suggestions suggestionList

	// Window state
	width  int
	height int
	ready  bool

	showHelp  bool
	showAbout bool

	// Rendered model turns keyed by turn ID, valid for renderedWidth
	rendered      map[string]string
	renderedWidth int

	copyStatus string
	copySeq    int

	writeClipboard func(string) error
}

func NewAppView(opts Options) AppView {
	kb := opts.Keybindings
	if kb == nil {
		kb = config.DefaultKeybindings()
	}

	ta := textarea.New()
	ta.Placeholder = "Ask about business ideas, growth strategies or AI platforms..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Alt+Enter for newline, Enter alone submits (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	return AppView{
		conv:           opts.Conversation,
		keys:           kb,
		providerName:   opts.ProviderName,
		modelName:      opts.Model,
		version:        opts.Version,
		viewport:       viewport.New(0, 0),
		textarea:       ta,
		spinner:        newLoadingSpinner(),
		suggestions:    newSuggestionList(opts.Suggestions),
		rendered:       make(map[string]string),
		writeClipboard: clipboard.WriteAll,
	}
}

func newLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	return s
}

func (a AppView) Init() tea.Cmd {
	return textarea.Blink
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading Idea2Grow..."
	}

	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}
	if a.showAbout {
		return a.renderAboutModal(a.width, a.height)
	}

	title := AssistantStyle.Render("Idea2Grow") +
		TitleStyle.Render(" - Strategic AI Agent") +
		DimStyle.Render(fmt.Sprintf(" | %s", a.backendLabel()))

	var body string
	if a.conv.Started() {
		body = a.viewport.View()
	} else {
		body = a.renderWelcome(a.width, a.viewport.Height)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		body,
		a.textarea.View(),
		a.statusBar(),
	)
}

func (a AppView) backendLabel() string {
	if a.modelName == "" {
		return a.providerName
	}
	return a.providerName + "/" + a.modelName
}

func (a AppView) statusBar() string {
	if a.copyStatus != "" {
		return StatusStyle.Render(a.copyStatus)
	}

	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	kb := a.keys
	parts := []string{
		kb.DisplayActionKey("quit") + " " + descStyle.Render("Quit"),
		kb.DisplayActionKey("new_conversation") + " " + descStyle.Render("New"),
	}
	if a.conv.Err() != "" {
		parts = append(parts, kb.DisplayActionKey("retry")+" "+descStyle.Render("Retry"))
	}
	parts = append(parts,
		kb.DisplayActionKey("yank_last_response")+" "+descStyle.Render("Copy"),
		"Alt+Enter "+descStyle.Render("New Line"),
		"Enter "+descStyle.Render("Send"),
		kb.DisplayActionKey("help")+" "+descStyle.Render("Help"),
	)

	return StatusStyle.Render(strings.Join(parts, "  "))
}

// layout sizes the viewport to the space between the title and the input.
func (a *AppView) layout() {
	// title (1) + separator (1) + textarea (3) + status bar (1)
	viewportHeight := a.height - 6
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	a.viewport.Width = a.width
	a.viewport.Height = viewportHeight
	a.textarea.SetWidth(a.width)
}
