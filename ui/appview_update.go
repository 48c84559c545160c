package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"idea2grow/config"
	"idea2grow/render"
)

const copyStatusDuration = 2 * time.Second

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		a.ready = true
		a.updateViewportContent(true)
		return a, nil

	case completionDoneMsg, completionFailedMsg:
		if a.conv.Handle(msg) {
			a.updateViewportContent(true)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.conv.IsLoading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.updateViewportContent(false)
		return a, cmd

	case answerCopiedMsg:
		a.copySeq++
		if msg.Err != nil {
			config.Log.Warn().Err(msg.Err).Msg("ui: clipboard write failed")
			a.copyStatus = fmt.Sprintf("Copy failed: %v", msg.Err)
		} else {
			a.copyStatus = "Copied to clipboard"
		}
		seq := a.copySeq
		return a, tea.Tick(copyStatusDuration, func(time.Time) tea.Msg {
			return copyStatusClearMsg{seq: seq}
		})

	case copyStatusClearMsg:
		if msg.seq == a.copySeq {
			a.copyStatus = ""
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.keys
	pressed := msg.String()

	if pressed == "ctrl+c" || kb.Matches(pressed, "quit") {
		return a, tea.Quit
	}

	// Modals swallow everything except their own close keys.
	if a.showHelp {
		if pressed == "esc" || kb.Matches(pressed, "help") {
			a.showHelp = false
		}
		return a, nil
	}
	if a.showAbout {
		if pressed == "esc" || kb.Matches(pressed, "about") {
			a.showAbout = false
		}
		return a, nil
	}

	switch {
	case kb.Matches(pressed, "help"):
		a.showHelp = true
		return a, nil

	case kb.Matches(pressed, "about"):
		a.showAbout = true
		return a, nil

	case kb.Matches(pressed, "new_conversation"):
		a.conv.Reset()
		a.textarea.Reset()
		a.suggestions.Filter("")
		a.rendered = make(map[string]string)
		a.updateViewportContent(true)
		config.Log.Debug().Msg("ui: new conversation")
		return a, nil

	case kb.Matches(pressed, "retry"):
		cmd := a.conv.Retry()
		if cmd == nil {
			return a, nil
		}
		return a.startRequest(cmd)

	case kb.Matches(pressed, "yank_last_response"):
		return a, a.copyLastAnswer()

	case kb.Matches(pressed, "yank_conversation"):
		return a, a.copyConversation()

	case kb.Matches(pressed, "clear_input"):
		a.textarea.Reset()
		a.suggestions.Filter("")
		return a, nil
	}

	if !a.conv.Started() {
		switch {
		case kb.Matches(pressed, "suggestion_down"):
			a.suggestions.Next()
			return a, nil
		case kb.Matches(pressed, "suggestion_up"):
			a.suggestions.Prev()
			return a, nil
		case kb.Matches(pressed, "suggestion_accept"):
			if s, ok := a.suggestions.Selected(); ok {
				a.textarea.SetValue(s)
			}
			return a, nil
		}
	} else if a.handleScroll(pressed) {
		return a, nil
	}

	// Enter sends; Alt+Enter falls through to the textarea as a newline.
	if msg.Type == tea.KeyEnter && !msg.Alt {
		return a.submitInput()
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	if !a.conv.Started() {
		a.suggestions.Filter(a.textarea.Value())
	}
	return a, cmd
}

func (a *AppView) handleScroll(pressed string) bool {
	kb := a.keys
	switch {
	case kb.Matches(pressed, "scroll_down"):
		a.viewport.ScrollDown(1)
	case kb.Matches(pressed, "scroll_up"):
		a.viewport.ScrollUp(1)
	case kb.Matches(pressed, "half_page_down"):
		a.viewport.HalfPageDown()
	case kb.Matches(pressed, "half_page_up"):
		a.viewport.HalfPageUp()
	case kb.Matches(pressed, "page_down"):
		a.viewport.PageDown()
	case kb.Matches(pressed, "page_up"):
		a.viewport.PageUp()
	case kb.Matches(pressed, "scroll_to_top"):
		a.viewport.GotoTop()
	case kb.Matches(pressed, "scroll_to_bottom"):
		a.viewport.GotoBottom()
	default:
		return false
	}
	return true
}

// submitInput sends the typed prompt. On the welcome screen a blank input
// sends the highlighted suggestion instead.
func (a AppView) submitInput() (tea.Model, tea.Cmd) {
	text := a.textarea.Value()
	if strings.TrimSpace(text) == "" && !a.conv.Started() {
		if s, ok := a.suggestions.Selected(); ok {
			text = s
		}
	}

	cmd := a.conv.Submit(text)
	if cmd == nil {
		return a, nil
	}

	a.textarea.Reset()
	a.suggestions.Filter("")
	return a.startRequest(cmd)
}

func (a AppView) startRequest(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	// A fresh spinner gets a new ID so ticks from an earlier request stop.
	a.spinner = newLoadingSpinner()
	a.updateViewportContent(true)
	return a, tea.Batch(cmd, a.spinner.Tick)
}

func (a AppView) copyLastAnswer() tea.Cmd {
	turn, ok := a.conv.LastModelTurn()
	if !ok {
		return nil
	}
	text := turn.Content
	if sources := render.Sources(turn.Sources, 0); sources != "" {
		text += "\n\n" + sources
	}
	return a.copyCmd(text)
}

func (a AppView) copyConversation() tea.Cmd {
	turns := a.conv.Turns()
	if len(turns) == 0 {
		return nil
	}

	var sb strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&sb, "[%s] %s:\n%s\n\n", t.Timestamp.Format("15:04"), roleLabel(t.Role), t.Content)
		if sources := render.Sources(t.Sources, 0); sources != "" {
			sb.WriteString(sources)
			sb.WriteString("\n\n")
		}
	}
	return a.copyCmd(strings.TrimRight(sb.String(), "\n"))
}

func (a AppView) copyCmd(text string) tea.Cmd {
	write := a.writeClipboard
	return func() tea.Msg {
		return answerCopiedMsg{Err: write(text)}
	}
}
