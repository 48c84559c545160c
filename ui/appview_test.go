package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea2grow/config"
	"idea2grow/model"
)

var testSuggestions = config.DefaultPromptConfig().Suggestions

type fakeCompleter struct {
	prompts []string
	answers []model.Completion
	errs    []error
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, _ []model.HistoryEntry) (model.Completion, error) {
	f.prompts = append(f.prompts, prompt)
	i := len(f.prompts) - 1
	if i < len(f.errs) && f.errs[i] != nil {
		return model.Completion{}, f.errs[i]
	}
	if i < len(f.answers) {
		return f.answers[i], nil
	}
	return model.Completion{Text: "ok"}, nil
}

func newTestView(t *testing.T, c model.Completer) AppView {
	t.Helper()
	conv := model.NewConversation(context.Background(), c)
	v := NewAppView(Options{
		Conversation: conv,
		Suggestions:  testSuggestions,
		ProviderName: "gemini",
		Model:        "gemini-3-flash-preview",
		Version:      "test",
	})
	return update(t, v, tea.WindowSizeMsg{Width: 120, Height: 50})
}

func update(t *testing.T, v AppView, msg tea.Msg) AppView {
	t.Helper()
	next, _ := v.Update(msg)
	return next.(AppView)
}

func press(t *testing.T, v AppView, msg tea.KeyMsg) (AppView, tea.Cmd) {
	t.Helper()
	next, cmd := v.Update(msg)
	return next.(AppView), cmd
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func typeText(t *testing.T, v AppView, s string) AppView {
	t.Helper()
	next, _ := press(t, v, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next
}

// runCmd executes cmd, expanding batches, and returns the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver runs cmd and feeds completion results back into the view.
func deliver(t *testing.T, v AppView, cmd tea.Cmd) AppView {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		switch msg.(type) {
		case model.CompletionDoneMsg, model.CompletionFailedMsg, model.AnswerCopiedMsg:
			v = update(t, v, msg)
		}
	}
	return v
}

func TestWelcomeScreen(t *testing.T) {
	v := newTestView(t, &fakeCompleter{})

	out := v.View()
	for _, s := range testSuggestions {
		assert.Contains(t, out, s)
	}
	assert.Contains(t, out, "Idea2Grow")
	assert.Contains(t, out, "gemini/gemini-3-flash-preview")
}

func TestLoadingBeforeWindowSize(t *testing.T) {
	conv := model.NewConversation(context.Background(), &fakeCompleter{})
	v := NewAppView(Options{Conversation: conv})
	assert.Equal(t, "Loading Idea2Grow...", v.View())
}

func TestEnterSendsSelectedSuggestion(t *testing.T) {
	fake := &fakeCompleter{answers: []model.Completion{{
		Text:    "**Top idea:** AI tutoring",
		Sources: []model.Citation{{Title: "Site", URI: "https://idea2grow.com/x"}},
	}}}
	v := newTestView(t, fake)

	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyDown})
	v, cmd := press(t, v, enterKey())
	require.NotNil(t, cmd)
	assert.True(t, v.conv.IsLoading())
	assert.Contains(t, v.View(), loadingText)

	v = deliver(t, v, cmd)

	require.Equal(t, []string{testSuggestions[1]}, fake.prompts)
	assert.False(t, v.conv.IsLoading())

	out := v.View()
	assert.Contains(t, out, "tutoring")
	assert.Contains(t, out, "Sources")
	assert.Contains(t, out, "1. Site - https://idea2grow.com/x")
}

func TestTypedPromptIsSent(t *testing.T) {
	fake := &fakeCompleter{}
	v := newTestView(t, fake)

	v = typeText(t, v, "How do I grow a bakery?")
	v, cmd := press(t, v, enterKey())
	v = deliver(t, v, cmd)

	assert.Equal(t, []string{"How do I grow a bakery?"}, fake.prompts)
	assert.Empty(t, v.textarea.Value())
	assert.Len(t, v.conv.Turns(), 2)
}

func TestEnterWhileLoadingIsIgnored(t *testing.T) {
	fake := &fakeCompleter{}
	v := newTestView(t, fake)

	v = typeText(t, v, "first")
	v, first := press(t, v, enterKey())
	require.NotNil(t, first)

	v = typeText(t, v, "second")
	v, second := press(t, v, enterKey())
	assert.Nil(t, second)
	assert.Equal(t, "second", v.textarea.Value())

	v = deliver(t, v, first)
	assert.Equal(t, []string{"first"}, fake.prompts)
}

func TestTypingFiltersSuggestions(t *testing.T) {
	v := newTestView(t, &fakeCompleter{})

	v = typeText(t, v, "blog")
	items := v.suggestions.Items()
	require.NotEmpty(t, items)
	assert.Equal(t, "Show me new blog posts from idea2grow.com", items[0])

	v, _ = press(t, v, altKey('u'))
	assert.Empty(t, v.textarea.Value())
	assert.Len(t, v.suggestions.Items(), len(testSuggestions))
}

func TestTabFillsInput(t *testing.T) {
	v := newTestView(t, &fakeCompleter{})

	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, testSuggestions[0], v.textarea.Value())
}

func TestFailureShowsBannerAndRetry(t *testing.T) {
	fake := &fakeCompleter{errs: []error{errors.New("Network error. Check your connection and try again.")}}
	v := newTestView(t, fake)

	v = typeText(t, v, "Trending ideas")
	v, cmd := press(t, v, enterKey())
	v = deliver(t, v, cmd)

	out := v.View()
	assert.Contains(t, out, "Strategic Engine Error: Network error.")
	assert.Contains(t, out, "Retry")

	v, cmd = press(t, v, altKey('r'))
	require.NotNil(t, cmd)
	v = deliver(t, v, cmd)

	assert.Equal(t, []string{"Trending ideas", "Trending ideas"}, fake.prompts)
	assert.Empty(t, v.conv.Err())
	assert.Len(t, v.conv.Turns(), 3)
	assert.NotContains(t, v.View(), "Strategic Engine Error")
}

func TestRetryWithoutFailureIsNoop(t *testing.T) {
	v := newTestView(t, &fakeCompleter{})
	_, cmd := press(t, v, altKey('r'))
	assert.Nil(t, cmd)
}

func TestNewConversationReturnsToWelcome(t *testing.T) {
	v := newTestView(t, &fakeCompleter{})

	v = typeText(t, v, "Hello")
	v, cmd := press(t, v, enterKey())
	v = deliver(t, v, cmd)
	require.True(t, v.conv.Started())

	v, _ = press(t, v, altKey('n'))
	assert.False(t, v.conv.Started())
	assert.Contains(t, v.View(), testSuggestions[0])
}

func TestNewConversationDropsInFlightAnswer(t *testing.T) {
	fake := &fakeCompleter{answers: []model.Completion{{Text: "late answer"}}}
	v := newTestView(t, fake)

	v = typeText(t, v, "Hello")
	v, cmd := press(t, v, enterKey())
	v, _ = press(t, v, altKey('n'))

	v = deliver(t, v, cmd)
	assert.Empty(t, v.conv.Turns())
	assert.NotContains(t, v.View(), "late answer")
}

func TestCopyLastAnswer(t *testing.T) {
	fake := &fakeCompleter{answers: []model.Completion{{
		Text:    "**Top idea:** X",
		Sources: []model.Citation{{Title: "Site", URI: "https://idea2grow.com/x"}},
	}}}
	v := newTestView(t, fake)

	var copied string
	v.writeClipboard = func(s string) error {
		copied = s
		return nil
	}

	_, cmd := press(t, v, altKey('y'))
	assert.Nil(t, cmd, "nothing to copy yet")

	v = typeText(t, v, "Trending business ideas for 2026")
	v, cmd = press(t, v, enterKey())
	v = deliver(t, v, cmd)

	v, cmd = press(t, v, altKey('y'))
	require.NotNil(t, cmd)
	v = deliver(t, v, cmd)

	assert.Equal(t, "**Top idea:** X\n\nSources\n1. Site - https://idea2grow.com/x", copied)
	assert.Contains(t, v.View(), "Copied to clipboard")

	v = update(t, v, copyStatusClearMsg{seq: v.copySeq})
	assert.NotContains(t, v.View(), "Copied to clipboard")
}

func TestCopyFailureIsReported(t *testing.T) {
	v := newTestView(t, &fakeCompleter{})
	v.writeClipboard = func(string) error { return errors.New("no clipboard") }

	v = typeText(t, v, "Hello")
	v, cmd := press(t, v, enterKey())
	v = deliver(t, v, cmd)

	v, cmd = press(t, v, altKey('c'))
	v = deliver(t, v, cmd)
	assert.Contains(t, v.View(), "Copy failed: no clipboard")
}

func TestHelpAndAboutModals(t *testing.T) {
	v := newTestView(t, &fakeCompleter{})

	v, _ = press(t, v, altKey('h'))
	assert.Contains(t, v.View(), "Keyboard Shortcuts")

	// Other keys are swallowed while the modal is open.
	v, _ = press(t, v, altKey('n'))
	assert.True(t, v.showHelp)

	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, v.showHelp)

	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'A'}, Alt: true})
	out := v.View()
	assert.Contains(t, out, "Website: idea2grow.com")
	assert.Contains(t, out, "Version: test")
}

func TestQuit(t *testing.T) {
	v := newTestView(t, &fakeCompleter{})

	_, cmd := press(t, v, altKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestSuggestionList(t *testing.T) {
	s := newSuggestionList([]string{"alpha", "beta", "gamma"})

	got, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "alpha", got)

	s.Prev()
	got, _ = s.Selected()
	assert.Equal(t, "gamma", got)

	s.Next()
	got, _ = s.Selected()
	assert.Equal(t, "alpha", got)

	s.Filter("zzz")
	_, ok = s.Selected()
	assert.False(t, ok)
	s.Next()

	s.Filter("")
	assert.Len(t, s.Items(), 3)
}
