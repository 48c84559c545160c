package model_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea2grow/model"
	"idea2grow/provider"
	"idea2grow/provider/testutil"
	"idea2grow/render"
)

// scriptedCompleter records calls and answers from a queue of results.
type scriptedCompleter struct {
	calls   []call
	results []result
}

type call struct {
	prompt  string
	history []model.HistoryEntry
}

type result struct {
	completion model.Completion
	err        error
}

func (s *scriptedCompleter) Complete(_ context.Context, prompt string, history []model.HistoryEntry) (model.Completion, error) {
	s.calls = append(s.calls, call{prompt: prompt, history: history})
	if len(s.results) == 0 {
		return model.Completion{Text: "ok"}, nil
	}
	r := s.results[0]
	s.results = s.results[1:]
	return r.completion, r.err
}

func fixedClock() func() time.Time {
	t0 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func newConversation(c model.Completer) *model.Conversation {
	return model.NewConversation(context.Background(), c, model.WithClock(fixedClock()))
}

func TestSubmitSuccess(t *testing.T) {
	fake := &scriptedCompleter{results: []result{{
		completion: model.Completion{
			Text:    "Answer",
			Sources: []model.Citation{{Title: "Site", URI: "https://idea2grow.com/x"}},
		},
	}}}
	conv := newConversation(fake)

	cmd := conv.Submit("  Hello  ")
	require.NotNil(t, cmd)

	st := conv.State()
	assert.True(t, st.IsLoading)
	assert.Empty(t, st.Error)
	require.Len(t, st.Turns, 1)
	assert.Equal(t, model.RoleUser, st.Turns[0].Role)
	assert.Equal(t, "Hello", st.Turns[0].Content)

	assert.True(t, conv.Handle(cmd()))

	st = conv.State()
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.Error)
	require.Len(t, st.Turns, 2)
	assert.Equal(t, model.RoleModel, st.Turns[1].Role)
	assert.Equal(t, "Answer", st.Turns[1].Content)
	assert.Equal(t, []model.Citation{{Title: "Site", URI: "https://idea2grow.com/x"}}, st.Turns[1].Sources)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, "Hello", fake.calls[0].prompt)
	assert.Empty(t, fake.calls[0].history)
}

func TestSubmitBlankIsNoop(t *testing.T) {
	fake := &scriptedCompleter{}
	conv := newConversation(fake)

	for _, text := range []string{"", "   ", "\n\t"} {
		assert.Nil(t, conv.Submit(text))
	}
	assert.Equal(t, model.State{Turns: []model.Turn{}}, conv.State())
	assert.Empty(t, fake.calls)
	assert.False(t, conv.Started())
}

func TestSubmitWhileLoadingIsNoop(t *testing.T) {
	fake := &scriptedCompleter{}
	conv := newConversation(fake)

	first := conv.Submit("one")
	require.NotNil(t, first)
	assert.Nil(t, conv.Submit("two"))

	assert.Len(t, conv.Turns(), 1)
	conv.Handle(first())
	assert.Len(t, fake.calls, 1)
	assert.Len(t, conv.Turns(), 2)
}

func TestSubmitFailure(t *testing.T) {
	fake := &scriptedCompleter{results: []result{{
		err: &provider.CompletionError{Kind: provider.KindRateLimit, Message: "Too many requests. Please wait a moment and try again."},
	}}}
	conv := newConversation(fake)

	conv.Handle(conv.Submit("Hello")())

	st := conv.State()
	assert.False(t, st.IsLoading)
	require.Len(t, st.Turns, 1)
	assert.Equal(t, model.RoleUser, st.Turns[0].Role)
	assert.Equal(t, "Strategic Engine Error: Too many requests. Please wait a moment and try again.", st.Error)
}

func TestFailureWithEmptyMessage(t *testing.T) {
	fake := &scriptedCompleter{results: []result{{err: errors.New("")}}}
	conv := newConversation(fake)

	conv.Handle(conv.Submit("Hello")())
	assert.Equal(t, "Strategic Engine Error: Failed to process the request.", conv.Err())
}

func TestErrorClearedOnNextSubmit(t *testing.T) {
	fake := &scriptedCompleter{results: []result{{err: errors.New("boom")}}}
	conv := newConversation(fake)

	conv.Handle(conv.Submit("Hello")())
	require.NotEmpty(t, conv.Err())

	cmd := conv.Submit("Again")
	require.NotNil(t, cmd)
	assert.Empty(t, conv.Err())
	conv.Handle(cmd())
	assert.Empty(t, conv.Err())
}

func TestRetryAfterFailure(t *testing.T) {
	fake := &scriptedCompleter{results: []result{
		{err: errors.New("network down")},
		{completion: model.Completion{Text: "Recovered"}},
	}}
	conv := newConversation(fake)

	assert.Nil(t, conv.Retry(), "nothing to retry yet")

	conv.Handle(conv.Submit("Trending ideas")())
	require.NotEmpty(t, conv.Err())

	cmd := conv.Retry()
	require.NotNil(t, cmd)
	conv.Handle(cmd())

	turns := conv.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, model.RoleUser, turns[0].Role)
	assert.Equal(t, model.RoleUser, turns[1].Role)
	assert.Equal(t, "Trending ideas", turns[1].Content)
	assert.NotEqual(t, turns[0].ID, turns[1].ID, "retry must create a fresh user turn")
	assert.Equal(t, "Recovered", turns[2].Content)
	assert.Empty(t, conv.Err())

	require.Len(t, fake.calls, 2)
	assert.Equal(t, []model.HistoryEntry{{Role: model.RoleUser, Content: "Trending ideas"}}, fake.calls[1].history)
}

func TestHistoryFraming(t *testing.T) {
	fake := &scriptedCompleter{results: []result{
		{completion: model.Completion{Text: "A1"}},
		{completion: model.Completion{Text: "A2"}},
	}}
	conv := newConversation(fake)

	conv.Handle(conv.Submit("Q1")())
	conv.Handle(conv.Submit("Q2")())

	require.Len(t, fake.calls, 2)
	assert.Equal(t, []model.HistoryEntry{
		{Role: model.RoleUser, Content: "Q1"},
		{Role: model.RoleModel, Content: "A1"},
	}, fake.calls[1].history)
}

func TestBuildHistoryExcludesSystemTurns(t *testing.T) {
	turns := []model.Turn{
		{Role: model.RoleSystem, Content: "persona"},
		{Role: model.RoleUser, Content: "Hi"},
		{Role: model.RoleModel, Content: "Hello"},
	}
	assert.Equal(t, []model.HistoryEntry{
		{Role: model.RoleUser, Content: "Hi"},
		{Role: model.RoleModel, Content: "Hello"},
	}, model.BuildHistory(turns))
}

func TestResetDropsLateResult(t *testing.T) {
	fake := &scriptedCompleter{}
	conv := newConversation(fake)

	cmd := conv.Submit("Hello")
	require.NotNil(t, cmd)

	conv.Reset()
	assert.Equal(t, model.State{Turns: []model.Turn{}}, conv.State())

	assert.False(t, conv.Handle(cmd()), "result from before Reset must be ignored")
	assert.Equal(t, model.State{Turns: []model.Turn{}}, conv.State())

	// A new request after reset works normally.
	next := conv.Submit("Fresh start")
	require.NotNil(t, next)
	assert.True(t, conv.Handle(next()))
	assert.Len(t, conv.Turns(), 2)
}

func TestResetDropsLateFailure(t *testing.T) {
	fake := &scriptedCompleter{results: []result{{err: errors.New("late")}}}
	conv := newConversation(fake)

	cmd := conv.Submit("Hello")
	conv.Reset()
	assert.False(t, conv.Handle(cmd()))
	assert.Empty(t, conv.Err())
}

func TestHandleIgnoresUnrelatedMessages(t *testing.T) {
	conv := newConversation(&scriptedCompleter{})
	assert.False(t, conv.Handle("not a completion"))
	assert.False(t, conv.Handle(model.CompletionDoneMsg{}), "no request outstanding")
}

func TestTurnsAreCopies(t *testing.T) {
	fake := &scriptedCompleter{results: []result{{
		completion: model.Completion{Text: "A", Sources: []model.Citation{{Title: "T", URI: "u"}}},
	}}}
	conv := newConversation(fake)
	conv.Handle(conv.Submit("Q")())

	turns := conv.Turns()
	turns[0].Content = "mutated"
	turns[1].Sources[0].Title = "mutated"

	again := conv.Turns()
	assert.Equal(t, "Q", again[0].Content)
	assert.Equal(t, "T", again[1].Sources[0].Title)
}

func TestTurnIDsAndTimestamps(t *testing.T) {
	fake := &scriptedCompleter{}
	conv := model.NewConversation(context.Background(), fake)
	conv.Handle(conv.Submit("Q")())

	turns := conv.Turns()
	require.Len(t, turns, 2)
	for _, turn := range turns {
		id, err := uuid.Parse(turn.ID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), id.Version())
		assert.False(t, turn.Timestamp.IsZero())
	}
	assert.Less(t, turns[0].ID, turns[1].ID)
}

func TestCustomIDGeneratorAndPrefix(t *testing.T) {
	n := 0
	fake := &scriptedCompleter{results: []result{{err: errors.New("nope")}}}
	conv := model.NewConversation(context.Background(), fake,
		model.WithIDGenerator(func() string { n++; return fmt.Sprintf("t%d", n) }),
		model.WithErrorPrefix("Error: "),
	)
	conv.Handle(conv.Submit("Q")())

	assert.Equal(t, "t1", conv.Turns()[0].ID)
	assert.Equal(t, "Error: nope", conv.Err())
}

func TestSend(t *testing.T) {
	fake := &scriptedCompleter{results: []result{
		{completion: model.Completion{Text: "A"}},
		{err: errors.New("down")},
	}}
	conv := newConversation(fake)

	assert.ErrorIs(t, conv.Send("  "), model.ErrEmptyPrompt)
	require.NoError(t, conv.Send("Q"))

	err := conv.Send("Q2")
	require.Error(t, err)
	assert.Equal(t, "down", err.Error())
	assert.Equal(t, "Strategic Engine Error: down", conv.Err())
}

func TestLastModelTurn(t *testing.T) {
	conv := newConversation(&scriptedCompleter{})
	_, ok := conv.LastModelTurn()
	assert.False(t, ok)

	require.NoError(t, conv.Send("Q"))
	turn, ok := conv.LastModelTurn()
	require.True(t, ok)
	assert.Equal(t, "ok", turn.Content)
}

func TestParseRole(t *testing.T) {
	for _, r := range []string{"user", "model", "system"} {
		got, err := model.ParseRole(r)
		require.NoError(t, err)
		assert.Equal(t, model.Role(r), got)
	}
	_, err := model.ParseRole("assistant")
	assert.Error(t, err)
}

// The trending-ideas flow end to end: conversation, gateway and rendering.
func TestTrendingIdeasEndToEnd(t *testing.T) {
	backend := testutil.NewMockBackend()
	backend.Response = &provider.Response{
		Text: "**Top idea:** X",
		Grounding: &provider.GroundingMetadata{Chunks: []provider.GroundingChunk{
			{Web: &provider.WebSource{URI: "https://idea2grow.com/x", Title: "Site"}},
		}},
	}
	gw := provider.NewGateway(backend, testutil.GeminiCredentials(), provider.GatewayOptions{})
	conv := newConversation(gw)

	require.NoError(t, conv.Send("Trending business ideas for 2026"))

	turn, ok := conv.LastModelTurn()
	require.True(t, ok)
	require.Len(t, turn.Sources, 1)
	assert.Equal(t, model.Citation{Title: "Site", URI: "https://idea2grow.com/x"}, turn.Sources[0])

	blocks := render.Parse(turn.Content)
	require.NotEmpty(t, blocks)
	require.NotEmpty(t, blocks[0].Spans)
	assert.Equal(t, render.Span{Text: "Top idea:", Bold: true}, blocks[0].Spans[0])

	assert.Len(t, render.SourceLines(turn.Sources, 80), 1)
}

func TestMissingCredentialEndToEnd(t *testing.T) {
	backend := testutil.NewMockBackend()
	gw := provider.NewGateway(backend, testutil.StaticCredentials{}, provider.GatewayOptions{})
	conv := newConversation(gw)

	err := conv.Send("Hello")
	require.Error(t, err)
	assert.Equal(t, provider.KindConfiguration, provider.KindOf(err))
	assert.Equal(t, 0, backend.Calls())
	assert.Contains(t, conv.Err(), "Strategic Engine Error: No API key configured.")
	assert.Len(t, conv.Turns(), 1)
}
