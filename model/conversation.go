package model

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"idea2grow/config"
)

// DefaultErrorPrefix is prepended to every classified failure shown to the user.
const DefaultErrorPrefix = "Strategic Engine Error: "

const genericFailureMessage = "Failed to process the request."

var (
	ErrEmptyPrompt = errors.New("prompt is empty")
	ErrBusy        = errors.New("a request is already in progress")
)

// State is a snapshot of the conversation. Error is empty when there is none.
type State struct {
	Turns     []Turn
	IsLoading bool
	Error     string
}

// Conversation owns the turn log and the request lifecycle.
//
// A Conversation is not safe for concurrent use. It is driven from the
// bubbletea update loop: Submit returns a command that runs the completer in
// the background and reports back through Handle. The command only touches
// values captured at submit time, so the state is never shared.
type Conversation struct {
	ctx       context.Context
	completer Completer

	turns      []Turn
	loading    bool
	err        string
	lastPrompt string

	// epoch advances on Reset so results from a previous conversation are dropped.
	epoch uint64

	now         func() time.Time
	newID       func() string
	errorPrefix string
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Conversation) { c.now = now }
}

// WithIDGenerator overrides turn ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(c *Conversation) { c.newID = newID }
}

// WithErrorPrefix overrides DefaultErrorPrefix.
func WithErrorPrefix(prefix string) Option {
	return func(c *Conversation) { c.errorPrefix = prefix }
}

// NewConversation creates an empty conversation backed by completer.
// ctx is handed to every completer call.
func NewConversation(ctx context.Context, completer Completer, opts ...Option) *Conversation {
	c := &Conversation{
		ctx:         ctx,
		completer:   completer,
		now:         time.Now,
		newID:       newTurnID,
		errorPrefix: DefaultErrorPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newTurnID returns a UUIDv7, which sorts by creation time.
func newTurnID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Submit appends a user turn and returns the command that fetches the answer.
// It returns nil without touching state when text is blank or a request is
// already outstanding.
func (c *Conversation) Submit(text string) tea.Cmd {
	prompt := strings.TrimSpace(text)
	if prompt == "" || c.loading {
		return nil
	}

	history := BuildHistory(c.turns)
	c.turns = append(c.turns, Turn{
		ID:        c.newID(),
		Role:      RoleUser,
		Content:   prompt,
		Timestamp: c.now(),
	})
	c.loading = true
	c.err = ""
	c.lastPrompt = prompt

	ctx := c.ctx
	completer := c.completer
	epoch := c.epoch

	config.Log.Debug().
		Uint64("epoch", epoch).
		Int("history", len(history)).
		Int("prompt_len", len(prompt)).
		Msg("conversation: submitting prompt")

	return func() tea.Msg {
		start := time.Now()
		completion, err := completer.Complete(ctx, prompt, history)
		if err != nil {
			config.Log.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("conversation: completion failed")
			return CompletionFailedMsg{Epoch: epoch, Err: err}
		}
		config.Log.Debug().
			Dur("elapsed", time.Since(start)).
			Int("sources", len(completion.Sources)).
			Msg("conversation: completion received")
		return CompletionDoneMsg{Epoch: epoch, Completion: completion}
	}
}

// Retry resubmits the last prompt after a failure.
func (c *Conversation) Retry() tea.Cmd {
	if c.err == "" || c.lastPrompt == "" {
		return nil
	}
	return c.Submit(c.lastPrompt)
}

// Handle applies a completion message. It reports whether the state changed;
// results that belong to an earlier epoch are ignored.
func (c *Conversation) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case CompletionDoneMsg:
		if msg.Epoch != c.epoch || !c.loading {
			config.Log.Debug().Uint64("epoch", msg.Epoch).Msg("conversation: dropping stale completion")
			return false
		}
		var sources []Citation
		if len(msg.Completion.Sources) > 0 {
			sources = append([]Citation(nil), msg.Completion.Sources...)
		}
		c.turns = append(c.turns, Turn{
			ID:        c.newID(),
			Role:      RoleModel,
			Content:   msg.Completion.Text,
			Timestamp: c.now(),
			Sources:   sources,
		})
		c.loading = false
		return true

	case CompletionFailedMsg:
		if msg.Epoch != c.epoch || !c.loading {
			config.Log.Debug().Uint64("epoch", msg.Epoch).Msg("conversation: dropping stale failure")
			return false
		}
		detail := genericFailureMessage
		if msg.Err != nil && msg.Err.Error() != "" {
			detail = msg.Err.Error()
		}
		c.loading = false
		c.err = c.errorPrefix + detail
		return true
	}
	return false
}

// Reset returns the conversation to its initial empty state. An outstanding
// request keeps running but its result will be ignored.
func (c *Conversation) Reset() {
	c.turns = nil
	c.loading = false
	c.err = ""
	c.lastPrompt = ""
	c.epoch++
}

// Send submits text and waits for the answer on the calling goroutine.
func (c *Conversation) Send(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyPrompt
	}
	cmd := c.Submit(text)
	if cmd == nil {
		return ErrBusy
	}
	msg := cmd()
	c.Handle(msg)
	if failed, ok := msg.(CompletionFailedMsg); ok {
		return failed.Err
	}
	return nil
}

// State returns a copy of the current state.
func (c *Conversation) State() State {
	return State{
		Turns:     c.Turns(),
		IsLoading: c.loading,
		Error:     c.err,
	}
}

// Turns returns a copy of the turn log.
func (c *Conversation) Turns() []Turn {
	turns := make([]Turn, len(c.turns))
	for i, t := range c.turns {
		turns[i] = cloneTurn(t)
	}
	return turns
}

func (c *Conversation) IsLoading() bool { return c.loading }

// Err returns the user-facing error message, or "" when the last attempt succeeded.
func (c *Conversation) Err() string { return c.err }

func (c *Conversation) LastPrompt() string { return c.lastPrompt }

func (c *Conversation) Started() bool { return len(c.turns) > 0 || c.loading }

// LastModelTurn returns the most recent model turn.
func (c *Conversation) LastModelTurn() (Turn, bool) {
	for i := len(c.turns) - 1; i >= 0; i-- {
		if c.turns[i].Role == RoleModel {
			return cloneTurn(c.turns[i]), true
		}
	}
	return Turn{}, false
}
