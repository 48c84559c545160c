package model

import "context"

// Completer produces a model answer for a prompt and the prior conversation.
//
// This interface is defined in the model package (not provider package) to avoid
// import cycles: the provider gateway imports model for Citation and
// HistoryEntry, and the conversation only needs this narrow contract.
//
// Implementations must return errors that are already classified into a
// user-presentable message; the conversation shows err.Error() verbatim.
type Completer interface {
	Complete(ctx context.Context, prompt string, history []HistoryEntry) (Completion, error)
}

// Completion is a successful gateway result.
type Completion struct {
	Text    string
	Sources []Citation
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string, history []HistoryEntry) (Completion, error)

// Complete implements Completer.
func (f CompleterFunc) Complete(ctx context.Context, prompt string, history []HistoryEntry) (Completion, error) {
	return f(ctx, prompt, history)
}
