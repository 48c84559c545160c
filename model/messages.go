package model

// CompletionDoneMsg carries a successful answer back to the update loop.
type CompletionDoneMsg struct {
	Epoch      uint64
	Completion Completion
}

// CompletionFailedMsg carries a classified failure back to the update loop.
type CompletionFailedMsg struct {
	Epoch uint64
	Err   error
}

type AnswerCopiedMsg struct {
	Err error
}
