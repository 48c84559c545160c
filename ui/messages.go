package ui

import (
	"idea2grow/model"
)

// Message type aliases - these are defined in the model package
type completionDoneMsg = model.CompletionDoneMsg
type completionFailedMsg = model.CompletionFailedMsg
type answerCopiedMsg = model.AnswerCopiedMsg

// copyStatusClearMsg hides the clipboard status after a short delay.
type copyStatusClearMsg struct {
	seq int
}
