package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// Kind is the failure category of a completion.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindAuthorization
	KindRateLimit
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAuthorization:
		return "authorization"
	case KindRateLimit:
		return "rate_limit"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

const (
	msgMissingCredential = "No API key configured. Set %s or run `idea2grow set-key %s`."
	msgInvalidCredential = "The configured API key is malformed. Check %s or run `idea2grow set-key %s`."
	msgAuthorization     = "The API key was rejected. Check that it is valid and has access to the model."
	msgRateLimit         = "Too many requests. Please wait a moment and try again."
	msgNetwork           = "Could not reach the AI service. Check your connection and try again."
	msgUnknown           = "Failed to process the request."
)

// CompletionError is a classified completion failure. Error returns the
// user-presentable message; the underlying cause is available via Unwrap.
type CompletionError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *CompletionError) Error() string {
	return e.Message
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// Retryable reports whether sending the same prompt again can succeed
// without the user changing their setup.
func (e *CompletionError) Retryable() bool {
	return e.Kind != KindConfiguration && e.Kind != KindAuthorization
}

// KindOf returns the kind of a classified error, or KindUnknown.
func KindOf(err error) Kind {
	var ce *CompletionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

func configurationError(format string, args ...any) *CompletionError {
	return &CompletionError{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

// Classify maps a backend failure to a *CompletionError. Errors that are
// already classified are returned unchanged; nil stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var ce *CompletionError
	if errors.As(err, &ce) {
		return ce
	}

	kind := classifyKind(err)
	msg := msgUnknown
	switch kind {
	case KindAuthorization:
		msg = msgAuthorization
	case KindRateLimit:
		msg = msgRateLimit
	case KindNetwork:
		msg = msgNetwork
	}
	return &CompletionError{Kind: kind, Message: msg, Err: err}
}

func classifyKind(err error) Kind {
	if code, status, message, ok := apiStatus(err); ok {
		switch {
		case code == 401 || code == 403,
			status == "UNAUTHENTICATED" || status == "PERMISSION_DENIED",
			strings.Contains(message, "API key not valid"):
			return KindAuthorization
		case code == 429 || status == "RESOURCE_EXHAUSTED":
			return KindRateLimit
		}
		return KindUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ECONNREFUSED) {
		return KindNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindNetwork
	}
	if strings.Contains(strings.ToLower(err.Error()), "connection refused") {
		return KindNetwork
	}
	return KindUnknown
}

// apiStatus extracts the HTTP status code and vendor status from SDK errors.
func apiStatus(err error) (code int, status, message string, ok bool) {
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return genaiErr.Code, genaiErr.Status, genaiErr.Message, true
	}
	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return openaiErr.StatusCode, "", openaiErr.Message, true
	}
	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return anthropicErr.StatusCode, "", "", true
	}
	var ollamaErr api.StatusError
	if errors.As(err, &ollamaErr) {
		return ollamaErr.StatusCode, ollamaErr.Status, ollamaErr.ErrorMessage, true
	}
	return 0, "", "", false
}
