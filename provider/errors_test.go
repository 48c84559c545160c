package provider

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"syscall"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"gemini 401", genai.APIError{Code: 401}, KindAuthorization},
		{"gemini 403", genai.APIError{Code: 403, Status: "PERMISSION_DENIED"}, KindAuthorization},
		{"gemini unauthenticated", genai.APIError{Status: "UNAUTHENTICATED"}, KindAuthorization},
		{"gemini invalid key", genai.APIError{Code: 400, Message: "API key not valid. Please pass a valid API key."}, KindAuthorization},
		{"gemini 429", genai.APIError{Code: 429}, KindRateLimit},
		{"gemini exhausted", genai.APIError{Status: "RESOURCE_EXHAUSTED"}, KindRateLimit},
		{"gemini 500", genai.APIError{Code: 500, Status: "INTERNAL"}, KindUnknown},
		{"wrapped gemini", fmt.Errorf("generate: %w", genai.APIError{Code: 429}), KindRateLimit},
		{"openai 401", &openai.Error{StatusCode: 401}, KindAuthorization},
		{"openai 429", &openai.Error{StatusCode: 429}, KindRateLimit},
		{"anthropic 403", &anthropic.Error{StatusCode: 403}, KindAuthorization},
		{"anthropic 429", &anthropic.Error{StatusCode: 429}, KindRateLimit},
		{"ollama 404", api.StatusError{StatusCode: 404, ErrorMessage: "model not found"}, KindUnknown},
		{"deadline", context.DeadlineExceeded, KindNetwork},
		{"url error", &url.Error{Op: "Post", URL: "https://example.com", Err: errors.New("dial tcp: i/o timeout")}, KindNetwork},
		{"refused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), KindNetwork},
		{"plain", errors.New("something odd"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.err)

			var ce *CompletionError
			if assert.ErrorAs(t, err, &ce) {
				assert.Equal(t, tt.want, ce.Kind)
				assert.NotEmpty(t, ce.Message)
				assert.Equal(t, tt.err, ce.Err)
			}
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, Classify(nil))
}

func TestClassifyKeepsClassified(t *testing.T) {
	orig := configurationError("no key")
	assert.Same(t, orig, Classify(fmt.Errorf("wrapped: %w", orig)))
}

func TestClassifyMessages(t *testing.T) {
	assert.Equal(t, msgRateLimit, Classify(genai.APIError{Code: 429}).Error())
	assert.Equal(t, msgAuthorization, Classify(genai.APIError{Code: 401}).Error())
	assert.Equal(t, msgNetwork, Classify(context.DeadlineExceeded).Error())
	assert.Equal(t, msgUnknown, Classify(errors.New("x")).Error())
}

func TestCompletionErrorRetryable(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindConfiguration, false},
		{KindAuthorization, false},
		{KindRateLimit, true},
		{KindNetwork, true},
		{KindUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			e := &CompletionError{Kind: tt.kind}
			assert.Equal(t, tt.want, e.Retryable())
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("x")))
	assert.Equal(t, KindRateLimit, KindOf(fmt.Errorf("w: %w", &CompletionError{Kind: KindRateLimit})))
}
