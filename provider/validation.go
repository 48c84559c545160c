package provider

import (
	"errors"
	"strings"
	"unicode"
)

// MinAPIKeyLength is the shortest key accepted before any network call.
const MinAPIKeyLength = 20

var (
	ErrMissingAPIKey = errors.New("API key is missing")
	ErrMalformedKey  = errors.New("API key is malformed")
)

// ValidateAPIKey performs the structural check done before a request is
// sent. It does not contact the provider.
func ValidateAPIKey(key string) error {
	if key == "" {
		return ErrMissingAPIKey
	}
	if len(key) < MinAPIKeyLength {
		return ErrMalformedKey
	}
	if strings.IndexFunc(key, unicode.IsSpace) >= 0 {
		return ErrMalformedKey
	}
	return nil
}
