package model

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the relay and its adapters.
var (
	// ErrCredentialMissing is returned when no API key has been saved.
	// The message is shown to the user as-is.
	ErrCredentialMissing = errors.New("Gemini API key not found. Please set it in the extension options.") //nolint:staticcheck // user-facing sentence

	// ErrMalformedResponse indicates a 2xx provider response whose body did not
	// contain candidates[0].content.parts[0].text.
	ErrMalformedResponse = errors.New("malformed response from Gemini API")

	// ErrEmptyText is returned when a relay request carries no text to process.
	ErrEmptyText = &ValidationError{Field: "text", Message: "Please enter some text to process"}
)

// DefaultProviderErrorMessage is used when a non-2xx provider response does
// not carry error.message.
const DefaultProviderErrorMessage = "Failed to process text"

// TransportErrorMessage is the generic message surfaced for network failures.
const TransportErrorMessage = "Failed to reach the Gemini API"

// ValidationError reports user input that was rejected before any I/O.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError wraps a network-level failure talking to the provider.
// Error returns a generic message; the cause is available through Unwrap for logging.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return TransportErrorMessage
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProviderError is a non-2xx response from the provider. Message is the
// provider's error.message verbatim, or DefaultProviderErrorMessage.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// StoreError wraps a failure of the durable key-value store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("credential store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ErrorCode classifies err into a stable machine-readable code for response
// envelopes.
func ErrorCode(err error) string {
	var (
		validationErr *ValidationError
		transportErr  *TransportError
		providerErr   *ProviderError
		storeErr      *StoreError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return CodeValidation
	case errors.Is(err, ErrCredentialMissing):
		return CodeCredentialMissing
	case errors.As(err, &transportErr):
		return CodeTransport
	case errors.As(err, &providerErr):
		return CodeProvider
	case errors.Is(err, ErrMalformedResponse):
		return CodeMalformedResponse
	case errors.As(err, &storeErr):
		return CodeStore
	default:
		return CodeInternal
	}
}

// Error codes carried in failure envelopes.
const (
	CodeValidation        = "validation"
	CodeCredentialMissing = "credential_missing"
	CodeTransport         = "transport"
	CodeProvider          = "provider"
	CodeMalformedResponse = "malformed_response"
	CodeStore             = "store"
	CodeInternal          = "internal"
)
