package model

import (
	"fmt"
	"strings"
)

// PromptMode selects which prompt template the builder uses.
type PromptMode string

const (
	PromptModeStyleRewrite PromptMode = "style"     // Rewrite in the style and tone of an example.
	PromptModeFormalize    PromptMode = "formalize" // Make the text formal for a recruiting audience.
)

// ParsePromptMode maps a wire value to a PromptMode. An empty value selects
// PromptModeStyleRewrite.
func ParsePromptMode(s string) (PromptMode, error) {
	switch PromptMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PromptModeStyleRewrite:
		return PromptModeStyleRewrite, nil
	case PromptModeFormalize:
		return PromptModeFormalize, nil
	default:
		return "", &ValidationError{Field: "mode", Message: fmt.Sprintf("unsupported mode %q", s)}
	}
}

// RelayState is a step of the per-request relay state machine.
type RelayState string

const (
	RelayStateReceived           RelayState = "received"
	RelayStateValidating         RelayState = "validating"
	RelayStateAwaitingCredential RelayState = "awaiting_credential"
	RelayStateGenerating         RelayState = "generating"
	RelayStateResponding         RelayState = "responding"
	RelayStateResponded          RelayState = "responded"
	RelayStateFailed             RelayState = "failed"
)

// Terminal reports whether no further transitions follow s.
func (s RelayState) Terminal() bool {
	return s == RelayStateResponded || s == RelayStateFailed
}
