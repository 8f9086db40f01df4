package model

import "strings"

// DefaultExample is the style example used when the caller leaves the
// example blank.
const DefaultExample = "We remain committed to delivering innovative solutions that align with our clients’ strategic objectives while maintaining the highest standards of integrity and excellence."

// DefaultTone is used when the caller leaves the tone blank.
const DefaultTone = "Professional"

// GenerationRequest is the user's input for one rewrite. It is built per
// action and never persisted.
type GenerationRequest struct {
	Text    string
	Example string
	Tone    string
	Mode    PromptMode
}

// ExampleOrDefault returns the trimmed example, or DefaultExample when blank.
func (r GenerationRequest) ExampleOrDefault() string {
	if ex := strings.TrimSpace(r.Example); ex != "" {
		return ex
	}
	return DefaultExample
}

// ToneOrDefault returns the trimmed tone, or DefaultTone when blank.
func (r GenerationRequest) ToneOrDefault() string {
	if tone := strings.TrimSpace(r.Tone); tone != "" {
		return tone
	}
	return DefaultTone
}

// ActionProcessText is the only relay action that produces a reply.
const ActionProcessText = "processText"

// RelayRequest is the structured message a UI surface sends to the relay.
type RelayRequest struct {
	Action  string `json:"action"`
	Text    string `json:"text"`
	Example string `json:"example,omitempty"`
	Tone    string `json:"tone,omitempty"`
	Mode    string `json:"mode,omitempty"`
}

// RelayResponse is the success/failure envelope sent back to the surface.
// Exactly one of Data or Error is meaningful, selected by Success.
type RelayResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// OK builds a success envelope.
func OK(text string) RelayResponse {
	return RelayResponse{Success: true, Data: text}
}

// Fail builds a failure envelope from err.
func Fail(err error) RelayResponse {
	return RelayResponse{Success: false, Error: err.Error(), Code: ErrorCode(err)}
}
