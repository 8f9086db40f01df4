package model

import "strings"

const (
	// CredentialStorageKey is the single key under which the Gemini API key is persisted.
	CredentialStorageKey = "geminiApiKey"

	// APIKeyPrefix is the prefix every Google AI Studio key starts with.
	APIKeyPrefix = "AIza"

	// APIKeyMinLength is the shortest key accepted by ValidateAPIKey.
	APIKeyMinLength = 20
)

// Credential is the Gemini API key. It is opaque to everything except the
// generation client, which passes it to the provider as a query parameter.
type Credential string

// String returns the masked form so a Credential is never printed in full by
// accident (for example through a %v in a log line).
func (c Credential) String() string {
	return c.Masked()
}

// Secret returns the raw key.
func (c Credential) Secret() string {
	return string(c)
}

// Masked renders the key as its prefix and last four characters,
// e.g. "AIza…wxyz". Keys too short to mask meaningfully render as "****".
func (c Credential) Masked() string {
	s := string(c)
	if len(s) < len(APIKeyPrefix)+4 {
		return "****"
	}
	return s[:len(APIKeyPrefix)] + "…" + s[len(s)-4:]
}

// ValidateAPIKey checks the raw key against the provider's format convention
// and returns the trimmed Credential. The returned error is always a
// *ValidationError.
func ValidateAPIKey(raw string) (Credential, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return "", &ValidationError{Field: "api_key", Message: "Please enter an API key"}
	}
	if !strings.HasPrefix(key, APIKeyPrefix) || len(key) < APIKeyMinLength {
		return "", &ValidationError{Field: "api_key", Message: "Invalid API key format"}
	}
	return Credential(key), nil
}
