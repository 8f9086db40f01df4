package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/professionalaize/internal/domain/model"
)

func TestCredential_Masked(t *testing.T) {
	tests := []struct {
		name string
		key  model.Credential
		want string
	}{
		{name: "full key", key: "AIzaSyTestKey0123456789abcdef", want: "AIza…cdef"},
		{name: "exactly prefix plus four", key: "AIzawxyz", want: "AIza…wxyz"},
		{name: "too short", key: "AIza1", want: "****"},
		{name: "empty", key: "", want: "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Masked())
		})
	}
}

func TestCredential_StringNeverLeaksSecret(t *testing.T) {
	key := model.Credential("AIzaSyTestKey0123456789abcdef")

	assert.Equal(t, "AIza…cdef", fmt.Sprintf("%v", key))
	assert.Equal(t, "AIzaSyTestKey0123456789abcdef", key.Secret())
}

func TestValidateAPIKey(t *testing.T) {
	cred, err := model.ValidateAPIKey("  AIzaSyTestKey0123456789abcdef\n")
	require.NoError(t, err)
	assert.Equal(t, model.Credential("AIzaSyTestKey0123456789abcdef"), cred)

	tests := []struct {
		name    string
		raw     string
		wantMsg string
	}{
		{name: "empty", raw: "", wantMsg: "Please enter an API key"},
		{name: "whitespace", raw: "   ", wantMsg: "Please enter an API key"},
		{name: "wrong prefix", raw: "sk-0123456789abcdefghijkl", wantMsg: "Invalid API key format"},
		{name: "too short", raw: "AIza123", wantMsg: "Invalid API key format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.ValidateAPIKey(tt.raw)

			var validationErr *model.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "api_key", validationErr.Field)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestParsePromptMode(t *testing.T) {
	tests := []struct {
		in   string
		want model.PromptMode
	}{
		{in: "", want: model.PromptModeStyleRewrite},
		{in: "style", want: model.PromptModeStyleRewrite},
		{in: " Formalize ", want: model.PromptModeFormalize},
	}
	for _, tt := range tests {
		got, err := model.ParsePromptMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := model.ParsePromptMode("haiku")
	assert.Equal(t, model.CodeValidation, model.ErrorCode(err))
}

func TestGenerationRequest_Defaults(t *testing.T) {
	blank := model.GenerationRequest{Example: "  ", Tone: ""}
	assert.Equal(t, model.DefaultExample, blank.ExampleOrDefault())
	assert.Equal(t, model.DefaultTone, blank.ToneOrDefault())

	set := model.GenerationRequest{Example: " Cheers ", Tone: " Casual "}
	assert.Equal(t, "Cheers", set.ExampleOrDefault())
	assert.Equal(t, "Casual", set.ToneOrDefault())
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: model.ErrEmptyText, want: model.CodeValidation},
		{name: "credential missing", err: model.ErrCredentialMissing, want: model.CodeCredentialMissing},
		{name: "transport", err: &model.TransportError{Err: errors.New("reset")}, want: model.CodeTransport},
		{name: "provider", err: &model.ProviderError{StatusCode: 400, Message: "bad"}, want: model.CodeProvider},
		{name: "malformed", err: fmt.Errorf("%w: no parts", model.ErrMalformedResponse), want: model.CodeMalformedResponse},
		{name: "store", err: &model.StoreError{Op: "set", Err: errors.New("locked")}, want: model.CodeStore},
		{name: "other", err: errors.New("boom"), want: model.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.ErrorCode(tt.err))
		})
	}
}

func TestEnvelopes(t *testing.T) {
	assert.Equal(t, model.RelayResponse{Success: true, Data: "hi"}, model.OK("hi"))

	fail := model.Fail(&model.ProviderError{StatusCode: 429, Message: "quota exceeded"})
	assert.False(t, fail.Success)
	assert.Equal(t, "quota exceeded", fail.Error)
	assert.Equal(t, model.CodeProvider, fail.Code)
	assert.Empty(t, fail.Data)
}

func TestRelayState_Terminal(t *testing.T) {
	assert.True(t, model.RelayStateResponded.Terminal())
	assert.True(t, model.RelayStateFailed.Terminal())
	assert.False(t, model.RelayStateGenerating.Terminal())
}
