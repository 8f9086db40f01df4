package driven

import (
	"context"

	"github.com/ericfisherdev/professionalaize/internal/domain/model"
)

// TextGenerator sends a fully built prompt to the generative-language provider
// and returns the generated text.
//
// Implementations return *model.TransportError for network failures,
// *model.ProviderError for non-2xx responses, and an error wrapping
// model.ErrMalformedResponse when a successful response has no text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, credential model.Credential) (string, error)
}
