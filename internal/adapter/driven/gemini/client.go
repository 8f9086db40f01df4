// Package gemini implements the TextGenerator port against the Gemini
// generateContent REST endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ericfisherdev/professionalaize/internal/domain/model"
	"github.com/ericfisherdev/professionalaize/internal/domain/port/driven"
)

const (
	// DefaultBaseURL is the Google AI Studio REST root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the model the extension shipped with.
	DefaultModel = "gemini-2.5-flash"

	// DefaultTimeout bounds a single generateContent call.
	DefaultTimeout = 30 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 4 << 20
)

// Compile-time interface satisfaction check.
var _ driven.TextGenerator = (*Client)(nil)

// Client implements driven.TextGenerator. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the REST root, e.g. to point at an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithModel overrides the model name. A "models/" prefix is accepted.
func WithModel(name string) Option {
	return func(c *Client) {
		name = strings.TrimPrefix(strings.TrimSpace(name), "models/")
		if name != "" {
			c.model = name
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a Client with DefaultBaseURL, DefaultModel and
// DefaultTimeout unless overridden by opts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string {
	return c.model
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse keeps every level of candidates[0].content.parts[0].text
// as a pointer or slice so a missing level can be told apart from an empty one.
type generateResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type errorResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends prompt to generateContent and returns the first candidate's
// first text part. It makes exactly one HTTP request and never retries.
func (c *Client) Generate(ctx context.Context, prompt string, credential model.Credential) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(credential), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &model.TransportError{Err: redactKey(err, credential)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &model.TransportError{Err: fmt.Errorf("read gemini response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", providerError(resp.StatusCode, respBody)
	}

	return extractText(respBody)
}

func (c *Client) endpoint(credential model.Credential) string {
	q := url.Values{}
	q.Set("key", credential.Secret())
	return fmt.Sprintf("%s/models/%s:generateContent?%s", c.baseURL, url.PathEscape(c.model), q.Encode())
}

// providerError builds a ProviderError from a non-2xx body, using the
// provider's error.message when the body carries one.
func providerError(status int, body []byte) *model.ProviderError {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil {
		if msg := strings.TrimSpace(errResp.Error.Message); msg != "" {
			return &model.ProviderError{StatusCode: status, Message: msg}
		}
	}
	return &model.ProviderError{StatusCode: status, Message: model.DefaultProviderErrorMessage}
}

// extractText walks candidates[0].content.parts[0].text, reporting the first
// missing level as model.ErrMalformedResponse.
func extractText(body []byte) (string, error) {
	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: invalid JSON: %v", model.ErrMalformedResponse, err)
	}

	if len(out.Candidates) == 0 {
		if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", model.ErrMalformedResponse, out.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: missing candidates", model.ErrMalformedResponse)
	}

	first := out.Candidates[0]
	if first.Content == nil {
		return "", fmt.Errorf("%w: candidate has no content (finish reason %q)", model.ErrMalformedResponse, first.FinishReason)
	}
	if len(first.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: content has no parts", model.ErrMalformedResponse)
	}
	if first.Content.Parts[0].Text == nil {
		return "", fmt.Errorf("%w: first part has no text", model.ErrMalformedResponse)
	}

	return *first.Content.Parts[0].Text, nil
}

// redactKey strips the API key out of *url.Error messages, which embed the
// full request URL.
func redactKey(err error, credential model.Credential) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && credential != "" {
		return errors.New(strings.ReplaceAll(err.Error(), credential.Secret(), "REDACTED"))
	}
	return err
}
