package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ericfisherdev/professionalaize/internal/domain/model"
	"github.com/ericfisherdev/professionalaize/internal/domain/port/driven"
)

// ReplyFunc delivers a response envelope back to the surface that sent the
// request. It may fail if the surface has gone away.
type ReplyFunc func(model.RelayResponse) error

// RelayService bridges UI requests to the text generator. It keeps no state
// between requests, so any number of requests can be in flight at once.
type RelayService struct {
	credentials *CredentialService
	generator   driven.TextGenerator
	logger      *slog.Logger
}

// NewRelayService creates a RelayService with the required dependencies.
func NewRelayService(credentials *CredentialService, generator driven.TextGenerator, logger *slog.Logger) *RelayService {
	return &RelayService{
		credentials: credentials,
		generator:   generator,
		logger:      logger,
	}
}

// relayRun tracks one request through the relay state machine.
type relayRun struct {
	id     string
	state  model.RelayState
	trail  []model.RelayState
	logger *slog.Logger
}

func newRelayRun(logger *slog.Logger) *relayRun {
	id := uuid.NewString()
	r := &relayRun{
		id:     id,
		logger: logger.With("relay_id", id),
	}
	r.transition(model.RelayStateReceived)
	return r
}

func (r *relayRun) transition(to model.RelayState) {
	from := r.state
	r.state = to
	r.trail = append(r.trail, to)
	r.logger.Debug("relay transition", "from", from, "to", to)
}

// fail moves the run to RelayStateFailed and builds the failure envelope.
func (r *relayRun) fail(err error) model.RelayResponse {
	r.transition(model.RelayStateFailed)

	var transportErr *model.TransportError
	if errors.As(err, &transportErr) {
		r.logger.Warn("relay failed", "code", model.ErrorCode(err), "error", err, "cause", transportErr.Err)
	} else {
		r.logger.Warn("relay failed", "code", model.ErrorCode(err), "error", err)
	}
	return model.Fail(err)
}

// Process runs one processText request to completion and returns its envelope.
// The action field is not inspected; Dispatch filters actions.
func (s *RelayService) Process(ctx context.Context, req model.RelayRequest) model.RelayResponse {
	resp, _ := s.process(ctx, req)
	return resp
}

func (s *RelayService) process(ctx context.Context, req model.RelayRequest) (model.RelayResponse, *relayRun) {
	run := newRelayRun(s.logger)

	run.transition(model.RelayStateValidating)
	if strings.TrimSpace(req.Text) == "" {
		return run.fail(model.ErrEmptyText), run
	}
	mode, err := model.ParsePromptMode(req.Mode)
	if err != nil {
		return run.fail(err), run
	}

	// The credential read completes before any network call starts.
	run.transition(model.RelayStateAwaitingCredential)
	cred, ok := s.credentials.Get(ctx)
	if !ok {
		return run.fail(model.ErrCredentialMissing), run
	}

	run.transition(model.RelayStateGenerating)
	prompt := BuilderFor(mode).Build(model.GenerationRequest{
		Text:    req.Text,
		Example: req.Example,
		Tone:    req.Tone,
		Mode:    mode,
	})
	text, err := s.generator.Generate(ctx, prompt, cred)
	if err != nil {
		return run.fail(err), run
	}

	run.transition(model.RelayStateResponding)
	resp := model.OK(text)
	run.transition(model.RelayStateResponded)
	return resp, run
}

// Dispatch is the asynchronous entry point used by message-channel surfaces.
// It returns false, and never calls reply, when req.Action is not
// model.ActionProcessText. Otherwise it returns true at once and calls reply
// exactly once from another goroutine when the request finishes. A reply
// error means the caller stopped listening; it is logged and dropped.
func (s *RelayService) Dispatch(ctx context.Context, req model.RelayRequest, reply ReplyFunc) bool {
	if req.Action != model.ActionProcessText {
		s.logger.Debug("ignoring relay message", "action", req.Action)
		return false
	}

	go func() {
		resp := s.Process(ctx, req)
		if err := reply(resp); err != nil {
			s.logger.Info("relay reply not delivered", "error", err)
		}
	}()

	return true
}
