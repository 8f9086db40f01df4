package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/professionalaize/internal/application"
	"github.com/ericfisherdev/professionalaize/internal/domain/model"
)

// maxBodyBytes caps request bodies on the JSON API.
const maxBodyBytes = 1 << 20

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	relay       *application.RelayService
	credentials *application.CredentialService
	logger      *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	relay *application.RelayService,
	credentials *application.CredentialService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		relay:       relay,
		credentials: credentials,
		logger:      logger,
	}
}

// RegisterAPIRoutes registers the JSON API routes on mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /api/v1/process", h.Process)
	mux.HandleFunc("GET /api/v1/credential", h.GetCredential)
	mux.HandleFunc("PUT /api/v1/credential", h.SetCredential)
	mux.HandleFunc("DELETE /api/v1/credential", h.RemoveCredential)
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with the standard middleware chain.
func NewServeMux(h *Handler, logger *slog.Logger, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger, allowedOrigins)
}

// Process runs one relay request synchronously and returns its envelope.
// An omitted action is treated as processText.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	var req model.RelayRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Action == "" {
		req.Action = model.ActionProcessText
	}
	if req.Action != model.ActionProcessText {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported action", Code: model.CodeValidation})
		return
	}

	resp := h.relay.Process(r.Context(), req)
	writeJSON(w, statusForCode(resp.Code), resp)
}

// GetCredential reports whether an API key is stored, with its masked form.
func (h *Handler) GetCredential(w http.ResponseWriter, r *http.Request) {
	status := h.credentials.Status(r.Context())
	writeJSON(w, http.StatusOK, CredentialResponse{
		Configured: status.Configured,
		Masked:     status.Masked,
	})
}

// SetCredential validates and stores a new API key.
func (h *Handler) SetCredential(w http.ResponseWriter, r *http.Request) {
	var req SetCredentialRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.credentials.Set(r.Context(), req.APIKey); err != nil {
		h.logger.Warn("failed to save credential", "code", model.ErrorCode(err), "error", err)
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveCredential deletes the stored API key. It succeeds when none is stored.
func (h *Handler) RemoveCredential(w http.ResponseWriter, r *http.Request) {
	if err := h.credentials.Remove(r.Context()); err != nil {
		h.logger.Error("failed to remove credential", "error", err)
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
