// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/professionalaize/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/professionalaize/internal/adapter/driving/web/templates/pages"
	"github.com/ericfisherdev/professionalaize/internal/application"
	"github.com/ericfisherdev/professionalaize/internal/domain/model"
)

const appTitle = "ProfessionalAIze"

// maxFormBytes caps form submissions.
const maxFormBytes = 1 << 20

// Handler is the web GUI driving adapter that serves HTML via templ components.
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

// Popup renders the empty rewrite form.
func (h *Handler) Popup(w http.ResponseWriter, r *http.Request) {
	token := csrfToken(w, r)
	status := h.credentials.Status(r.Context())
	m := toPopupViewModel(model.RelayRequest{}, token, status.Configured)

	h.render(w, r, http.StatusOK, pages.Popup(m))
}

// Process runs the relay for the submitted form and renders the result below
// the form, keeping the user's input.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	req := model.RelayRequest{
		Action:  model.ActionProcessText,
		Text:    r.FormValue("text"),
		Example: r.FormValue("example"),
		Tone:    r.FormValue("tone"),
		Mode:    r.FormValue("mode"),
	}
	resp := h.relay.Process(r.Context(), req)

	status := h.credentials.Status(r.Context())
	m := toPopupViewModel(req, csrfToken(w, r), status.Configured)
	m.Result = toResultViewModel(resp)

	h.render(w, r, http.StatusOK, pages.Popup(m))
}

// Settings renders the API key page. A ?status= value left by a redirect is
// shown as a banner.
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	token := csrfToken(w, r)
	status := h.credentials.Status(r.Context())
	m := toSettingsViewModel(status, token, statusFromQuery(r.URL.Query().Get("status")))

	h.render(w, r, http.StatusOK, pages.Settings(m))
}

// SaveSettings validates and stores the submitted API key.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	err := h.credentials.Set(r.Context(), r.FormValue("api_key"))
	if err == nil {
		http.Redirect(w, r, "/settings?status=saved", http.StatusSeeOther)
		return
	}

	code := http.StatusInternalServerError
	banner := errorStatus(msgSaveFailed)
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		code = http.StatusUnprocessableEntity
		banner = errorStatus(validationErr.Message)
	} else {
		h.logger.Error("failed to save credential", "error", err)
	}

	m := toSettingsViewModel(h.credentials.Status(r.Context()), csrfToken(w, r), banner)
	h.render(w, r, code, pages.Settings(m))
}

// RemoveSettings deletes the stored API key. The browser asks for
// confirmation before submitting.
func (h *Handler) RemoveSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	if err := h.credentials.Remove(r.Context()); err != nil {
		h.logger.Error("failed to remove credential", "error", err)
		m := toSettingsViewModel(h.credentials.Status(r.Context()), csrfToken(w, r), errorStatus(msgRemoveFailed))
		h.render(w, r, http.StatusInternalServerError, pages.Settings(m))
		return
	}

	http.Redirect(w, r, "/settings?status=removed", http.StatusSeeOther)
}

// render writes page inside the layout with the given status code.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, code int, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)

	if err := templates.Layout(appTitle, page).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "path", r.URL.Path, "error", err)
	}
}
