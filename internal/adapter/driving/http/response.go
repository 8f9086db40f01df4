package httphandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ericfisherdev/professionalaize/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// CredentialResponse is the JSON representation of the stored key's status.
// The key itself is never returned.
type CredentialResponse struct {
	Configured bool   `json:"configured"`
	Masked     string `json:"masked,omitempty"`
}

// SetCredentialRequest is the JSON body for the set credential endpoint.
type SetCredentialRequest struct {
	APIKey string `json:"api_key"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// statusForCode maps a relay error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case "":
		return http.StatusOK
	case model.CodeValidation:
		return http.StatusBadRequest
	case model.CodeCredentialMissing:
		return http.StatusPreconditionFailed
	case model.CodeTransport, model.CodeProvider, model.CodeMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError translates an application error into a JSON error
// response. Validation messages are shown verbatim; anything else is hidden
// behind a generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message, Code: model.CodeValidation})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: model.ErrorCode(err)})
}
