package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/roadmap-planner/internal/domain"
	"github.com/pkordes/roadmap-planner/internal/validate"
)

// Error codes carried in the "code" field of every error body.
const (
	codeValidation = "validation_error"
	codeNotFound   = "not_found"
	codeConflict   = "conflict"
	codeBadRequest = "bad_request"
	codeTooLarge   = "payload_too_large"
	codeInternal   = "internal_error"
)

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// errBadRequest marks request bodies that could not be decoded at all.
var errBadRequest = errors.New("malformed request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(v)
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string, fields []domain.FieldError) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message, Fields: fields}})
}

// writeError maps a service error onto its HTTP status.
// resource names what was being looked up ("initiative", "team") and is only
// used for 404 and 409 messages. Unexpected errors are logged with the
// request id and answered with a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	var verr *domain.ValidationError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		writeErrorBody(w, http.StatusRequestEntityTooLarge, codeTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit), nil)
	case errors.Is(err, errBadRequest):
		writeErrorBody(w, http.StatusBadRequest, codeBadRequest, err.Error(), nil)
	case errors.As(err, &verr):
		writeErrorBody(w, http.StatusBadRequest, codeValidation, "input validation failed", verr.Fields)
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, codeNotFound, resource+" not found", nil)
	case errors.Is(err, domain.ErrConflict):
		writeErrorBody(w, http.StatusConflict, codeConflict, resource+" already exists", nil)
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
		writeErrorBody(w, http.StatusInternalServerError, codeInternal, "internal server error", nil)
	}
}

// decodeBody decodes the JSON request body into dst and runs its validate tags.
// Unknown fields are ignored.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", errBadRequest)
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return validate.Struct(dst)
}
