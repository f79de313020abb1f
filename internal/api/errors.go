package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/questgen/internal/parser"
	"github.com/dgallion1/questgen/internal/pipeline"
	"github.com/dgallion1/questgen/internal/questions"
	"github.com/dgallion1/questgen/internal/upload"
)

// requestError is a client mistake caught before any processing starts.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error { return &requestError{msg: msg} }

// statusFor maps a processing error onto an HTTP status.
func statusFor(err error) int {
	var reqErr *requestError
	var readErr *parser.ReadError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &reqErr),
		errors.Is(err, questions.ErrUnsupportedLanguage),
		errors.Is(err, questions.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, parser.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &readErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, upload.ErrTooLarge), errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, pipeline.ErrQueueFull), errors.Is(err, pipeline.ErrShuttingDown):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// describe returns the status and client-facing message for err. Internal
// errors are logged and hidden.
func (s *Server) describe(r *http.Request, err error) (int, string) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "error", err)
		return code, "internal error"
	}
	return code, err.Error()
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := s.describe(r, err)
	jsonError(w, msg, code)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
