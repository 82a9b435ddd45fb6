// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// errorResponse is the JSON body written for every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

// ErrorLogger logs handler failures and writes the matching JSON error
// response. The logged message carries the internal detail; the response
// body only carries the user-facing message.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// WriteJSON writes a JSON error body with the given status. It does not
// log; use it for expected client errors that need no operator attention.
func WriteJSON(w http.ResponseWriter, status int, userMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: userMsg})
}

func (e *ErrorLogger) write(w http.ResponseWriter, r *http.Request, status int, logMsg string, err error, userMsg string) {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if status >= http.StatusInternalServerError {
		e.log.Error(logMsg, fields...)
	} else {
		e.log.Warn(logMsg, fields...)
	}
	WriteJSON(w, status, userMsg)
}

// LogServerError logs err at error level and replies 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.write(w, r, http.StatusInternalServerError, logMsg, err, userMsg)
}

// LogBadRequest logs err at warn level and replies 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.write(w, r, http.StatusBadRequest, logMsg, err, userMsg)
}

// LogUnauthorized logs at warn level and replies 401.
func (e *ErrorLogger) LogUnauthorized(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.write(w, r, http.StatusUnauthorized, logMsg, err, userMsg)
}

// LogNotFound replies 404 without logging; missing documents are routine.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, userMsg string) {
	WriteJSON(w, http.StatusNotFound, userMsg)
}

// LogConflict logs at warn level and replies 409.
func (e *ErrorLogger) LogConflict(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.write(w, r, http.StatusConflict, logMsg, err, userMsg)
}

// LogUnprocessable replies 422 without logging; validation failures are
// routine and the message already names the offending field.
func (e *ErrorLogger) LogUnprocessable(w http.ResponseWriter, r *http.Request, userMsg string) {
	WriteJSON(w, http.StatusUnprocessableEntity, userMsg)
}
