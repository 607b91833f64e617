// internal/app/features/errors/errors.go
// Package errors writes JSON error responses and logs them.
//
// Every error body has the shape {"error": "<message>"}.
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/clemsonquest/internal/app/system/apperr"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Body is the JSON error envelope.
type Body struct {
	Error string `json:"error"`
}

// ErrorLogger logs failed requests and writes their JSON error body.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Write sends {"error": msg} with status without logging.
func Write(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Body{Error: msg})
}

func (e *ErrorLogger) fields(r *http.Request, status int, err error) []zap.Field {
	fs := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		fs = append(fs, zap.String("request_id", id))
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	return fs
}

// LogServerError logs err at error level and responds 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.Log.Error(logMsg, e.fields(r, http.StatusInternalServerError, err)...)
	Write(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest logs at info level and responds 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.Log.Info(logMsg, e.fields(r, http.StatusBadRequest, err)...)
	Write(w, http.StatusBadRequest, userMsg)
}

// LogStatus logs a client error at warn (401, 403, 409, 429) or info level and
// responds with status and msg. 5xx statuses go through LogServerError.
func (e *ErrorLogger) LogStatus(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		e.LogServerError(w, r, msg, err, apperr.InternalMessage)
		return
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusConflict, http.StatusTooManyRequests:
		e.Log.Warn(msg, e.fields(r, status, err)...)
	default:
		e.Log.Info(msg, e.fields(r, status, err)...)
	}
	Write(w, status, msg)
}

// LogAppError maps err through the apperr taxonomy. Internal errors are
// logged with their cause and answered with a generic message.
func (e *ErrorLogger) LogAppError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		e.LogServerError(w, r, logMsg, err, apperr.PublicMessage(err))
		return
	}
	e.LogStatus(w, r, status, apperr.PublicMessage(err), nil)
}
