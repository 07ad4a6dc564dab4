package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/raihanmd/employee-management/internal"
	"github.com/raihanmd/employee-management/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers.
//
// Responses keep the boolean-status envelopes the legacy frontend consumes
// ({status, message}, {status, data}, {loginStatus, ...}) but pair them with
// real HTTP status codes instead of blanket 200s.
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteStatusError writes a {status:false, message} envelope.
func (h *BaseHandler) WriteStatusError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.WriteJSON(w, status, map[string]interface{}{
		"status":  false,
		"message": message,
	})
}

// WriteAppError maps a service error onto the envelope. Unknown errors come
// out as a generic 500 so internals never leak to clients.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteStatusError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.Logger.Error("unclassified handler error", "error", err)
	h.WriteStatusError(w, http.StatusInternalServerError, "Something went wrong!")
}

// TokenFromCookie extracts the session token cookie, if present.
func (h *BaseHandler) TokenFromCookie(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
