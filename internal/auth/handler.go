package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/raihanmd/employee-management/internal"
	"github.com/raihanmd/employee-management/internal/transport"
	"github.com/raihanmd/employee-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// AdminLogin handles POST /auth/adminlogin. Failures use the loginStatus
// envelope the admin frontend checks, with an intentionally generic message.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.writeLoginError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, token, err := h.Service.Login(dto)
	if err != nil {
		h.Logger.Warn("admin login failed", "email", dto.Email, "error", err)
		if appErr, ok := internal.IsAppError(err); ok {
			h.writeLoginError(w, appErr.StatusCode, appErr.Message)
			return
		}
		h.writeLoginError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	setTokenCookie(w, token)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"loginStatus": true,
		"message":     "Login successful",
		"user":        profile,
	})
}

// Register handles POST /auth/register (admin-gated).
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteStatusError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Register(dto); err != nil {
		h.Logger.Error("admin registration failed", "email", dto.Email, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  true,
		"message": "Admin created successfully",
	})
}

// ListAdmins handles GET /auth/admins (admin-gated).
func (h *Handler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.Service.ListAdmins()
	if err != nil {
		h.Logger.Error("failed to list admins", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": true,
		"data":   admins,
	})
}

// DeleteAdmin handles DELETE /auth/delete-admin/{id} (admin-gated).
func (h *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteStatusError(w, http.StatusBadRequest, "invalid admin ID")
		return
	}

	if err := h.Service.DeleteAdmin(id); err != nil {
		h.Logger.Error("failed to delete admin", "admin_id", id, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.Logger.Info("admin deleted", "admin_id", id)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  true,
		"message": "Admin deleted successfully",
	})
}

// Logout handles GET /auth/logout. The token stays cryptographically valid
// until expiry; all this does is clear the cookie client-side.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	clearTokenCookie(w)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  true,
		"message": "Logged out successfully",
	})
}

// RequireAdmin gates a route on a valid session token with the admin role.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.TokenFromCookie(r, TokenCookieName)
		if token == "" {
			h.Logger.Warn("admin gate: no session token", "path", r.URL.Path)
			h.WriteStatusError(w, http.StatusUnauthorized, internal.ErrNotAuthenticated.Message)
			return
		}

		claims, err := h.Service.ValidateToken(token)
		if err != nil {
			h.Logger.Warn("admin gate: token rejected", "path", r.URL.Path, "error", err)
			h.WriteAppError(w, err)
			return
		}

		if claims.Role != RoleAdmin {
			h.Logger.Warn("admin gate: wrong role", "path", r.URL.Path, "role", claims.Role)
			h.WriteStatusError(w, http.StatusForbidden, internal.ErrNotAuthorized.Message)
			return
		}

		ctx := internal.ContextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(DefaultTokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) writeLoginError(w http.ResponseWriter, status int, message string) {
	h.WriteJSON(w, status, map[string]interface{}{
		"loginStatus": false,
		"message":     message,
	})
}
