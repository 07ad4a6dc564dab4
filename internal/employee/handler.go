package employee

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/raihanmd/employee-management/internal/auth"
	"github.com/raihanmd/employee-management/internal/transport"
	"github.com/raihanmd/employee-management/internal/upload"
	"github.com/raihanmd/employee-management/pkg/logger"
)

// parseFormSlack is headroom over the image cap for the text fields of the
// multipart body.
const parseFormSlack = 1 << 20

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Uploads *upload.Store
}

func NewHandler(service ServiceAPI, uploads *upload.Store) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		Uploads:     uploads,
	}
}

// List handles GET /employees.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListAll()
	if err != nil {
		h.Logger.Error("List: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": true,
		"data":   employees,
	})
}

// Get handles GET /employees/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	detail, err := h.Service.GetByID(id)
	if err != nil {
		h.Logger.Error("Get: service error", "error", err, "employee_id", id)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": true,
		"data":   detail,
	})
}

// Create handles POST /employees: multipart form plus an optional
// profile_image file.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(upload.DefaultMaxBytes + parseFormSlack); err != nil {
		h.WriteStatusError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	dto := CreateDTOFromForm(r.MultipartForm.Value)

	imagePath, ok := h.saveUploadedImage(w, r)
	if !ok {
		return
	}
	dto.ProfileImagePath = imagePath

	id, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err, "email", dto.Email)
		h.WriteAppError(w, err)
		return
	}

	h.Logger.Info("Create: employee added", "employee_id", id, "email", dto.Email)
	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  true,
		"message": "Employee added successfully",
		"id":      id,
	})
}

// Update handles PUT /employees/{id}: sparse multipart patch plus an optional
// replacement profile_image.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(upload.DefaultMaxBytes + parseFormSlack); err != nil {
		h.WriteStatusError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	patch := PatchFromForm(r.MultipartForm.Value)

	imagePath, ok := h.saveUploadedImage(w, r)
	if !ok {
		return
	}
	patch.ProfileImagePath = imagePath

	if err := h.Service.Update(id, patch); err != nil {
		h.Logger.Error("Update: service error", "error", err, "employee_id", id)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  true,
		"message": "Employee updated successfully",
	})
}

// Delete handles DELETE /employees/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("Delete: service error", "error", err, "employee_id", id)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  true,
		"message": "Employee deleted successfully",
	})
}

// Login handles POST /employees/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto auth.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteStatusError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, token, err := h.Service.Login(dto)
	if err != nil {
		h.Logger.Warn("Login: employee login failed", "email", dto.Email, "error", err)
		h.WriteAppError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.DefaultTokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  true,
		"message": "Login successful",
		"user":    profile,
	})
}

func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteStatusError(w, http.StatusBadRequest, "invalid employee ID")
		return 0, false
	}
	return id, true
}

// saveUploadedImage stores the optional profile_image part. The bool result
// is false when a rejection response has already been written.
func (h *Handler) saveUploadedImage(w http.ResponseWriter, r *http.Request) (*string, bool) {
	file, header, err := r.FormFile("profile_image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		h.WriteStatusError(w, http.StatusBadRequest, "invalid profile image upload")
		return nil, false
	}
	file.Close()

	path, err := h.Uploads.Save(header)
	if err != nil {
		h.Logger.Warn("profile image rejected", "error", err, "filename", header.Filename)
		h.WriteAppError(w, err)
		return nil, false
	}
	return &path, true
}
