package rest

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/raihanmd/employee-management/internal"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	DurationMs int64        `json:"duration_ms"`
}

type HealthHandler struct {
	db        *sql.DB
	uploadDir string
}

func NewHealthHandler(db *sql.DB, uploadDir string) *HealthHandler {
	return &HealthHandler{db: db, uploadDir: uploadDir}
}

// rootHandler keeps the legacy "server is running" probe at /.
func (h *HealthHandler) rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Server is running"})
}

// healthCheckHandler verifies the database connection and the uploads
// directory, the two external dependencies every mutating request touches.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := internal.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]CheckEntry)
	overall := HealthHealthy

	dbStart := time.Now()
	dbEntry := CheckEntry{Status: HealthHealthy, CheckedAt: dbStart}
	if err := h.db.PingContext(ctx); err != nil {
		dbEntry.Status = HealthUnhealthy
		dbEntry.Message = err.Error()
		overall = HealthUnhealthy
	}
	dbEntry.DurationMs = time.Since(dbStart).Milliseconds()
	components["database"] = dbEntry

	upStart := time.Now()
	upEntry := CheckEntry{Status: HealthHealthy, CheckedAt: upStart}
	if info, err := os.Stat(h.uploadDir); err != nil || !info.IsDir() {
		upEntry.Status = HealthUnhealthy
		upEntry.Message = "uploads directory unavailable"
		overall = HealthUnhealthy
	}
	upEntry.DurationMs = time.Since(upStart).Milliseconds()
	components["uploads"] = upEntry

	status := http.StatusOK
	if overall == HealthUnhealthy {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(HealthResponse{
		Status:     overall,
		CheckedAt:  time.Now(),
		Components: components,
	})
}
