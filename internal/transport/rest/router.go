package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/raihanmd/employee-management/internal/auth"
	"github.com/raihanmd/employee-management/internal/employee"
	"github.com/raihanmd/employee-management/internal/transport/middleware"
	"github.com/raihanmd/employee-management/internal/transport/swagger"
)

// RegisterAllRoutes mounts the two API surfaces plus static uploads. Admin
// management routes sit behind the admin session gate; the employee CRUD
// surface is deliberately ungated and acts as a public directory.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, employeeHandler *employee.Handler, uploadDir, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, uploadDir)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/", healthHandler.rootHandler)
	router.Get("/health", healthHandler.healthCheckHandler)

	// Serve OpenAPI spec and Swagger UI at root
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Uploaded profile images
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/adminlogin", authHandler.AdminLogin)
		r.Get("/logout", authHandler.Logout)

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.RequireAdmin)
			pr.Post("/register", authHandler.Register)
			pr.Get("/admins", authHandler.ListAdmins)
			pr.Delete("/delete-admin/{id}", authHandler.DeleteAdmin)
		})
	})

	router.Route("/employees", func(r chi.Router) {
		r.Get("/", employeeHandler.List)
		r.Post("/", employeeHandler.Create)
		r.Post("/login", employeeHandler.Login)
		r.Get("/{id}", employeeHandler.Get)
		r.Put("/{id}", employeeHandler.Update)
		r.Delete("/{id}", employeeHandler.Delete)
	})
}
