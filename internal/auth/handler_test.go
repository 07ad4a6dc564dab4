package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/raihanmd/employee-management/internal/auth"
	admindm "github.com/raihanmd/employee-management/internal/core/datamodel/admin"
)

var _ = Describe("Auth Handler", func() {
	var (
		repo    *mockAdminRepository
		tokens  *auth.JWTTokenGenerator
		handler *auth.Handler
		router  *chi.Mux
	)

	postJSON := func(path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
		buf, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
		req.Header.Set("Content-Type", "application/json")
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	adminCookie := func() *http.Cookie {
		token, err := tokens.IssueToken(auth.RoleAdmin, 1, "admin@example.com")
		Expect(err).NotTo(HaveOccurred())
		return &http.Cookie{Name: auth.TokenCookieName, Value: token}
	}

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = newMockAdminRepository()
		tokens = auth.NewJWTTokenGenerator("test-secret-at-least-16", 24*time.Hour)
		verifier := auth.NewCredentialVerifier(slogger)
		service := auth.NewService(repo, tokens, verifier, 4, true, slogger)
		handler = auth.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/auth/adminlogin", handler.AdminLogin)
		router.Get("/auth/logout", handler.Logout)
		router.Group(func(pr chi.Router) {
			pr.Use(handler.RequireAdmin)
			pr.Post("/auth/register", handler.Register)
			pr.Get("/auth/admins", handler.ListAdmins)
			pr.Delete("/auth/delete-admin/{id}", handler.DeleteAdmin)
		})

		Expect(repo.Create(&admindm.Admin{
			Name:     "Administrator",
			Email:    "admin@example.com",
			Password: "admin123",
		})).To(Succeed())
	})

	Describe("POST /auth/adminlogin", func() {
		It("logs in the plaintext-seeded admin and sets the token cookie", func() {
			rec := postJSON("/auth/adminlogin", auth.LoginDTO{Email: "admin@example.com", Password: "admin123"})

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["loginStatus"]).To(BeTrue())

			user := body["user"].(map[string]interface{})
			Expect(user["email"]).To(Equal("admin@example.com"))
			Expect(user).NotTo(HaveKey("password"))

			cookies := rec.Result().Cookies()
			Expect(cookies).NotTo(BeEmpty())
			Expect(cookies[0].Name).To(Equal(auth.TokenCookieName))
			Expect(cookies[0].Value).NotTo(BeEmpty())
			Expect(cookies[0].HttpOnly).To(BeTrue())
		})

		It("answers wrong credentials with the generic login envelope", func() {
			rec := postJSON("/auth/adminlogin", auth.LoginDTO{Email: "admin@example.com", Password: "nope"})

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))

			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["loginStatus"]).To(BeFalse())
			Expect(body["message"]).To(Equal("Wrong email or password"))
		})
	})

	Describe("admin gate", func() {
		It("rejects requests without a session token", func() {
			rec := postJSON("/auth/register", auth.RegisterDTO{Name: "N", Email: "n@example.com", Password: "pw"})
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects an employee-role token", func() {
			token, err := tokens.IssueToken(auth.RoleEmployee, 9, "emp@example.com")
			Expect(err).NotTo(HaveOccurred())

			rec := postJSON("/auth/register",
				auth.RegisterDTO{Name: "N", Email: "n@example.com", Password: "pw"},
				&http.Cookie{Name: auth.TokenCookieName, Value: token})
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("lets an admin register a new admin", func() {
			rec := postJSON("/auth/register",
				auth.RegisterDTO{Name: "New", Email: "new@example.com", Password: "pw12345"},
				adminCookie())

			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(repo.byEmail).To(HaveKey("new@example.com"))
		})

		It("reports missing register fields", func() {
			rec := postJSON("/auth/register",
				auth.RegisterDTO{Name: "", Email: "", Password: ""},
				adminCookie())

			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["status"]).To(BeFalse())
			Expect(body["message"]).To(Equal("All fields are required"))
		})

		It("lists admins for a valid session", func() {
			req := httptest.NewRequest(http.MethodGet, "/auth/admins", nil)
			req.AddCookie(adminCookie())
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["status"]).To(BeTrue())
			Expect(body["data"]).To(HaveLen(1))
		})

		It("answers 404 when deleting a missing admin", func() {
			req := httptest.NewRequest(http.MethodDelete, "/auth/delete-admin/99", nil)
			req.AddCookie(adminCookie())
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))

			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["message"]).To(Equal("Admin not found"))
		})
	})

	Describe("GET /auth/logout", func() {
		It("clears the token cookie", func() {
			req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			cookies := rec.Result().Cookies()
			Expect(cookies).NotTo(BeEmpty())
			Expect(cookies[0].Name).To(Equal(auth.TokenCookieName))
			Expect(cookies[0].Value).To(BeEmpty())
			Expect(cookies[0].MaxAge).To(BeNumerically("<", 0))
		})
	})
})
