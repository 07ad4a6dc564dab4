package employee_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/raihanmd/employee-management/internal/auth"
	emdm "github.com/raihanmd/employee-management/internal/core/datamodel/employee"
	"github.com/raihanmd/employee-management/internal/employee"
	"github.com/raihanmd/employee-management/internal/employee/postgres"
	"github.com/raihanmd/employee-management/internal/upload"
)

// pngStub is a minimal payload http.DetectContentType reports as image/png.
var pngStub = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func multipartBody(fields map[string]string, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		Expect(w.WriteField(k, v)).To(Succeed())
	}
	if fileName != "" {
		part, err := w.CreateFormFile("profile_image", fileName)
		Expect(err).NotTo(HaveOccurred())
		_, err = io.Copy(part, bytes.NewReader(fileContent))
		Expect(err).NotTo(HaveOccurred())
	}
	Expect(w.Close()).To(Succeed())
	return buf, w.FormDataContentType()
}

var _ = Describe("Employee Handler", func() {
	var (
		db        *gorm.DB
		router    *chi.Mux
		uploadDir string
	)

	validFields := func() map[string]string {
		return map[string]string{
			"first_name": "Ada",
			"last_name":  "Lovelace",
			"email":      "ada@example.com",
			"password":   "s3cret",
			"hire_date":  "2024-01-15",
			"department": "Engineering",
			"position":   "Engineer",
			"salary":     "95000.50",
			"phone":      "555-0100",
			"city":       "London",
		}
	}

	do := func(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, body)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	decode := func(rec *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	createEmployee := func(fields map[string]string) int64 {
		body, ct := multipartBody(fields, "", nil)
		rec := do(http.MethodPost, "/employees", body, ct)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		return int64(decode(rec)["id"].(float64))
	}

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		dbPath := filepath.Join(GinkgoT().TempDir(), "employees.db")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&emdm.Employee{})).To(Succeed())

		uploadDir = filepath.Join(GinkgoT().TempDir(), "uploads")
		store, err := upload.NewStore(uploadDir, upload.DefaultMaxBytes, slogger)
		Expect(err).NotTo(HaveOccurred())

		repo := postgres.NewEmployeeRepository(db)
		tokens := auth.NewJWTTokenGenerator("test-secret-at-least-16", 24*time.Hour)
		verifier := auth.NewCredentialVerifier(slogger)
		service := employee.NewService(repo, tokens, verifier, 4, slogger)
		handler := employee.NewHandler(service, store)

		router = chi.NewRouter()
		router.Get("/employees", handler.List)
		router.Post("/employees", handler.Create)
		router.Post("/employees/login", handler.Login)
		router.Get("/employees/{id}", handler.Get)
		router.Put("/employees/{id}", handler.Update)
		router.Delete("/employees/{id}", handler.Delete)
	})

	Describe("POST /employees", func() {
		It("creates an employee and returns its id", func() {
			body, ct := multipartBody(validFields(), "", nil)
			rec := do(http.MethodPost, "/employees", body, ct)

			Expect(rec.Code).To(Equal(http.StatusCreated))
			resp := decode(rec)
			Expect(resp["status"]).To(BeTrue())
			Expect(resp["message"]).To(Equal("Employee added successfully"))
			Expect(resp["id"]).To(BeNumerically(">", 0))
		})

		It("rejects a form missing a required field and stores nothing", func() {
			fields := validFields()
			delete(fields, "salary")
			body, ct := multipartBody(fields, "", nil)

			rec := do(http.MethodPost, "/employees", body, ct)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			resp := decode(rec)
			Expect(resp["status"]).To(BeFalse())
			Expect(resp["message"]).To(Equal("Please provide all required fields"))

			var count int64
			Expect(db.Model(&emdm.Employee{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})

		It("rejects a duplicate email", func() {
			createEmployee(validFields())

			body, ct := multipartBody(validFields(), "", nil)
			rec := do(http.MethodPost, "/employees", body, ct)

			Expect(rec.Code).To(Equal(http.StatusConflict))
			Expect(decode(rec)["message"]).To(Equal("Email already in use"))
		})

		It("stores an uploaded profile image and persists its path", func() {
			body, ct := multipartBody(validFields(), "avatar.png", pngStub)
			rec := do(http.MethodPost, "/employees", body, ct)
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var stored emdm.Employee
			Expect(db.First(&stored).Error).To(Succeed())
			Expect(stored.ProfileImage).NotTo(BeNil())
			Expect(*stored.ProfileImage).To(HavePrefix("uploads/"))
			Expect(*stored.ProfileImage).To(HaveSuffix(".png"))

			onDisk := filepath.Join(uploadDir, filepath.Base(*stored.ProfileImage))
			Expect(onDisk).To(BeAnExistingFile())
		})

		It("rejects a non-image upload before touching the database", func() {
			body, ct := multipartBody(validFields(), "notes.txt", []byte("just text"))
			rec := do(http.MethodPost, "/employees", body, ct)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(rec)["message"]).To(Equal("Images only (jpeg, jpg, png, gif)"))

			var count int64
			Expect(db.Model(&emdm.Employee{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})
	})

	Describe("GET /employees and GET /employees/{id}", func() {
		It("lists employees with synthesized names and numeric salaries", func() {
			createEmployee(validFields())

			rec := do(http.MethodGet, "/employees", nil, "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			raw := rec.Body.String()
			Expect(raw).To(ContainSubstring(`"name":"Ada Lovelace"`))
			Expect(raw).To(ContainSubstring(`"salary":95000.5`))
			Expect(raw).NotTo(ContainSubstring(`"password"`))
		})

		It("fetches one employee with the split name fields", func() {
			id := createEmployee(validFields())

			rec := do(http.MethodGet, fmt.Sprintf("/employees/%d", id), nil, "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			data := decode(rec)["data"].(map[string]interface{})
			Expect(data["first_name"]).To(Equal("Ada"))
			Expect(data["last_name"]).To(Equal("Lovelace"))
			Expect(data["salary"]).To(Equal(95000.50))
		})

		It("answers 404 for a missing employee", func() {
			rec := do(http.MethodGet, "/employees/999", nil, "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(decode(rec)["message"]).To(Equal("Employee not found"))
		})

		It("rejects a non-numeric id", func() {
			rec := do(http.MethodGet, "/employees/abc", nil, "")
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PUT /employees/{id}", func() {
		It("updates only the supplied fields", func() {
			id := createEmployee(validFields())

			body, ct := multipartBody(map[string]string{"department": "Research"}, "", nil)
			rec := do(http.MethodPut, fmt.Sprintf("/employees/%d", id), body, ct)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var stored emdm.Employee
			Expect(db.First(&stored, id).Error).To(Succeed())
			Expect(stored.Department).To(Equal("Research"))
			Expect(stored.FirstName).To(Equal("Ada"))
			Expect(stored.Salary).To(Equal(95000.50))
			Expect(stored.Phone).To(Equal("555-0100"))
		})

		It("keeps the stored profile image when no new file is uploaded", func() {
			body, ct := multipartBody(validFields(), "avatar.png", pngStub)
			Expect(do(http.MethodPost, "/employees", body, ct).Code).To(Equal(http.StatusCreated))

			var before emdm.Employee
			Expect(db.First(&before).Error).To(Succeed())
			Expect(before.ProfileImage).NotTo(BeNil())

			patch, ct := multipartBody(map[string]string{"city": "Cambridge"}, "", nil)
			rec := do(http.MethodPut, fmt.Sprintf("/employees/%d", before.ID), patch, ct)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var after emdm.Employee
			Expect(db.First(&after, before.ID).Error).To(Succeed())
			Expect(after.City).To(Equal("Cambridge"))
			Expect(after.ProfileImage).To(Equal(before.ProfileImage))
		})

		It("blanks a clearable field supplied as empty", func() {
			id := createEmployee(validFields())

			body, ct := multipartBody(map[string]string{"phone": ""}, "", nil)
			rec := do(http.MethodPut, fmt.Sprintf("/employees/%d", id), body, ct)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var stored emdm.Employee
			Expect(db.First(&stored, id).Error).To(Succeed())
			Expect(stored.Phone).To(BeEmpty())
		})

		It("answers 409 when the new email belongs to someone else", func() {
			id := createEmployee(validFields())
			other := validFields()
			other["email"] = "other@example.com"
			createEmployee(other)

			body, ct := multipartBody(map[string]string{"email": "other@example.com"}, "", nil)
			rec := do(http.MethodPut, fmt.Sprintf("/employees/%d", id), body, ct)

			Expect(rec.Code).To(Equal(http.StatusConflict))
			Expect(decode(rec)["message"]).To(Equal("Email already in use"))
		})

		It("answers 404 for a missing employee", func() {
			body, ct := multipartBody(map[string]string{"city": "Nowhere"}, "", nil)
			rec := do(http.MethodPut, "/employees/999", body, ct)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /employees/{id}", func() {
		It("deletes an existing employee", func() {
			id := createEmployee(validFields())

			rec := do(http.MethodDelete, fmt.Sprintf("/employees/%d", id), nil, "")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var count int64
			Expect(db.Model(&emdm.Employee{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})

		It("answers 404 for a missing employee", func() {
			rec := do(http.MethodDelete, "/employees/999", nil, "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(decode(rec)["message"]).To(Equal("Employee not found"))
		})
	})

	Describe("POST /employees/login", func() {
		It("authenticates a created employee and sets the session cookie", func() {
			createEmployee(validFields())

			payload := strings.NewReader(`{"email":"ada@example.com","password":"s3cret"}`)
			rec := do(http.MethodPost, "/employees/login", payload, "application/json")

			Expect(rec.Code).To(Equal(http.StatusOK))
			resp := decode(rec)
			Expect(resp["status"]).To(BeTrue())

			user := resp["user"].(map[string]interface{})
			Expect(user["name"]).To(Equal("Ada Lovelace"))
			Expect(user["role"]).To(Equal(auth.RoleEmployee))

			cookies := rec.Result().Cookies()
			Expect(cookies).NotTo(BeEmpty())
			Expect(cookies[0].Name).To(Equal(auth.TokenCookieName))
			Expect(cookies[0].Value).NotTo(BeEmpty())
		})

		It("rejects wrong credentials with the generic message", func() {
			createEmployee(validFields())

			payload := strings.NewReader(`{"email":"ada@example.com","password":"nope"}`)
			rec := do(http.MethodPost, "/employees/login", payload, "application/json")

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(decode(rec)["message"]).To(Equal("Wrong email or password"))
		})
	})
})
