package employee

import (
	"log/slog"
	"strconv"

	"github.com/raihanmd/employee-management/internal"
	"github.com/raihanmd/employee-management/internal/auth"
	emdm "github.com/raihanmd/employee-management/internal/core/datamodel/employee"
)

type ServiceAPI interface {
	ListAll() ([]Summary, error)
	GetByID(id int64) (*Detail, error)
	Create(dto CreateDTO) (int64, error)
	Update(id int64, patch Patch) error
	Delete(id int64) error
	Login(dto auth.LoginDTO) (*Profile, string, error)
}

type RepositoryAPI interface {
	GetAll() ([]*emdm.Employee, error)
	GetByID(id int64) (*emdm.Employee, error)
	GetByEmail(email string) (*emdm.Employee, error)
	EmailExists(email string) (bool, error)
	EmailExistsForOther(email string, id int64) (bool, error)
	Create(e *emdm.Employee) error
	UpdateColumns(id int64, cols map[string]interface{}) error
	Delete(id int64) error
}

// Service sequences the employee CRUD flows and employee login.
type Service struct {
	repo       RepositoryAPI
	tokens     auth.TokenGeneratorAPI
	verifier   *auth.CredentialVerifier
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokens auth.TokenGeneratorAPI, verifier *auth.CredentialVerifier, bcryptCost int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		tokens:     tokens,
		verifier:   verifier,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) ListAll() ([]Summary, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.NewInternalError("failed to fetch employees", err)
	}

	summaries := make([]Summary, 0, len(rows))
	for _, e := range rows {
		summaries = append(summaries, summaryFromModel(e))
	}
	return summaries, nil
}

func (s *Service) GetByID(id int64) (*Detail, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		if err == internal.ErrEmployeeNotFound {
			return nil, err
		}
		return nil, internal.NewInternalError("failed to fetch employee", err)
	}
	return detailFromModel(e), nil
}

// Create validates the required set, enforces email uniqueness, hashes the
// password and inserts the row.
func (s *Service) Create(dto CreateDTO) (int64, error) {
	salary, err := dto.Validate()
	if err != nil {
		return 0, err
	}

	exists, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		return 0, internal.NewInternalError("failed to check email availability", err)
	}
	if exists {
		return 0, internal.ErrEmployeeEmailTaken
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return 0, internal.NewInternalError("failed to hash password", err)
	}

	e := &emdm.Employee{
		FirstName:             dto.FirstName,
		LastName:              dto.LastName,
		Email:                 dto.Email,
		Password:              hash,
		Phone:                 dto.Phone,
		DateOfBirth:           dto.DateOfBirth,
		HireDate:              dto.HireDate,
		Department:            dto.Department,
		Position:              dto.Position,
		EmploymentType:        dto.EmploymentType,
		Location:              dto.Location,
		Salary:                salary,
		Address:               dto.Address,
		City:                  dto.City,
		State:                 dto.State,
		PostalCode:            dto.PostalCode,
		Country:               dto.Country,
		EmergencyContactName:  dto.EmergencyContactName,
		EmergencyContactPhone: dto.EmergencyContactPhone,
		Bio:                   dto.Bio,
		ProfileImage:          dto.ProfileImagePath,
	}
	if err := s.repo.Create(e); err != nil {
		// the unique index backstops the pre-check under concurrent creates
		if err == internal.ErrEmployeeEmailTaken {
			return 0, err
		}
		return 0, internal.NewInternalError("failed to add employee", err)
	}

	s.logger.Info("employee created", "employee_id", e.ID, "email", e.Email)
	return e.ID, nil
}

// Update applies a sparse patch to an existing employee. Only supplied fields
// change; profile_image is always rewritten to either the fresh upload or the
// previously stored path.
func (s *Service) Update(id int64, patch Patch) error {
	stored, err := s.repo.GetByID(id)
	if err != nil {
		if err == internal.ErrEmployeeNotFound {
			return err
		}
		return internal.NewInternalError("failed to fetch employee", err)
	}

	if present(patch.Email) && *patch.Email != stored.Email {
		taken, err := s.repo.EmailExistsForOther(*patch.Email, id)
		if err != nil {
			return internal.NewInternalError("failed to check email availability", err)
		}
		if taken {
			return internal.ErrEmployeeEmailTaken
		}
	}

	cols, err := s.patchColumns(patch, stored)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateColumns(id, cols); err != nil {
		if err == internal.ErrEmployeeEmailTaken {
			return err
		}
		return internal.NewInternalError("failed to update employee", err)
	}

	s.logger.Info("employee updated", "employee_id", id)
	return nil
}

// patchColumns turns a Patch into the column set to persist.
func (s *Service) patchColumns(patch Patch, stored *emdm.Employee) (map[string]interface{}, error) {
	cols := make(map[string]interface{})

	setIfPresent(cols, "first_name", patch.FirstName)
	setIfPresent(cols, "last_name", patch.LastName)
	setIfPresent(cols, "email", patch.Email)
	setIfPresent(cols, "hire_date", patch.HireDate)
	setIfPresent(cols, "department", patch.Department)
	setIfPresent(cols, "position", patch.Position)
	setIfPresent(cols, "employment_type", patch.EmploymentType)
	setIfPresent(cols, "location", patch.Location)

	if present(patch.Salary) {
		salary, err := strconv.ParseFloat(*patch.Salary, 64)
		if err != nil {
			return nil, internal.ErrInvalidSalary
		}
		cols["salary"] = salary
	}

	if present(patch.Password) {
		hash, err := auth.HashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		cols["password"] = hash
	}

	setIfSupplied(cols, "phone", patch.Phone)
	setIfSupplied(cols, "date_of_birth", patch.DateOfBirth)
	setIfSupplied(cols, "address", patch.Address)
	setIfSupplied(cols, "city", patch.City)
	setIfSupplied(cols, "state", patch.State)
	setIfSupplied(cols, "postal_code", patch.PostalCode)
	setIfSupplied(cols, "country", patch.Country)
	setIfSupplied(cols, "emergency_contact_name", patch.EmergencyContactName)
	setIfSupplied(cols, "emergency_contact_phone", patch.EmergencyContactPhone)
	setIfSupplied(cols, "bio", patch.Bio)

	if patch.ProfileImagePath != nil {
		cols["profile_image"] = *patch.ProfileImagePath
	} else {
		cols["profile_image"] = stored.ProfileImage
	}

	return cols, nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if err == internal.ErrEmployeeNotFound {
			return err
		}
		return internal.NewInternalError("failed to delete employee", err)
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

// Login verifies employee credentials via the bcrypt path only; there is no
// plaintext shortcut for employee accounts.
func (s *Service) Login(dto auth.LoginDTO) (*Profile, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", internal.ErrWrongCredentials
	}

	e, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		return nil, "", internal.ErrWrongCredentials
	}

	if err := s.verifier.Verify(dto.Password, e.Password, false); err != nil {
		if err != internal.ErrWrongCredentials {
			s.logger.Error("employee credential verifier failed", "error", err, "email", dto.Email)
		}
		return nil, "", internal.ErrWrongCredentials
	}

	token, err := s.tokens.IssueToken(auth.RoleEmployee, e.ID, e.Email)
	if err != nil {
		return nil, "", internal.NewInternalError("failed to issue session token", err)
	}

	profile := &Profile{
		ID:         e.ID,
		Name:       e.FirstName + " " + e.LastName,
		Email:      e.Email,
		Role:       auth.RoleEmployee,
		Department: e.Department,
		Position:   e.Position,
	}
	return profile, token, nil
}
