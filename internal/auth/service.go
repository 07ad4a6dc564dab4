package auth

import (
	"log/slog"

	"github.com/raihanmd/employee-management/internal"
	admindm "github.com/raihanmd/employee-management/internal/core/datamodel/admin"
)

type ServiceAPI interface {
	Login(dto LoginDTO) (*AdminProfile, string, error)
	Register(dto RegisterDTO) error
	ListAdmins() ([]AdminSummary, error)
	DeleteAdmin(id int64) error
	ValidateToken(tokenString string) (*Claims, error)
}

type RepositoryAPI interface {
	GetByEmail(email string) (*admindm.Admin, error)
	EmailExists(email string) (bool, error)
	Create(a *admindm.Admin) error
	List() ([]*admindm.Admin, error)
	Delete(id int64) error
}

// Service sequences the admin flows: credential checks, token issuance and
// the gated admin CRUD.
type Service struct {
	repo           RepositoryAPI
	tokens         TokenGeneratorAPI
	verifier       *CredentialVerifier
	bcryptCost     int
	allowPlaintext bool
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, verifier *CredentialVerifier, bcryptCost int, allowPlaintext bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:           repo,
		tokens:         tokens,
		verifier:       verifier,
		bcryptCost:     bcryptCost,
		allowPlaintext: allowPlaintext,
		logger:         logger,
	}
}

// Login verifies admin credentials and issues a session token. Missing row,
// failed match and verifier failure all collapse into the same generic error
// so responses leak nothing about which part failed.
func (s *Service) Login(dto LoginDTO) (*AdminProfile, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", internal.ErrWrongCredentials
	}

	adm, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		return nil, "", internal.ErrWrongCredentials
	}

	if err := s.verifier.Verify(dto.Password, adm.Password, s.allowPlaintext); err != nil {
		if err != internal.ErrWrongCredentials {
			s.logger.Error("admin credential verifier failed", "error", err, "email", dto.Email)
		}
		return nil, "", internal.ErrWrongCredentials
	}

	token, err := s.tokens.IssueToken(RoleAdmin, adm.ID, adm.Email)
	if err != nil {
		return nil, "", internal.NewInternalError("failed to issue session token", err)
	}

	profile := &AdminProfile{
		ID:    adm.ID,
		Email: adm.Email,
		Name:  adm.Name,
		Role:  RoleAdmin,
	}
	return profile, token, nil
}

// Register creates a new admin with a bcrypt-hashed password.
func (s *Service) Register(dto RegisterDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.ErrAdminFieldsMissing
	}

	exists, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		return internal.NewInternalError("failed to check email availability", err)
	}
	if exists {
		return internal.ErrAdminEmailTaken
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	adm := &admindm.Admin{
		Name:     dto.Name,
		Email:    dto.Email,
		Password: hash,
	}
	if err := s.repo.Create(adm); err != nil {
		// the unique index backstops the pre-check under concurrent registers
		if err == internal.ErrAdminEmailTaken {
			return err
		}
		return internal.NewInternalError("failed to create admin", err)
	}

	s.logger.Info("admin registered", "admin_id", adm.ID, "email", adm.Email)
	return nil
}

func (s *Service) ListAdmins() ([]AdminSummary, error) {
	admins, err := s.repo.List()
	if err != nil {
		return nil, internal.NewInternalError("failed to fetch admins", err)
	}

	summaries := make([]AdminSummary, 0, len(admins))
	for _, a := range admins {
		summaries = append(summaries, AdminSummary{
			ID:        a.ID,
			Name:      a.Name,
			Email:     a.Email,
			CreatedAt: a.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *Service) DeleteAdmin(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if err == internal.ErrAdminNotFound {
			return err
		}
		return internal.NewInternalError("failed to delete admin", err)
	}
	return nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateToken(tokenString)
}
