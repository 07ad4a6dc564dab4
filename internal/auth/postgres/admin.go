package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/raihanmd/employee-management/internal"
	"github.com/raihanmd/employee-management/internal/auth"
	admindm "github.com/raihanmd/employee-management/internal/core/datamodel/admin"
)

// AdminRepository implements auth.RepositoryAPI using GORM.
type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByEmail(email string) (*admindm.Admin, error) {
	var adm admindm.Admin
	err := r.db.Where("email = ?", email).First(&adm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAdminNotFound
		}
		return nil, err
	}
	return &adm, nil
}

func (r *AdminRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&admindm.Admin{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AdminRepository) Create(a *admindm.Admin) error {
	err := r.db.Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrAdminEmailTaken
	}
	return err
}

func (r *AdminRepository) List() ([]*admindm.Admin, error) {
	var admins []*admindm.Admin
	err := r.db.Order("id").Find(&admins).Error
	return admins, err
}

func (r *AdminRepository) Delete(id int64) error {
	res := r.db.Delete(&admindm.Admin{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrAdminNotFound
	}
	return nil
}
