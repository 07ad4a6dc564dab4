package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/raihanmd/employee-management/internal"
	emdm "github.com/raihanmd/employee-management/internal/core/datamodel/employee"
	"github.com/raihanmd/employee-management/internal/employee"
)

// EmployeeRepository implements employee.RepositoryAPI using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetAll() ([]*emdm.Employee, error) {
	var rows []*emdm.Employee
	err := r.db.Order("id").Find(&rows).Error
	return rows, err
}

func (r *EmployeeRepository) GetByID(id int64) (*emdm.Employee, error) {
	var e emdm.Employee
	err := r.db.Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*emdm.Employee, error) {
	var e emdm.Employee
	err := r.db.Where("email = ?", email).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&emdm.Employee{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EmployeeRepository) EmailExistsForOther(email string, id int64) (bool, error) {
	var count int64
	err := r.db.Model(&emdm.Employee{}).
		Where("email = ? AND id != ?", email, id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EmployeeRepository) Create(e *emdm.Employee) error {
	err := r.db.Create(e).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrEmployeeEmailTaken
	}
	return err
}

// UpdateColumns persists a pre-built column set; the service owns the sparse
// patch semantics, this layer just writes what it is handed.
func (r *EmployeeRepository) UpdateColumns(id int64, cols map[string]interface{}) error {
	if len(cols) == 0 {
		return nil
	}
	err := r.db.Model(&emdm.Employee{}).Where("id = ?", id).Updates(cols).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrEmployeeEmailTaken
	}
	return err
}

func (r *EmployeeRepository) Delete(id int64) error {
	res := r.db.Delete(&emdm.Employee{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}
