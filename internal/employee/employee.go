package employee

import (
	emdm "github.com/raihanmd/employee-management/internal/core/datamodel/employee"
)

// Summary is one row of the public employee listing. The name is synthesized
// from first and last name; salary is numeric on the wire, never a string.
type Summary struct {
	ID                    int64   `json:"id"`
	Name                  string  `json:"name"`
	Email                 string  `json:"email"`
	Phone                 string  `json:"phone"`
	DateOfBirth           string  `json:"date_of_birth"`
	Position              string  `json:"position"`
	Department            string  `json:"department"`
	Salary                float64 `json:"salary"`
	HireDate              string  `json:"hire_date"`
	Location              string  `json:"location"`
	EmploymentType        string  `json:"employment_type"`
	Address               string  `json:"address"`
	City                  string  `json:"city"`
	State                 string  `json:"state"`
	PostalCode            string  `json:"postal_code"`
	Country               string  `json:"country"`
	EmergencyContactName  string  `json:"emergency_contact_name"`
	EmergencyContactPhone string  `json:"emergency_contact_phone"`
	Bio                   string  `json:"bio"`
	ProfileImage          *string `json:"profile_image"`
}

// Detail is the single-employee view: the summary plus the split name fields.
type Detail struct {
	Summary
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Profile is the sanitized identity returned by employee login.
type Profile struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

func summaryFromModel(e *emdm.Employee) Summary {
	return Summary{
		ID:                    e.ID,
		Name:                  e.FirstName + " " + e.LastName,
		Email:                 e.Email,
		Phone:                 e.Phone,
		DateOfBirth:           e.DateOfBirth,
		Position:              e.Position,
		Department:            e.Department,
		Salary:                e.Salary,
		HireDate:              e.HireDate,
		Location:              e.Location,
		EmploymentType:        e.EmploymentType,
		Address:               e.Address,
		City:                  e.City,
		State:                 e.State,
		PostalCode:            e.PostalCode,
		Country:               e.Country,
		EmergencyContactName:  e.EmergencyContactName,
		EmergencyContactPhone: e.EmergencyContactPhone,
		Bio:                   e.Bio,
		ProfileImage:          e.ProfileImage,
	}
}

func detailFromModel(e *emdm.Employee) *Detail {
	return &Detail{
		Summary:   summaryFromModel(e),
		FirstName: e.FirstName,
		LastName:  e.LastName,
	}
}
