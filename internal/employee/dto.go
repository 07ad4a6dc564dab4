package employee

import (
	"net/url"
	"strconv"

	"github.com/raihanmd/employee-management/internal"
)

// CreateDTO carries the multipart form fields for adding an employee. Salary
// stays raw here and is parsed during validation so a bad number surfaces as
// a validation error, not a silent zero.
type CreateDTO struct {
	FirstName             string
	LastName              string
	Email                 string
	Password              string
	Phone                 string
	DateOfBirth           string
	HireDate              string
	Department            string
	Position              string
	EmploymentType        string
	Location              string
	Salary                string
	Address               string
	City                  string
	State                 string
	PostalCode            string
	Country               string
	EmergencyContactName  string
	EmergencyContactPhone string
	Bio                   string

	// ProfileImagePath is set by the handler after a successful upload.
	ProfileImagePath *string
}

func CreateDTOFromForm(form url.Values) CreateDTO {
	return CreateDTO{
		FirstName:             form.Get("first_name"),
		LastName:              form.Get("last_name"),
		Email:                 form.Get("email"),
		Password:              form.Get("password"),
		Phone:                 form.Get("phone"),
		DateOfBirth:           form.Get("date_of_birth"),
		HireDate:              form.Get("hire_date"),
		Department:            form.Get("department"),
		Position:              form.Get("position"),
		EmploymentType:        form.Get("employment_type"),
		Location:              form.Get("location"),
		Salary:                form.Get("salary"),
		Address:               form.Get("address"),
		City:                  form.Get("city"),
		State:                 form.Get("state"),
		PostalCode:            form.Get("postal_code"),
		Country:               form.Get("country"),
		EmergencyContactName:  form.Get("emergency_contact_name"),
		EmergencyContactPhone: form.Get("emergency_contact_phone"),
		Bio:                   form.Get("bio"),
	}
}

// Validate enforces the required-field set and a parseable salary.
func (d CreateDTO) Validate() (float64, error) {
	if d.FirstName == "" || d.LastName == "" || d.Email == "" || d.Password == "" ||
		d.HireDate == "" || d.Department == "" || d.Position == "" || d.Salary == "" {
		return 0, internal.ErrMissingFields
	}

	salary, err := strconv.ParseFloat(d.Salary, 64)
	if err != nil {
		return 0, internal.ErrInvalidSalary
	}
	return salary, nil
}

// Patch is the structured partial update for PUT /employees/{id}. A nil
// pointer means the field was absent from the form and stays untouched.
//
// Two presence rules coexist, inherited from the wire contract:
//   - value-required fields only apply when present and non-empty;
//   - clearable fields apply whenever the key appeared, even as "".
//
// The split is encoded in how patchColumns treats each pointer, not in the
// types.
type Patch struct {
	// applied only when present and non-empty
	FirstName      *string
	LastName       *string
	Email          *string
	Password       *string
	HireDate       *string
	Department     *string
	Position       *string
	EmploymentType *string
	Location       *string
	Salary         *string

	// applied whenever the key was present, empty string included
	Phone                 *string
	DateOfBirth           *string
	Address               *string
	City                  *string
	State                 *string
	PostalCode            *string
	Country               *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	Bio                   *string

	// ProfileImagePath is non-nil only when a new file was uploaded; the
	// stored value is re-used otherwise.
	ProfileImagePath *string
}

// PatchFromForm builds a Patch keyed on form-field presence.
func PatchFromForm(form url.Values) Patch {
	get := func(key string) *string {
		if _, ok := form[key]; !ok {
			return nil
		}
		v := form.Get(key)
		return &v
	}

	return Patch{
		FirstName:             get("first_name"),
		LastName:              get("last_name"),
		Email:                 get("email"),
		Password:              get("password"),
		HireDate:              get("hire_date"),
		Department:            get("department"),
		Position:              get("position"),
		EmploymentType:        get("employment_type"),
		Location:              get("location"),
		Salary:                get("salary"),
		Phone:                 get("phone"),
		DateOfBirth:           get("date_of_birth"),
		Address:               get("address"),
		City:                  get("city"),
		State:                 get("state"),
		PostalCode:            get("postal_code"),
		Country:               get("country"),
		EmergencyContactName:  get("emergency_contact_name"),
		EmergencyContactPhone: get("emergency_contact_phone"),
		Bio:                   get("bio"),
	}
}

func present(p *string) bool {
	return p != nil && *p != ""
}

func setIfPresent(cols map[string]interface{}, col string, p *string) {
	if present(p) {
		cols[col] = *p
	}
}

func setIfSupplied(cols map[string]interface{}, col string, p *string) {
	if p != nil {
		cols[col] = *p
	}
}
