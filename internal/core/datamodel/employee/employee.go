package employee

// Employee is the persisted employee row. Date fields stay textual on the
// wire and in storage: the partial-update contract allows clients to blank
// them out, which a DATE column would refuse.
type Employee struct {
	ID                    int64   `gorm:"primaryKey"`
	FirstName             string  `gorm:"column:first_name;not null"`
	LastName              string  `gorm:"column:last_name;not null"`
	Email                 string  `gorm:"column:email;uniqueIndex;not null"`
	Password              string  `gorm:"column:password;not null"`
	Phone                 string  `gorm:"column:phone"`
	DateOfBirth           string  `gorm:"column:date_of_birth"`
	HireDate              string  `gorm:"column:hire_date;not null"`
	Department            string  `gorm:"column:department;not null"`
	Position              string  `gorm:"column:position;not null"`
	EmploymentType        string  `gorm:"column:employment_type"`
	Location              string  `gorm:"column:location"`
	Salary                float64 `gorm:"column:salary;not null"`
	Address               string  `gorm:"column:address"`
	City                  string  `gorm:"column:city"`
	State                 string  `gorm:"column:state"`
	PostalCode            string  `gorm:"column:postal_code"`
	Country               string  `gorm:"column:country"`
	EmergencyContactName  string  `gorm:"column:emergency_contact_name"`
	EmergencyContactPhone string  `gorm:"column:emergency_contact_phone"`
	Bio                   string  `gorm:"column:bio"`
	ProfileImage          *string `gorm:"column:profile_image"`
}

func (Employee) TableName() string {
	return "employees"
}
