package admin

import "time"

// Admin is the persisted administrator account. Password holds either a
// bcrypt hash (registered accounts) or a plaintext value for pre-seeded
// bootstrap accounts; the credential verifier handles both.
type Admin struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	Password  string    `gorm:"column:password;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Admin) TableName() string {
	return "admins"
}
