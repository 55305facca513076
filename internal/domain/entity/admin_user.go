package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Back-office roles allowed to manage quotations and invoices
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// AdminUser is a back-office account. Customers never log in; they reach
// their quotation through its reference.
type AdminUser struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Email       string         `gorm:"size:255;unique;not null" json:"email"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	Role        string         `gorm:"size:20;not null;default:'staff'" json:"role"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new admin user
func (u *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AdminUser model
func (AdminUser) TableName() string {
	return "admin_users"
}

// HasRole checks if the user holds one of the given roles
func (u *AdminUser) HasRole(roles ...string) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}
