package models

import (
	"strings"
	"time"
)

// User roles.
const (
	RoleCustomer = "CU"
	RoleSeller   = "SE"
)

// User represents an account of the store. Email is the login key.
type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Email         string    `json:"email" gorm:"uniqueIndex;type:varchar(254);not null"`
	Username      string    `json:"username" gorm:"uniqueIndex;type:varchar(50);not null"`
	Password      string    `json:"-" gorm:"type:varchar(128);not null"` // bcrypt hash, never serialized
	FirstName     string    `json:"first_name" gorm:"type:varchar(150)"`
	LastName      string    `json:"last_name" gorm:"type:varchar(150)"`
	Role          string    `json:"role" gorm:"type:varchar(2);not null;default:CU"`
	ProfileImage  *string   `json:"profile_image" gorm:"type:varchar(100)"`
	ContactNumber *string   `json:"contact_number" gorm:"type:varchar(20)"`
	IsActive      bool      `json:"-" gorm:"not null"`
	IsStaff       bool      `json:"-" gorm:"not null"`
	IsSuperuser   bool      `json:"-" gorm:"not null"`
	DateJoined    time.Time `json:"-" gorm:"autoCreateTime"`
}

// NormalizeEmail lower-cases the domain part of an email address and leaves
// the local part untouched.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
