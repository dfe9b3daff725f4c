package models

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents an account created by email/password signup or by the
// first Google OAuth callback. Email is nullable (OAuth-only accounts may
// lack one) but unique among live rows when present. PasswordHash is empty
// for accounts that can only log in through a provider.
type User struct {
	gorm.Model
	Email        *string        `gorm:"uniqueIndex:idx_users_email_not_deleted,where:deleted_at IS NULL AND email IS NOT NULL" json:"email"`
	PasswordHash string         `gorm:"not null;default:''" json:"-"`
	Name         string         `gorm:"not null;default:''" json:"name"`
	FirstName    string         `gorm:"not null;default:''" json:"firstName"`
	LastName     string         `gorm:"not null;default:''" json:"lastName"`
	Photo        string         `gorm:"not null;default:''" json:"photo"`
	Address      string         `gorm:"not null;default:''" json:"address"`
	Phone        string         `gorm:"not null;default:''" json:"phone"`
	Gender       string         `gorm:"not null;default:''" json:"gender"`
	DOB          datatypes.JSON `gorm:"type:jsonb" json:"dob"` // {"day":"","month":"","year":""}

	AuthIdentities []AuthIdentity `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// HasPassword reports whether the account supports password login.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// DisplayName joins first and last name, falling back to Name.
func DisplayName(firstName, lastName string) string {
	return strings.TrimSpace(firstName + " " + lastName)
}

// PublicUser is the subset of User returned by auth endpoints.
type PublicUser struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Photo string  `json:"photo"`
}

// Public returns the fields of a user that are safe to hand to clients.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Photo: u.Photo,
	}
}
