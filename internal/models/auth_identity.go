package models

import (
	"time"

	"github.com/foodoo/foodoo/internal/crypto"
	"gorm.io/gorm"
)

var encryptor *crypto.TokenEncryptor

// InitEncryption initializes the token encryptor for the models package.
// Must be called before any database operations involving AuthIdentity.
func InitEncryption(encryptionKey string) error {
	var err error
	encryptor, err = crypto.NewTokenEncryptor(encryptionKey)
	return err
}

// AuthIdentity links a user to an external identity provider subject.
// Provider tokens are stored encrypted.
type AuthIdentity struct {
	gorm.Model
	UserID         uint   `gorm:"not null;index"`
	User           User   `gorm:"constraint:OnDelete:CASCADE;"`
	Provider       string `gorm:"not null;uniqueIndex:idx_auth_identities_provider_user,where:deleted_at IS NULL"` // e.g., "google"
	ProviderUserID string `gorm:"not null;uniqueIndex:idx_auth_identities_provider_user,where:deleted_at IS NULL"`
	AccessToken    string `gorm:"type:text"` // stored encrypted
	RefreshToken   string `gorm:"type:text"` // stored encrypted
	TokenExpiry    *time.Time
}

// BeforeSave encrypts tokens before saving to database.
// Always encrypts non-empty tokens (GCM produces different output each time due to random nonce).
func (a *AuthIdentity) BeforeSave(tx *gorm.DB) error {
	if encryptor == nil {
		// Allow operations without encryption (e.g., for testing or if encryption not initialized)
		return nil
	}

	if a.AccessToken != "" {
		encrypted, err := encryptor.Encrypt(a.AccessToken)
		if err != nil {
			return err
		}
		a.AccessToken = encrypted
	}

	if a.RefreshToken != "" {
		encrypted, err := encryptor.Encrypt(a.RefreshToken)
		if err != nil {
			return err
		}
		a.RefreshToken = encrypted
	}

	return nil
}

// AfterFind decrypts tokens after loading from database
func (a *AuthIdentity) AfterFind(tx *gorm.DB) error {
	if encryptor == nil {
		return nil
	}

	if a.AccessToken != "" {
		decrypted, err := encryptor.Decrypt(a.AccessToken)
		if err != nil {
			return err
		}
		a.AccessToken = decrypted
	}

	if a.RefreshToken != "" {
		decrypted, err := encryptor.Decrypt(a.RefreshToken)
		if err != nil {
			return err
		}
		a.RefreshToken = decrypted
	}

	return nil
}
