package token

import (
	"testing"
	"time"

	"github.com/foodoo/foodoo/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func testUser() *models.User {
	email := "alice@example.com"
	return &models.User{
		Model: gorm.Model{ID: 42},
		Email: &email,
		Name:  "Alice Smith",
		Photo: "/uploads/user-abc.png",
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	m, err := NewManager("test-secret", 0)
	assert.NoError(t, err)

	raw, err := m.Issue(testUser())
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)

	claims, err := m.Verify(raw)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "Alice Smith", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "/uploads/user-abc.png", claims.Photo)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewManager("secret-a", 0)
	verifier, _ := NewManager("secret-b", 0)

	raw, err := issuer.Issue(testUser())
	assert.NoError(t, err)

	_, err = verifier.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := &Manager{secret: []byte("test-secret"), ttl: -time.Hour}

	raw, err := m.Issue(testUser())
	assert.NoError(t, err)

	_, err = m.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m, _ := NewManager("test-secret", 0)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", raw)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager("", 0)
	assert.Error(t, err)
}
