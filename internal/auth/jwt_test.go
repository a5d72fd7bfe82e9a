package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_reporting_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTProvider_IssueAndVerify(t *testing.T) {
	provider := NewJWTProvider("test-secret", time.Hour)
	user := &models.User{
		ID:    uuid.New(),
		Name:  "Reporter One",
		Email: "one@example.com",
	}

	token, err := provider.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := provider.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), principal.ID)
	assert.Equal(t, user.Name, principal.DisplayName)
	assert.False(t, principal.IsZero())
}

func TestJWTProvider_Verify_WrongSecret(t *testing.T) {
	issuer := NewJWTProvider("secret-a", time.Hour)
	verifier := NewJWTProvider("secret-b", time.Hour)

	token, err := issuer.Issue(&models.User{ID: uuid.New(), Name: "x"})
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTProvider_Verify_Expired(t *testing.T) {
	provider := NewJWTProvider("test-secret", -time.Minute)

	token, err := provider.Issue(&models.User{ID: uuid.New(), Name: "x"})
	require.NoError(t, err)

	_, err = provider.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTProvider_Verify_Garbage(t *testing.T) {
	provider := NewJWTProvider("test-secret", time.Hour)

	_, err := provider.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
