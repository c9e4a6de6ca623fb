package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookbookhq/backend/internal/mocks"
	"github.com/cookbookhq/backend/internal/service"
	"github.com/cookbookhq/backend/internal/types"
)

const testSecret = "test-secret"

func newAuthService() (*service.AuthService, *mocks.UserStore) {
	users := mocks.NewUserStore()
	return service.NewAuthService(users, testSecret, time.Hour), users
}

func TestRegisterIssuesValidToken(t *testing.T) {
	svc, _ := newAuthService()

	token, user, err := svc.Register(context.Background(), "Alice", "Smith", "Alice@Example.com", "supersecret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.ID.IsZero())
	assert.NotNil(t, user.SavedRecipes)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "Alice Smith", claims.Name)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), "Alice", "Smith", "alice@example.com", "short")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), "", "Smith", "alice@example.com", "supersecret")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), "Alice", "Smith", "alice@example.com", "supersecret")
	require.NoError(t, err)

	// Same address in different casing still collides.
	_, _, err = svc.Register(context.Background(), "Another", "Alice", "ALICE@example.com", "supersecret")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()

	_, registered, err := svc.Register(context.Background(), "Alice", "Smith", "alice@example.com", "supersecret")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "Alice@Example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID.Hex(), claims.UserID)
}

func TestLoginWrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), "Alice", "Smith", "alice@example.com", "supersecret")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(context.Background(), "alice@example.com", "not-the-password")
	_, _, unknownUser := svc.Login(context.Background(), "nobody@example.com", "supersecret")

	assert.ErrorIs(t, wrongPassword, service.ErrUnauthenticated)
	assert.ErrorIs(t, unknownUser, service.ErrUnauthenticated)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestValidateTokenRejectsForgedSignature(t *testing.T) {
	svc, users := newAuthService()
	other := service.NewAuthService(users, "different-secret", time.Hour)

	_, user, err := svc.Register(context.Background(), "Alice", "Smith", "alice@example.com", "supersecret")
	require.NoError(t, err)

	forged, err := other.GenerateToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(forged)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc, _ := newAuthService()

	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		UserID: "000000000000000000000000",
		Name:   "Alice Smith",
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}
