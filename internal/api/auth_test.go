package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookbookhq/backend/internal/api"
)

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp()

	w := app.do(t, http.MethodPost, "/user/register", "", map[string]string{
		"firstname": "Alice",
		"lastname":  "Smith",
		"email":     "alice@example.com",
		"password":  "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var registered api.AuthResponse
	decode(t, w, &registered)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "Alice", registered.User.Firstname)
	assert.NotEmpty(t, registered.User.ID)

	// The response never carries the email or password back.
	assert.NotContains(t, w.Body.String(), "alice@example.com")
	assert.NotContains(t, w.Body.String(), "supersecret")

	w = app.do(t, http.MethodPost, "/user/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loggedIn api.AuthResponse
	decode(t, w, &loggedIn)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp()

	w := app.do(t, http.MethodPost, "/user/register", "", map[string]string{
		"firstname": "Alice",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = app.do(t, http.MethodPost, "/user/register", "", map[string]string{
		"firstname": "Alice",
		"lastname":  "Smith",
		"email":     "alice@example.com",
		"password":  "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp()
	app.register(t, "Alice", "alice@example.com")

	w := app.do(t, http.MethodPost, "/user/register", "", map[string]string{
		"firstname": "Another",
		"lastname":  "Alice",
		"email":     "alice@example.com",
		"password":  "supersecret",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	app := newTestApp()
	app.register(t, "Alice", "alice@example.com")

	w := app.do(t, http.MethodPost, "/user/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/user/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRejectsBadTokens(t *testing.T) {
	app := newTestApp()

	w := app.do(t, http.MethodGet, "/user/recipe", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/user/recipe", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
