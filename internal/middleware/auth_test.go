package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/cookbookhq/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(string) (*types.TokenClaims, error) {
	return s.claims, s.err
}

func runAuth(t *testing.T, validator TokenValidator, header string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/saved", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}

	Auth(validator)(c)
	return w, c
}

func TestAuthMissingHeader(t *testing.T) {
	w, c := runAuth(t, &stubValidator{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAuthBadHeaderFormat(t *testing.T) {
	for _, header := range []string{"token-without-scheme", "Basic abc", "Bearer a b"} {
		w, c := runAuth(t, &stubValidator{}, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, c.IsAborted())
	}
}

func TestAuthInvalidToken(t *testing.T) {
	w, c := runAuth(t, &stubValidator{err: errors.New("bad token")}, "Bearer whatever")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAuthSetsIdentity(t *testing.T) {
	validator := &stubValidator{claims: &types.TokenClaims{UserID: "abc123", Name: "Alice Smith"}}

	w, c := runAuth(t, validator, "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, c.IsAborted())

	id, ok := UserID(c)
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)
	assert.Equal(t, "Alice Smith", c.GetString(ContextUserName))
}
