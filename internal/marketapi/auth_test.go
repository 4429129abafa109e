package marketapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micromarket/backend/internal/auth"
	"github.com/micromarket/backend/internal/domain"
)

func TestRegisterIssuesResolvableToken(t *testing.T) {
	env := newTestEnv(t)

	tok := env.register("vendor@example.com", "vendor")
	require.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, domain.UserTypeVendor, tok.User.UserType)
	assert.NotEmpty(t, tok.User.ID)

	claims, err := auth.ParseToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tok.User.ID, claims.UserID)

	// token works against a protected route
	rec := env.do(http.MethodGet, "/api/cart", tok.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register("dup@example.com", "vendor")

	rec := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":     "dup@example.com",
		"name":      "Second",
		"password":  "pass1234",
		"user_type": "supplier",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRejectsUnknownUserType(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":     "odd@example.com",
		"name":      "Odd",
		"password":  "pass1234",
		"user_type": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register("login@example.com", "vendor")

	rec := env.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "pass1234",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	tok := decode[tokenResponse](t, rec)
	assert.NotEmpty(t, tok.AccessToken)

	_, err := auth.ParseToken(tok.AccessToken)
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register("wrongpw@example.com", "vendor")

	rec := env.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "wrongpw@example.com",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "pass1234",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRouteRejectsBadTokens(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/api/cart", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenForDeletedUserRejected(t *testing.T) {
	env := newTestEnv(t)
	// token whose subject never existed in this store
	token, err := auth.CreateToken(&domain.User{ID: "no-such-user", Email: "x@example.com"})
	require.NoError(t, err)

	rec := env.do(http.MethodGet, "/api/cart", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
