package marketapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/micromarket/backend/internal/auth"
	"github.com/micromarket/backend/internal/domain"
	"github.com/micromarket/backend/internal/store"
	"github.com/micromarket/backend/internal/webserver"
)

type registerPayload struct {
	Email    string          `json:"email" validate:"required,email"`
	Name     string          `json:"name" validate:"required"`
	Password string          `json:"password" validate:"required"`
	UserType domain.UserType `json:"user_type" validate:"required"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/auth/register", registerUser)
	webserver.PubPOST("/auth/login", loginUser)
}

func registerUser(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return err
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}
	if !payload.UserType.Valid() {
		return fail(c, http.StatusBadRequest, "INVALID_USER_TYPE", "user_type must be 'vendor' or 'supplier'", nil)
	}

	ctx := c.Request().Context()
	s := GetStore(c)

	if _, err := s.UserByEmail(ctx, payload.Email); err == nil {
		return fail(c, http.StatusBadRequest, "EMAIL_TAKEN", "Email already registered", nil)
	} else if !errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query users", nil)
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", nil)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        payload.Email,
		Name:         payload.Name,
		UserType:     payload.UserType,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fail(c, http.StatusBadRequest, "EMAIL_TAKEN", "Email already registered", nil)
		}
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to create user", nil)
	}

	token, err := auth.CreateToken(user)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", nil)
	}

	zap.L().Info("user registered",
		zap.String("email", user.Email), zap.String("user_type", string(user.UserType)))
	return ok(c, tokenResponse{AccessToken: token, TokenType: "bearer", User: user})
}

func loginUser(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return err
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := GetStore(c).UserByEmail(ctx, payload.Email)
	if err != nil || !auth.CheckPassword(payload.Password, user.PasswordHash) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
	}

	token, err := auth.CreateToken(user)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", nil)
	}
	return ok(c, tokenResponse{AccessToken: token, TokenType: "bearer", User: user})
}
