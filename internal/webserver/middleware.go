package webserver

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/micromarket/backend/internal/app"
	"github.com/micromarket/backend/internal/auth"
	"github.com/micromarket/backend/internal/domain"
)

// resolveIdentity turns the parsed JWT into a live user document. A token
// whose subject no longer exists is as good as no token.
func (s *WebServer) resolveIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}
		claims, ok := token.Claims.(*auth.Claims)
		if !ok || claims.UserID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}
		user, err := s.appCtx.Store().UserByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		}
		c.Set(UserKey, user)
		return next(c)
	}
}

// GetApp returns the application context injected by the server middleware.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(AppContextKey).(app.AppContext)
}

// CurrentUser returns the authenticated caller. Only valid on protected
// routes, after resolveIdentity has run.
func CurrentUser(c echo.Context) *domain.User {
	return c.Get(UserKey).(*domain.User)
}
