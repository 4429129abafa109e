package webserver

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/micromarket/backend/internal/app"
	"github.com/micromarket/backend/internal/auth"
)

// APIPrefix is the common path prefix for every route.
const APIPrefix = "/api"

// Context keys set by the server middleware.
const (
	AppContextKey = "micromarket_appctx"
	UserKey       = "micromarket_user"
)

type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
}

var (
	pubRoutes []route
	apiRoutes []route
)

// PubGET registers an unauthenticated GET route under the API prefix.
func PubGET(path string, h echo.HandlerFunc) { pubRoutes = append(pubRoutes, route{http.MethodGet, path, h}) }

// PubPOST registers an unauthenticated POST route under the API prefix.
func PubPOST(path string, h echo.HandlerFunc) {
	pubRoutes = append(pubRoutes, route{http.MethodPost, path, h})
}

// ApiGET registers a bearer-token protected GET route.
func ApiGET(path string, h echo.HandlerFunc) { apiRoutes = append(apiRoutes, route{http.MethodGet, path, h}) }

// ApiPOST registers a bearer-token protected POST route.
func ApiPOST(path string, h echo.HandlerFunc) {
	apiRoutes = append(apiRoutes, route{http.MethodPost, path, h})
}

// ApiPUT registers a bearer-token protected PUT route.
func ApiPUT(path string, h echo.HandlerFunc) { apiRoutes = append(apiRoutes, route{http.MethodPut, path, h}) }

// ApiDELETE registers a bearer-token protected DELETE route.
func ApiDELETE(path string, h echo.HandlerFunc) {
	apiRoutes = append(apiRoutes, route{http.MethodDelete, path, h})
}

// WebServer wraps the echo engine plus the application context it serves.
type WebServer struct {
	root   *echo.Echo
	appCtx app.AppContext
}

// Init builds the echo engine, mounts the registered route tables, and wires
// the JWT and identity middleware. Routes must be registered (see
// marketapi.RegisterRoutes) before calling Init.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = NewJSONSerializer()
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestLogger())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			return next(c)
		}
	})

	s := &WebServer{root: e, appCtx: appCtx}

	public := e.Group(APIPrefix)
	for _, r := range pubRoutes {
		public.Add(r.method, r.path, r.handler)
	}

	protected := e.Group(APIPrefix, echojwt.WithConfig(echojwt.Config{
		SigningKey:    auth.SigningKey(),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return new(auth.Claims) },
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		},
	}), s.resolveIdentity)
	for _, r := range apiRoutes {
		protected.Add(r.method, r.path, r.handler)
	}

	return s
}

// Handler exposes the underlying engine, mainly for httptest.
func (s *WebServer) Handler() http.Handler {
	return s.root
}

// Start listens on addr until the server is shut down.
func (s *WebServer) Start(addr string) error {
	zap.S().Infof("web server listening on %s", addr)
	err := s.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}
