package marketapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/micromarket/backend/config"
	"github.com/micromarket/backend/internal/app"
	"github.com/micromarket/backend/internal/store"
	"github.com/micromarket/backend/internal/webserver"
)

// testEnv serves the full middleware and handler stack over the in-memory
// store, so tests exercise the same path production requests take.
type testEnv struct {
	t       *testing.T
	handler http.Handler
	mem     *store.Memory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.DefaultAppConfig
	cfg.Database.Type = "memory"

	application := app.NewApplication(&cfg)
	require.NoError(t, application.Init(context.Background()))

	RegisterRoutes()
	server := webserver.Init(application)

	return &testEnv{
		t:       t,
		handler: server.Handler(),
		mem:     application.Store().(*store.Memory),
	}
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// register creates an account through the API and returns its token
// response.
func (e *testEnv) register(email, userType string) tokenResponse {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":     email,
		"name":      "Test " + userType,
		"password":  "pass1234",
		"user_type": userType,
	})
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[tokenResponse](e.t, rec)
}

// createStall registers a supplier and creates its stall, returning the
// token and the stall id.
func (e *testEnv) createStall(email string) (string, string) {
	e.t.Helper()
	tok := e.register(email, "supplier")
	rec := e.do(http.MethodPost, "/api/suppliers", tok.AccessToken, map[string]string{
		"stall_name":    "Stall of " + email,
		"description":   "wholesale produce",
		"image_url":     "https://example.com/stall.jpg",
		"contact_phone": "+1-555-0000",
		"location":      "Central Market District",
	})
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())
	var stall struct {
		ID string `json:"id"`
	}
	require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), &stall))
	return tok.AccessToken, stall.ID
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, emailSeq())
}

var seq int

func emailSeq() int {
	seq++
	return seq
}
