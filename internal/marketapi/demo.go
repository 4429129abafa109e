package marketapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/micromarket/backend/internal/app"
	"github.com/micromarket/backend/internal/webserver"
)

func registerDemoRoutes() {
	webserver.PubPOST("/demo/init", initDemoData)
}

func initDemoData(c echo.Context) error {
	created, err := app.SeedDemoData(c.Request().Context(), GetStore(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to seed demo data", nil)
	}
	if !created {
		return message(c, "Demo data already exists")
	}
	return message(c, "Demo data initialized successfully")
}
