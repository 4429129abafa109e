package marketapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/micromarket/backend/internal/store"
	"github.com/micromarket/backend/internal/webserver"
)

func registerNotificationRoutes() {
	webserver.ApiGET("/notifications", listNotifications)
	webserver.ApiPUT("/notifications/:id/read", markNotificationRead)
}

func listNotifications(c echo.Context) error {
	user := webserver.CurrentUser(c)
	notifications, err := GetStore(c).ListNotifications(c.Request().Context(), user.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to query notifications", nil)
	}
	return ok(c, notifications)
}

func markNotificationRead(c echo.Context) error {
	user := webserver.CurrentUser(c)
	err := GetStore(c).MarkNotificationRead(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOTIFICATION_NOT_FOUND", "Notification not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update notification", nil)
	}
	return message(c, "Notification marked as read")
}
