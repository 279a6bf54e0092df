package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the claims injected by the Auth middleware. Presence
// of a user id proves the middleware ran; a handler reached without it is a
// routing mistake, answered with 401 rather than a panic.
func ctxIdentity(c echo.Context) (userID uuid.UUID, username string, err error) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ = c.Get("username").(string)
	return userID, username, nil
}
