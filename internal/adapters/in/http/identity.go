package http

import (
	"net/http"
	"strconv"
	"strings"

	"shop/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the trusted gateway in front of the service.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserName  = "X-User-Name"
	HeaderUserStaff = "X-User-Staff"
)

const actorKey = "actor"

// identity builds the kernel.Actor from the gateway headers and stores it in
// the echo context. A missing or malformed user id is rejected with 401.
func identity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Request().Header

		rawID := strings.TrimSpace(h.Get(HeaderUserID))
		if rawID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, HeaderUserID+" header is required")
		}
		userID, err := kernel.UUIDFromString(rawID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, HeaderUserID+" header is not a valid UUID")
		}

		staff := false
		if raw := strings.TrimSpace(h.Get(HeaderUserStaff)); raw != "" {
			if staff, err = strconv.ParseBool(raw); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, HeaderUserStaff+" header must be a boolean")
			}
		}

		actor, err := kernel.NewActor(userID, h.Get(HeaderUserName), staff)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}

		c.Set(actorKey, actor)
		return next(c)
	}
}

func actorFrom(c echo.Context) kernel.Actor {
	actor, _ := c.Get(actorKey).(kernel.Actor)
	return actor
}
