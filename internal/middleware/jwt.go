package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/home-inventory/internal/utils"
)

// SubjectKey is the echo context key holding the authenticated token
// subject.
const SubjectKey = "subject"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores the token's subject in the request context.  An empty secret
// disables the check so the API stays open by default.
func JWTAuth(secret string) echo.MiddlewareFunc {
	if secret == "" {
		return passthrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			sub, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "invalid token"})
			}
			c.Set(SubjectKey, sub)
			return next(c)
		}
	}
}
