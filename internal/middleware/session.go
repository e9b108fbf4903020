// Package middleware holds the echo middleware shared by the inventory
// routes: the per-request database session, bearer auth, the Redis
// response cache and the Redis rate limiter.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/home-inventory/internal/queue"
	"github.com/iliyamo/home-inventory/internal/repository"
)

// SessionKey is the echo context key holding the request's
// *repository.Session.
const SessionKey = "session"

// Session opens one database session per request and releases it when
// the handler returns, whatever the outcome.  Change events recorded on
// a committed session are then handed to the publisher; a publish
// failure is logged and never fails the request.
func Session(store *repository.Store, pub queue.Publisher, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			sess, err := store.Begin(ctx)
			if err != nil {
				logger.Error("open session", "error", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal server error"})
			}
			defer sess.Release()
			c.Set(SessionKey, sess)

			err = next(c)
			sess.Release()

			for _, ev := range sess.Committed() {
				if perr := pub.Publish(ctx, ev); perr != nil {
					logger.Warn("publish change event", "event", ev.ID, "entity", ev.Entity, "error", perr)
				}
			}
			return err
		}
	}
}

// SessionFrom returns the session opened by Session, or nil outside it.
func SessionFrom(c echo.Context) *repository.Session {
	sess, _ := c.Get(SessionKey).(*repository.Session)
	return sess
}
