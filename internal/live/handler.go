package live

import (
	ws "github.com/coder/websocket"
	"github.com/labstack/echo/v4"
)

// Handler upgrades GET /ws to a WebSocket that receives every committed
// change event as a JSON text message.
func Handler(hub *Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := ws.Accept(c.Response(), c.Request(), &ws.AcceptOptions{
			InsecureSkipVerify: true, // any origin, like the CORS policy
		})
		if err != nil {
			hub.logger.Warn("live: accept failed", "error", err)
			return nil
		}
		defer conn.CloseNow()

		NewClient(hub, conn).Run(c.Request().Context())
		return nil
	}
}
