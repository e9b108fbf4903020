// Package handler implements the HTTP endpoints of the inventory API.
package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/home-inventory/internal/middleware"
	"github.com/iliyamo/home-inventory/internal/queue"
	"github.com/iliyamo/home-inventory/internal/repository"
	"github.com/iliyamo/home-inventory/internal/schema"
)

// InventoryHandler serves the CRUD routes of every level of the
// hierarchy.  Repositories are reached through the request's session.
type InventoryHandler struct {
	logger *slog.Logger
}

// NewInventoryHandler constructs a handler that logs unexpected failures
// to logger.
func NewInventoryHandler(logger *slog.Logger) *InventoryHandler {
	if logger == nil {
		panic("nil logger passed to NewInventoryHandler")
	}
	return &InventoryHandler{logger: logger}
}

// entity describes one level of the hierarchy for error responses and
// change events.
type entity struct {
	name     string // display name, e.g. "House"
	key      string // event entity, e.g. "house"
	notFound error  // repository sentinel for a missing row
	parent   string // display name of the parent level, "" for houses
	parentID string // body field naming the parent
	children string // what blocks a delete, "" for items
}

var (
	houseEntity = entity{
		name: "House", key: "house", notFound: repository.ErrHouseNotFound,
		children: "rooms",
	}
	roomEntity = entity{
		name: "Room", key: "room", notFound: repository.ErrRoomNotFound,
		parent: "House", parentID: "house_id", children: "locations",
	}
	locationEntity = entity{
		name: "Location", key: "location", notFound: repository.ErrLocationNotFound,
		parent: "Room", parentID: "room_id", children: "containers",
	}
	containerEntity = entity{
		name: "Container", key: "container", notFound: repository.ErrContainerNotFound,
		parent: "Location", parentID: "location_id", children: "items",
	}
	itemEntity = entity{
		name: "Item", key: "item", notFound: repository.ErrItemNotFound,
		parent: "Container", parentID: "container_id",
	}
)

// session returns the unit of work opened for this request.
func session(c echo.Context) (*repository.Session, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, errors.New("no session bound to request")
	}
	return sess, nil
}

// parseID reads the integer path parameter name.
func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		errs := &schema.ValidationError{}
		errs.Add(name, "value is not a valid integer")
		return 0, errs
	}
	return id, nil
}

// parsePage reads the skip and limit query parameters.  Both are
// optional; every problem is reported at once.
func parsePage(c echo.Context) (repository.Page, error) {
	page := repository.Page{Skip: 0, Limit: repository.DefaultLimit}
	errs := &schema.ValidationError{}

	if raw := c.QueryParam("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs.Add("skip", "value is not a valid integer")
		case n < 0:
			errs.Add("skip", "ensure this value is greater than or equal to 0")
		default:
			page.Skip = n
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs.Add("limit", "value is not a valid integer")
		case n < 1:
			errs.Add("limit", "ensure this value is greater than or equal to 1")
		default:
			page.Limit = n
		}
	}
	if len(errs.Fields) > 0 {
		return page, errs
	}
	return page, nil
}

// readBody returns the raw request body.
func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// commit finishes the request's session and records a change event to
// be published once the session is released.
func commit(sess *repository.Session, ent entity, action string, id int64, data any) error {
	sess.Record(queue.NewEvent(ent.key, action, id, data))
	return sess.Commit()
}

// fail maps err to the response for ent.
func (h *InventoryHandler) fail(c echo.Context, ent entity, err error) error {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": verr.Fields})
	case errors.Is(err, ent.notFound):
		return c.JSON(http.StatusNotFound, echo.Map{"detail": ent.name + " not found"})
	case errors.Is(err, repository.ErrParentNotFound) && ent.parentID != "":
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": []schema.FieldError{
			{Field: ent.parentID, Message: ent.parent + " does not exist"},
		}})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"detail": fmt.Sprintf("%s has %s and cannot be deleted", ent.name, ent.children),
		})
	}
	h.logger.Error("request failed",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal server error"})
}

// deleted is the body of a successful DELETE.
func deleted(c echo.Context, ent entity) error {
	return c.JSON(http.StatusOK, echo.Map{"message": ent.name + " deleted successfully"})
}
