package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/home-inventory/internal/queue"
	"github.com/iliyamo/home-inventory/internal/schema"
)

// CreateRoom handles POST /rooms/.  The parent named in the body must exist.
func (h *InventoryHandler) CreateRoom(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	in, err := schema.DecodeRoomCreate(body)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}

	rec, err := sess.Rooms.Create(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	out := schema.NewRoomRead(rec)
	if err := commit(sess, roomEntity, queue.ActionCreated, rec.ID, out); err != nil {
		return h.fail(c, roomEntity, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListRooms handles GET /rooms/.
func (h *InventoryHandler) ListRooms(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}

	recs, err := sess.Rooms.List(c.Request().Context(), page)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewRoomReads(recs))
}

// GetRoom handles GET /rooms/:id.
func (h *InventoryHandler) GetRoom(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}

	rec, err := sess.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewRoomRead(rec))
}

// UpdateRoom handles PUT /rooms/:id.
func (h *InventoryHandler) UpdateRoom(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	body, err := readBody(c)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	in, err := schema.DecodeRoomUpdate(body)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}

	rec, err := sess.Rooms.Update(c.Request().Context(), id, in)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	out := schema.NewRoomRead(rec)
	if err := commit(sess, roomEntity, queue.ActionUpdated, id, out); err != nil {
		return h.fail(c, roomEntity, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteRoom handles DELETE /rooms/:id.  Rooms that still have
// locations are refused with 409.
func (h *InventoryHandler) DeleteRoom(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}

	if err := sess.Rooms.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, roomEntity, err)
	}
	if err := commit(sess, roomEntity, queue.ActionDeleted, id, nil); err != nil {
		return h.fail(c, roomEntity, err)
	}
	return deleted(c, roomEntity)
}

// ListRoomLocations handles GET /rooms/:id/locations.
func (h *InventoryHandler) ListRoomLocations(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	page, err := parsePage(c)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}

	ctx := c.Request().Context()
	if _, err := sess.Rooms.GetByID(ctx, id); err != nil {
		return h.fail(c, roomEntity, err)
	}
	recs, err := sess.Locations.ListByRoom(ctx, id, page)
	if err != nil {
		return h.fail(c, roomEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewLocationReads(recs))
}
