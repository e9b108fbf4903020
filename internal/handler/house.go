package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/home-inventory/internal/queue"
	"github.com/iliyamo/home-inventory/internal/schema"
)

// CreateHouse handles POST /houses/.
func (h *InventoryHandler) CreateHouse(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	in, err := schema.DecodeHouseCreate(body)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}

	house, err := sess.Houses.Create(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	out := schema.NewHouseRead(house)
	if err := commit(sess, houseEntity, queue.ActionCreated, house.ID, out); err != nil {
		return h.fail(c, houseEntity, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListHouses handles GET /houses/.
func (h *InventoryHandler) ListHouses(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}

	houses, err := sess.Houses.List(c.Request().Context(), page)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewHouseReads(houses))
}

// GetHouse handles GET /houses/:id.
func (h *InventoryHandler) GetHouse(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}

	house, err := sess.Houses.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewHouseRead(house))
}

// UpdateHouse handles PUT /houses/:id.  Only fields present in the body
// are changed.
func (h *InventoryHandler) UpdateHouse(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	body, err := readBody(c)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	in, err := schema.DecodeHouseUpdate(body)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}

	house, err := sess.Houses.Update(c.Request().Context(), id, in)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	out := schema.NewHouseRead(house)
	if err := commit(sess, houseEntity, queue.ActionUpdated, id, out); err != nil {
		return h.fail(c, houseEntity, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteHouse handles DELETE /houses/:id.  Houses that still have rooms
// are refused with 409.
func (h *InventoryHandler) DeleteHouse(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}

	if err := sess.Houses.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, houseEntity, err)
	}
	if err := commit(sess, houseEntity, queue.ActionDeleted, id, nil); err != nil {
		return h.fail(c, houseEntity, err)
	}
	return deleted(c, houseEntity)
}

// ListHouseRooms handles GET /houses/:id/rooms.
func (h *InventoryHandler) ListHouseRooms(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	page, err := parsePage(c)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}

	ctx := c.Request().Context()
	if _, err := sess.Houses.GetByID(ctx, id); err != nil {
		return h.fail(c, houseEntity, err)
	}
	rooms, err := sess.Rooms.ListByHouse(ctx, id, page)
	if err != nil {
		return h.fail(c, houseEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewRoomReads(rooms))
}
