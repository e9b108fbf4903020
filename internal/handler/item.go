package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/home-inventory/internal/queue"
	"github.com/iliyamo/home-inventory/internal/schema"
)

// CreateItem handles POST /items/.  container_id may be omitted or null,
// which leaves the item unassigned.
func (h *InventoryHandler) CreateItem(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	in, err := schema.DecodeItemCreate(body)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}

	rec, err := sess.Items.Create(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	out := schema.NewItemRead(rec)
	if err := commit(sess, itemEntity, queue.ActionCreated, rec.ID, out); err != nil {
		return h.fail(c, itemEntity, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListItems handles GET /items/.
func (h *InventoryHandler) ListItems(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}

	recs, err := sess.Items.List(c.Request().Context(), page)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewItemReads(recs))
}

// GetItem handles GET /items/:id.
func (h *InventoryHandler) GetItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}

	rec, err := sess.Items.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewItemRead(rec))
}

// UpdateItem handles PUT /items/:id.
func (h *InventoryHandler) UpdateItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	body, err := readBody(c)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	in, err := schema.DecodeItemUpdate(body)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}

	rec, err := sess.Items.Update(c.Request().Context(), id, in)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	out := schema.NewItemRead(rec)
	if err := commit(sess, itemEntity, queue.ActionUpdated, id, out); err != nil {
		return h.fail(c, itemEntity, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteItem handles DELETE /items/:id.
func (h *InventoryHandler) DeleteItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}

	if err := sess.Items.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, itemEntity, err)
	}
	if err := commit(sess, itemEntity, queue.ActionDeleted, id, nil); err != nil {
		return h.fail(c, itemEntity, err)
	}
	return deleted(c, itemEntity)
}

// ListUnassignedItems handles GET /items/unassigned.
func (h *InventoryHandler) ListUnassignedItems(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}

	recs, err := sess.Items.ListUnassigned(c.Request().Context(), page)
	if err != nil {
		return h.fail(c, itemEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewItemReads(recs))
}
