package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/home-inventory/internal/queue"
	"github.com/iliyamo/home-inventory/internal/schema"
)

// CreateContainer handles POST /containers/.  The parent named in the body must exist.
func (h *InventoryHandler) CreateContainer(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	in, err := schema.DecodeContainerCreate(body)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}

	rec, err := sess.Containers.Create(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	out := schema.NewContainerRead(rec)
	if err := commit(sess, containerEntity, queue.ActionCreated, rec.ID, out); err != nil {
		return h.fail(c, containerEntity, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListContainers handles GET /containers/.
func (h *InventoryHandler) ListContainers(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}

	recs, err := sess.Containers.List(c.Request().Context(), page)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewContainerReads(recs))
}

// GetContainer handles GET /containers/:id.
func (h *InventoryHandler) GetContainer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}

	rec, err := sess.Containers.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewContainerRead(rec))
}

// UpdateContainer handles PUT /containers/:id.
func (h *InventoryHandler) UpdateContainer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	body, err := readBody(c)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	in, err := schema.DecodeContainerUpdate(body)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}

	rec, err := sess.Containers.Update(c.Request().Context(), id, in)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	out := schema.NewContainerRead(rec)
	if err := commit(sess, containerEntity, queue.ActionUpdated, id, out); err != nil {
		return h.fail(c, containerEntity, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteContainer handles DELETE /containers/:id.  A container is only
// removed once it is empty.
func (h *InventoryHandler) DeleteContainer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}

	if err := sess.Containers.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, containerEntity, err)
	}
	if err := commit(sess, containerEntity, queue.ActionDeleted, id, nil); err != nil {
		return h.fail(c, containerEntity, err)
	}
	return deleted(c, containerEntity)
}

// ListContainerItems handles GET /containers/:id/items.
func (h *InventoryHandler) ListContainerItems(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	page, err := parsePage(c)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}

	ctx := c.Request().Context()
	if _, err := sess.Containers.GetByID(ctx, id); err != nil {
		return h.fail(c, containerEntity, err)
	}
	recs, err := sess.Items.ListByContainer(ctx, id, page)
	if err != nil {
		return h.fail(c, containerEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewItemReads(recs))
}
