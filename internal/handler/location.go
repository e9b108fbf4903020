package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/home-inventory/internal/queue"
	"github.com/iliyamo/home-inventory/internal/schema"
)

// CreateLocation handles POST /locations/.  The parent named in the body must exist.
func (h *InventoryHandler) CreateLocation(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	in, err := schema.DecodeLocationCreate(body)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}

	rec, err := sess.Locations.Create(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	out := schema.NewLocationRead(rec)
	if err := commit(sess, locationEntity, queue.ActionCreated, rec.ID, out); err != nil {
		return h.fail(c, locationEntity, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListLocations handles GET /locations/.
func (h *InventoryHandler) ListLocations(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}

	recs, err := sess.Locations.List(c.Request().Context(), page)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewLocationReads(recs))
}

// GetLocation handles GET /locations/:id.
func (h *InventoryHandler) GetLocation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}

	rec, err := sess.Locations.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewLocationRead(rec))
}

// UpdateLocation handles PUT /locations/:id.
func (h *InventoryHandler) UpdateLocation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	body, err := readBody(c)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	in, err := schema.DecodeLocationUpdate(body)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}

	rec, err := sess.Locations.Update(c.Request().Context(), id, in)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	out := schema.NewLocationRead(rec)
	if err := commit(sess, locationEntity, queue.ActionUpdated, id, out); err != nil {
		return h.fail(c, locationEntity, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteLocation handles DELETE /locations/:id.
func (h *InventoryHandler) DeleteLocation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}

	if err := sess.Locations.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, locationEntity, err)
	}
	if err := commit(sess, locationEntity, queue.ActionDeleted, id, nil); err != nil {
		return h.fail(c, locationEntity, err)
	}
	return deleted(c, locationEntity)
}

// ListLocationContainers handles GET /locations/:id/containers.
func (h *InventoryHandler) ListLocationContainers(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	page, err := parsePage(c)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	sess, err := session(c)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}

	ctx := c.Request().Context()
	if _, err := sess.Locations.GetByID(ctx, id); err != nil {
		return h.fail(c, locationEntity, err)
	}
	recs, err := sess.Containers.ListByLocation(ctx, id, page)
	if err != nil {
		return h.fail(c, locationEntity, err)
	}
	return c.JSON(http.StatusOK, schema.NewContainerReads(recs))
}
