package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/home-inventory/internal/database"
	"github.com/iliyamo/home-inventory/internal/model"
	"github.com/iliyamo/home-inventory/internal/schema"
)

// ErrItemNotFound is returned when an item lookup fails.
var ErrItemNotFound = errors.New("item not found")

const itemColumns = `id, name, category, expiry_date, container_id`

// ItemRepo reads and writes the items table.  Items are the leaves of the
// hierarchy and may exist without a container, so deletes never conflict.
type ItemRepo struct {
	db DBTX
}

// NewItemRepo constructs an ItemRepo over db.
func NewItemRepo(db DBTX) *ItemRepo {
	return &ItemRepo{db: db}
}

func scanItem(s rowScanner) (*model.Item, error) {
	var it model.Item
	if err := s.Scan(&it.ID, &it.Name, &it.Category, &it.ExpiryDate, &it.ContainerID); err != nil {
		return nil, err
	}
	return &it, nil
}

// Create inserts an item.  A non-nil ContainerID must reference an
// existing container or ErrParentNotFound is returned.
func (r *ItemRepo) Create(ctx context.Context, in schema.ItemCreate) (*model.Item, error) {
	const q = `INSERT INTO items (name, category, expiry_date, container_id) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, in.Name, in.Category, in.ExpiryDate, in.ContainerID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// List returns a page of items ordered by id.
func (r *ItemRepo) List(ctx context.Context, p Page) ([]*model.Item, error) {
	p = p.normalized()
	const q = `SELECT ` + itemColumns + ` FROM items ORDER BY id LIMIT ? OFFSET ?`
	return r.query(ctx, q, p.Limit, p.Skip)
}

// ListByContainer returns a page of the items stored in one container.
func (r *ItemRepo) ListByContainer(ctx context.Context, containerID int64, p Page) ([]*model.Item, error) {
	p = p.normalized()
	const q = `SELECT ` + itemColumns + ` FROM items WHERE container_id = ? ORDER BY id LIMIT ? OFFSET ?`
	return r.query(ctx, q, containerID, p.Limit, p.Skip)
}

// ListUnassigned returns a page of the items that have no container.
func (r *ItemRepo) ListUnassigned(ctx context.Context, p Page) ([]*model.Item, error) {
	p = p.normalized()
	const q = `SELECT ` + itemColumns + ` FROM items WHERE container_id IS NULL ORDER BY id LIMIT ? OFFSET ?`
	return r.query(ctx, q, p.Limit, p.Skip)
}

// GetByID returns ErrItemNotFound when no row matches.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	it, err := scanItem(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return it, nil
}

// Update applies the set fields of in.  Setting ExpiryDate or
// ContainerID to null clears the column.
func (r *ItemRepo) Update(ctx context.Context, id int64, in schema.ItemUpdate) (*model.Item, error) {
	it, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(it)

	const q = `UPDATE items SET name = ?, category = ?, expiry_date = ?, container_id = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, it.Name, it.Category, it.ExpiryDate, it.ContainerID, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an item.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemRepo) query(ctx context.Context, q string, args ...any) ([]*model.Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
