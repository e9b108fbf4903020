package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/home-inventory/internal/database"
	"github.com/iliyamo/home-inventory/internal/model"
	"github.com/iliyamo/home-inventory/internal/schema"
)

// ErrContainerNotFound is returned when a container lookup fails.
var ErrContainerNotFound = errors.New("container not found")

const containerColumns = `id, name, location_id`

// ContainerRepo reads and writes the containers table.
type ContainerRepo struct {
	db DBTX
}

// NewContainerRepo constructs a ContainerRepo over db.
func NewContainerRepo(db DBTX) *ContainerRepo {
	return &ContainerRepo{db: db}
}

func scanContainer(s rowScanner) (*model.Container, error) {
	var c model.Container
	if err := s.Scan(&c.ID, &c.Name, &c.LocationID); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a container.  ErrParentNotFound is returned when location_id does
// not reference an existing location.
func (r *ContainerRepo) Create(ctx context.Context, in schema.ContainerCreate) (*model.Container, error) {
	const q = `INSERT INTO containers (name, location_id) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, in.Name, in.LocationID)
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

// List returns a page of containers ordered by id.
func (r *ContainerRepo) List(ctx context.Context, p Page) ([]*model.Container, error) {
	p = p.normalized()
	const q = `SELECT ` + containerColumns + ` FROM containers ORDER BY id LIMIT ? OFFSET ?`
	return r.query(ctx, q, p.Limit, p.Skip)
}

// ListByLocation returns a page of the containers inside one location.
func (r *ContainerRepo) ListByLocation(ctx context.Context, locationID int64, p Page) ([]*model.Container, error) {
	p = p.normalized()
	const q = `SELECT ` + containerColumns + ` FROM containers WHERE location_id = ? ORDER BY id LIMIT ? OFFSET ?`
	return r.query(ctx, q, locationID, p.Limit, p.Skip)
}

// GetByID returns ErrContainerNotFound when no row matches.
func (r *ContainerRepo) GetByID(ctx context.Context, id int64) (*model.Container, error) {
	const q = `SELECT ` + containerColumns + ` FROM containers WHERE id = ?`
	c, err := scanContainer(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContainerNotFound
		}
		return nil, err
	}
	return c, nil
}

// Update applies the set fields of in to the stored container.
func (r *ContainerRepo) Update(ctx context.Context, id int64, in schema.ContainerUpdate) (*model.Container, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(c)

	const q = `UPDATE containers SET name = ?, location_id = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, c.Name, c.LocationID, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a container.  ErrConflict is returned while it still has
// items.
func (r *ContainerRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	busy, err := exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM items WHERE container_id = ?)`, id)
	if err != nil {
		return err
	}
	if busy {
		return ErrConflict
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM containers WHERE id = ?`, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *ContainerRepo) query(ctx context.Context, q string, args ...any) ([]*model.Container, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Container, 0)
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
