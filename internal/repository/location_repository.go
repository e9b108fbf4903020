package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/home-inventory/internal/database"
	"github.com/iliyamo/home-inventory/internal/model"
	"github.com/iliyamo/home-inventory/internal/schema"
)

// ErrLocationNotFound is returned when a location lookup fails.
var ErrLocationNotFound = errors.New("location not found")

const locationColumns = `id, name, room_id`

// LocationRepo reads and writes the locations table.
type LocationRepo struct {
	db DBTX
}

// NewLocationRepo constructs a LocationRepo over db.
func NewLocationRepo(db DBTX) *LocationRepo {
	return &LocationRepo{db: db}
}

func scanLocation(s rowScanner) (*model.Location, error) {
	var loc model.Location
	if err := s.Scan(&loc.ID, &loc.Name, &loc.RoomID); err != nil {
		return nil, err
	}
	return &loc, nil
}

// Create inserts a location.  ErrParentNotFound is returned when room_id does
// not reference an existing room.
func (r *LocationRepo) Create(ctx context.Context, in schema.LocationCreate) (*model.Location, error) {
	const q = `INSERT INTO locations (name, room_id) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, in.Name, in.RoomID)
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

// List returns a page of locations ordered by id.
func (r *LocationRepo) List(ctx context.Context, p Page) ([]*model.Location, error) {
	p = p.normalized()
	const q = `SELECT ` + locationColumns + ` FROM locations ORDER BY id LIMIT ? OFFSET ?`
	return r.query(ctx, q, p.Limit, p.Skip)
}

// ListByRoom returns a page of the locations inside one room.
func (r *LocationRepo) ListByRoom(ctx context.Context, roomID int64, p Page) ([]*model.Location, error) {
	p = p.normalized()
	const q = `SELECT ` + locationColumns + ` FROM locations WHERE room_id = ? ORDER BY id LIMIT ? OFFSET ?`
	return r.query(ctx, q, roomID, p.Limit, p.Skip)
}

// GetByID returns ErrLocationNotFound when no row matches.
func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*model.Location, error) {
	const q = `SELECT ` + locationColumns + ` FROM locations WHERE id = ?`
	loc, err := scanLocation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return loc, nil
}

// Update applies the set fields of in to the stored location.
func (r *LocationRepo) Update(ctx context.Context, id int64, in schema.LocationUpdate) (*model.Location, error) {
	loc, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(loc)

	const q = `UPDATE locations SET name = ?, room_id = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, loc.Name, loc.RoomID, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a location.  ErrConflict is returned while it still has
// containers.
func (r *LocationRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	busy, err := exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM containers WHERE location_id = ?)`, id)
	if err != nil {
		return err
	}
	if busy {
		return ErrConflict
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *LocationRepo) query(ctx context.Context, q string, args ...any) ([]*model.Location, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Location, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
