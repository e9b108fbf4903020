package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/home-inventory/internal/database"
	"github.com/iliyamo/home-inventory/internal/model"
	"github.com/iliyamo/home-inventory/internal/schema"
)

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

const roomColumns = `id, name, house_id`

// RoomRepo reads and writes the rooms table.
type RoomRepo struct {
	db DBTX
}

// NewRoomRepo constructs a RoomRepo over db.
func NewRoomRepo(db DBTX) *RoomRepo {
	return &RoomRepo{db: db}
}

func scanRoom(s rowScanner) (*model.Room, error) {
	var rm model.Room
	if err := s.Scan(&rm.ID, &rm.Name, &rm.HouseID); err != nil {
		return nil, err
	}
	return &rm, nil
}

// Create inserts a room.  ErrParentNotFound is returned when house_id does
// not reference an existing house.
func (r *RoomRepo) Create(ctx context.Context, in schema.RoomCreate) (*model.Room, error) {
	const q = `INSERT INTO rooms (name, house_id) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, in.Name, in.HouseID)
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

// List returns a page of rooms ordered by id.
func (r *RoomRepo) List(ctx context.Context, p Page) ([]*model.Room, error) {
	p = p.normalized()
	const q = `SELECT ` + roomColumns + ` FROM rooms ORDER BY id LIMIT ? OFFSET ?`
	return r.query(ctx, q, p.Limit, p.Skip)
}

// ListByHouse returns a page of the rooms inside one house.
func (r *RoomRepo) ListByHouse(ctx context.Context, houseID int64, p Page) ([]*model.Room, error) {
	p = p.normalized()
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE house_id = ? ORDER BY id LIMIT ? OFFSET ?`
	return r.query(ctx, q, houseID, p.Limit, p.Skip)
}

// GetByID returns ErrRoomNotFound when no row matches.
func (r *RoomRepo) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	rm, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return rm, nil
}

// Update applies the set fields of in to the stored room.
func (r *RoomRepo) Update(ctx context.Context, id int64, in schema.RoomUpdate) (*model.Room, error) {
	rm, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(rm)

	const q = `UPDATE rooms SET name = ?, house_id = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, rm.Name, rm.HouseID, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a room.  ErrConflict is returned while it still has
// locations.
func (r *RoomRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	busy, err := exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM locations WHERE room_id = ?)`, id)
	if err != nil {
		return err
	}
	if busy {
		return ErrConflict
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *RoomRepo) query(ctx context.Context, q string, args ...any) ([]*model.Room, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
