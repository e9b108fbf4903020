package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/home-inventory/internal/database"
	"github.com/iliyamo/home-inventory/internal/model"
	"github.com/iliyamo/home-inventory/internal/schema"
)

// ErrHouseNotFound is returned when a house lookup fails.
var ErrHouseNotFound = errors.New("house not found")

const houseColumns = `id, name, address`

// HouseRepo reads and writes the houses table.
type HouseRepo struct {
	db DBTX
}

// NewHouseRepo constructs a HouseRepo over db.
func NewHouseRepo(db DBTX) *HouseRepo {
	return &HouseRepo{db: db}
}

func scanHouse(s rowScanner) (*model.House, error) {
	var h model.House
	if err := s.Scan(&h.ID, &h.Name, &h.Address); err != nil {
		return nil, err
	}
	return &h, nil
}

// Create inserts a house and returns it as stored.
func (r *HouseRepo) Create(ctx context.Context, in schema.HouseCreate) (*model.House, error) {
	const q = `INSERT INTO houses (name, address) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, in.Name, in.Address)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// List returns a page of houses ordered by id.
func (r *HouseRepo) List(ctx context.Context, p Page) ([]*model.House, error) {
	p = p.normalized()
	const q = `SELECT ` + houseColumns + ` FROM houses ORDER BY id LIMIT ? OFFSET ?`
	return r.query(ctx, q, p.Limit, p.Skip)
}

// GetByID returns ErrHouseNotFound when no row matches.
func (r *HouseRepo) GetByID(ctx context.Context, id int64) (*model.House, error) {
	const q = `SELECT ` + houseColumns + ` FROM houses WHERE id = ?`
	h, err := scanHouse(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}
	return h, nil
}

// Update applies the set fields of in to the stored house.
func (r *HouseRepo) Update(ctx context.Context, id int64, in schema.HouseUpdate) (*model.House, error) {
	h, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(h)

	const q = `UPDATE houses SET name = ?, address = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, h.Name, h.Address, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a house.  A house that still has rooms is not deleted
// and ErrConflict is returned.
func (r *HouseRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	busy, err := exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM rooms WHERE house_id = ?)`, id)
	if err != nil {
		return err
	}
	if busy {
		return ErrConflict
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM houses WHERE id = ?`, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *HouseRepo) query(ctx context.Context, q string, args ...any) ([]*model.House, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.House, 0)
	for rows.Next() {
		h, err := scanHouse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
