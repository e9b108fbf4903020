package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/home-inventory/internal/queue"
)

// DefaultLimit is the page size used when a caller does not ask for one.
const DefaultLimit = 100

// DBTX is the subset of *sql.DB and *sql.Tx the repositories need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Page selects a window of a list ordered by id.
type Page struct {
	Skip  int
	Limit int
}

// normalized fills in defaults for zero or out of range values.
func (p Page) normalized() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Store owns the connection pool and hands out sessions.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Begin opens a transaction and binds a fresh set of repositories to it.
func (s *Store) Begin(ctx context.Context) (*Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}
	return &Session{
		tx:         tx,
		Houses:     NewHouseRepo(tx),
		Rooms:      NewRoomRepo(tx),
		Locations:  NewLocationRepo(tx),
		Containers: NewContainerRepo(tx),
		Items:      NewItemRepo(tx),
	}, nil
}

// WithSession runs fn inside a session, committing when fn returns nil.
// The session is released in every case.
func (s *Store) WithSession(ctx context.Context, fn func(*Session) error) error {
	sess, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer sess.Release()

	if err := fn(sess); err != nil {
		return err
	}
	return sess.Commit()
}

// Session is one unit of work: a transaction, the repositories bound to
// it and the change events recorded while it was open.
type Session struct {
	tx   *sql.Tx
	done bool

	committed bool
	events    []queue.Event

	Houses     *HouseRepo
	Rooms      *RoomRepo
	Locations  *LocationRepo
	Containers *ContainerRepo
	Items      *ItemRepo
}

// Commit makes the session's writes durable.  A session can be
// committed once; later calls are no-ops.
func (s *Session) Commit() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	s.committed = true
	return nil
}

// Release rolls back an uncommitted session.  It is safe to call any
// number of times and after Commit.
func (s *Session) Release() {
	if s.done {
		return
	}
	s.done = true
	_ = s.tx.Rollback()
}

// Record queues a change event.  Events are only handed out by Committed
// once the session has been committed.
func (s *Session) Record(ev queue.Event) {
	s.events = append(s.events, ev)
}

// Committed returns the recorded events if the session committed, nil
// otherwise.
func (s *Session) Committed() []queue.Event {
	if !s.committed {
		return nil
	}
	return s.events
}

// exists runs a SELECT EXISTS query and reports its result.
func exists(ctx context.Context, db DBTX, query string, args ...any) (bool, error) {
	var ok bool
	if err := db.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
