package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/home-inventory/internal/config"
)

// Supported values of DB_DRIVER.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Open connects to the configured store, verifies the connection and
// applies pending migrations.
func Open(cfg config.Config) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.DBDriver {
	case DriverSQLite:
		db, err = openSQLite(cfg.DBPath)
	case DriverMySQL:
		db, err = openMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}

	if _, err := Migrate(context.Background(), db, cfg.DBDriver); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

func openSQLite(path string) (*sql.DB, error) {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != ":memory:" && !strings.Contains(path, "mode=memory") {
		pragmas += "&_pragma=journal_mode(WAL)"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	db, err := sql.Open("sqlite", path+sep+pragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite has a single writer, and an in-memory database only lives as
	// long as its one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := ping(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func openMySQL(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATE -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := ping(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// ping checks the connection with a timeout.
func ping(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}
