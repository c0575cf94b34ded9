package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const (
	// DriverName is the database/sql name registered by pgx.
	DriverName = "pgx"

	DefaultMaxOpenConns   = 5
	DefaultConnectTimeout = 10 * time.Second
)

type Options struct {
	URL            string
	MaxOpenConns   int
	ConnectTimeout time.Duration
}

type Database struct {
	*sqlx.DB
	opts Options
}

func NewDatabase(opts Options) *Database {
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = DefaultMaxOpenConns
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}

	return &Database{
		opts: opts,
	}
}

// Connect opens the pool and pings the server once.
func (db *Database) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, db.opts.ConnectTimeout)
	defer cancel()

	var err error

	db.DB, err = sqlx.ConnectContext(ctx, DriverName, db.opts.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	db.DB.SetMaxOpenConns(db.opts.MaxOpenConns)
	db.DB.SetMaxIdleConns(db.opts.MaxOpenConns)

	return nil
}

func (db *Database) Close() error {
	if db.DB == nil {
		return nil
	}
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
