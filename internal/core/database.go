// AngelaMos | 2026
// database.go

package core

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/dealership/internal/config"
)

const storePingTimeout = 5 * time.Second

// Database owns the PostgreSQL pool. Repositories receive DB as a DBTX.
type Database struct {
	DB *sqlx.DB
}

// DBTX is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx.
type DBTX interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

func NewDatabase(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	pool, err := sqlx.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	pool.SetConnMaxLifetime(jitteredDuration(cfg.ConnMaxLifetime))

	db := &Database{DB: pool}
	if err := db.Ping(ctx); err != nil {
		//nolint:errcheck // already failing
		_ = pool.Close()
		return nil, err
	}
	return db, nil
}

func (d *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, storePingTimeout)
	defer cancel()

	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func (d *Database) Stats() sql.DBStats {
	return d.DB.Stats()
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// jitteredDuration stretches base by up to a seventh so replicas do not
// recycle their connections in lockstep.
func jitteredDuration(base time.Duration) time.Duration {
	spread := int64(base / 7)
	if spread <= 0 {
		return base
	}
	//nolint:gosec // G404: jitter only
	return base + time.Duration(rand.Int64N(spread))
}

// ExecOne runs a statement that must touch at least one row. Zero rows
// yields ErrNotFound.
func ExecOne(ctx context.Context, db DBTX, query string, args ...any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
