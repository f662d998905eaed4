package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/mapatag/internal/config"
	"github.com/dmitrijs2005/mapatag/internal/store/migrations"
	"github.com/go-redis/redis/v8"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations for dialect ("sqlite3" or
// "pgx") to db.
func RunMigrations(ctx context.Context, db *sql.DB, dialect string) error {
	dir := migrations.SQLiteDir
	if dialect == "pgx" || dialect == "postgres" {
		dir = migrations.PostgresDir
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}
	return nil
}

// OpenSQLite opens (creating if needed) the SQLite file at path and migrates
// it. SQLite allows one writer, so the pool is limited to one connection.
func OpenSQLite(ctx context.Context, path string) (*SQLBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, "sqlite3"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLiteBackend(db), nil
}

// OpenPostgres connects with the pgx driver and migrates the schema.
func OpenPostgres(ctx context.Context, dsn string) (*SQLBackend, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := RunMigrations(ctx, db, "pgx"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewPostgresBackend(db), nil
}

// OpenRedis connects to addr and verifies the connection.
func OpenRedis(ctx context.Context, opts *redis.Options, prefix string) (*RedisBackend, error) {
	c := redis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return NewRedisBackend(c, prefix), nil
}

// Open builds the Store selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	var (
		b   Backend
		err error
	)

	switch cfg.StoreDriver {
	case config.DriverSQLite, "":
		b, err = OpenSQLite(ctx, cfg.StoreDSN)
	case config.DriverPostgres:
		b, err = OpenPostgres(ctx, cfg.StoreDSN)
	case config.DriverRedis:
		b, err = OpenRedis(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.RedisKeyPrefix)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}
	return New(b), nil
}
