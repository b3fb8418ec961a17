package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/shop-api/internal/config"
	"github.com/phrazzld/shop-api/internal/store"
)

// ErrClosed is returned by DB after Close.
var ErrClosed = fmt.Errorf("%w: relational store closed", store.ErrNotInitialized)

const (
	driverName          = "pgx"
	maintenanceDatabase = "postgres"
	pingTimeout         = 5 * time.Second
)

// Adapter owns the relational connection pool. It is created by the
// composition root, initialized once at startup and closed on shutdown.
type Adapter struct {
	cfg    config.DatabaseConfig
	logger *slog.Logger

	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// NewAdapter creates an uninitialized relational adapter.
func NewAdapter(cfg config.DatabaseConfig, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "postgres_adapter")),
	}
}

// Initialize creates the target database when configured to, opens and
// pings the pool, and applies pending migrations. It is idempotent; any
// error means the process should not serve traffic.
func (a *Adapter) Initialize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.db != nil {
		return nil
	}

	db, err := a.open(ctx)
	if err != nil {
		return err
	}

	if err := Migrate(ctx, db, MigrateUp, a.logger); err != nil {
		_ = db.Close()
		return err
	}

	a.db = db
	a.logger.Info("relational store initialized",
		slog.Int("max_open_conns", a.cfg.MaxOpenConns))
	return nil
}

// DB returns the live pool. It never hands out a closed handle: before
// Initialize it returns store.ErrNotInitialized and after Close ErrClosed.
func (a *Adapter) DB() (*sql.DB, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return nil, ErrClosed
	}
	if a.db == nil {
		return nil, store.ErrNotInitialized
	}
	return a.db, nil
}

// Ping checks connectivity for health reporting.
func (a *Adapter) Ping(ctx context.Context) error {
	db, err := a.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Close releases the pool. Subsequent DB calls fail with ErrClosed.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	a.logger.Info("relational store closed")
	return err
}

// Migrate runs a single migration command on a dedicated connection that is
// closed before returning. It does not require Initialize, so commands such
// as down or status do not first apply pending migrations.
func (a *Adapter) Migrate(ctx context.Context, command string) error {
	if !IsMigrateCommand(command) {
		return fmt.Errorf("unknown migration command %q", command)
	}
	log := a.logger.With(slog.String("correlation_id", uuid.New().String()))
	start := time.Now()

	db, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Warn("failed to close migration connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := Migrate(ctx, db, command, log); err != nil {
		return err
	}
	log.Info("migration command finished",
		slog.String("command", command),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// open creates the database when configured to, then opens and pings a
// pool sized from the config.
func (a *Adapter) open(ctx context.Context) (*sql.DB, error) {
	if a.cfg.CreateIfMissing {
		if err := ensureDatabase(ctx, a.cfg.URL, a.logger); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driverName, a.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(a.cfg.MaxOpenConns)
	db.SetMaxIdleConns(a.cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(a.cfg.ConnMaxLifetimeMinutes) * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// ensureDatabase connects to the server's maintenance database and creates
// the database named in rawURL if it does not exist yet.
func ensureDatabase(ctx context.Context, rawURL string, logger *slog.Logger) error {
	maintURL, dbName, err := maintenanceURL(rawURL)
	if err != nil {
		return err
	}
	if dbName == maintenanceDatabase {
		return nil
	}

	admin, err := sql.Open(driverName, maintURL)
	if err != nil {
		return fmt.Errorf("failed to open maintenance connection: %w", err)
	}
	defer func() {
		if cerr := admin.Close(); cerr != nil {
			logger.Warn("failed to close maintenance connection", slog.String("error", cerr.Error()))
		}
	}()

	var exists bool
	err = admin.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for database %q: %w", dbName, err)
	}
	if exists {
		logger.Debug("database already exists", slog.String("database", dbName))
		return nil
	}

	// CREATE DATABASE does not accept bind parameters.
	_, err = admin.ExecContext(ctx, "CREATE DATABASE "+pgx.Identifier{dbName}.Sanitize())
	if err != nil && !hasCode(err, duplicateDatabaseCode) {
		return fmt.Errorf("failed to create database %q: %w", dbName, err)
	}

	logger.Info("database created", slog.String("database", dbName))
	return nil
}

// maintenanceURL returns rawURL pointed at the maintenance database, plus
// the target database name.
func maintenanceURL(rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid database url: %w", err)
	}
	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", errors.New("database url does not name a database")
	}
	maint := *u
	maint.Path = "/" + maintenanceDatabase
	maint.RawPath = ""
	return maint.String(), dbName, nil
}
