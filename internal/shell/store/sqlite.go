package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bizdir/edgegate/internal/core/lead"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to open database", ErrConnectionFailed)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to ping database", ErrConnectionFailed)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// Lead Operations
// =============================================================================

// CreateLead records an accepted lead. A missing ID or timestamp is filled
// in here so callers only describe the lead itself.
func (s *SQLiteStore) CreateLead(ctx context.Context, l *lead.Lead) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO leads (id, email, phone, quantity, unit, service_name,
			product_id, vendor_id, source_page, trigger_type, created_at)
		VALUES (:id, :email, :phone, :quantity, :unit, :service_name,
			:product_id, :vendor_id, :source_page, :trigger_type, :created_at)`

	if _, err := s.db.NamedExecContext(ctx, query, l); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return NewStoreError("CreateLead", "lead", l.ID, "duplicate id", ErrDuplicateID)
		}
		return NewStoreError("CreateLead", "lead", l.ID, err.Error(), err)
	}

	return nil
}

// GetLead fetches one lead by ID.
func (s *SQLiteStore) GetLead(ctx context.Context, id string) (*lead.Lead, error) {
	var l lead.Lead
	err := s.db.GetContext(ctx, &l, `SELECT * FROM leads WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetLead", "lead", id, "not found", ErrNotFound)
		}
		return nil, NewStoreError("GetLead", "lead", id, err.Error(), err)
	}
	return &l, nil
}

// ListLeads returns leads newest-first.
func (s *SQLiteStore) ListLeads(ctx context.Context, opts ListOptions) ([]lead.Lead, error) {
	opts = opts.withDefaults()

	leads := []lead.Lead{}
	err := s.db.SelectContext(ctx, &leads,
		`SELECT * FROM leads ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset)
	if err != nil {
		return nil, NewStoreError("ListLeads", "lead", "", err.Error(), err)
	}
	return leads, nil
}

// CountLeads returns the total number of recorded leads.
func (s *SQLiteStore) CountLeads(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM leads`); err != nil {
		return 0, NewStoreError("CountLeads", "lead", "", err.Error(), err)
	}
	return count, nil
}
