package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/calc-hub/internal/models"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a user or content item does not exist
var ErrNotFound = errors.New("not found")

// Dialect selects placeholder and DDL flavour
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// Store is the persistence contract used by the service layer
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	ListContent(ctx context.Context, kind models.Kind) ([]models.ContentItem, error)
	GetContent(ctx context.Context, kind models.Kind, id string) (*models.ContentItem, error)
	AddContent(ctx context.Context, item *models.ContentItem) error
	UpdateContent(ctx context.Context, item *models.ContentItem) error
	RemoveContent(ctx context.Context, kind models.Kind, id string) error
}

var (
	_ Store = (*Repository)(nil)
	_ Store = (*Memory)(nil)
)

// Open connects to the configured database, runs migrations and returns the store.
// The memory driver returns a nil *sql.DB.
func Open(ctx context.Context, driver, conn string) (Store, *sql.DB, error) {
	var dialect Dialect
	switch driver {
	case "memory":
		return NewMemory(), nil, nil
	case "postgres":
		dialect = Postgres
	case "sqlite", "sqlite3":
		dialect = SQLite
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(string(dialect), conn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if dialect == SQLite {
		// one writer avoids SQLITE_BUSY and keeps :memory: databases on one connection
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := NewRepository(db, dialect)
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, db, nil
}
