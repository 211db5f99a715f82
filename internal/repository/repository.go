package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/calc-hub/internal/models"
)

// Repository provides database operations on PostgreSQL or SQLite
type Repository struct {
	db      *sql.DB
	dialect Dialect
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// rebind rewrites ? placeholders into $n for PostgreSQL
func (r *Repository) rebind(query string) string {
	if r.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Migrate creates the tables when they do not exist
func (r *Repository) Migrate(ctx context.Context) error {
	userID := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if r.dialect == Postgres {
		userID = "BIGSERIAL PRIMARY KEY"
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS admin_users (
			id ` + userID + `,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS content_items (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			position INTEGER NOT NULL,
			data TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS content_items_kind_idx ON content_items (kind, position)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return nil
}

// CreateUser creates a new admin user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	query := r.rebind(`
		INSERT INTO admin_users (email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`)
	err := r.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash, now, now).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.CreatedAt, user.UpdatedAt = now, now
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := r.rebind(`
		SELECT id, email, password_hash, created_at, updated_at
		FROM admin_users
		WHERE email = ?`)
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListContent returns the items of a kind ordered by position
func (r *Repository) ListContent(ctx context.Context, kind models.Kind) ([]models.ContentItem, error) {
	query := r.rebind(`
		SELECT id, kind, position, data, created_at, updated_at
		FROM content_items
		WHERE kind = ?
		ORDER BY position, created_at`)
	rows, err := r.db.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	defer rows.Close()

	items := []models.ContentItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return items, nil
}

// GetContent retrieves one item
func (r *Repository) GetContent(ctx context.Context, kind models.Kind, id string) (*models.ContentItem, error) {
	query := r.rebind(`
		SELECT id, kind, position, data, created_at, updated_at
		FROM content_items
		WHERE kind = ? AND id = ?`)
	item, err := scanItem(r.db.QueryRowContext(ctx, query, string(kind), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", kind, id, err)
	}
	return item, nil
}

// AddContent inserts item; a zero position appends it to the end of its kind
func (r *Repository) AddContent(ctx context.Context, item *models.ContentItem) error {
	now := time.Now().UTC()
	query := r.rebind(`
		INSERT INTO content_items (id, kind, position, data, created_at, updated_at)
		VALUES (?, ?, CASE WHEN ? > 0 THEN ? ELSE (SELECT COALESCE(MAX(position), 0) + 1 FROM content_items WHERE kind = ?) END, ?, ?, ?)
		RETURNING position`)
	err := r.db.QueryRowContext(ctx, query,
		item.ID, string(item.Kind), item.Position, item.Position, string(item.Kind), string(item.Data), now, now,
	).Scan(&item.Position)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", item.Kind, err)
	}
	item.CreatedAt, item.UpdatedAt = now, now
	return nil
}

// UpdateContent replaces the payload and position of an existing item
func (r *Repository) UpdateContent(ctx context.Context, item *models.ContentItem) error {
	now := time.Now().UTC()
	query := r.rebind(`
		UPDATE content_items
		SET position = CASE WHEN ? > 0 THEN ? ELSE position END, data = ?, updated_at = ?
		WHERE kind = ? AND id = ?
		RETURNING position, created_at`)
	err := r.db.QueryRowContext(ctx, query,
		item.Position, item.Position, string(item.Data), now, string(item.Kind), item.ID,
	).Scan(&item.Position, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", item.Kind, item.ID, err)
	}
	item.UpdatedAt = now
	return nil
}

// RemoveContent deletes one item
func (r *Repository) RemoveContent(ctx context.Context, kind models.Kind, id string) error {
	res, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM content_items WHERE kind = ? AND id = ?`), string(kind), id)
	if err != nil {
		return fmt.Errorf("failed to remove %s %s: %w", kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove %s %s: %w", kind, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.ContentItem, error) {
	var (
		item models.ContentItem
		kind string
		data string
	)
	if err := row.Scan(&item.ID, &kind, &item.Position, &data, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.Kind = models.Kind(kind)
	item.Data = []byte(data)
	return &item, nil
}
