// Package favorites stores saved cooking parameter sets.
package favorites

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cooktimer/backend/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// Compile-time interface check.
var _ domain.FavoriteRepository = (*SQLiteStore)(nil)

// SQLiteStore persists favorites in a SQLite database.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens the database at dbPath and applies the schema.
// Use ":memory:" for a throwaway database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening favorites database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:" databases shared.
	conn.SetMaxOpenConns(1)

	store := &SQLiteStore{conn: conn}
	if err := store.applySchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying favorites schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) applySchema() error {
	_, err := s.conn.Exec(schemaSQL)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

const favoriteColumns = `id, name, food_id, texture_id, method_id, thickness, starting_temp, created_at, usage_count, last_used`

// Save inserts a favorite or replaces the one with the same id.
func (s *SQLiteStore) Save(ctx context.Context, favorite *domain.Favorite) error {
	var lastUsed sql.NullInt64
	if favorite.LastUsed != nil {
		lastUsed = sql.NullInt64{Int64: favorite.LastUsed.UnixMilli(), Valid: true}
	}

	_, err := s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO favorites (`+favoriteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		favorite.ID,
		favorite.Name,
		favorite.FoodID,
		favorite.TextureID,
		favorite.MethodID,
		favorite.Thickness,
		string(favorite.StartingTemp),
		favorite.CreatedAt.UnixMilli(),
		favorite.UsageCount,
		lastUsed,
	)
	if err != nil {
		return fmt.Errorf("saving favorite %s: %w", favorite.ID, err)
	}
	return nil
}

// Get returns the favorite with the given id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.Favorite, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+favoriteColumns+` FROM favorites WHERE id = ?`, id)
	favorite, err := scanFavorite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: favorite %q", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading favorite %s: %w", id, err)
	}
	return favorite, nil
}

// List returns all favorites, oldest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Favorite, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT `+favoriteColumns+` FROM favorites ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	defer rows.Close()

	var result []domain.Favorite
	for rows.Next() {
		favorite, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		result = append(result, *favorite)
	}
	return result, rows.Err()
}

// Delete removes a favorite.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting favorite %s: %w", id, err)
	}
	return requireAffected(res, id)
}

// RecordUse increments the usage count and stamps the last use time.
func (s *SQLiteStore) RecordUse(ctx context.Context, id string, at time.Time) (*domain.Favorite, error) {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE favorites SET usage_count = usage_count + 1, last_used = ? WHERE id = ?`,
		at.UnixMilli(), id)
	if err != nil {
		return nil, fmt.Errorf("recording use of favorite %s: %w", id, err)
	}
	if err := requireAffected(res, id); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: favorite %q", domain.ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFavorite(row scanner) (*domain.Favorite, error) {
	var (
		f            domain.Favorite
		startingTemp string
		createdAt    int64
		lastUsed     sql.NullInt64
	)
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.FoodID,
		&f.TextureID,
		&f.MethodID,
		&f.Thickness,
		&startingTemp,
		&createdAt,
		&f.UsageCount,
		&lastUsed,
	)
	if err != nil {
		return nil, err
	}

	f.StartingTemp = domain.StartingTemp(startingTemp)
	f.CreatedAt = time.UnixMilli(createdAt).UTC()
	if lastUsed.Valid {
		t := time.UnixMilli(lastUsed.Int64).UTC()
		f.LastUsed = &t
	}
	return &f, nil
}
