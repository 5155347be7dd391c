// Package storage persists session identities in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"budgetplanner/internal/session"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements session.Store.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks the database connection.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const upsertSession = `
INSERT INTO sessions (id, email, token, expires_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    email = excluded.email,
    token = excluded.token,
    expires_at = excluded.expires_at,
    updated_at = excluded.updated_at`

func (r *SQLiteRepository) Save(ctx context.Context, id string, identity session.Identity) error {
	now := r.now().Unix()
	_, err := r.db.ExecContext(ctx, upsertSession,
		id, identity.Email, identity.Token, toUnix(identity.ExpiresAt), now, now)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	slog.DebugContext(ctx, "Session saved to SQLite", "email", identity.Email)
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context, id string) (session.Identity, error) {
	var (
		identity session.Identity
		expires  int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT email, token, expires_at FROM sessions WHERE id = ?`, id,
	).Scan(&identity.Email, &identity.Token, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Identity{}, session.ErrNotFound
	}
	if err != nil {
		return session.Identity{}, fmt.Errorf("load session: %w", err)
	}
	identity.ExpiresAt = fromUnix(expires)
	return identity, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every identity whose expiry has passed.
func (r *SQLiteRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at > 0 AND expires_at <= ?`, r.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "Expired sessions removed", "count", n)
	}
	return n, nil
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(s int64) time.Time {
	if s == 0 {
		return time.Time{}
	}
	return time.Unix(s, 0).UTC()
}
