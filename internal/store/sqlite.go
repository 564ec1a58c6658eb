// internal/store/sqlite.go
//
// SQLite persistence for users and their game statistics.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy
//     timeout, foreign keys).
//   - Applying the embedded schema (idempotent).
//   - User CRUD for registration/login and the stats counters the
//     round coordinator records after each finished game.

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// ErrUserNotFound is returned by lookups for unknown emails.
var ErrUserNotFound = errors.New("user not found")

// User is one registered player row.
type User struct {
	Email        string    `json:"email"`
	Nom          string    `json:"nom"`
	Prenom       string    `json:"prenom"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Stats are the persistent per-player counters.
type Stats struct {
	Victoires     int `json:"victoires"`
	Parties       int `json:"parties"`
	MeilleurScore int `json:"meilleurScore"`
}

// OpenDB opens (and creates if missing) a SQLite database file.
//
//   - Ensures the parent directory exists for relative DSNs
//     (e.g. ./data/app.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
func OpenDB(dsn string) (*sql.DB, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded schema. Safe to run on every startup.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Users wraps user and stats queries over one database handle.
type Users struct{ db *sql.DB }

// NewUsers constructs a Users store.
func NewUsers(db *sql.DB) *Users { return &Users{db: db} }

// Create inserts a new user row with zeroed stats.
// The caller is responsible for hashing the password and for checking
// email uniqueness beforehand (the PRIMARY KEY enforces it anyway).
func (s *Users) Create(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO users (email, nom, prenom, password_hash, created_at)
        VALUES (?, ?, ?, ?, ?)`,
		u.Email, u.Nom, u.Prenom, u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// ByEmail fetches a user row, ErrUserNotFound for unknown emails.
func (s *Users) ByEmail(ctx context.Context, email string) (User, error) {
	var u User
	var created string
	err := s.db.QueryRowContext(ctx, `
        SELECT email, nom, prenom, password_hash, created_at
        FROM users WHERE lower(email)=lower(?)`, email,
	).Scan(&u.Email, &u.Nom, &u.Prenom, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return u, nil
}

// Exists reports whether an email belongs to a registered user.
func (s *Users) Exists(ctx context.Context, email string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE lower(email)=lower(?)`, email,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Stats returns the stats counters for an email.
// Unknown emails get zeroed stats, matching the public API contract.
func (s *Users) Stats(ctx context.Context, email string) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `
        SELECT victoires, parties, meilleur_score
        FROM users WHERE lower(email)=lower(?)`, email,
	).Scan(&st.Victoires, &st.Parties, &st.MeilleurScore)
	if errors.Is(err, sql.ErrNoRows) {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}

// RecordGame bumps the stats counters after one finished round:
// games played always increments, wins increment on a win, and the
// best score is max-merged with the new score.
func (s *Users) RecordGame(ctx context.Context, email string, won bool, score int) error {
	wins := 0
	if won {
		wins = 1
	}
	_, err := s.db.ExecContext(ctx, `
        UPDATE users
        SET parties = parties + 1,
            victoires = victoires + ?,
            meilleur_score = MAX(meilleur_score, ?)
        WHERE lower(email)=lower(?)`,
		wins, score, email,
	)
	return err
}
