package server

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ovencontroller/internal/models"
)

// schemaUsers creates the operator-account table, grounded on the
// teacher's db_connection.go schemaUsers.
const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`

// EnsureUsersSchema creates the users table if missing.
func EnsureUsersSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaUsers); err != nil {
		return fmt.Errorf("apply users schema: %w", err)
	}
	return nil
}

// UserRepo is the sqlite-backed operator account store, adapted from the
// teacher's internal/repository/auth_repo.go (UserRepository) to this
// module's models.User.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo wraps an already-open sqlite handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash, created_at FROM users WHERE username = ?`
)

// Create inserts a new user and returns its ID. created_at is stamped here
// rather than left to a column default so it round-trips through the
// RFC3339 parse in GetByUsername regardless of driver-specific defaults.
func (r *UserRepo) Create(username, passwordHash string) (int, error) {
	res, err := r.db.Exec(insertUserSQL, username, passwordHash, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(id), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepo) GetByUsername(username string) (*models.User, error) {
	var u models.User
	var createdAt string
	err := r.db.QueryRow(selectUserByUsernameSQL, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	if u.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at for user %q: %w", username, err)
	}
	return &u, nil
}
