// Package users implements the credential store's persistence layer over a
// single-file SQLite database.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/klimata/riskboard/internal/common"
	"github.com/klimata/riskboard/internal/dbx"
	"github.com/klimata/riskboard/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts the user row. The ON CONFLICT clause makes the PRIMARY KEY
// the single arbiter of uniqueness, so two concurrent creates for the same
// username resolve to exactly one affected row.
func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (bool, error) {
	query :=
		`INSERT INTO users (username, password_hash)
		 VALUES (?, ?)
		 ON CONFLICT(username) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n == 1, nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT username, password_hash, created_at FROM users
		 WHERE username = ?
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.Username, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) UpdateHash(ctx context.Context, username, passwordHash string) error {
	query :=
		`UPDATE users SET password_hash = ?
		 WHERE username = ?
		 `

	if _, err := r.db.ExecContext(ctx, query, passwordHash, username); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, username string) error {
	query := `DELETE FROM users WHERE username = ?`

	if _, err := r.db.ExecContext(ctx, query, username); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) Usernames(ctx context.Context) ([]string, error) {
	query := `SELECT username FROM users ORDER BY username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result = append(result, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
