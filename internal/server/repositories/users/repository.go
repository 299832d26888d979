package users

import (
	"context"

	"github.com/klimata/riskboard/internal/server/models"
)

// Repository persists username/password-hash pairs. Uniqueness of usernames
// is enforced by the storage layer, never by a prior existence check.
type Repository interface {
	// Create inserts the user and reports whether a row was actually
	// written. false means the username is already taken.
	Create(ctx context.Context, user *models.User) (bool, error)

	// GetByUsername returns common.ErrorNotFound when no such user exists.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateHash overwrites the stored hash. Updating an absent username is
	// not an error.
	UpdateHash(ctx context.Context, username, passwordHash string) error

	// Delete removes the row. Deleting an absent username is not an error.
	Delete(ctx context.Context, username string) error

	// Usernames lists all usernames in lexical order.
	Usernames(ctx context.Context) ([]string, error)
}
