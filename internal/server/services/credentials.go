// Package services contains server-side business logic. This file implements
// Credentials, the single source of truth for valid username/password pairs:
// it owns password hashing and translates expected business conditions
// (duplicate username, unknown user, wrong password) into boolean results,
// reserving errors for storage faults.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/klimata/riskboard/internal/common"
	"github.com/klimata/riskboard/internal/server/models"
	"github.com/klimata/riskboard/internal/server/repositories/repomanager"
)

// Credentials provides the account operations behind the dashboard gate:
// - Create: sign-up
// - Verify: login check
// - UpdatePassword / Delete: account management
type Credentials struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	bcryptCost  int
}

// NewCredentials constructs a Credentials service over the given database.
// cost <= 0 selects bcrypt.DefaultCost.
func NewCredentials(db *sql.DB, m repomanager.RepositoryManager, cost int) *Credentials {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{db: db, repomanager: m, bcryptCost: cost}
}

// generateFromPassword is a test seam for bcrypt.GenerateFromPassword.
var generateFromPassword = bcrypt.GenerateFromPassword

// Initialize ensures the backing schema exists. Idempotent, called on every
// startup.
func (s *Credentials) Initialize(ctx context.Context) error {
	if err := s.repomanager.RunMigrations(ctx, s.db); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}
	return nil
}

// Create hashes the password and inserts the pair. Returns false when the
// username is already taken; that outcome mutates nothing.
func (s *Credentials) Create(ctx context.Context, username, password string) (bool, error) {
	hash, err := generateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return false, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	ok, err := repo.Create(ctx, &models.User{Username: username, PasswordHash: string(hash)})
	if err != nil {
		return false, fmt.Errorf("error creating user: %w", err)
	}
	return ok, nil
}

// Verify reports whether username exists and password matches its stored
// hash. An unknown username and a wrong password are indistinguishable to
// the caller; both come back (false, nil).
func (s *Credentials) Verify(ctx context.Context, username, password string) (bool, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("error fetching user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("error comparing password: %w", err)
	}
	return true, nil
}

// UpdatePassword re-hashes and overwrites the stored hash. Updating an
// absent username is a no-op that still returns true; callers must ensure
// the username is the authenticated session's own.
func (s *Credentials) UpdatePassword(ctx context.Context, username, newPassword string) (bool, error) {
	hash, err := generateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return false, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	if err := repo.UpdateHash(ctx, username, string(hash)); err != nil {
		return false, fmt.Errorf("error updating password: %w", err)
	}
	return true, nil
}

// Delete removes the record unconditionally. Deleting an absent username is
// not an error.
func (s *Credentials) Delete(ctx context.Context, username string) (bool, error) {
	repo := s.repomanager.Users(s.db)
	if err := repo.Delete(ctx, username); err != nil {
		return false, fmt.Errorf("error deleting user: %w", err)
	}
	return true, nil
}

// Usernames lists all registered usernames, for the admin CLI.
func (s *Credentials) Usernames(ctx context.Context) ([]string, error) {
	repo := s.repomanager.Users(s.db)
	names, err := repo.Usernames(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return names, nil
}
