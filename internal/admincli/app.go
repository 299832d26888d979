package admincli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/klimata/riskboard/internal/dbx"
	"github.com/klimata/riskboard/internal/server/config"
	"github.com/klimata/riskboard/internal/server/repositories/repomanager"
	"github.com/klimata/riskboard/internal/server/services"
)

// credentialStore is the slice of the credential service the console uses.
// *services.Credentials satisfies it.
type credentialStore interface {
	Create(ctx context.Context, username, password string) (bool, error)
	Verify(ctx context.Context, username, password string) (bool, error)
	UpdatePassword(ctx context.Context, username, newPassword string) (bool, error)
	Delete(ctx context.Context, username string) (bool, error)
	Usernames(ctx context.Context) ([]string, error)
}

type App struct {
	db     *sql.DB
	store  credentialStore
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the credential database named in the config and prepares the
// console. The schema is migrated if needed, so the console works on a fresh
// database file too.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := dbx.OpenSQLite(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store := services.NewCredentials(db, repomanager.NewSQLiteRepositoryManager(), c.BcryptCost)
	if err := store.Initialize(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return &App{
		db:     db,
		store:  store,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run starts the console loop and closes the database when it ends.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	runREPL(ctx, a, bufio.NewScanner(os.Stdin))
}

func (a *App) AddUser(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Password")
	if err != nil {
		return err
	}

	ok, err := a.store.Create(ctx, username, string(password))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(a.out, "Username %q is already taken\n", username)
		return nil
	}
	fmt.Fprintf(a.out, "User %q created\n", username)
	return nil
}

func (a *App) Passwd(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "New password")
	if err != nil {
		return err
	}

	if _, err := a.store.UpdatePassword(ctx, username, string(password)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Password for %q updated\n", username)
	return nil
}

func (a *App) DelUser(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete user %q? [y/N]", username), a.out)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if _, err := a.store.Delete(ctx, username); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %q deleted\n", username)
	return nil
}

func (a *App) Users(ctx context.Context) error {
	names, err := a.store.Usernames(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(a.out, "No registered users")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(a.out, name)
	}
	return nil
}

func (a *App) Check(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Password")
	if err != nil {
		return err
	}

	ok, err := a.store.Verify(ctx, username, string(password))
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(a.out, "OK: credentials verify")
	} else {
		fmt.Fprintln(a.out, "FAIL: user not known or password incorrect")
	}
	return nil
}
