package admincli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentials struct {
	createOK bool
	verifyOK bool
	names    []string
	err      error

	lastUsername string
	lastPassword string
}

func (f *fakeCredentials) Create(_ context.Context, username, password string) (bool, error) {
	f.lastUsername, f.lastPassword = username, password
	return f.createOK, f.err
}

func (f *fakeCredentials) Verify(_ context.Context, username, password string) (bool, error) {
	f.lastUsername, f.lastPassword = username, password
	return f.verifyOK, f.err
}

func (f *fakeCredentials) UpdatePassword(_ context.Context, username, newPassword string) (bool, error) {
	f.lastUsername, f.lastPassword = username, newPassword
	return true, f.err
}

func (f *fakeCredentials) Delete(_ context.Context, username string) (bool, error) {
	f.lastUsername = username
	return true, f.err
}

func (f *fakeCredentials) Usernames(_ context.Context) ([]string, error) {
	return f.names, f.err
}

func newTestApp(store credentialStore, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		store:  store,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    &out,
	}, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = old })
}

func TestAddUser(t *testing.T) {
	stubPassword(t, "pw")

	t.Run("created", func(t *testing.T) {
		store := &fakeCredentials{createOK: true}
		app, out := newTestApp(store, "alice\n")

		require.NoError(t, app.AddUser(context.Background()))
		assert.Equal(t, "alice", store.lastUsername)
		assert.Equal(t, "pw", store.lastPassword)
		assert.Contains(t, out.String(), `User "alice" created`)
	})

	t.Run("duplicate", func(t *testing.T) {
		store := &fakeCredentials{createOK: false}
		app, out := newTestApp(store, "alice\n")

		require.NoError(t, app.AddUser(context.Background()))
		assert.Contains(t, out.String(), "already taken")
	})

	t.Run("storage fault", func(t *testing.T) {
		store := &fakeCredentials{err: errors.New("db error")}
		app, _ := newTestApp(store, "alice\n")

		require.Error(t, app.AddUser(context.Background()))
	})
}

func TestPasswd(t *testing.T) {
	stubPassword(t, "newpw")

	store := &fakeCredentials{}
	app, out := newTestApp(store, "alice\n")

	require.NoError(t, app.Passwd(context.Background()))
	assert.Equal(t, "alice", store.lastUsername)
	assert.Equal(t, "newpw", store.lastPassword)
	assert.Contains(t, out.String(), `Password for "alice" updated`)
}

func TestDelUser(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		store := &fakeCredentials{}
		app, out := newTestApp(store, "alice\ny\n")

		require.NoError(t, app.DelUser(context.Background()))
		assert.Equal(t, "alice", store.lastUsername)
		assert.Contains(t, out.String(), `User "alice" deleted`)
	})

	t.Run("declined", func(t *testing.T) {
		store := &fakeCredentials{}
		app, out := newTestApp(store, "alice\nn\n")

		require.NoError(t, app.DelUser(context.Background()))
		assert.Empty(t, store.lastUsername, "declined deletion must not touch the store")
		assert.Contains(t, out.String(), "Cancelled")
	})
}

func TestUsers(t *testing.T) {
	t.Run("some", func(t *testing.T) {
		store := &fakeCredentials{names: []string{"alice", "bob"}}
		app, out := newTestApp(store, "")

		require.NoError(t, app.Users(context.Background()))
		assert.Contains(t, out.String(), "alice\nbob\n")
	})

	t.Run("empty", func(t *testing.T) {
		store := &fakeCredentials{}
		app, out := newTestApp(store, "")

		require.NoError(t, app.Users(context.Background()))
		assert.Contains(t, out.String(), "No registered users")
	})
}

func TestCheck(t *testing.T) {
	stubPassword(t, "pw")

	t.Run("verifies", func(t *testing.T) {
		store := &fakeCredentials{verifyOK: true}
		app, out := newTestApp(store, "alice\n")

		require.NoError(t, app.Check(context.Background()))
		assert.Contains(t, out.String(), "OK: credentials verify")
	})

	t.Run("rejects", func(t *testing.T) {
		store := &fakeCredentials{verifyOK: false}
		app, out := newTestApp(store, "alice\n")

		require.NoError(t, app.Check(context.Background()))
		assert.Contains(t, out.String(), "FAIL: user not known or password incorrect")
	})
}
