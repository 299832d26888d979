package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klimata/riskboard/internal/common"
)

// fakeStore is an in-memory Store with optional injected faults.
type fakeStore struct {
	users map[string]string // username -> plaintext (good enough for the machine)
	err   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]string{}}
}

func (f *fakeStore) Create(ctx context.Context, username, password string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.users[username]; ok {
		return false, nil
	}
	f.users[username] = password
	return true, nil
}

func (f *fakeStore) Verify(ctx context.Context, username, password string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	pw, ok := f.users[username]
	return ok && pw == password, nil
}

func (f *fakeStore) UpdatePassword(ctx context.Context, username, newPassword string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.users[username]; ok {
		f.users[username] = newPassword
	}
	return true, nil
}

func (f *fakeStore) Delete(ctx context.Context, username string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	delete(f.users, username)
	return true, nil
}

func TestNew_InitialState(t *testing.T) {
	s := New()
	assert.False(t, s.Authenticated)
	assert.Empty(t, s.Username)
	assert.Equal(t, PageLogin, s.ActivePage)
}

func TestSignUpThenLogin(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	s := New().GoToSignUp()
	assert.Equal(t, PageSignUp, s.ActivePage)

	s, flash, err := s.SubmitSignUp(ctx, store, "alice", "secret1", "secret1")
	require.NoError(t, err)
	assert.Equal(t, FlashSuccess, flash.Level)
	assert.Equal(t, PageLogin, s.ActivePage)
	assert.False(t, s.Authenticated, "signup must not authenticate")

	s, flash, err = s.SubmitLogin(ctx, store, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, FlashSuccess, flash.Level)
	assert.True(t, s.Authenticated)
	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, PageDashboard, s.ActivePage)
}

func TestLogin_WrongPasswordStaysLoggedOut(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	_, err := store.Create(ctx, "alice", "secret1")
	require.NoError(t, err)

	s, flash, err := New().SubmitLogin(ctx, store, "alice", "wrong")
	require.NoError(t, err)
	assert.Equal(t, FlashError, flash.Level)
	assert.False(t, s.Authenticated)
	assert.Empty(t, s.Username)
	assert.Equal(t, PageLogin, s.ActivePage)
}

func TestLogin_UnknownUserSameMessageAsWrongPassword(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	_, err := store.Create(ctx, "alice", "secret1")
	require.NoError(t, err)

	_, flashWrong, err := New().SubmitLogin(ctx, store, "alice", "nope")
	require.NoError(t, err)
	_, flashUnknown, err := New().SubmitLogin(ctx, store, "ghost", "nope")
	require.NoError(t, err)

	assert.Equal(t, flashWrong, flashUnknown, "failure modes must be indistinguishable")
}

func TestSignUp_FailureModes(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	_, err := store.Create(ctx, "taken", "pw")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		wantMsg  string
	}{
		{"empty username", "", "p1", "p1", "All fields are required"},
		{"empty password", "bob", "", "", "All fields are required"},
		{"mismatched confirmation", "bob", "p1", "p2", "Passwords do not match"},
		{"username taken", "taken", "p1", "p1", "Username is already taken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, flash, err := New().GoToSignUp().SubmitSignUp(ctx, store, tt.username, tt.password, tt.confirm)
			require.NoError(t, err)
			assert.Equal(t, FlashError, flash.Level)
			assert.Equal(t, tt.wantMsg, flash.Message)
			assert.Equal(t, PageSignUp, s.ActivePage, "failed signup must stay on the signup page")
			assert.False(t, s.Authenticated)
		})
	}

	// mismatch must not create the record
	ok, err := store.Verify(ctx, "bob", "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogout_ClearsSession(t *testing.T) {
	s := State{Authenticated: true, Username: "alice", ActivePage: PageDashboard}
	s = s.Logout()
	assert.Equal(t, New(), s)
}

func TestManageAccount_PasswordChange(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	_, err := store.Create(ctx, "alice", "old")
	require.NoError(t, err)

	s := State{Authenticated: true, Username: "alice", ActivePage: PageDashboard}

	s, err = s.GoToManageAccount()
	require.NoError(t, err)
	assert.Equal(t, PageManageAccount, s.ActivePage)

	s, flash, err := s.SubmitPasswordChange(ctx, store, "new", "new")
	require.NoError(t, err)
	assert.Equal(t, FlashSuccess, flash.Level)
	assert.Equal(t, PageManageAccount, s.ActivePage, "stays on the account page")

	ok, err := store.Verify(ctx, "alice", "new")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestManageAccount_PasswordChangeValidation(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	s := State{Authenticated: true, Username: "alice", ActivePage: PageManageAccount}

	_, flash, err := s.SubmitPasswordChange(ctx, store, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, FlashError, flash.Level)

	_, flash, err = s.SubmitPasswordChange(ctx, store, "", "")
	require.NoError(t, err)
	assert.Equal(t, FlashError, flash.Level)
}

func TestDeleteAccount_ClearsSessionAndRecord(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	_, err := store.Create(ctx, "alice", "secret1")
	require.NoError(t, err)

	s := State{Authenticated: true, Username: "alice", ActivePage: PageManageAccount}
	s, flash, err := s.ConfirmDeleteAccount(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, FlashSuccess, flash.Level)
	assert.Equal(t, New(), s)

	ok, err := store.Verify(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnauthenticatedAccountActionsAreBugs(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	s := New()

	_, err := s.GoToManageAccount()
	assert.ErrorIs(t, err, common.ErrorNotAuthenticated)

	_, _, err = s.SubmitPasswordChange(ctx, store, "a", "a")
	assert.ErrorIs(t, err, common.ErrorNotAuthenticated)

	_, _, err = s.ConfirmDeleteAccount(ctx, store)
	assert.ErrorIs(t, err, common.ErrorNotAuthenticated)
}

func TestSubmitLogin_StorageFaultLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.err = errors.New("disk I/O error")

	before := New()
	after, flash, err := before.SubmitLogin(ctx, store, "alice", "pw")
	require.Error(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, Flash{}, flash)
}

func TestResolve_Guard(t *testing.T) {
	loggedOut := New()
	loggedIn := State{Authenticated: true, Username: "alice", ActivePage: PageDashboard}

	tests := []struct {
		name      string
		state     State
		requested Page
		want      Page
	}{
		{"logged out cannot reach dashboard", loggedOut, PageDashboard, PageLogin},
		{"logged out cannot reach manage", loggedOut, PageManageAccount, PageLogin},
		{"logged out may reach signup", loggedOut, PageSignUp, PageSignUp},
		{"logged out default is login", loggedOut, PageLogin, PageLogin},
		{"logged in skips login", loggedIn, PageLogin, PageDashboard},
		{"logged in skips signup", loggedIn, PageSignUp, PageDashboard},
		{"logged in reaches manage", loggedIn, PageManageAccount, PageManageAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Resolve(tt.requested))
		})
	}
}
