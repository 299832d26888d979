// Package session models the dashboard's authentication lifecycle as an
// explicit state machine. State is a plain value passed into and returned
// from every transition; nothing here touches ambient globals, so the
// machine is unit-testable in isolation and the rendering layer stays a
// pure function of the current State.
package session

import (
	"context"

	"github.com/klimata/riskboard/internal/common"
)

// Page identifies which view the rendering layer should draw next.
type Page int

const (
	PageLogin Page = iota
	PageSignUp
	PageDashboard
	PageManageAccount
)

func (p Page) String() string {
	switch p {
	case PageLogin:
		return "login"
	case PageSignUp:
		return "signup"
	case PageDashboard:
		return "dashboard"
	case PageManageAccount:
		return "manage"
	default:
		return "unknown"
	}
}

// FlashLevel classifies a flash message.
type FlashLevel int

const (
	FlashNone FlashLevel = iota
	FlashSuccess
	FlashError
)

// Flash is a one-shot message produced by a transition for the next render.
// The zero value means "nothing to show".
type Flash struct {
	Level   FlashLevel
	Message string
}

func successFlash(msg string) Flash { return Flash{Level: FlashSuccess, Message: msg} }
func errorFlash(msg string) Flash   { return Flash{Level: FlashError, Message: msg} }

// Store is the slice of the credential store the state machine consults.
// *services.Credentials satisfies it.
type Store interface {
	Create(ctx context.Context, username, password string) (bool, error)
	Verify(ctx context.Context, username, password string) (bool, error)
	UpdatePassword(ctx context.Context, username, newPassword string) (bool, error)
	Delete(ctx context.Context, username string) (bool, error)
}

// State is one client's authentication status and active page.
// Invariant: Username is non-empty iff Authenticated is true.
// The zero value is LoggedOut/Login, the initial state.
type State struct {
	Authenticated bool
	Username      string
	ActivePage    Page
}

// New returns the initial LoggedOut/Login state.
func New() State {
	return State{ActivePage: PageLogin}
}

// Resolve applies the sole authorization check in the system: when the
// session is not authenticated only Login and SignUp are reachable, whatever
// page was requested; when it is, the public pages collapse to Dashboard.
func (s State) Resolve(requested Page) Page {
	if !s.Authenticated {
		if requested == PageSignUp {
			return PageSignUp
		}
		return PageLogin
	}
	if requested == PageLogin || requested == PageSignUp {
		return PageDashboard
	}
	return requested
}

// SubmitLogin handles a login form submission. A failed verification leaves
// the state unchanged and reports a deliberately generic message: an unknown
// user and a wrong password are not distinguishable from the outside.
func (s State) SubmitLogin(ctx context.Context, store Store, username, password string) (State, Flash, error) {
	ok, err := store.Verify(ctx, username, password)
	if err != nil {
		return s, Flash{}, err
	}
	if !ok {
		return s, errorFlash("User not known or password incorrect"), nil
	}
	return State{Authenticated: true, Username: username, ActivePage: PageDashboard},
		successFlash("Logged in as " + username), nil
}

// GoToSignUp switches an unauthenticated session to the sign-up view.
func (s State) GoToSignUp() State {
	s.ActivePage = PageSignUp
	return s
}

// GoToLogin switches an unauthenticated session back to the login view.
func (s State) GoToLogin() State {
	s.ActivePage = PageLogin
	return s
}

// SubmitSignUp handles a sign-up form submission. Each failure mode carries
// its own message (empty fields, password mismatch, username taken) and
// keeps the session on the sign-up page; success returns to the login page
// without authenticating.
func (s State) SubmitSignUp(ctx context.Context, store Store, username, password, confirm string) (State, Flash, error) {
	s.ActivePage = PageSignUp

	if username == "" || password == "" || confirm == "" {
		return s, errorFlash("All fields are required"), nil
	}
	if password != confirm {
		return s, errorFlash("Passwords do not match"), nil
	}

	ok, err := store.Create(ctx, username, password)
	if err != nil {
		return s, Flash{}, err
	}
	if !ok {
		return s, errorFlash("Username is already taken"), nil
	}

	s.ActivePage = PageLogin
	return s, successFlash("Account created, please log in"), nil
}

// Logout clears the session unconditionally.
func (s State) Logout() State {
	return New()
}

// GoToManageAccount switches an authenticated session to the account view.
// Calling it without an authenticated session is a caller-side bug.
func (s State) GoToManageAccount() (State, error) {
	if !s.Authenticated {
		return s, common.ErrorNotAuthenticated
	}
	s.ActivePage = PageManageAccount
	return s, nil
}

// SubmitPasswordChange updates the authenticated user's own password and
// stays on the manage-account page.
func (s State) SubmitPasswordChange(ctx context.Context, store Store, password, confirm string) (State, Flash, error) {
	if !s.Authenticated {
		return s, Flash{}, common.ErrorNotAuthenticated
	}

	if password == "" || confirm == "" {
		return s, errorFlash("All fields are required"), nil
	}
	if password != confirm {
		return s, errorFlash("Passwords do not match"), nil
	}

	if _, err := store.UpdatePassword(ctx, s.Username, password); err != nil {
		return s, Flash{}, err
	}
	return s, successFlash("Password updated"), nil
}

// ConfirmDeleteAccount removes the authenticated user's record and clears
// the session.
func (s State) ConfirmDeleteAccount(ctx context.Context, store Store) (State, Flash, error) {
	if !s.Authenticated {
		return s, Flash{}, common.ErrorNotAuthenticated
	}

	if _, err := store.Delete(ctx, s.Username); err != nil {
		return s, Flash{}, err
	}
	return New(), successFlash("Account deleted"), nil
}
