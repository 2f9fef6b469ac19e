// Package account handles the authentication and profile form endpoints.
// Pages themselves are rendered by internal/web; these handlers only
// process submissions and redirect.
package account

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"Lark/internal/api/middleware"
	"Lark/internal/core/identity"
)

// AuthHandler processes the login and account-creation forms.
type AuthHandler struct {
	identity identity.Service
	sessions *middleware.SessionManager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(identityService identity.Service, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{
		identity: identityService,
		sessions: sessions,
	}
}

// HandleLogin handles POST /login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/login", err)
		return
	}

	user, err := h.identity.SignIn(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		redirectWithError(w, r, "/login", err)
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID); err != nil {
		log.Printf("[LOGIN] Failed to save session: %v", err)
		redirectWithError(w, r, "/login", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleCreateAccount handles POST /create-account.
// A successful sign-up signs the user in immediately.
func (h *AuthHandler) HandleCreateAccount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/create-account", err)
		return
	}

	req := identity.SignUpRequest{
		Email:       r.FormValue("email"),
		Password:    r.FormValue("password"),
		DisplayName: r.FormValue("name"),
	}

	user, err := h.identity.SignUp(r.Context(), req)
	if err != nil {
		redirectWithError(w, r, "/create-account", err)
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID); err != nil {
		log.Printf("[SIGNUP] Failed to save session: %v", err)
		redirectWithError(w, r, "/login", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout handles POST /logout.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.SignOut(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// redirectWithError sends the browser back with the provider's message;
// identity errors are written for end users and surfaced verbatim.
func redirectWithError(w http.ResponseWriter, r *http.Request, target string, err error) {
	msg := err.Error()
	var invalidEmail *identity.InvalidEmailError
	var weakPassword *identity.WeakPasswordError
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials),
		errors.Is(err, identity.ErrEmailTaken),
		errors.As(err, &invalidEmail),
		errors.As(err, &weakPassword):
		// Keep the message as-is.
	default:
		msg = "Something went wrong. Please try again."
	}
	q := url.Values{"error": {msg}}
	http.Redirect(w, r, target+"?"+q.Encode(), http.StatusSeeOther)
}
