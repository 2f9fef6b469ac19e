package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/sessions"
)

type contextKey string

// UserIDKey carries the authenticated user's ID through the request context.
const UserIDKey contextKey = "user_id"

const (
	sessionName = "lark_session"
	sessionUser = "userId"
)

// SessionManager owns the signed session cookie and the route guards
// built on it. The session stores only the user ID; the profile itself
// is always fetched fresh from the identity service.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates a session manager with the given signing secret.
func NewSessionManager(secret []byte) *SessionManager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// SignIn binds the user ID to a fresh session cookie.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values[sessionUser] = userID
	return session.Save(r, w)
}

// SignOut clears the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) {
	session, _ := m.store.Get(r, sessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		log.Printf("[SESSION] Failed to clear session: %v", err)
	}
}

// UserID returns the signed-in user's ID, or "" for anonymous requests.
func (m *SessionManager) UserID(r *http.Request) string {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return ""
	}
	id, _ := session.Values[sessionUser].(string)
	return id
}

// RequireSession guards session-only routes, redirecting anonymous
// requests to /login and injecting the user ID into the context.
func (m *SessionManager) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := m.UserID(r)
		if userID == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RedirectIfAuthenticated sends signed-in users away from the login and
// account-creation pages.
func (m *SessionManager) RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.UserID(r) != "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID extracts the authenticated user's ID from the request context.
// Returns "" if not authenticated.
func GetUserID(r *http.Request) string {
	id, _ := r.Context().Value(UserIDKey).(string)
	return id
}
