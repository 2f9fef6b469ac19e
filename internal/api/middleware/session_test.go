package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *SessionManager {
	return NewSessionManager([]byte("test-secret-key-32-bytes-long!!!"))
}

// signedInRequest returns a request carrying a valid session cookie for userID.
func signedInRequest(t *testing.T, m *SessionManager, userID, target string) *http.Request {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, m.SignIn(rec, httptest.NewRequest(http.MethodGet, "/login", nil), userID))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestRequireSession_RedirectsAnonymousToLogin(t *testing.T) {
	m := newTestManager()
	handler := m.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for anonymous requests")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireSession_InjectsUserID(t *testing.T) {
	m := newTestManager()

	var gotUserID string
	handler := m.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signedInRequest(t, m, "user-1", "/"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotUserID)
}

func TestRequireSession_RejectsTamperedCookie(t *testing.T) {
	m := newTestManager()
	other := NewSessionManager([]byte("a-different-signing-secret-here!"))

	handler := m.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a cookie signed with another key")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, signedInRequest(t, other, "user-1", "/"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRedirectIfAuthenticated(t *testing.T) {
	m := newTestManager()

	ran := false
	handler := m.RedirectIfAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	// Anonymous requests pass through to the login page.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Signed-in users are sent home instead.
	ran = false
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, signedInRequest(t, m, "user-1", "/login"))
	assert.False(t, ran)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSignOut_ExpiresCookie(t *testing.T) {
	m := newTestManager()
	req := signedInRequest(t, m, "user-1", "/logout")

	rec := httptest.NewRecorder()
	m.SignOut(rec, req)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestUserID_AnonymousIsEmpty(t *testing.T) {
	m := newTestManager()
	assert.Empty(t, m.UserID(httptest.NewRequest(http.MethodGet, "/", nil)))
}
