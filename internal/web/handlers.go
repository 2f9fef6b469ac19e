package web

import (
	"log"
	"net/http"

	"Lark/internal/api/middleware"
	"Lark/internal/core/feed"
	"Lark/internal/core/identity"
)

// Handlers renders the Lark pages. Form submissions are processed by the
// internal/api handlers; these only read.
type Handlers struct {
	templates *Templates
	identity  identity.Service
	feeds     *feed.Synchronizer
}

// NewHandlers creates a new Handlers instance with the provided dependencies.
func NewHandlers(templates *Templates, identityService identity.Service, feeds *feed.Synchronizer) *Handlers {
	return &Handlers{
		templates: templates,
		identity:  identityService,
		feeds:     feeds,
	}
}

// FeedPageData holds data for the home and profile pages.
type FeedPageData struct {
	User *identity.User
	Feed feed.Snapshot
	// Error is an inline message carried back after a failed form submit.
	Error string
	// Live enables the websocket refresh script on the page.
	Live bool
	// AuthorFilter is "me" on the profile page, "" on the home feed.
	AuthorFilter string
}

// AuthPageData holds data for the login and account-creation pages.
type AuthPageData struct {
	Error string
}

// HomeHandler handles GET / and renders the feed with the composer.
// The initial feed is rendered server-side; the page then listens on
// /ws/feed for full-snapshot refreshes.
func (h *Handlers) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	user, err := h.identity.GetUser(r.Context(), middleware.GetUserID(r))
	if err != nil {
		log.Printf("Failed to load user for home page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	snap, err := h.feeds.Snapshot(r.Context(), feed.Options{})
	if err != nil {
		log.Printf("Failed to load feed for home page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := FeedPageData{
		User:  user,
		Feed:  snap,
		Error: r.URL.Query().Get("error"),
		Live:  true,
	}
	if err := h.templates.Render(w, "home.html", data); err != nil {
		log.Printf("Failed to render home page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// ProfileHandler handles GET /profile: the user's own recent posts plus
// the display-name and avatar editors.
func (h *Handlers) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	user, err := h.identity.GetUser(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to load user for profile page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	snap, err := h.feeds.Snapshot(r.Context(), feed.Options{AuthorID: userID})
	if err != nil {
		log.Printf("Failed to load posts for profile page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := FeedPageData{
		User:         user,
		Feed:         snap,
		Error:        r.URL.Query().Get("error"),
		Live:         true,
		AuthorFilter: "me",
	}
	if err := h.templates.Render(w, "profile.html", data); err != nil {
		log.Printf("Failed to render profile page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// LoginHandler handles GET /login.
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	data := AuthPageData{Error: r.URL.Query().Get("error")}
	if err := h.templates.Render(w, "login.html", data); err != nil {
		log.Printf("Failed to render login page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// CreateAccountHandler handles GET /create-account.
func (h *Handlers) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	data := AuthPageData{Error: r.URL.Query().Get("error")}
	if err := h.templates.Render(w, "create_account.html", data); err != nil {
		log.Printf("Failed to render create-account page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
