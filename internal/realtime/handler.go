package realtime

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/warikan-app/warikan/pkg/middleware"
	"github.com/warikan-app/warikan/pkg/response"
)

// Handler exposes hub subscriptions over websockets. Browsers cannot set an
// Authorization header on a websocket handshake, so the token rides in the
// query string.
type Handler struct {
	hub      *Hub
	tokens   middleware.TokenValidator
	upgrader websocket.Upgrader
}

// NewHandler creates a websocket handler for the given hub.
func NewHandler(hub *Hub, tokens middleware.TokenValidator) *Handler {
	return &Handler{
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Routes returns the router for websocket endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/groups/{groupID}", h.ServeGroup)
	r.Get("/invitations", h.ServeInvitations)

	return r
}

// ServeGroup streams member and expense snapshots for one group.
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authenticate(w, r); !ok {
		return
	}

	groupID := chi.URLParam(r, "groupID")
	h.serve(w, r, GroupKey(groupID))
}

// ServeInvitations streams pending-invitation snapshots for the caller.
func (h *Handler) ServeInvitations(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	h.serve(w, r, UserKey(userID))
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "token query parameter required")
		return "", false
	}

	userID, _, err := h.tokens.ValidateToken(token)
	if err != nil {
		response.Unauthorized(w, "Invalid or expired token")
		return "", false
	}

	return userID, true
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, key string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "key", key, "error", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := h.hub.Subscribe(key)
	defer unsubscribe()

	// The read loop exists to observe the close handshake.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
