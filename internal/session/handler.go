package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/sketchpad/internal/auth"
	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/grid"
	"github.com/inamate/sketchpad/internal/render"
)

type Handler struct {
	hub            *Hub
	auth           *auth.Service
	background     render.Color
	originPatterns []string
}

func NewHandler(hub *Hub, authService *auth.Service, background render.Color, originPatterns []string) *Handler {
	return &Handler{
		hub:            hub,
		auth:           authService,
		background:     background,
		originPatterns: originPatterns,
	}
}

type createResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type gridRequest struct {
	Spacing  *float64      `json:"spacing"`
	Interval grid.Interval `json:"interval"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	s, err := h.hub.Create()
	if errors.Is(err, ErrTooManySessions) {
		slog.Warn("create session rejected", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "too many sessions"})
		return
	}
	if err != nil {
		slog.Error("create session failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	token, err := h.auth.IssueSessionToken(s.ID)
	if err != nil {
		slog.Error("issue token failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{ID: s.ID, Token: token})
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorizedSession(w, r)
	if !ok {
		return
	}

	var snap engine.Snapshot
	err := s.Do(r.Context(), func(e *engine.Engine) error {
		snap = e.Snapshot()
		return nil
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) Frame(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorizedSession(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := s.Do(r.Context(), func(e *engine.Engine) error {
		tr := e.Transform()
		return render.EncodePNG(&buf, int(tr.Width), int(tr.Height), h.background, e.Draw)
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Debug("write frame", "session", s.ID, "error", err)
	}
}

func (h *Handler) UpdateGrid(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorizedSession(w, r)
	if !ok {
		return
	}

	var req gridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	err := s.ApplySettings(r.Context(), SettingsPayload{
		GridSpacing:  req.Spacing,
		GridInterval: req.Interval,
	}, 0)
	if err != nil {
		if errors.Is(err, grid.ErrInvalidSpacing) || errors.Is(err, grid.ErrInvalidInterval) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeSessionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// WebSocket upgrades the connection and attaches it to the session.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorizedSession(w, r)
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h.hub, s, conn, uuid.New().String())
	h.hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// authorizedSession resolves the {sessionId} path variable and checks it
// against the session the request's token was issued for.
func (h *Handler) authorizedSession(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := mux.Vars(r)["sessionId"]
	if auth.SessionIDFromContext(r.Context()) != id {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "token not valid for this session"})
		return nil, false
	}

	s, err := h.hub.Get(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return nil, false
	}
	return s, true
}

func writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrClosed) {
		writeJSON(w, http.StatusGone, map[string]string{"error": "session closed"})
		return
	}
	slog.Error("session request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Debug("write response", "error", err)
	}
}
