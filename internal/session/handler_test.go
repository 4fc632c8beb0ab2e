package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/sketchpad/internal/auth"
	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/render"
)

func newTestRouter(t *testing.T) (*mux.Router, *Hub) {
	t.Helper()
	return newLimitedRouter(t, Limits{})
}

func newLimitedRouter(t *testing.T, limits Limits) (*mux.Router, *Hub) {
	t.Helper()
	hub := newLimitedHub(t, limits)
	authSvc := auth.NewService("test-secret", time.Hour)
	h := NewHandler(hub, authSvc, render.RGB(211, 211, 211), nil)

	r := mux.NewRouter()
	r.HandleFunc("/sessions", h.Create).Methods("POST")

	api := r.PathPrefix("/sessions/{sessionId}").Subrouter()
	api.Use(authSvc.AuthMiddleware)
	api.HandleFunc("/state", h.State).Methods("GET")
	api.HandleFunc("/frame.png", h.Frame).Methods("GET")
	api.HandleFunc("/grid", h.UpdateGrid).Methods("PUT")

	r.Handle("/ws/sessions/{sessionId}", authSvc.QueryTokenMiddleware(http.HandlerFunc(h.WebSocket)))
	return r, hub
}

func createSession(t *testing.T, r http.Handler) createResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp createResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func do(r http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestStateAndFrame(t *testing.T) {
	r, _ := newTestRouter(t)
	sess := createSession(t, r)

	rec := do(r, http.MethodGet, "/sessions/"+sess.ID+"/state", sess.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap engine.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 1.0, snap.Transform.ScaleFactor)

	rec = do(r, http.MethodGet, "/sessions/"+sess.ID+"/frame.png", sess.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 1000, img.Bounds().Dy())
}

func TestFrameIgnoresOversizedViewport(t *testing.T) {
	r, hub := newTestRouter(t)
	sess := createSession(t, r)
	s, err := hub.Get(sess.ID)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Handle(ctx, engine.Event{Type: engine.EventResize, Width: 1e9, Height: 1e9}, 1))
	require.NoError(t, s.Handle(ctx, engine.Event{Type: engine.EventResize, Width: 640, Height: 1e5}, 2))

	rec := do(r, http.MethodGet, "/sessions/"+sess.ID+"/frame.png", sess.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 1000, img.Bounds().Dy())
}

type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestFrameLogsWriteFailure(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r, _ := newTestRouter(t)
	sess := createSession(t, r)

	req := httptest.NewRequest(http.MethodGet, "/sessions/"+sess.ID+"/frame.png", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	w := brokenWriter{httptest.NewRecorder()}
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), "write frame")
	assert.Contains(t, logs.String(), "connection reset")
}

func TestCreateSessionLimit(t *testing.T) {
	r, hub := newLimitedRouter(t, Limits{MaxSessions: 1})
	createSession(t, r)

	rec := do(r, http.MethodPost, "/sessions", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, 1, hub.Len())
}

func TestAuthorization(t *testing.T) {
	r, _ := newTestRouter(t)
	a := createSession(t, r)
	b := createSession(t, r)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/sessions/"+a.ID+"/state", "", "").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/sessions/"+a.ID+"/state", b.Token, "").Code)
}

func TestUpdateGrid(t *testing.T) {
	r, hub := newTestRouter(t)
	sess := createSession(t, r)
	target := "/sessions/" + sess.ID + "/grid"

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodPut, target, sess.Token, `{"spacing": 50, "interval": "2D"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, target, sess.Token, `{"spacing": 0}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, target, sess.Token, `{"spacing": 1e-300}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, target, sess.Token, `{"interval": "3W"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, target, sess.Token, `{`).Code)

	s, err := hub.Get(sess.ID)
	require.NoError(t, err)
	frame, err := s.Frame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50.0, frame.State.GridSpacing)
}

func TestClosedSession(t *testing.T) {
	r, hub := newTestRouter(t)
	sess := createSession(t, r)
	require.NoError(t, hub.Close(sess.ID))

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/sessions/"+sess.ID+"/state", sess.Token, "").Code)
}

func TestWebSocketSession(t *testing.T) {
	r, _ := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	sess := createSession(t, r)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/sessions/" + sess.ID + "?token=" + sess.Token
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	var msg Message
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	require.Equal(t, TypeWelcome, msg.Type)
	var welcome WelcomePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &welcome))
	assert.Equal(t, sess.ID, welcome.SessionID)
	assert.NotEmpty(t, welcome.ClientID)

	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	require.Equal(t, TypeFrame, msg.Type)

	input, err := json.Marshal(engine.Event{Type: engine.EventPointerDown, Button: engine.ButtonPrimary, X: 100, Y: 100})
	require.NoError(t, err)
	require.NoError(t, wsjson.Write(ctx, conn, Message{Type: TypeInput, Seq: 1, Payload: input}))

	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	require.Equal(t, TypeFrame, msg.Type)
	assert.Equal(t, int64(1), msg.Seq)
	var frame FramePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &frame))
	assert.True(t, frame.Consumed)
	assert.Equal(t, engine.StatePanning, frame.State.State)

	require.NoError(t, wsjson.Write(ctx, conn, Message{Type: "bogus", Seq: 2, Payload: json.RawMessage(`{}`)}))
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, TypeError, msg.Type)
	assert.Equal(t, int64(2), msg.Seq)
}
