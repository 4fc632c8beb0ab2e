package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/typeid"
)

// EngineFactory builds the engine for a new session.
type EngineFactory func() (*engine.Engine, error)

// Limits bounds how many sessions a hub keeps and for how long. Zero values
// disable the corresponding limit.
type Limits struct {
	// IdleTTL is how long a session with no connected clients survives
	// without being used.
	IdleTTL time.Duration
	// MaxSessions caps the number of live sessions.
	MaxSessions int
}

type entry struct {
	session *Session
	cancel  context.CancelFunc
	// lastUsed is a UnixNano timestamp.
	lastUsed atomic.Int64
}

func (e *entry) touch(now time.Time) {
	e.lastUsed.Store(now.UnixNano())
}

// Hub owns the running sessions and routes websocket clients to them.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	newEngine  EngineFactory
	limits     Limits
	now        func() time.Time
	register   chan *Client
	unregister chan *Client

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	log *slog.Logger
}

func NewHub(newEngine EngineFactory, limits Limits, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		sessions:   make(map[string]*entry),
		newEngine:  newEngine,
		limits:     limits,
		now:        time.Now,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
		log:        log,
	}
}

// Run handles client registration and expires idle sessions until ctx or the
// hub is stopped.
func (h *Hub) Run(ctx context.Context) {
	var reap <-chan time.Time
	if h.limits.IdleTTL > 0 {
		ticker := time.NewTicker(max(h.limits.IdleTTL/2, time.Second))
		defer ticker.Stop()
		reap = ticker.C
	}

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-reap:
			h.Reap()
		case <-ctx.Done():
			return
		case <-h.ctx.Done():
			return
		}
	}
}

// Create starts a new session. It fails with ErrTooManySessions when the hub
// is full and no idle session can be expired to make room.
func (h *Hub) Create() (*Session, error) {
	if limit := h.limits.MaxSessions; limit > 0 && h.Len() >= limit {
		h.Reap()
		if h.Len() >= limit {
			return nil, fmt.Errorf("%w: limit %d", ErrTooManySessions, limit)
		}
	}

	eng, err := h.newEngine()
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	s := newSession(typeid.NewSessionID(), eng, h.log)
	ctx, cancel := context.WithCancel(h.ctx)

	e := &entry{session: s, cancel: cancel}
	e.touch(h.now())

	h.mu.Lock()
	h.sessions[s.ID] = e
	h.mu.Unlock()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		s.Run(ctx)
	}()

	h.log.Info("session created", "session", s.ID)
	return s, nil
}

// Get looks up a session and marks it as used.
func (h *Hub) Get(id string) (*Session, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e.touch(h.now())
	return e.session, nil
}

// Close stops a session. Connected clients are dropped when their next
// command fails.
func (h *Hub) Close(id string) error {
	h.mu.Lock()
	e, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e.cancel()
	<-e.session.Done()
	h.log.Info("session closed", "session", id)
	return nil
}

// Reap closes every session that has no connected clients and has not been
// used for longer than the idle TTL. It returns the number closed.
func (h *Hub) Reap() int {
	ttl := h.limits.IdleTTL
	if ttl <= 0 {
		return 0
	}
	cutoff := h.now().Add(-ttl).UnixNano()
	idle := func(e *entry) bool {
		return e.lastUsed.Load() < cutoff && e.session.ClientCount() == 0
	}

	h.mu.Lock()
	var expired []*entry
	for id, e := range h.sessions {
		if idle(e) {
			delete(h.sessions, id)
			expired = append(expired, e)
		}
	}
	h.mu.Unlock()

	for _, e := range expired {
		e.cancel()
		<-e.session.Done()
		h.log.Info("session expired", "session", e.session.ID, "idle_ttl", ttl)
	}
	return len(expired)
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Stop ends every session and waits for their goroutines.
func (h *Hub) Stop() {
	h.cancel()
	h.wg.Wait()

	h.mu.Lock()
	h.sessions = make(map[string]*entry)
	h.mu.Unlock()
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

func (h *Hub) addClient(client *Client) {
	s := client.session
	s.addClient(client)
	h.touch(s.ID)

	welcome, err := newMessage(TypeWelcome, 0, WelcomePayload{SessionID: s.ID, ClientID: client.ClientID})
	if err == nil {
		welcome.SessionID = s.ID
		client.Send(welcome)
	}

	// The first frame is built on the session goroutine; don't hold up
	// registration behind it.
	go func() {
		frame, err := s.Frame(h.ctx)
		if err != nil {
			s.log.Warn("initial frame", "error", err, "client", client.ClientID)
			return
		}
		msg, err := newMessage(TypeFrame, 0, frame)
		if err != nil {
			return
		}
		msg.SessionID = s.ID
		client.Send(msg)
	}()

	s.log.Info("client joined", "client", client.ClientID)
}

func (h *Hub) removeClient(client *Client) {
	s := client.session
	if !s.removeClient(client) {
		return
	}
	client.closeSend()
	h.touch(s.ID)
	s.log.Info("client left", "client", client.ClientID)
}

func (h *Hub) touch(id string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if e, ok := h.sessions[id]; ok {
		e.touch(h.now())
	}
}
