package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/grid"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrClosed   = errors.New("session closed")
	// ErrTooManySessions is returned by Hub.Create when the session limit
	// is reached.
	ErrTooManySessions = errors.New("too many sessions")
)

type command struct {
	fn    func(*engine.Engine) error
	reply chan error
}

// Session is one editing scene. Its Engine is owned by the goroutine running
// Run; everything else reaches the engine through Do.
type Session struct {
	ID string

	engine *engine.Engine
	cmds   chan command
	done   chan struct{}

	mu      sync.RWMutex
	clients map[string]*Client

	log *slog.Logger
}

func newSession(id string, eng *engine.Engine, log *slog.Logger) *Session {
	return &Session{
		ID:      id,
		engine:  eng,
		cmds:    make(chan command),
		done:    make(chan struct{}),
		clients: make(map[string]*Client),
		log:     log.With("session", id),
	}
}

// Run processes commands one at a time until ctx is cancelled.
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)

	for {
		select {
		case cmd := <-s.cmds:
			cmd.reply <- cmd.fn(s.engine)
		case <-ctx.Done():
			s.log.Debug("session stopped")
			return
		}
	}
}

// Do runs fn on the session goroutine and waits for it to finish.
func (s *Session) Do(ctx context.Context, fn func(*engine.Engine) error) error {
	cmd := command{fn: fn, reply: make(chan error, 1)}

	select {
	case s.cmds <- cmd:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-cmd.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once Run has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Frame records the current scene for remote clients.
func (s *Session) Frame(ctx context.Context) (*FramePayload, error) {
	var frame *FramePayload
	err := s.Do(ctx, func(e *engine.Engine) error {
		var err error
		frame, err = buildFrame(e, false)
		return err
	})
	return frame, err
}

// Handle applies an input event and broadcasts the resulting frame.
func (s *Session) Handle(ctx context.Context, ev engine.Event, seq int64) error {
	return s.Do(ctx, func(e *engine.Engine) error {
		consumed := e.Handle(ev)
		return s.broadcastFrame(e, consumed, seq)
	})
}

// ApplySettings changes scene settings and broadcasts the resulting frame.
func (s *Session) ApplySettings(ctx context.Context, p SettingsPayload, seq int64) error {
	return s.Do(ctx, func(e *engine.Engine) error {
		if err := applySettings(e, p); err != nil {
			return err
		}
		return s.broadcastFrame(e, true, seq)
	})
}

// applySettings validates every setting before changing anything, so a
// rejected request leaves the scene as it was.
func applySettings(e *engine.Engine, p SettingsPayload) error {
	if p.GridSpacing != nil {
		if err := e.Grid().ValidateSpacing(*p.GridSpacing); err != nil {
			return fmt.Errorf("set grid spacing: %w", err)
		}
	}
	if p.GridInterval != "" && !p.GridInterval.Valid() {
		return fmt.Errorf("set grid interval: %w: %q", grid.ErrInvalidInterval, p.GridInterval)
	}

	if p.LoadSample {
		if err := e.LoadSample(); err != nil {
			return fmt.Errorf("load sample: %w", err)
		}
	}
	if p.ResetView {
		e.ResetView()
	}
	if p.GridSpacing != nil {
		if err := e.SetGridSpacing(*p.GridSpacing); err != nil {
			return err
		}
	}
	if p.GridInterval != "" {
		if err := e.SetGridInterval(p.GridInterval); err != nil {
			return err
		}
	}
	return nil
}

func buildFrame(e *engine.Engine, consumed bool) (*FramePayload, error) {
	cmds, err := e.Commands()
	if err != nil {
		return nil, fmt.Errorf("record frame: %w", err)
	}
	return &FramePayload{Consumed: consumed, State: e.Snapshot(), Commands: cmds}, nil
}

func (s *Session) broadcastFrame(e *engine.Engine, consumed bool, seq int64) error {
	frame, err := buildFrame(e, consumed)
	if err != nil {
		return err
	}
	msg, err := newMessage(TypeFrame, seq, frame)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	s.broadcast(msg)
	return nil
}

func (s *Session) broadcast(msg *Message) {
	msg.SessionID = s.ID

	s.mu.RLock()
	clients := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func (s *Session) addClient(c *Client) {
	s.mu.Lock()
	s.clients[c.ClientID] = c
	s.mu.Unlock()
}

// removeClient reports whether the client was still registered.
func (s *Session) removeClient(c *Client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.ClientID]; !ok {
		return false
	}
	delete(s.clients, c.ClientID)
	return true
}

// ClientCount returns the number of connected clients.
func (s *Session) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
