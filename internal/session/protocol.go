package session

import (
	"encoding/json"

	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/grid"
	"github.com/inamate/sketchpad/internal/render"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	// Client to server
	TypeInput    = "input"
	TypeSettings = "settings"

	// Server to client
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
	TypeError   = "error"
)

type WelcomePayload struct {
	SessionID string `json:"sessionId"`
	ClientID  string `json:"clientId"`
}

// FramePayload carries a rendered frame. Consumed reports whether the input
// that produced it was handled by the scene.
type FramePayload struct {
	Consumed bool                 `json:"consumed"`
	State    engine.Snapshot      `json:"state"`
	Commands []render.DrawCommand `json:"commands"`
}

// SettingsPayload changes scene settings. Absent fields are left alone.
type SettingsPayload struct {
	GridSpacing  *float64      `json:"gridSpacing,omitempty"`
	GridInterval grid.Interval `json:"gridInterval,omitempty"`
	ResetView    bool          `json:"resetView,omitempty"`
	LoadSample   bool          `json:"loadSample,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func newMessage(typ string, seq int64, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: typ, Seq: seq, Payload: data}, nil
}
