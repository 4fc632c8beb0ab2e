package engine

import "fmt"

// Button identifies a pointer button, numbered like DOM MouseEvent.button.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonAuxiliary Button = 1
	ButtonSecondary Button = 2
)

// Mask returns the held-buttons bit for b.
func (b Button) Mask() Buttons {
	switch b {
	case ButtonPrimary:
		return HeldPrimary
	case ButtonSecondary:
		return HeldSecondary
	case ButtonAuxiliary:
		return HeldAuxiliary
	}
	return 0
}

// Buttons is the set of held buttons, laid out like DOM MouseEvent.buttons.
type Buttons uint8

const (
	HeldPrimary   Buttons = 1 << 0
	HeldSecondary Buttons = 1 << 1
	HeldAuxiliary Buttons = 1 << 2
)

// Has reports whether button b is held.
func (bs Buttons) Has(b Button) bool {
	m := b.Mask()
	return m != 0 && bs&m != 0
}

// EventType names an input event.
type EventType string

const (
	EventPointerDown EventType = "pointerdown"
	EventPointerUp   EventType = "pointerup"
	EventPointerMove EventType = "pointermove"
	EventScroll      EventType = "scroll"
	EventResize      EventType = "resize"
)

// Event is a discrete input event from the windowing layer. Positions are
// in screen space.
type Event struct {
	Type    EventType `json:"type"`
	Button  Button    `json:"button,omitempty"`
	Buttons Buttons   `json:"buttons,omitempty"`
	X       float64   `json:"x,omitempty"`
	Y       float64   `json:"y,omitempty"`
	DeltaY  float64   `json:"deltaY,omitempty"`
	Width   float64   `json:"width,omitempty"`
	Height  float64   `json:"height,omitempty"`
}

func (ev Event) String() string {
	switch ev.Type {
	case EventScroll:
		return fmt.Sprintf("%s(%g)", ev.Type, ev.DeltaY)
	case EventResize:
		return fmt.Sprintf("%s(%gx%g)", ev.Type, ev.Width, ev.Height)
	default:
		return fmt.Sprintf("%s(button=%d buttons=%d at %g,%g)", ev.Type, ev.Button, ev.Buttons, ev.X, ev.Y)
	}
}

// PointerState is the interaction state of the scene controller.
type PointerState int

const (
	StateIdle PointerState = iota
	StateSelected
	StateDragging
	StatePanning
)

func (s PointerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StateDragging:
		return "dragging"
	case StatePanning:
		return "panning"
	default:
		return fmt.Sprintf("PointerState(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s PointerState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *PointerState) UnmarshalText(text []byte) error {
	for _, st := range []PointerState{StateIdle, StateSelected, StateDragging, StatePanning} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown pointer state %q", text)
}
