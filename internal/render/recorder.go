package render

import (
	"encoding/json"

	"github.com/inamate/sketchpad/internal/geom"
)

// DrawCommand represents a single drawing operation for a remote client to
// execute, typically on a Canvas2D context. Commands are in painter's order.
type DrawCommand struct {
	Op          string             `json:"op"`                    // "save", "restore", "transform", "path", "rect", "circle"
	Transform   []float64          `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix
	Path        []geom.PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Fill        string             `json:"fill,omitempty"`        // Fill color
	Stroke      string             `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64            `json:"strokeWidth,omitempty"` // Stroke width
	Rect        *geom.Rect         `json:"rect,omitempty"`        // For "rect" ops
	Center      *geom.Vec2         `json:"center,omitempty"`      // For "circle" ops
	Radius      float64            `json:"radius,omitempty"`      // For "circle" ops
}

// Recorder is a Canvas that buffers draw commands instead of rasterising.
type Recorder struct {
	commands []DrawCommand
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Save() {
	r.commands = append(r.commands, DrawCommand{Op: "save"})
}

func (r *Recorder) Restore() {
	r.commands = append(r.commands, DrawCommand{Op: "restore"})
}

func (r *Recorder) Concat(m geom.Matrix2D) {
	r.commands = append(r.commands, DrawCommand{Op: "transform", Transform: m.ToSlice()})
}

func (r *Recorder) DrawPath(cmds []geom.PathCommand, style PathStyle) error {
	if len(cmds) == 0 {
		return nil
	}

	cmd := DrawCommand{Op: "path", Path: cmds}
	if style.Fill != nil {
		cmd.Fill = style.Fill.Hex()
	}
	if style.Stroke != nil {
		cmd.Stroke = style.Stroke.Color.Hex()
		cmd.StrokeWidth = style.Stroke.Width
	}
	r.commands = append(r.commands, cmd)
	return nil
}

func (r *Recorder) DrawRect(x, y, w, h float64, c Color) error {
	r.commands = append(r.commands, DrawCommand{
		Op:   "rect",
		Rect: &geom.Rect{X: x, Y: y, Width: w, Height: h},
		Fill: c.Hex(),
	})
	return nil
}

func (r *Recorder) DrawCircle(center geom.Vec2, radius float64, c Color) error {
	r.commands = append(r.commands, DrawCommand{
		Op:     "circle",
		Center: &center,
		Radius: radius,
		Fill:   c.Hex(),
	})
	return nil
}

// Commands returns the recorded commands.
func (r *Recorder) Commands() []DrawCommand {
	return r.commands
}

// Reset discards all recorded commands.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// JSON serializes the recorded commands.
func (r *Recorder) JSON() (string, error) {
	if len(r.commands) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(r.commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
