// Package render defines the drawing surface the scene renders into and
// provides two implementations: a raster canvas backed by gogpu/gg and a
// recorder that buffers draw commands for remote clients.
package render

import (
	"github.com/inamate/sketchpad/internal/geom"
)

// Stroke describes an outline.
type Stroke struct {
	Color Color   `json:"color"`
	Width float64 `json:"width"`
}

// PathStyle selects how a path is painted. Fill is painted before Stroke;
// a nil entry skips that pass.
type PathStyle struct {
	Fill   *Color  `json:"fill,omitempty"`
	Stroke *Stroke `json:"stroke,omitempty"`
}

// Canvas is the rendering backend. Save, Concat and Restore form a scoped
// transform stack; drawing calls are synchronous.
type Canvas interface {
	Save()
	Restore()
	Concat(m geom.Matrix2D)
	DrawPath(cmds []geom.PathCommand, style PathStyle) error
	DrawRect(x, y, w, h float64, c Color) error
	DrawCircle(center geom.Vec2, radius float64, c Color) error
}

// FillRect draws a filled rect given as a geom.Rect.
func FillRect(c Canvas, r geom.Rect, col Color) error {
	return c.DrawRect(r.X, r.Y, r.Width, r.Height, col)
}
