// Package view holds the pan/zoom view transform that maps world (scene)
// coordinates to screen (viewport) coordinates.
package view

import (
	"fmt"
	"math"

	"github.com/inamate/sketchpad/internal/geom"
)

const (
	// MinScale is the hard zoom floor. Zooming in has no ceiling.
	MinScale = 0.3

	// scrollStep converts a scroll offset into a scale increment.
	scrollStep = 10.0
)

// Transform is the view transform of one scene. It is read every frame to
// build the view matrix and every pointer event to invert it.
type Transform struct {
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	ScaleFactor float64   `json:"scaleFactor"`
	PanOffset   geom.Vec2 `json:"panOffset"`
}

// New returns an unpanned, unzoomed transform for a viewport.
func New(width, height float64) *Transform {
	return &Transform{
		Width:       width,
		Height:      height,
		ScaleFactor: 1,
	}
}

// Matrix composes translate(w/2, h/2) · scale(s) · translate(pan), so a world
// point is panned first, then scaled, then moved to the viewport centre.
func (t *Transform) Matrix() geom.Matrix2D {
	return geom.Translate(t.Width/2, t.Height/2).
		Multiply(geom.Scale(t.ScaleFactor, t.ScaleFactor)).
		Multiply(geom.Translate(t.PanOffset.X, t.PanOffset.Y))
}

// ApplyPan moves the view by a screen-space delta. The delta is divided by
// the current scale so the scene tracks the pointer 1:1. Deltas that would
// make the offset non-finite are ignored.
func (t *Transform) ApplyPan(screenDelta geom.Vec2) {
	pan := t.PanOffset.Add(screenDelta.Div(t.ScaleFactor))
	if !pan.IsFinite() {
		return
	}
	t.PanOffset = pan
}

// OnScroll zooms by yOffset/10, never dropping below MinScale. Offsets that
// would make the scale non-finite are ignored.
func (t *Transform) OnScroll(yOffset float64) {
	s := t.ScaleFactor + yOffset/scrollStep
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return
	}
	t.ScaleFactor = max(MinScale, s)
}

// SetViewportSize updates the viewport dimensions.
func (t *Transform) SetViewportSize(width, height float64) {
	t.Width = width
	t.Height = height
}

// Reset restores the unpanned, unzoomed view.
func (t *Transform) Reset() {
	t.ScaleFactor = 1
	t.PanOffset = geom.Vec2{}
}

// WorldToScreen maps a world point to screen space.
func (t *Transform) WorldToScreen(p geom.Vec2) geom.Vec2 {
	return t.Matrix().TransformPoint(p)
}

// ScreenToWorld maps a screen point to world space through the inverse of
// Matrix. It fails with geom.ErrDegenerateTransform rather than returning NaN.
func (t *Transform) ScreenToWorld(p geom.Vec2) (geom.Vec2, error) {
	inv, err := t.Matrix().Invert()
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("screen to world (scale %g): %w", t.ScaleFactor, err)
	}
	return inv.TransformPoint(p), nil
}
