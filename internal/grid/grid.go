// Package grid generates the infinite background line grid.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/render"
)

var (
	// ErrInvalidSpacing is returned for non-positive or non-finite spacing, and
	// for spacing that would exceed MaxLines across the viewport.
	ErrInvalidSpacing  = errors.New("grid spacing must be a positive finite number")
	ErrInvalidInterval = errors.New("unknown grid interval")
)

// Interval labels the period one grid cell represents.
type Interval string

const (
	Interval12H Interval = "12H"
	Interval1D  Interval = "1D"
	Interval2D  Interval = "2D"
)

// Valid reports whether i is a known interval.
func (i Interval) Valid() bool {
	switch i {
	case Interval12H, Interval1D, Interval2D:
		return true
	}
	return false
}

// MaxLines bounds the number of lines generated along either axis.
const MaxLines = 10000

// Size is a viewport size in screen units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Regenerate builds the grid for a viewport: one open two-point contour per
// vertical line (path 0) and per horizontal line (path 1). Lines sit on
// multiples of spacing within [-width, width] and [-height, height] so the
// view transform can pan and zoom over them without regenerating.
func Regenerate(viewport Size, spacing float64) (geom.BezierPathA, error) {
	if err := validateSpacing(spacing, viewport); err != nil {
		return geom.BezierPathA{}, err
	}

	w, h := math.Abs(viewport.Width), math.Abs(viewport.Height)

	var vertical geom.BezierPath
	for _, x := range ticks(w, spacing) {
		vertical.AddContour(line(geom.V(x, -h), geom.V(x, h)))
	}

	var horizontal geom.BezierPath
	for _, y := range ticks(h, spacing) {
		horizontal.AddContour(line(geom.V(-w, y), geom.V(w, y)))
	}

	return geom.BezierPathA{Paths: []geom.BezierPath{vertical, horizontal}}, nil
}

// validateSpacing rejects spacing that is not a positive finite number, or
// that would put more than MaxLines lines across the viewport.
func validateSpacing(spacing float64, viewport Size) error {
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidSpacing, spacing)
	}

	extent := max(math.Abs(viewport.Width), math.Abs(viewport.Height))
	if !(2*math.Floor(extent/spacing)+1 <= MaxLines) {
		return fmt.Errorf("%w: %g gives more than %d lines over a %gx%g viewport",
			ErrInvalidSpacing, spacing, MaxLines, viewport.Width, viewport.Height)
	}
	return nil
}

// ticks returns the multiples of spacing in [-extent, extent].
func ticks(extent, spacing float64) []float64 {
	n := int(math.Floor(extent / spacing))
	out := make([]float64, 0, 2*n+1)
	for k := -n; k <= n; k++ {
		out = append(out, float64(k)*spacing)
	}
	return out
}

func line(a, b geom.Vec2) geom.BezierContour {
	return geom.BezierContour{Points: []geom.BezierPoint{geom.Pt(a), geom.Pt(b)}}
}

// Grid caches the generated geometry and regenerates it lazily after its
// spacing, viewport size or interval changes.
type Grid struct {
	spacing  float64
	viewport Size
	interval Interval
	stroke   render.Stroke

	path  geom.BezierPathA
	dirty bool
}

// New creates a grid. It fails with ErrInvalidSpacing for bad spacing.
func New(spacing float64, viewport Size, stroke render.Stroke) (*Grid, error) {
	if err := validateSpacing(spacing, viewport); err != nil {
		return nil, err
	}
	return &Grid{
		spacing:  spacing,
		viewport: viewport,
		interval: Interval1D,
		stroke:   stroke,
		dirty:    true,
	}, nil
}

func (g *Grid) Spacing() float64   { return g.spacing }
func (g *Grid) Viewport() Size     { return g.viewport }
func (g *Grid) Interval() Interval { return g.interval }

// Dirty reports whether the next Path call will regenerate.
func (g *Grid) Dirty() bool {
	return g.dirty
}

// SetSpacing changes the line spacing. Invalid spacing is rejected and the
// grid keeps its last valid geometry.
func (g *Grid) SetSpacing(spacing float64) error {
	if err := validateSpacing(spacing, g.viewport); err != nil {
		return err
	}
	if spacing != g.spacing {
		g.spacing = spacing
		g.dirty = true
	}
	return nil
}

// ValidateSpacing reports whether spacing could be applied to the grid as it
// is now, without changing anything.
func (g *Grid) ValidateSpacing(spacing float64) error {
	return validateSpacing(spacing, g.viewport)
}

// SetViewportSize records a new viewport size. A size the current spacing
// would cover with more than MaxLines lines is rejected and the grid is left
// unchanged.
func (g *Grid) SetViewportSize(width, height float64) error {
	size := Size{Width: width, Height: height}
	if size == g.viewport {
		return nil
	}
	if err := validateSpacing(g.spacing, size); err != nil {
		return err
	}
	g.viewport = size
	g.dirty = true
	return nil
}

// SetInterval changes the interval label.
func (g *Grid) SetInterval(i Interval) error {
	if !i.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidInterval, i)
	}
	if i != g.interval {
		g.interval = i
		g.dirty = true
	}
	return nil
}

// Path returns the grid geometry, regenerating it first if dirty.
func (g *Grid) Path() geom.BezierPathA {
	if g.dirty {
		// Spacing is validated on every write, so this cannot fail.
		path, err := Regenerate(g.viewport, g.spacing)
		if err == nil {
			g.path = path
		}
		g.dirty = false
	}
	return g.path
}

// Draw strokes every grid line. Grid lines are never filled.
func (g *Grid) Draw(c render.Canvas) error {
	style := render.PathStyle{Stroke: &g.stroke}
	for _, p := range g.Path().Paths {
		if err := c.DrawPath(p.Commands(), style); err != nil {
			return fmt.Errorf("draw grid: %w", err)
		}
	}
	return nil
}
