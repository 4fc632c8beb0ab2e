// Package shape builds drawable shapes from parametric descriptions.
package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/render"
	"github.com/inamate/sketchpad/internal/typeid"
)

// ErrInvalidShape is returned for parameters outside a factory's domain.
var ErrInvalidShape = errors.New("invalid shape")

// circleMagic offsets control handles for the 4-cubic circle approximation
// (tinaja.com/glib/ellipse4.pdf).
const circleMagic = 0.551784

var (
	DefaultStroke          = render.RGB(0, 0, 255)
	DefaultStrokeThickness = 3.0
)

// ID identifies a shape within a scene.
type ID string

// Shape is a styled bezier figure.
type Shape struct {
	id   ID
	path geom.BezierPathA

	Stroke          render.Color
	StrokeThickness float64
	Fill            render.Color
}

func newShape(path geom.BezierPathA, fill render.Color) *Shape {
	return &Shape{
		id:              ID(typeid.NewShapeID()),
		path:            path,
		Stroke:          DefaultStroke,
		StrokeThickness: DefaultStrokeThickness,
		Fill:            fill,
	}
}

// NewPolygon places sides vertices evenly on a circle of radius around
// origin, starting at the top (-π/2), joined by straight edges.
func NewPolygon(origin geom.Vec2, radius float64, sides int, fill render.Color) (*Shape, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w: polygon needs at least 3 sides, got %d", ErrInvalidShape, sides)
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: polygon radius %g", ErrInvalidShape, radius)
	}

	contour := geom.BezierContour{Closed: true}
	ang := -math.Pi / 2
	step := 2 * math.Pi / float64(sides)
	for i := 0; i < sides; i++ {
		p := geom.V(math.Cos(ang)*radius+origin.X, math.Sin(ang)*radius+origin.Y)
		contour.Add(geom.Pt(p))
		ang += step
	}

	var path geom.BezierPath
	path.AddContour(contour)
	return newShape(geom.BezierPathA{Paths: []geom.BezierPath{path}}, fill), nil
}

// NewCircle approximates a circle with four cubics through the cardinal
// points in the order right, bottom, left, top.
func NewCircle(center geom.Vec2, radius float64, fill render.Color) (*Shape, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: circle radius %g", ErrInvalidShape, radius)
	}

	k := circleMagic * radius
	p1 := center.Add(geom.V(radius, 0))
	p2 := center.Add(geom.V(0, radius))
	p3 := center.Add(geom.V(-radius, 0))
	p4 := center.Add(geom.V(0, -radius))

	contour := geom.BezierContour{Closed: true}
	contour.Add(geom.CurvePt(p1, p1.Add(geom.V(0, -k)), p1.Add(geom.V(0, k))))
	contour.Add(geom.CurvePt(p2, p2.Add(geom.V(k, 0)), p2.Add(geom.V(-k, 0))))
	contour.Add(geom.CurvePt(p3, p3.Add(geom.V(0, k)), p3.Add(geom.V(0, -k))))
	contour.Add(geom.CurvePt(p4, p4.Add(geom.V(-k, 0)), p4.Add(geom.V(k, 0))))

	var path geom.BezierPath
	path.AddContour(contour)
	return newShape(geom.BezierPathA{Paths: []geom.BezierPath{path}}, fill), nil
}

func (s *Shape) ID() ID {
	return s.id
}

// Path returns a copy of the shape's geometry.
func (s *Shape) Path() geom.BezierPathA {
	return s.path.Clone()
}

// Bounds returns the control-hull bounds of the shape.
func (s *Shape) Bounds() geom.Rect {
	return s.path.Bounds()
}

// Contains reports whether a world point lies inside the shape.
func (s *Shape) Contains(p geom.Vec2) bool {
	return s.path.Contains(p)
}

// Translate moves the shape by delta.
func (s *Shape) Translate(delta geom.Vec2) {
	s.path.Translate(delta)
}

// Style returns the paint used for the shape: fill, then stroke.
func (s *Shape) Style() render.PathStyle {
	return render.PathStyle{
		Fill:   s.Fill.Ptr(),
		Stroke: &render.Stroke{Color: s.Stroke, Width: s.StrokeThickness},
	}
}

// Draw paints each constituent path of the shape.
func (s *Shape) Draw(c render.Canvas) error {
	style := s.Style()
	for _, p := range s.path.Paths {
		if err := c.DrawPath(p.Commands(), style); err != nil {
			return fmt.Errorf("draw shape %s: %w", s.id, err)
		}
	}
	return nil
}
