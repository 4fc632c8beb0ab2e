package render

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/inamate/sketchpad/internal/geom"
)

// GGCanvas rasterises onto a gogpu/gg drawing context. Paths are filled with
// the nonzero winding rule, matching geom's containment test.
type GGCanvas struct {
	dc *gg.Context
}

// NewGGCanvas wraps an existing gg context.
func NewGGCanvas(dc *gg.Context) *GGCanvas {
	return &GGCanvas{dc: dc}
}

// Context returns the underlying gg context.
func (c *GGCanvas) Context() *gg.Context {
	return c.dc
}

func (c *GGCanvas) Save() {
	c.dc.Push()
}

func (c *GGCanvas) Restore() {
	c.dc.Pop()
}

// Concat post-multiplies the current transform, like CanvasRenderingContext2D.transform.
func (c *GGCanvas) Concat(m geom.Matrix2D) {
	c.dc.Transform(toGG(m))
}

// toGG converts the column-major [a b c d e f] layout to gg's row form.
func toGG(m geom.Matrix2D) gg.Matrix {
	return gg.Matrix{
		A: m[0], B: m[2], C: m[4],
		D: m[1], E: m[3], F: m[5],
	}
}

// lineScale is the factor the current transform applies to lengths. gg
// transforms path points when they are added but not the line width.
func (c *GGCanvas) lineScale() float64 {
	m := c.dc.GetTransform()
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

func (c *GGCanvas) tracePath(cmds []geom.PathCommand) {
	for _, cmd := range cmds {
		switch cmd.Op {
		case geom.OpMoveTo:
			c.dc.MoveTo(cmd.Points[0].X, cmd.Points[0].Y)
		case geom.OpLineTo:
			c.dc.LineTo(cmd.Points[0].X, cmd.Points[0].Y)
		case geom.OpCubicTo:
			p := cmd.Points
			c.dc.CubicTo(p[0].X, p[0].Y, p[1].X, p[1].Y, p[2].X, p[2].Y)
		case geom.OpClose:
			c.dc.ClosePath()
		}
	}
}

func (c *GGCanvas) DrawPath(cmds []geom.PathCommand, style PathStyle) error {
	if len(cmds) == 0 {
		return nil
	}

	if style.Fill != nil {
		c.tracePath(cmds)
		c.dc.SetFillRule(gg.FillRuleNonZero)
		c.dc.SetColor(style.Fill.NRGBA())
		if err := c.dc.Fill(); err != nil {
			return fmt.Errorf("fill path: %w", err)
		}
	}

	if style.Stroke != nil {
		c.tracePath(cmds)
		c.dc.SetLineWidth(style.Stroke.Width * c.lineScale())
		c.dc.SetColor(style.Stroke.Color.NRGBA())
		if err := c.dc.Stroke(); err != nil {
			return fmt.Errorf("stroke path: %w", err)
		}
	}

	return nil
}

func (c *GGCanvas) DrawRect(x, y, w, h float64, col Color) error {
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.SetColor(col.NRGBA())
	if err := c.dc.Fill(); err != nil {
		return fmt.Errorf("fill rect: %w", err)
	}
	return nil
}

func (c *GGCanvas) DrawCircle(center geom.Vec2, radius float64, col Color) error {
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.dc.SetColor(col.NRGBA())
	if err := c.dc.Fill(); err != nil {
		return fmt.Errorf("fill circle: %w", err)
	}
	return nil
}
