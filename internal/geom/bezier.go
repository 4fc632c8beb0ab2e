package geom

// BezierPoint is a contour vertex. Control1 is the incoming tangent handle,
// Control2 the outgoing handle for the edge to the next point. A nil handle
// is absent.
type BezierPoint struct {
	Pos      Vec2  `json:"pos"`
	Control1 *Vec2 `json:"control1,omitempty"`
	Control2 *Vec2 `json:"control2,omitempty"`
}

// Pt returns a corner point with no control handles.
func Pt(pos Vec2) BezierPoint {
	return BezierPoint{Pos: pos}
}

// CurvePt returns a point with both control handles set.
func CurvePt(pos, control1, control2 Vec2) BezierPoint {
	return BezierPoint{Pos: pos, Control1: &control1, Control2: &control2}
}

func (p *BezierPoint) translate(delta Vec2) {
	p.Pos = p.Pos.Add(delta)
	if p.Control1 != nil {
		c := p.Control1.Add(delta)
		p.Control1 = &c
	}
	if p.Control2 != nil {
		c := p.Control2.Add(delta)
		p.Control2 = &c
	}
}

func (p BezierPoint) clone() BezierPoint {
	out := BezierPoint{Pos: p.Pos}
	if p.Control1 != nil {
		c := *p.Control1
		out.Control1 = &c
	}
	if p.Control2 != nil {
		c := *p.Control2
		out.Control2 = &c
	}
	return out
}

// BezierContour is one boundary made of points joined by straight or cubic
// edges. An open contour with two points is a plain line.
type BezierContour struct {
	Points []BezierPoint `json:"points"`
	Closed bool          `json:"closed"`
}

// Add appends a point to the contour.
func (c *BezierContour) Add(p BezierPoint) {
	c.Points = append(c.Points, p)
}

// Translate moves every point and present control handle by delta.
func (c *BezierContour) Translate(delta Vec2) {
	for i := range c.Points {
		c.Points[i].translate(delta)
	}
}

// Clone returns a deep copy that shares no control handles with c.
func (c BezierContour) Clone() BezierContour {
	out := BezierContour{Closed: c.Closed}
	if c.Points != nil {
		out.Points = make([]BezierPoint, len(c.Points))
		for i, p := range c.Points {
			out.Points[i] = p.clone()
		}
	}
	return out
}

// edgeIsCurve reports whether the edge from point i to point j is a cubic.
func (c BezierContour) edgeIsCurve(i, j int) bool {
	return c.Points[i].Control2 != nil && c.Points[j].Control1 != nil
}

// BezierPath is one connected figure.
type BezierPath struct {
	Contours []BezierContour `json:"contours"`
}

// AddContour appends a contour to the path.
func (p *BezierPath) AddContour(c BezierContour) {
	p.Contours = append(p.Contours, c)
}

// Translate moves every contour of the path by delta.
func (p *BezierPath) Translate(delta Vec2) {
	for i := range p.Contours {
		p.Contours[i].Translate(delta)
	}
}

// Clone returns a deep copy of the path.
func (p BezierPath) Clone() BezierPath {
	out := BezierPath{}
	if p.Contours != nil {
		out.Contours = make([]BezierContour, len(p.Contours))
		for i, c := range p.Contours {
			out.Contours[i] = c.Clone()
		}
	}
	return out
}

// BezierPathA aggregates all paths making up one drawable entity.
type BezierPathA struct {
	Paths []BezierPath `json:"paths"`
}

// AddPath appends a path to the aggregate.
func (a *BezierPathA) AddPath(p BezierPath) {
	a.Paths = append(a.Paths, p)
}

// IsEmpty reports whether the aggregate holds no points at all.
func (a BezierPathA) IsEmpty() bool {
	for _, p := range a.Paths {
		for _, c := range p.Contours {
			if len(c.Points) > 0 {
				return false
			}
		}
	}
	return true
}

// Translate adds delta to every point position and every present control
// handle of every contour of every path.
func (a *BezierPathA) Translate(delta Vec2) {
	for i := range a.Paths {
		a.Paths[i].Translate(delta)
	}
}

// Clone returns a deep copy of the aggregate.
func (a BezierPathA) Clone() BezierPathA {
	out := BezierPathA{}
	if a.Paths != nil {
		out.Paths = make([]BezierPath, len(a.Paths))
		for i, p := range a.Paths {
			out.Paths[i] = p.Clone()
		}
	}
	return out
}

// Bounds returns the bounding box of all points and control handles. The
// control hull of a cubic contains the curve, so this never under-reports.
func (a BezierPathA) Bounds() Rect {
	var r Rect
	for _, p := range a.Paths {
		r = r.Union(p.Bounds())
	}
	return r
}

// Bounds returns the control-hull bounding box of the path.
func (p BezierPath) Bounds() Rect {
	var minX, minY, maxX, maxY float64
	first := true

	include := func(v Vec2) {
		if first {
			minX, maxX = v.X, v.X
			minY, maxY = v.Y, v.Y
			first = false
			return
		}
		minX = min(minX, v.X)
		maxX = max(maxX, v.X)
		minY = min(minY, v.Y)
		maxY = max(maxY, v.Y)
	}

	for _, c := range p.Contours {
		for _, pt := range c.Points {
			include(pt.Pos)
			if pt.Control1 != nil {
				include(*pt.Control1)
			}
			if pt.Control2 != nil {
				include(*pt.Control2)
			}
		}
	}

	if first {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
