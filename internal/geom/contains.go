package geom

import "math"

// FlattenTolerance is the maximum distance between a cubic edge and its
// polyline approximation, in path units.
const FlattenTolerance = 0.1

// maxFlattenDepth bounds recursive subdivision of a single cubic.
const maxFlattenDepth = 16

// Flatten returns the contour as a polyline with cubic edges subdivided. For
// a closed contour the last vertex connects back to the first implicitly.
func (c BezierContour) Flatten() []Vec2 {
	n := len(c.Points)
	if n == 0 {
		return nil
	}

	edges := n - 1
	if c.Closed {
		edges = n
	}

	out := make([]Vec2, 0, n)
	out = append(out, c.Points[0].Pos)
	for i := 0; i < edges; i++ {
		j := (i + 1) % n
		end := c.Points[j].Pos
		if c.edgeIsCurve(i, j) {
			flattenCubic(c.Points[i].Pos, *c.Points[i].Control2, *c.Points[j].Control1, end, 0, &out)
		} else {
			out = append(out, end)
		}
	}

	// The closing edge lands back on the first vertex; drop the duplicate.
	if c.Closed && len(out) > 1 {
		out = out[:len(out)-1]
	}
	return out
}

// flattenCubic recursively subdivides a cubic until both control points lie
// within FlattenTolerance of the chord, appending the end points it produces.
func flattenCubic(p0, p1, p2, p3 Vec2, depth int, out *[]Vec2) {
	dist := math.Max(distanceToSegment(p1, p0, p3), distanceToSegment(p2, p0, p3))
	if dist < FlattenTolerance || depth >= maxFlattenDepth {
		*out = append(*out, p3)
		return
	}

	// de Casteljau split at t=0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	flattenCubic(p0, q0, r0, s, depth+1, out)
	flattenCubic(s, r1, q2, p3, depth+1, out)
}

// distanceToSegment calculates the distance from p to the segment (a, b).
func distanceToSegment(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	abLen2 := ab.Dot(ab)
	if abLen2 < 1e-20 {
		return p.Dist(a)
	}

	t := p.Sub(a).Dot(ab) / abLen2
	switch {
	case t < 0:
		return p.Dist(a)
	case t > 1:
		return p.Dist(b)
	}
	return p.Dist(a.Add(ab.Scale(t)))
}

// Winding returns the nonzero-rule winding number of the closed contours of
// the path around p. Open contours are ignored.
func (p BezierPath) Winding(pt Vec2) int {
	w := 0
	for _, c := range p.Contours {
		if !c.Closed {
			continue
		}
		w += polygonWinding(c.Flatten(), pt)
	}
	return w
}

// polygonWinding counts signed crossings of an implicitly closed polygon
// over the horizontal ray to the right of pt.
func polygonWinding(poly []Vec2, pt Vec2) int {
	n := len(poly)
	if n < 3 {
		return 0
	}

	w := 0
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		if a.Y <= pt.Y {
			if b.Y > pt.Y && cross(a, b, pt) > 0 {
				w++
			}
		} else if b.Y <= pt.Y && cross(a, b, pt) < 0 {
			w--
		}
	}
	return w
}

// cross is positive when pt lies left of the directed edge a -> b.
func cross(a, b, pt Vec2) float64 {
	return (b.X-a.X)*(pt.Y-a.Y) - (pt.X-a.X)*(b.Y-a.Y)
}

// Contains reports whether pt lies inside the filled region of the path
// under the nonzero winding rule.
func (p BezierPath) Contains(pt Vec2) bool {
	if !p.Bounds().Contains(pt) {
		return false
	}
	return p.Winding(pt) != 0
}

// Contains reports whether pt lies inside any constituent path. Empty
// aggregates contain nothing.
func (a BezierPathA) Contains(pt Vec2) bool {
	for _, p := range a.Paths {
		if p.Contains(pt) {
			return true
		}
	}
	return false
}
