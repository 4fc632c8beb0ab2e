package geom

import "fmt"

// PathOp is a drawing primitive understood by rendering backends.
type PathOp int

const (
	OpMoveTo  PathOp = iota // Start new subpath at Points[0]
	OpLineTo                // Line to Points[0]
	OpCubicTo               // Cubic through controls Points[0], Points[1] to Points[2]
	OpClose                 // Close subpath back to its start
)

func (o PathOp) String() string {
	switch o {
	case OpMoveTo:
		return "M"
	case OpLineTo:
		return "L"
	case OpCubicTo:
		return "C"
	case OpClose:
		return "Z"
	default:
		return fmt.Sprintf("PathOp(%d)", int(o))
	}
}

// MarshalText encodes the op as its SVG-style letter.
func (o PathOp) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// PathCommand is a single drawing primitive with its coordinates.
type PathCommand struct {
	Op     PathOp `json:"op"`
	Points []Vec2 `json:"points,omitempty"`
}

// Commands converts the contour into drawing primitives. The first point is a
// move; each edge i -> i+1 becomes a cubic when P[i].Control2 and
// P[i+1].Control1 are both present, otherwise a line. A closed contour also
// emits the edge back to its first point followed by a close. Contours with
// fewer than two points draw nothing.
func (c BezierContour) Commands() []PathCommand {
	n := len(c.Points)
	if n < 2 {
		return nil
	}

	edges := n - 1
	if c.Closed {
		edges = n
	}

	cmds := make([]PathCommand, 0, edges+2)
	cmds = append(cmds, PathCommand{Op: OpMoveTo, Points: []Vec2{c.Points[0].Pos}})

	for i := 0; i < edges; i++ {
		j := (i + 1) % n
		next := c.Points[j]
		if c.edgeIsCurve(i, j) {
			cmds = append(cmds, PathCommand{
				Op:     OpCubicTo,
				Points: []Vec2{*c.Points[i].Control2, *next.Control1, next.Pos},
			})
		} else {
			cmds = append(cmds, PathCommand{Op: OpLineTo, Points: []Vec2{next.Pos}})
		}
	}

	if c.Closed {
		cmds = append(cmds, PathCommand{Op: OpClose})
	}
	return cmds
}

// Commands converts every contour of the path into one primitive sequence.
func (p BezierPath) Commands() []PathCommand {
	var cmds []PathCommand
	for _, c := range p.Contours {
		cmds = append(cmds, c.Commands()...)
	}
	return cmds
}
