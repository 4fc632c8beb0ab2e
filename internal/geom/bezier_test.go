package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x, y, size float64) BezierPath {
	c := BezierContour{Closed: true}
	c.Add(Pt(V(x, y)))
	c.Add(Pt(V(x+size, y)))
	c.Add(Pt(V(x+size, y+size)))
	c.Add(Pt(V(x, y+size)))
	return BezierPath{Contours: []BezierContour{c}}
}

func curvedAggregate() BezierPathA {
	c := BezierContour{Closed: true}
	c.Add(CurvePt(V(10, 0), V(10, -5), V(10, 5)))
	c.Add(Pt(V(0, 10)))
	c.Add(CurvePt(V(-10, 0), V(-10, 5), V(-10, -5)))

	line := BezierContour{}
	line.Add(Pt(V(-50, 0)))
	line.Add(Pt(V(50, 0)))

	return BezierPathA{Paths: []BezierPath{
		{Contours: []BezierContour{c}},
		{Contours: []BezierContour{line}},
	}}
}

func TestTranslateZeroIsIdentity(t *testing.T) {
	a := curvedAggregate()
	before := a.Clone()

	a.Translate(V(0, 0))

	assert.Equal(t, before, a)
}

func TestTranslateMovesPointsAndHandles(t *testing.T) {
	a := curvedAggregate()
	delta := V(3, -4)

	a.Translate(delta)

	c := a.Paths[0].Contours[0]
	assert.True(t, c.Closed)
	assert.Equal(t, V(13, -4), c.Points[0].Pos)
	assert.Equal(t, V(13, -9), *c.Points[0].Control1)
	assert.Equal(t, V(13, 1), *c.Points[0].Control2)
	assert.Nil(t, c.Points[1].Control1)
	assert.Nil(t, c.Points[1].Control2)
	assert.Equal(t, V(3, 6), c.Points[1].Pos)

	line := a.Paths[1].Contours[0]
	assert.False(t, line.Closed)
	assert.Equal(t, V(-47, -4), line.Points[0].Pos)
	assert.Equal(t, V(53, -4), line.Points[1].Pos)
}

func TestTranslateIsLinear(t *testing.T) {
	a := curvedAggregate()
	b := curvedAggregate()

	a.Translate(V(1, 2))
	a.Translate(V(-4, 7))
	b.Translate(V(-3, 9))

	assert.Equal(t, b, a)
}

func TestTranslateEmptyAggregate(t *testing.T) {
	var a BezierPathA
	a.Translate(V(5, 5))
	assert.True(t, a.IsEmpty())
	assert.False(t, a.Contains(V(0, 0)))
}

func TestCloneDoesNotShareHandles(t *testing.T) {
	a := curvedAggregate()
	b := a.Clone()

	*b.Paths[0].Contours[0].Points[0].Control1 = V(99, 99)

	assert.Equal(t, V(10, -5), *a.Paths[0].Contours[0].Points[0].Control1)
}

func TestBounds(t *testing.T) {
	p := square(1, 2, 3)
	assert.Equal(t, Rect{X: 1, Y: 2, Width: 3, Height: 3}, p.Bounds())

	a := curvedAggregate()
	b := a.Paths[0].Bounds()
	assert.Equal(t, -10.0, b.X)
	assert.Equal(t, -5.0, b.Y)
	assert.Equal(t, 20.0, b.Width)
	assert.Equal(t, 15.0, b.Height)

	assert.Equal(t, Rect{}, BezierPath{}.Bounds())
}

func TestCommandsStraightClosed(t *testing.T) {
	cmds := square(0, 0, 10).Commands()
	require.Len(t, cmds, 6)

	assert.Equal(t, OpMoveTo, cmds[0].Op)
	assert.Equal(t, []Vec2{V(0, 0)}, cmds[0].Points)
	assert.Equal(t, OpLineTo, cmds[1].Op)
	assert.Equal(t, []Vec2{V(10, 0)}, cmds[1].Points)
	assert.Equal(t, OpLineTo, cmds[4].Op)
	assert.Equal(t, []Vec2{V(0, 0)}, cmds[4].Points)
	assert.Equal(t, OpClose, cmds[5].Op)
}

func TestCommandsCurvedEdges(t *testing.T) {
	cmds := curvedAggregate().Paths[0].Commands()
	require.Len(t, cmds, 5)

	// 0 -> 1: point 1 has no control1, so a line.
	assert.Equal(t, OpLineTo, cmds[1].Op)
	// 1 -> 2: point 1 has no control2, so a line.
	assert.Equal(t, OpLineTo, cmds[2].Op)
	// 2 -> 0: both handles present.
	assert.Equal(t, OpCubicTo, cmds[3].Op)
	assert.Equal(t, []Vec2{V(-10, -5), V(10, -5), V(10, 0)}, cmds[3].Points)
	assert.Equal(t, OpClose, cmds[4].Op)
}

func TestCommandsOpenLine(t *testing.T) {
	cmds := curvedAggregate().Paths[1].Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, OpMoveTo, cmds[0].Op)
	assert.Equal(t, OpLineTo, cmds[1].Op)
	assert.Equal(t, []Vec2{V(50, 0)}, cmds[1].Points)
}

func TestCommandsSinglePoint(t *testing.T) {
	c := BezierContour{Closed: true}
	c.Add(Pt(V(1, 1)))
	assert.Empty(t, c.Commands())
}

func TestPathOpText(t *testing.T) {
	b, err := OpCubicTo.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "C", string(b))
	assert.Equal(t, "PathOp(9)", PathOp(9).String())
}
