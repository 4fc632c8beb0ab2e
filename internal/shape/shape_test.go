package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/render"
	"github.com/inamate/sketchpad/internal/typeid"
)

var red = render.RGB(255, 0, 0)

func TestPolygonSquare(t *testing.T) {
	origin := geom.V(10, 20)
	s, err := NewPolygon(origin, 5, 4, red)
	require.NoError(t, err)

	path := s.Path()
	require.Len(t, path.Paths, 1)
	require.Len(t, path.Paths[0].Contours, 1)
	c := path.Paths[0].Contours[0]
	assert.True(t, c.Closed)
	require.Len(t, c.Points, 4)

	want := []geom.Vec2{
		geom.V(10, 15), // top
		geom.V(15, 20), // right
		geom.V(10, 25), // bottom
		geom.V(5, 20),  // left
	}
	for i, p := range c.Points {
		assert.True(t, p.Pos.Near(want[i], 1e-9), "vertex %d: %v", i, p.Pos)
		assert.Nil(t, p.Control1)
		assert.Nil(t, p.Control2)
	}

	assert.True(t, s.Contains(origin))
	assert.False(t, s.Contains(geom.V(14, 16)))
}

func TestPolygonRejectsBadInput(t *testing.T) {
	_, err := NewPolygon(geom.V(0, 0), 5, 2, red)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = NewPolygon(geom.V(0, 0), 0, 5, red)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = NewCircle(geom.V(0, 0), -1, red)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = NewCircle(geom.V(0, 0), math.NaN(), red)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestCircleLayout(t *testing.T) {
	center := geom.V(3, 4)
	r := 10.0
	s, err := NewCircle(center, r, red)
	require.NoError(t, err)

	c := s.Path().Paths[0].Contours[0]
	assert.True(t, c.Closed)
	require.Len(t, c.Points, 4)

	k := 0.551784 * r
	assert.Equal(t, geom.V(13, 4), c.Points[0].Pos)
	assert.Equal(t, geom.V(13, 4-k), *c.Points[0].Control1)
	assert.Equal(t, geom.V(13, 4+k), *c.Points[0].Control2)
	assert.Equal(t, geom.V(3, 14), c.Points[1].Pos)
	assert.Equal(t, geom.V(3+k, 14), *c.Points[1].Control1)
	assert.Equal(t, geom.V(3-k, 14), *c.Points[1].Control2)
	assert.Equal(t, geom.V(-7, 4), c.Points[2].Pos)
	assert.Equal(t, geom.V(3, -6), c.Points[3].Pos)
	assert.Equal(t, geom.V(3-k, -6), *c.Points[3].Control1)
	assert.Equal(t, geom.V(3+k, -6), *c.Points[3].Control2)

	// Every edge is a cubic.
	for _, cmd := range s.Path().Paths[0].Commands()[1:5] {
		assert.Equal(t, geom.OpCubicTo, cmd.Op)
	}
}

func TestCircleContains(t *testing.T) {
	center := geom.V(-50, 80)
	r := 30.0
	s, err := NewCircle(center, r, red)
	require.NoError(t, err)

	assert.True(t, s.Contains(center))
	assert.False(t, s.Contains(center.Add(geom.V(r*2, 0))))
	assert.True(t, s.Contains(center.Add(geom.V(r-0.5, 0))))
	assert.False(t, s.Contains(center.Add(geom.V(0, r+0.5))))
}

func TestTranslate(t *testing.T) {
	s, err := NewCircle(geom.V(0, 0), 10, red)
	require.NoError(t, err)

	s.Translate(geom.V(100, 0))
	assert.True(t, s.Contains(geom.V(100, 0)))
	assert.False(t, s.Contains(geom.V(0, 0)))

	before := s.Path()
	s.Translate(geom.V(0, 0))
	assert.Equal(t, before, s.Path())
}

func TestPathIsACopy(t *testing.T) {
	s, err := NewPolygon(geom.V(0, 0), 10, 3, red)
	require.NoError(t, err)

	p := s.Path()
	p.Translate(geom.V(1000, 1000))
	assert.True(t, s.Contains(geom.V(0, 0)))
}

func TestIDsAreUnique(t *testing.T) {
	a, err := NewPolygon(geom.V(0, 0), 10, 3, red)
	require.NoError(t, err)
	b, err := NewPolygon(geom.V(0, 0), 10, 3, red)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.NoError(t, typeid.Validate(string(a.ID()), typeid.PrefixShape))
}

func TestDraw(t *testing.T) {
	s, err := NewPolygon(geom.V(0, 0), 10, 6, red)
	require.NoError(t, err)

	rec := render.NewRecorder()
	require.NoError(t, s.Draw(rec))

	cmds := rec.Commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, "#ff0000", cmds[0].Fill)
	assert.Equal(t, "#0000ff", cmds[0].Stroke)
	assert.Equal(t, 3.0, cmds[0].StrokeWidth)
	assert.Len(t, cmds[0].Path, 8) // move, 6 edges, close
}
