package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/sketchpad/internal/geom"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", RGB(255, 0, 0)},
		{"#0F0", RGB(0, 255, 0)},
		{"#00000080", Color{A: 0x80}},
		{"white", RGB(255, 255, 255)},
		{" CornflowerBlue ", RGB(100, 149, 237)},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#12", "#ggg", "notacolor", "#1234567"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrInvalidColor, bad)
	}
}

func TestColorHexAndDecode(t *testing.T) {
	assert.Equal(t, "#0a0b0c", RGB(10, 11, 12).Hex())
	assert.Equal(t, "#0a0b0c0d", Color{10, 11, 12, 13}.Hex())

	var c Color
	require.NoError(t, c.Decode("navy"))
	assert.Equal(t, RGB(0, 0, 128), c)
	assert.Error(t, c.Decode("nope"))
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Save()
	r.Concat(geom.Translate(5, 6))

	cmds := []geom.PathCommand{
		{Op: geom.OpMoveTo, Points: []geom.Vec2{geom.V(0, 0)}},
		{Op: geom.OpLineTo, Points: []geom.Vec2{geom.V(1, 0)}},
	}
	red := RGB(255, 0, 0)
	require.NoError(t, r.DrawPath(cmds, PathStyle{Fill: red.Ptr(), Stroke: &Stroke{Color: RGB(0, 0, 255), Width: 3}}))
	require.NoError(t, r.DrawPath(nil, PathStyle{Fill: red.Ptr()}))
	r.Restore()
	require.NoError(t, FillRect(r, geom.Rect{X: 1, Y: 2, Width: 3, Height: 4}, red))
	require.NoError(t, r.DrawCircle(geom.V(7, 8), 9, red))

	got := r.Commands()
	require.Len(t, got, 6)
	ops := make([]string, len(got))
	for i, c := range got {
		ops[i] = c.Op
	}
	assert.Equal(t, []string{"save", "transform", "path", "restore", "rect", "circle"}, ops)
	assert.Equal(t, []float64{1, 0, 0, 1, 5, 6}, got[1].Transform)
	assert.Equal(t, "#ff0000", got[2].Fill)
	assert.Equal(t, "#0000ff", got[2].Stroke)
	assert.Equal(t, 3.0, got[2].StrokeWidth)

	js, err := r.JSON()
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	path := decoded[2]["path"].([]any)
	assert.Equal(t, "M", path[0].(map[string]any)["op"])

	r.Reset()
	js, err = r.JSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", js)
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	bg := RGB(0, 0, 0)

	err := EncodePNG(&buf, 100, 100, bg, func(c Canvas) error {
		c.Save()
		defer c.Restore()
		c.Concat(geom.Translate(50, 50))
		return FillRect(c, geom.Rect{X: 0, Y: 0, Width: 40, Height: 40}, RGB(255, 0, 0))
	})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())

	r, g, _, _ := img.At(70, 70).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Less(t, g>>8, uint32(50))

	r, _, _, _ = img.At(20, 20).RGBA()
	assert.Less(t, r>>8, uint32(50))
}

func TestEncodePNGDrawError(t *testing.T) {
	boom := errors.New("boom")
	var buf bytes.Buffer

	err := EncodePNG(&buf, 10, 10, RGB(0, 0, 0), func(Canvas) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, buf.Len())

	err = EncodePNG(&buf, 0, 10, RGB(0, 0, 0), func(Canvas) error { return nil })
	assert.Error(t, err)
}
