package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/gg"
)

// DrawFunc paints one frame onto a canvas.
type DrawFunc func(Canvas) error

// EncodePNG acquires a width x height raster target, clears it to
// background, runs draw, and writes the result as PNG. The target is
// released on every path, including when draw fails.
func EncodePNG(w io.Writer, width, height int, background Color, draw DrawFunc) (err error) {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("encode png: invalid size %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	defer func() {
		if cerr := dc.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("release render target: %w", cerr))
		}
	}()

	dc.ClearWithColor(gg.FromColor(background.NRGBA()))

	if err := draw(NewGGCanvas(dc)); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
