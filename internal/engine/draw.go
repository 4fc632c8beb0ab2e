package engine

import (
	"fmt"

	"github.com/inamate/sketchpad/internal/render"
)

// Draw paints the scene: the grid and shapes under the view transform, then
// the toolbar in screen space.
func (e *Engine) Draw(c render.Canvas) error {
	if err := e.drawScene(c); err != nil {
		return err
	}
	if err := e.toolbar.Draw(c); err != nil {
		return fmt.Errorf("draw ui: %w", err)
	}
	return nil
}

func (e *Engine) drawScene(c render.Canvas) error {
	c.Save()
	defer c.Restore()

	c.Concat(e.transform.Matrix())

	if err := e.grid.Draw(c); err != nil {
		return err
	}
	for _, s := range e.shapes {
		if err := s.Draw(c); err != nil {
			return err
		}
	}
	return nil
}

// Commands records the current frame as a draw command buffer.
func (e *Engine) Commands() ([]render.DrawCommand, error) {
	rec := render.NewRecorder()
	if err := e.Draw(rec); err != nil {
		return nil, err
	}
	return rec.Commands(), nil
}

// Render records the current frame and serializes it as JSON.
func (e *Engine) Render() (string, error) {
	rec := render.NewRecorder()
	if err := e.Draw(rec); err != nil {
		return "[]", err
	}
	return rec.JSON()
}
