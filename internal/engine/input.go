package engine

import (
	"fmt"
	"math"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/ui"
)

// Handle dispatches an event to its handler and reports whether it was
// consumed.
func (e *Engine) Handle(ev Event) bool {
	pos := geom.V(ev.X, ev.Y)
	switch ev.Type {
	case EventPointerDown:
		return e.PointerDown(ev.Button, pos)
	case EventPointerUp:
		return e.PointerUp(ev.Button, pos)
	case EventPointerMove:
		return e.PointerMove(pos, ev.Buttons)
	case EventScroll:
		return e.Scroll(ev.DeltaY)
	case EventResize:
		return e.ViewportResized(ev.Width, ev.Height)
	default:
		e.log.Warn("unknown event type", "type", ev.Type)
		return false
	}
}

// toWorld maps a screen point into world space. A degenerate view transform
// is logged and reported as a miss so no NaN reaches the scene.
func (e *Engine) toWorld(screen geom.Vec2) (geom.Vec2, bool) {
	world, err := e.transform.ScreenToWorld(screen)
	if err != nil {
		e.log.Warn("pointer mapping failed", "error", err, "x", screen.X, "y", screen.Y)
		return geom.Vec2{}, false
	}
	return world, true
}

// PointerDown handles a button press at a screen position. Presses on a
// toolbar button go to the toolbar. A primary press on a shape selects it
// (or deletes it while the delete tool is active); a primary press on empty
// canvas starts panning.
func (e *Engine) PointerDown(button Button, screen geom.Vec2) bool {
	switch button {
	case ButtonPrimary:
		if b := e.toolbar.HitTest(screen); b != nil {
			b.Click()
			b.Pressed = true
			e.pressedButton = b
			e.log.Debug("toolbar click", "tool", b.ID, "active", b.Selected)
			return true
		}

		world, ok := e.toWorld(screen)
		if !ok {
			return false
		}

		e.drag = nil
		if id, hit := e.HitTest(world); hit {
			if e.toolbar.Active(ui.ToolDelete) {
				e.RemoveShape(id)
				e.log.Debug("shape deleted", "shape", id)
				return true
			}
			e.selected = id
			e.state = StateSelected
			e.log.Debug("shape selected", "shape", id)
			return true
		}

		e.selected = ""
		e.panAnchor = screen
		e.state = StatePanning
		return true

	case ButtonSecondary:
		e.secondaryDown = true
		return true
	}
	return false
}

// PointerMove handles pointer motion. With the primary button held it drags
// the selected shape in world space or pans the view in screen space.
func (e *Engine) PointerMove(screen geom.Vec2, held Buttons) bool {
	if !held.Has(ButtonPrimary) {
		return false
	}

	switch e.state {
	case StateSelected, StateDragging:
		world, ok := e.toWorld(screen)
		if !ok {
			return false
		}

		if e.drag == nil {
			e.drag = &drag{anchor: world, target: e.selected}
			e.state = StateDragging
			return true
		}

		s := e.Shape(e.drag.target)
		if s == nil {
			e.clearInteraction()
			return false
		}
		s.Translate(world.Sub(e.drag.anchor))
		e.drag.anchor = world
		return true

	case StatePanning:
		e.transform.ApplyPan(screen.Sub(e.panAnchor))
		e.panAnchor = screen
		return true
	}
	return false
}

// PointerUp handles a button release. Releasing the primary button ends any
// selection, drag or pan. A secondary press+release spawns a polygon and a
// circle at the release position.
func (e *Engine) PointerUp(button Button, screen geom.Vec2) bool {
	switch button {
	case ButtonPrimary:
		if e.pressedButton != nil {
			e.pressedButton.Pressed = false
			e.pressedButton = nil
			return true
		}
		wasActive := e.state != StateIdle
		e.clearInteraction()
		return wasActive

	case ButtonSecondary:
		if !e.secondaryDown {
			return false
		}
		e.secondaryDown = false

		world, ok := e.toWorld(screen)
		if !ok {
			return false
		}
		if err := e.SpawnPair(world); err != nil {
			e.log.Warn("spawn shapes", "error", err)
			return false
		}
		return true
	}
	return false
}

// Scroll zooms the view.
func (e *Engine) Scroll(yOffset float64) bool {
	e.transform.OnScroll(yOffset)
	return true
}

// ViewportResized propagates a new viewport size to the transform, the grid
// and the toolbar. Empty viewports (minimised windows) are ignored, as are
// sizes above the configured maximum and sizes the grid cannot cover at its
// current spacing. A rejected size leaves everything unchanged.
func (e *Engine) ViewportResized(width, height float64) bool {
	if err := checkViewport(width, height, e.maxViewport); err != nil {
		if width > 0 && height > 0 {
			e.log.Warn("viewport resize rejected", "error", err)
		}
		return false
	}
	if err := e.grid.SetViewportSize(width, height); err != nil {
		e.log.Warn("viewport resize rejected", "error", err)
		return false
	}
	e.transform.SetViewportSize(width, height)
	e.toolbar.SetWidth(width)
	return true
}

func checkViewport(width, height, limit float64) error {
	ok := func(v float64) bool {
		return v > 0 && !math.IsInf(v, 0) && (limit <= 0 || v <= limit)
	}
	if !ok(width) || !ok(height) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidViewport, width, height)
	}
	return nil
}

func (e *Engine) clearInteraction() {
	e.state = StateIdle
	e.selected = ""
	e.drag = nil
	e.panAnchor = geom.Vec2{}
}
