// Package ui implements the screen-space toolbar drawn over the scene.
package ui

import (
	"fmt"
	"math"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/render"
)

const (
	ToolSelect = "select"
	ToolDelete = "delete"

	// Height is the default toolbar height in screen units.
	Height = 32.0
)

var (
	background    = render.RGB(244, 244, 244)
	selectedColor = render.RGB(255, 0, 255)
	pressedColor  = render.RGB(77, 77, 77)
)

// Button is a toggle button hit-tested by its rectangle.
type Button struct {
	ID       string
	Width    float64
	Height   float64
	Color    render.Color
	Pos      geom.Vec2
	Selected bool
	Pressed  bool
}

// NewButton creates a button; its position is assigned by the toolbar.
func NewButton(id string, width, height float64, c render.Color) *Button {
	return &Button{ID: id, Width: width, Height: height, Color: c}
}

// Rect returns the button's screen rectangle.
func (b *Button) Rect() geom.Rect {
	return geom.Rect{X: b.Pos.X, Y: b.Pos.Y, Width: b.Width, Height: b.Height}
}

// HitTest reports whether p lies on the button, edges included.
func (b *Button) HitTest(p geom.Vec2) bool {
	return b.Rect().Contains(p)
}

// Click toggles the button's selected state.
func (b *Button) Click() {
	b.Selected = !b.Selected
}

func (b *Button) Draw(c render.Canvas) error {
	col := b.Color
	switch {
	case b.Selected:
		col = selectedColor
	case b.Pressed:
		col = pressedColor
	}
	return render.FillRect(c, b.Rect(), col)
}

// Toolbar lays buttons out left to right, vertically centred in the bar.
type Toolbar struct {
	Pos     geom.Vec2
	Width   float64
	Height  float64
	Margin  float64
	Buttons []*Button
}

// NewToolbar creates a toolbar and positions its buttons.
func NewToolbar(pos geom.Vec2, width, height float64, buttons ...*Button) *Toolbar {
	t := &Toolbar{Pos: pos, Width: width, Height: height, Buttons: buttons}
	t.layout()
	return t
}

// DefaultToolbar returns the editor toolbar with the select and delete tools.
func DefaultToolbar(width float64) *Toolbar {
	return NewToolbar(geom.V(0, 0), width, Height,
		NewButton(ToolSelect, 32, 32, render.RGB(255, 0, 0)),
		NewButton(ToolDelete, 32, 32, render.RGB(0, 255, 0)),
	)
}

func (t *Toolbar) layout() {
	tallest := 0.0
	for _, b := range t.Buttons {
		tallest = max(tallest, b.Height)
	}

	x := t.Pos.X
	y := t.Pos.Y + math.Floor((t.Height-tallest)/2)
	for _, b := range t.Buttons {
		b.Pos = geom.V(x, y)
		x += b.Width + t.Margin
	}
}

// SetWidth stretches the bar to a new viewport width.
func (t *Toolbar) SetWidth(width float64) {
	t.Width = width
}

// HitTest returns the button under p, or nil.
func (t *Toolbar) HitTest(p geom.Vec2) *Button {
	for _, b := range t.Buttons {
		if b.HitTest(p) {
			return b
		}
	}
	return nil
}

// Button returns the button with the given id, or nil.
func (t *Toolbar) Button(id string) *Button {
	for _, b := range t.Buttons {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Active reports whether the tool with the given id is toggled on.
func (t *Toolbar) Active(id string) bool {
	b := t.Button(id)
	return b != nil && b.Selected
}

func (t *Toolbar) Draw(c render.Canvas) error {
	if err := render.FillRect(c, geom.Rect{X: t.Pos.X, Y: t.Pos.Y, Width: t.Width, Height: t.Height}, background); err != nil {
		return fmt.Errorf("draw toolbar: %w", err)
	}
	for _, b := range t.Buttons {
		if err := b.Draw(c); err != nil {
			return fmt.Errorf("draw button %s: %w", b.ID, err)
		}
	}
	return nil
}
