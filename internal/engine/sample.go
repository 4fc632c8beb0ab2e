package engine

import (
	"fmt"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/render"
	"github.com/inamate/sketchpad/internal/shape"
)

// SpawnPair adds a polygon and a circle centred on a world point, the way a
// secondary click does.
func (e *Engine) SpawnPair(world geom.Vec2) error {
	poly, err := shape.NewPolygon(world, e.spawnRadius, e.spawnSides, e.spawnColor)
	if err != nil {
		return fmt.Errorf("spawn polygon: %w", err)
	}
	circle, err := shape.NewCircle(world, e.spawnRadius, e.spawnColor)
	if err != nil {
		return fmt.Errorf("spawn circle: %w", err)
	}

	if err := e.AddShape(poly); err != nil {
		return err
	}
	if err := e.AddShape(circle); err != nil {
		return err
	}
	e.log.Debug("shapes spawned", "polygon", poly.ID(), "circle", circle.ID(), "x", world.X, "y", world.Y)
	return nil
}

type sampleShape struct {
	circle bool
	center geom.Vec2
	radius float64
	sides  int
	fill   string
}

var sampleScene = []sampleShape{
	{center: geom.V(-200, -120), radius: 90, sides: 4, fill: "#e94560"},
	{circle: true, center: geom.V(0, 0), radius: 80, fill: "#0f3460"},
	{center: geom.V(220, 100), radius: 70, sides: 3, fill: "#16c79a"},
	{center: geom.V(180, -180), radius: 60, sides: 6, fill: "gold"},
}

// LoadSample replaces the scene with a small demo composition.
func (e *Engine) LoadSample() error {
	e.ClearShapes()

	for _, def := range sampleScene {
		fill, err := render.ParseColor(def.fill)
		if err != nil {
			return fmt.Errorf("sample fill: %w", err)
		}

		var s *shape.Shape
		if def.circle {
			s, err = shape.NewCircle(def.center, def.radius, fill)
		} else {
			s, err = shape.NewPolygon(def.center, def.radius, def.sides, fill)
		}
		if err != nil {
			return fmt.Errorf("sample shape: %w", err)
		}
		if err := e.AddShape(s); err != nil {
			return err
		}
	}
	return nil
}
