package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/grid"
	"github.com/inamate/sketchpad/internal/render"
	"github.com/inamate/sketchpad/internal/shape"
	"github.com/inamate/sketchpad/internal/ui"
	"github.com/inamate/sketchpad/internal/view"
)

var (
	// ErrDuplicateShape is returned when a shape is added twice.
	ErrDuplicateShape = errors.New("shape already in scene")
	// ErrInvalidViewport is returned for a viewport that is empty, non-finite
	// or larger than Options.MaxViewport.
	ErrInvalidViewport = errors.New("invalid viewport size")
)

// Options configures a new Engine.
type Options struct {
	Width       float64
	Height      float64
	GridSpacing float64
	GridStroke  render.Stroke

	// MaxViewport caps both viewport dimensions. Zero means no cap.
	MaxViewport float64

	// Shapes spawned by a secondary click.
	SpawnRadius float64
	SpawnSides  int
	SpawnColor  render.Color

	Logger *slog.Logger
}

// DefaultOptions returns the options used by the editor when nothing is
// configured.
func DefaultOptions() Options {
	return Options{
		Width:       1200,
		Height:      1000,
		GridSpacing: 108,
		GridStroke:  render.Stroke{Color: render.RGB(255, 255, 255), Width: 1},
		MaxViewport: 8192,
		SpawnRadius: 50,
		SpawnSides:  6,
		SpawnColor:  render.RGB(255, 0, 0),
	}
}

// drag tracks an in-progress shape drag in world space.
type drag struct {
	anchor geom.Vec2
	target shape.ID
}

// Engine is the scene controller. It owns the shapes, the grid, the view
// transform and the toolbar, routes pointer events through the view
// transform, and draws everything in order.
//
// An Engine is not safe for concurrent use; one goroutine must own it.
type Engine struct {
	shapes    []*shape.Shape
	transform *view.Transform
	grid      *grid.Grid
	toolbar   *ui.Toolbar

	// Pointer interaction state
	state         PointerState
	selected      shape.ID
	drag          *drag
	panAnchor     geom.Vec2
	pressedButton *ui.Button
	secondaryDown bool

	maxViewport float64

	spawnRadius float64
	spawnSides  int
	spawnColor  render.Color

	log *slog.Logger
}

// NewEngine creates an empty scene.
func NewEngine(opts Options) (*Engine, error) {
	if err := checkViewport(opts.Width, opts.Height, opts.MaxViewport); err != nil {
		return nil, err
	}
	g, err := grid.New(opts.GridSpacing, grid.Size{Width: opts.Width, Height: opts.Height}, opts.GridStroke)
	if err != nil {
		return nil, fmt.Errorf("create grid: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		transform:   view.New(opts.Width, opts.Height),
		grid:        g,
		toolbar:     ui.DefaultToolbar(opts.Width),
		maxViewport: opts.MaxViewport,
		spawnRadius: opts.SpawnRadius,
		spawnSides:  opts.SpawnSides,
		spawnColor:  opts.SpawnColor,
		log:         logger,
	}, nil
}

// --- Shapes ---

// AddShape appends a shape on top of the scene.
func (e *Engine) AddShape(s *shape.Shape) error {
	if e.indexOf(s.ID()) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateShape, s.ID())
	}
	e.shapes = append(e.shapes, s)
	return nil
}

// RemoveShape destroys a shape. Any selection or drag targeting it ends.
func (e *Engine) RemoveShape(id shape.ID) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}

	e.shapes = append(e.shapes[:i], e.shapes[i+1:]...)
	if e.selected == id {
		e.clearInteraction()
	}
	return true
}

// ClearShapes removes every shape.
func (e *Engine) ClearShapes() {
	e.shapes = nil
	e.clearInteraction()
}

// Shape returns the shape with the given id, or nil.
func (e *Engine) Shape(id shape.ID) *shape.Shape {
	if i := e.indexOf(id); i >= 0 {
		return e.shapes[i]
	}
	return nil
}

// Shapes returns the shapes in draw order.
func (e *Engine) Shapes() []*shape.Shape {
	out := make([]*shape.Shape, len(e.shapes))
	copy(out, e.shapes)
	return out
}

func (e *Engine) indexOf(id shape.ID) int {
	for i, s := range e.shapes {
		if s.ID() == id {
			return i
		}
	}
	return -1
}

// HitTest returns the topmost shape containing the world point.
func (e *Engine) HitTest(world geom.Vec2) (shape.ID, bool) {
	for i := len(e.shapes) - 1; i >= 0; i-- {
		if e.shapes[i].Contains(world) {
			return e.shapes[i].ID(), true
		}
	}
	return "", false
}

// --- Settings ---

// SetGridSpacing changes the grid spacing. Invalid spacing is rejected and
// the grid keeps its current geometry.
func (e *Engine) SetGridSpacing(spacing float64) error {
	if err := e.grid.SetSpacing(spacing); err != nil {
		return fmt.Errorf("set grid spacing: %w", err)
	}
	return nil
}

// SetGridInterval changes the grid interval.
func (e *Engine) SetGridInterval(i grid.Interval) error {
	if err := e.grid.SetInterval(i); err != nil {
		return fmt.Errorf("set grid interval: %w", err)
	}
	return nil
}

// ResetView restores the unpanned, unzoomed view.
func (e *Engine) ResetView() {
	e.transform.Reset()
}

// --- Queries ---

// Transform returns a copy of the view transform.
func (e *Engine) Transform() view.Transform {
	return *e.transform
}

// Grid returns the scene grid.
func (e *Engine) Grid() *grid.Grid {
	return e.grid
}

// Toolbar returns the toolbar.
func (e *Engine) Toolbar() *ui.Toolbar {
	return e.toolbar
}

// State returns the pointer interaction state.
func (e *Engine) State() PointerState {
	return e.state
}

// Selected returns the selected shape id, if any.
func (e *Engine) Selected() (shape.ID, bool) {
	return e.selected, e.selected != ""
}

// Snapshot is a serialisable summary of the scene controller.
type Snapshot struct {
	Transform    view.Transform `json:"transform"`
	State        PointerState   `json:"state"`
	Selected     shape.ID       `json:"selected,omitempty"`
	Shapes       int            `json:"shapes"`
	GridSpacing  float64        `json:"gridSpacing"`
	GridInterval grid.Interval  `json:"gridInterval"`
	ActiveTools  []string       `json:"activeTools,omitempty"`
}

// Snapshot returns the current summary.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Transform:    *e.transform,
		State:        e.state,
		Selected:     e.selected,
		Shapes:       len(e.shapes),
		GridSpacing:  e.grid.Spacing(),
		GridInterval: e.grid.Interval(),
	}
	for _, b := range e.toolbar.Buttons {
		if b.Selected {
			snap.ActiveTools = append(snap.ActiveTools, b.ID)
		}
	}
	return snap
}
