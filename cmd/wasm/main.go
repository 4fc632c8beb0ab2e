//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/grid"
)

var eng *engine.Engine

func main() {
	var err error
	eng, err = engine.NewEngine(engine.DefaultOptions())
	if err != nil {
		panic(err)
	}

	// Create the engine API object
	sketchpad := js.Global().Get("Object").New()

	// --- Input (frontend → engine) ---
	sketchpad.Set("pointerDown", js.FuncOf(pointerDown))
	sketchpad.Set("pointerUp", js.FuncOf(pointerUp))
	sketchpad.Set("pointerMove", js.FuncOf(pointerMove))
	sketchpad.Set("scroll", js.FuncOf(scroll))
	sketchpad.Set("resize", js.FuncOf(resize))
	sketchpad.Set("handleEvent", js.FuncOf(handleEvent))

	// --- Settings ---
	sketchpad.Set("setGridSpacing", js.FuncOf(setGridSpacing))
	sketchpad.Set("setGridInterval", js.FuncOf(setGridInterval))
	sketchpad.Set("resetView", js.FuncOf(resetView))
	sketchpad.Set("loadSample", js.FuncOf(loadSample))

	// --- Queries (frontend ← engine) ---
	sketchpad.Set("render", js.FuncOf(render))
	sketchpad.Set("hitTest", js.FuncOf(hitTest))
	sketchpad.Set("getState", js.FuncOf(getState))

	js.Global().Set("sketchpadEngine", sketchpad)

	// Signal that WASM is ready
	js.Global().Set("sketchpadWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func point(args []js.Value, at int) (geom.Vec2, bool) {
	if len(args) < at+2 {
		return geom.Vec2{}, false
	}
	return geom.V(args[at].Float(), args[at+1].Float()), true
}

func errorValue(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

// --- Input Handlers ---

// pointerDown(button, x, y) -> consumed
func pointerDown(this js.Value, args []js.Value) interface{} {
	p, ok := point(args, 1)
	if !ok {
		return false
	}
	return eng.PointerDown(engine.Button(args[0].Int()), p)
}

// pointerUp(button, x, y) -> consumed
func pointerUp(this js.Value, args []js.Value) interface{} {
	p, ok := point(args, 1)
	if !ok {
		return false
	}
	return eng.PointerUp(engine.Button(args[0].Int()), p)
}

// pointerMove(x, y, buttons) -> consumed
func pointerMove(this js.Value, args []js.Value) interface{} {
	p, ok := point(args, 0)
	if !ok || len(args) < 3 {
		return false
	}
	return eng.PointerMove(p, engine.Buttons(args[2].Int()))
}

func scroll(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return false
	}
	return eng.Scroll(args[0].Float())
}

func resize(this js.Value, args []js.Value) interface{} {
	size, ok := point(args, 0)
	if !ok {
		return false
	}
	return eng.ViewportResized(size.X, size.Y)
}

// handleEvent takes an event as a JSON string.
func handleEvent(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return false
	}
	var ev engine.Event
	if err := json.Unmarshal([]byte(args[0].String()), &ev); err != nil {
		return errorValue(err)
	}
	return eng.Handle(ev)
}

// --- Settings ---

func setGridSpacing(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := eng.SetGridSpacing(args[0].Float()); err != nil {
		return errorValue(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setGridInterval(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := eng.SetGridInterval(grid.Interval(args[0].String())); err != nil {
		return errorValue(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func resetView(this js.Value, args []js.Value) interface{} {
	eng.ResetView()
	return nil
}

func loadSample(this js.Value, args []js.Value) interface{} {
	if err := eng.LoadSample(); err != nil {
		return errorValue(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Queries ---

// render returns the frame's draw commands as JSON.
func render(this js.Value, args []js.Value) interface{} {
	out, err := eng.Render()
	if err != nil {
		return "[]"
	}
	return out
}

// hitTest(x, y) takes screen coordinates and returns the topmost shape id,
// or null.
func hitTest(this js.Value, args []js.Value) interface{} {
	p, ok := point(args, 0)
	if !ok {
		return nil
	}
	tr := eng.Transform()
	world, err := tr.ScreenToWorld(p)
	if err != nil {
		return nil
	}
	id, hit := eng.HitTest(world)
	if !hit {
		return nil
	}
	return string(id)
}

func getState(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(eng.Snapshot())
	if err != nil {
		return "{}"
	}
	return string(data)
}
