//go:build js && wasm

package main

import (
	"encoding/json"
	"errors"
	"syscall/js"

	"github.com/tweakcn/tweakcn/backend-go/internal/canvas"
	"github.com/tweakcn/tweakcn/backend-go/internal/geom"
	"github.com/tweakcn/tweakcn/backend-go/internal/render"
)

var (
	editor   *canvas.Editor
	registry = render.DefaultRegistry()
)

// jsListeners forwards gesture listener changes to optional page callbacks.
type jsListeners struct{}

func (jsListeners) Install() { callGlobal("tweakcnInstallListeners") }
func (jsListeners) Remove()  { callGlobal("tweakcnRemoveListeners") }

func callGlobal(name string) {
	if fn := js.Global().Get(name); fn.Type() == js.TypeFunction {
		fn.Invoke()
	}
}

func main() {
	editor = canvas.NewEditor(canvas.DefaultSettings(), canvas.WithListeners(jsListeners{}))

	api := js.Global().Get("Object").New()

	// --- Commands (frontend → core) ---
	api.Set("mount", js.FuncOf(mount))
	api.Set("unmount", js.FuncOf(unmount))
	api.Set("setContainerSize", js.FuncOf(setContainerSize))
	api.Set("setGridUnit", js.FuncOf(setGridUnit))
	api.Set("setSelectionMode", js.FuncOf(setSelectionMode))
	api.Set("pointerDown", js.FuncOf(pointerDown))
	api.Set("pointerMove", js.FuncOf(pointerMove))
	api.Set("pointerUp", js.FuncOf(pointerUp))
	api.Set("pointerLeave", js.FuncOf(pointerLeave))
	api.Set("resizeStart", js.FuncOf(resizeStart))
	api.Set("wheel", js.FuncOf(wheel))
	api.Set("keyDown", js.FuncOf(keyDown))
	api.Set("drop", js.FuncOf(drop))
	api.Set("dispatch", js.FuncOf(dispatch))
	api.Set("duplicate", js.FuncOf(duplicate))
	api.Set("deleteSelected", js.FuncOf(deleteSelected))
	api.Set("zoomIn", js.FuncOf(zoomIn))
	api.Set("zoomOut", js.FuncOf(zoomOut))
	api.Set("resetZoom", js.FuncOf(resetZoom))
	api.Set("resetPan", js.FuncOf(resetPan))
	api.Set("zoomToFit", js.FuncOf(zoomToFit))
	api.Set("restore", js.FuncOf(restore))

	// --- Queries (frontend ← core) ---
	api.Set("render", js.FuncOf(renderFrame))
	api.Set("hitTest", js.FuncOf(hitTest))
	api.Set("snapshot", js.FuncOf(snapshot))
	api.Set("getSelection", js.FuncOf(getSelection))
	api.Set("getPalette", js.FuncOf(getPalette))

	js.Global().Set("tweakcnCanvas", api)
	js.Global().Set("tweakcnWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorResult(msg string) any {
	return js.ValueOf(map[string]any{"error": msg})
}

func okResult() any {
	return js.ValueOf(map[string]any{"ok": true})
}

// decodeArg unmarshals args[i], a JSON string, into v.
func decodeArg(args []js.Value, i int, v any) error {
	if len(args) <= i || args[i].Type() != js.TypeString {
		return errMissingArg
	}
	return json.Unmarshal([]byte(args[i].String()), v)
}

var errMissingArg = errors.New("missing JSON argument")

func mount(this js.Value, args []js.Value) any {
	editor.Mount()
	return nil
}

func unmount(this js.Value, args []js.Value) any {
	editor.Unmount()
	return nil
}

func setContainerSize(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return nil
	}
	editor.SetContainerSize(geom.Size{Width: args[0].Float(), Height: args[1].Float()})
	return nil
}

func setGridUnit(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return nil
	}
	editor.SetGridUnit(args[0].Float())
	return nil
}

func setSelectionMode(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return nil
	}
	editor.SetSelectionMode(args[0].Bool())
	return nil
}

func pointerHandler(fn func(canvas.PointerEvent)) func(js.Value, []js.Value) any {
	return func(this js.Value, args []js.Value) any {
		var ev canvas.PointerEvent
		if err := decodeArg(args, 0, &ev); err != nil {
			return errorResult(err.Error())
		}
		fn(ev)
		return nil
	}
}

var (
	pointerDown  = pointerHandler(func(ev canvas.PointerEvent) { editor.PointerDown(ev) })
	pointerMove  = pointerHandler(func(ev canvas.PointerEvent) { editor.PointerMove(ev) })
	pointerUp    = pointerHandler(func(ev canvas.PointerEvent) { editor.PointerUp(ev) })
	pointerLeave = pointerHandler(func(ev canvas.PointerEvent) { editor.PointerLeave(ev) })
)

// resizeStart(id, handle, pointerEventJSON)
func resizeStart(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return errorResult("usage: resizeStart(id, handle, event)")
	}
	h, err := canvas.ParseHandle(args[1].String())
	if err != nil {
		return errorResult(err.Error())
	}
	var ev canvas.PointerEvent
	if err := decodeArg(args, 2, &ev); err != nil {
		return errorResult(err.Error())
	}
	editor.ResizeStart(args[0].String(), h, ev)
	return nil
}

// wheel returns whether the page should preventDefault.
func wheel(this js.Value, args []js.Value) any {
	var ev canvas.WheelEvent
	if err := decodeArg(args, 0, &ev); err != nil {
		return errorResult(err.Error())
	}
	return js.ValueOf(editor.Wheel(ev))
}

// keyDown returns whether the key was handled.
func keyDown(this js.Value, args []js.Value) any {
	var ev canvas.KeyEvent
	if err := decodeArg(args, 0, &ev); err != nil {
		return errorResult(err.Error())
	}
	return js.ValueOf(editor.KeyDown(ev))
}

// drop(type, x, y) places a palette component at a screen point.
func drop(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return errorResult("usage: drop(type, x, y)")
	}
	t := canvas.ComponentType(args[0].String())
	id, ok := editor.Drop(t, geom.Point{X: args[1].Float(), Y: args[2].Float()})
	if !ok {
		return errorResult("unknown component type")
	}
	return js.ValueOf(map[string]any{"id": id})
}

// dispatch applies an action envelope {type, payload}.
func dispatch(this js.Value, args []js.Value) any {
	var env canvas.Envelope
	if err := decodeArg(args, 0, &env); err != nil {
		return errorResult(err.Error())
	}
	action, err := canvas.DecodeAction(env)
	if err != nil {
		return errorResult(err.Error())
	}
	editor.Dispatch(action)
	return okResult()
}

func duplicate(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorResult("missing component id")
	}
	id, ok := editor.Duplicate(args[0].String())
	if !ok {
		return errorResult("component not found")
	}
	return js.ValueOf(map[string]any{"id": id})
}

func deleteSelected(this js.Value, args []js.Value) any {
	editor.DeleteSelected()
	return nil
}

// zoomOrigin reads an optional (x, y) screen origin.
func zoomOrigin(args []js.Value) *geom.Point {
	if len(args) < 2 {
		return nil
	}
	return &geom.Point{X: args[0].Float(), Y: args[1].Float()}
}

func zoomIn(this js.Value, args []js.Value) any {
	editor.ZoomIn(zoomOrigin(args))
	return nil
}

func zoomOut(this js.Value, args []js.Value) any {
	editor.ZoomOut(zoomOrigin(args))
	return nil
}

func resetZoom(this js.Value, args []js.Value) any {
	editor.ResetZoom(zoomOrigin(args))
	return nil
}

func resetPan(this js.Value, args []js.Value) any {
	editor.ResetPan()
	return nil
}

func zoomToFit(this js.Value, args []js.Value) any {
	editor.ZoomToFit()
	return nil
}

func restore(this js.Value, args []js.Value) any {
	var snap canvas.Snapshot
	if err := decodeArg(args, 0, &snap); err != nil {
		return errorResult(err.Error())
	}
	editor.Restore(snap)
	return okResult()
}

// --- Query Handlers ---

func renderFrame(this js.Value, args []js.Value) any {
	out, err := render.Compile(editor.View(), registry).JSON()
	if err != nil {
		return errorResult(err.Error())
	}
	return js.ValueOf(out)
}

// hitTest(x, y) returns the topmost component id and any resize handle under the point.
func hitTest(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return nil
	}
	p := geom.Point{X: args[0].Float(), Y: args[1].Float()}
	frame := render.Compile(editor.View(), registry)
	if id, h, ok := render.HitHandle(frame, p); ok {
		return js.ValueOf(map[string]any{"id": id, "handle": string(h)})
	}
	return js.ValueOf(map[string]any{"id": render.HitTest(frame, p)})
}

func snapshot(this js.Value, args []js.Value) any {
	return marshalResult(editor.Snapshot())
}

func getSelection(this js.Value, args []js.Value) any {
	return marshalResult(editor.Selection())
}

func getPalette(this js.Value, args []js.Value) any {
	return marshalResult(editor.Palette().Entries())
}

func marshalResult(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(err.Error())
	}
	return js.ValueOf(string(data))
}
