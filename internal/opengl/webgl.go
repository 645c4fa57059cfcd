//go:build js && wasm

package opengl

import (
	"fmt"
	"syscall/js"
)

type webglConsts struct {
	vertexShader   int
	fragmentShader int
	compileStatus  int
	linkStatus     int
	arrayBuffer    int
	staticDraw     int
	floatType      int
	triangleStrip  int
	colorBufferBit int
	noError        int
}

// WebGL binds a WebGL2 rendering context. JS objects are kept in tables and
// exposed to the renderer as integer handles.
type WebGL struct {
	gl     js.Value
	consts webglConsts

	next      uint32
	objects   map[uint32]js.Value
	nextLoc   int32
	locations map[int32]js.Value
}

// NewWebGL requests a "webgl2" context from canvas.
func NewWebGL(canvas js.Value) (*WebGL, error) {
	if canvas.IsUndefined() || canvas.IsNull() {
		return nil, fmt.Errorf("%w: canvas missing", ErrNoContext)
	}
	gl := canvas.Call("getContext", "webgl2")
	if gl.IsUndefined() || gl.IsNull() {
		return nil, fmt.Errorf("%w: webgl2 unsupported", ErrNoContext)
	}
	w := &WebGL{
		gl:        gl,
		objects:   make(map[uint32]js.Value),
		locations: make(map[int32]js.Value),
	}
	w.consts = webglConsts{
		vertexShader:   gl.Get("VERTEX_SHADER").Int(),
		fragmentShader: gl.Get("FRAGMENT_SHADER").Int(),
		compileStatus:  gl.Get("COMPILE_STATUS").Int(),
		linkStatus:     gl.Get("LINK_STATUS").Int(),
		arrayBuffer:    gl.Get("ARRAY_BUFFER").Int(),
		staticDraw:     gl.Get("STATIC_DRAW").Int(),
		floatType:      gl.Get("FLOAT").Int(),
		triangleStrip:  gl.Get("TRIANGLE_STRIP").Int(),
		colorBufferBit: gl.Get("COLOR_BUFFER_BIT").Int(),
		noError:        gl.Get("NO_ERROR").Int(),
	}
	return w, nil
}

func (w *WebGL) put(v js.Value) uint32 {
	if v.IsUndefined() || v.IsNull() {
		return 0
	}
	w.next++
	w.objects[w.next] = v
	return w.next
}

func (w *WebGL) get(handle uint32) js.Value {
	if v, ok := w.objects[handle]; ok {
		return v
	}
	return js.Null()
}

func (w *WebGL) drop(handle uint32) js.Value {
	v := w.get(handle)
	delete(w.objects, handle)
	return v
}

func (w *WebGL) Header() string {
	return "#version 300 es\nprecision mediump float;\n"
}

func (w *WebGL) CreateShader(stage ShaderStage) uint32 {
	kind := w.consts.fragmentShader
	if stage == VertexStage {
		kind = w.consts.vertexShader
	}
	return w.put(w.gl.Call("createShader", kind))
}

func (w *WebGL) ShaderSource(shader uint32, source string) {
	w.gl.Call("shaderSource", w.get(shader), source)
}

func (w *WebGL) CompileShader(shader uint32) {
	w.gl.Call("compileShader", w.get(shader))
}

func (w *WebGL) ShaderCompiled(shader uint32) bool {
	return w.gl.Call("getShaderParameter", w.get(shader), w.consts.compileStatus).Truthy()
}

func (w *WebGL) ShaderInfoLog(shader uint32) string {
	info := w.gl.Call("getShaderInfoLog", w.get(shader))
	if info.IsNull() {
		return ""
	}
	return info.String()
}

func (w *WebGL) DeleteShader(shader uint32) {
	w.gl.Call("deleteShader", w.drop(shader))
}

func (w *WebGL) CreateProgram() uint32 {
	return w.put(w.gl.Call("createProgram"))
}

func (w *WebGL) AttachShader(program, shader uint32) {
	w.gl.Call("attachShader", w.get(program), w.get(shader))
}

func (w *WebGL) DetachShader(program, shader uint32) {
	w.gl.Call("detachShader", w.get(program), w.get(shader))
}

func (w *WebGL) LinkProgram(program uint32) {
	w.gl.Call("linkProgram", w.get(program))
}

func (w *WebGL) ProgramLinked(program uint32) bool {
	return w.gl.Call("getProgramParameter", w.get(program), w.consts.linkStatus).Truthy()
}

func (w *WebGL) ProgramInfoLog(program uint32) string {
	info := w.gl.Call("getProgramInfoLog", w.get(program))
	if info.IsNull() {
		return ""
	}
	return info.String()
}

func (w *WebGL) UseProgram(program uint32) {
	w.gl.Call("useProgram", w.get(program))
}

func (w *WebGL) DeleteProgram(program uint32) {
	w.gl.Call("deleteProgram", w.drop(program))
}

func (w *WebGL) GetUniformLocation(program uint32, name string) int32 {
	loc := w.gl.Call("getUniformLocation", w.get(program), name)
	if loc.IsNull() {
		return -1
	}
	id := w.nextLoc
	w.nextLoc++
	w.locations[id] = loc
	return id
}

func (w *WebGL) GetAttribLocation(program uint32, name string) int32 {
	return int32(w.gl.Call("getAttribLocation", w.get(program), name).Int())
}

func (w *WebGL) Uniform1f(location int32, v float32) {
	loc, ok := w.locations[location]
	if !ok {
		return
	}
	w.gl.Call("uniform1f", loc, v)
}

func (w *WebGL) Uniform2f(location int32, x, y float32) {
	loc, ok := w.locations[location]
	if !ok {
		return
	}
	w.gl.Call("uniform2f", loc, x, y)
}

func (w *WebGL) CreateVertexArray() uint32 {
	return w.put(w.gl.Call("createVertexArray"))
}

func (w *WebGL) BindVertexArray(vao uint32) {
	w.gl.Call("bindVertexArray", w.get(vao))
}

func (w *WebGL) DeleteVertexArray(vao uint32) {
	w.gl.Call("deleteVertexArray", w.drop(vao))
}

func (w *WebGL) CreateBuffer() uint32 {
	return w.put(w.gl.Call("createBuffer"))
}

func (w *WebGL) BufferStatic(buffer uint32, data []float32) {
	array := js.Global().Get("Float32Array").New(len(data))
	for i, v := range data {
		array.SetIndex(i, v)
	}
	w.gl.Call("bindBuffer", w.consts.arrayBuffer, w.get(buffer))
	w.gl.Call("bufferData", w.consts.arrayBuffer, array, w.consts.staticDraw)
}

func (w *WebGL) DeleteBuffer(buffer uint32) {
	w.gl.Call("deleteBuffer", w.drop(buffer))
}

func (w *WebGL) VertexAttrib2f(location uint32) {
	w.gl.Call("vertexAttribPointer", location, 2, w.consts.floatType, false, 0, 0)
	w.gl.Call("enableVertexAttribArray", location)
}

func (w *WebGL) Viewport(x, y, width, height int32) {
	w.gl.Call("viewport", x, y, width, height)
}

func (w *WebGL) ClearColor(r, g, b, a float32) {
	w.gl.Call("clearColor", r, g, b, a)
}

func (w *WebGL) Clear() {
	w.gl.Call("clear", w.consts.colorBufferBit)
}

func (w *WebGL) DrawTriangleStrip(first, count int32) {
	w.gl.Call("drawArrays", w.consts.triangleStrip, first, count)
}

func (w *WebGL) Err() error {
	code := w.gl.Call("getError").Int()
	if code == w.consts.noError {
		return nil
	}
	return fmt.Errorf("webgl error 0x%04x", code)
}

// Release forgets every uniform location. Called once the program is gone.
func (w *WebGL) Release() {
	w.locations = make(map[int32]js.Value)
	w.objects = make(map[uint32]js.Value)
}
