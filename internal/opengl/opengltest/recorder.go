// Package opengltest provides a GL context that records calls instead of
// talking to a GPU.
package opengltest

import (
	"strings"

	"github.com/ThatOtherAndrew/Aetherfield/internal/opengl"
)

// Call is one recorded context call.
type Call struct {
	Name string
	Args []any
}

type shader struct {
	stage    opengl.ShaderStage
	source   string
	compiled bool
}

type program struct {
	shaders []uint32
	linked  bool
}

// Recorder implements opengl.Context. A shader fails to compile when its
// source contains FailCompile; a program fails to link when LinkFails is
// set. Uniform and attribute names listed in Hidden resolve to -1.
type Recorder struct {
	FailCompile string
	CompileLog  string
	LinkFails   bool
	LinkLog     string
	Hidden      map[string]bool

	Calls []Call

	next     uint32
	shaders  map[uint32]*shader
	programs map[uint32]*program
	live     map[uint32]string
	uniforms map[int32]string
	current  uint32

	// Values holds the last value written to each uniform, by name.
	Values map[string][]float32

	// Errors are reported by Err one at a time, oldest first.
	Errors []error
}

func NewRecorder() *Recorder {
	return &Recorder{
		Hidden:   make(map[string]bool),
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		live:     make(map[uint32]string),
		uniforms: make(map[int32]string),
		Values:   make(map[string][]float32),
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) alloc(kind string) uint32 {
	r.next++
	r.live[r.next] = kind
	return r.next
}

func (r *Recorder) free(handle uint32) {
	delete(r.live, handle)
}

// Count returns how many times the named call was made.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Draws is the number of draw calls issued.
func (r *Recorder) Draws() int {
	return r.Count("DrawTriangleStrip")
}

// Live is the number of GPU objects created and not yet deleted.
func (r *Recorder) Live() int {
	return len(r.live)
}

// Source returns the full source handed to the first shader of stage.
func (r *Recorder) Source(stage opengl.ShaderStage) string {
	for h := uint32(1); h <= r.next; h++ {
		if s, ok := r.shaders[h]; ok && s.stage == stage {
			return s.source
		}
	}
	return ""
}

// Reset clears recorded calls and uniform values but keeps GPU objects.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Values = make(map[string][]float32)
}

func (r *Recorder) Header() string {
	return "#version 410 core\n"
}

func (r *Recorder) CreateShader(stage opengl.ShaderStage) uint32 {
	h := r.alloc("shader")
	r.shaders[h] = &shader{stage: stage}
	r.record("CreateShader", stage)
	return h
}

func (r *Recorder) ShaderSource(handle uint32, source string) {
	if s, ok := r.shaders[handle]; ok {
		s.source = source
	}
	r.record("ShaderSource", handle)
}

func (r *Recorder) CompileShader(handle uint32) {
	if s, ok := r.shaders[handle]; ok {
		s.compiled = r.FailCompile == "" || !strings.Contains(s.source, r.FailCompile)
	}
	r.record("CompileShader", handle)
}

func (r *Recorder) ShaderCompiled(handle uint32) bool {
	s, ok := r.shaders[handle]
	return ok && s.compiled
}

func (r *Recorder) ShaderInfoLog(handle uint32) string {
	if r.ShaderCompiled(handle) {
		return ""
	}
	return r.CompileLog + "\x00"
}

func (r *Recorder) DeleteShader(handle uint32) {
	r.free(handle)
	r.record("DeleteShader", handle)
}

func (r *Recorder) CreateProgram() uint32 {
	h := r.alloc("program")
	r.programs[h] = &program{}
	r.record("CreateProgram")
	return h
}

func (r *Recorder) AttachShader(prog, sh uint32) {
	if p, ok := r.programs[prog]; ok {
		p.shaders = append(p.shaders, sh)
	}
	r.record("AttachShader", prog, sh)
}

func (r *Recorder) DetachShader(prog, sh uint32) {
	r.record("DetachShader", prog, sh)
}

func (r *Recorder) LinkProgram(prog uint32) {
	if p, ok := r.programs[prog]; ok {
		p.linked = !r.LinkFails && len(p.shaders) == 2
	}
	r.record("LinkProgram", prog)
}

func (r *Recorder) ProgramLinked(prog uint32) bool {
	p, ok := r.programs[prog]
	return ok && p.linked
}

func (r *Recorder) ProgramInfoLog(prog uint32) string {
	if r.ProgramLinked(prog) {
		return ""
	}
	return r.LinkLog
}

func (r *Recorder) UseProgram(prog uint32) {
	r.current = prog
	r.record("UseProgram", prog)
}

func (r *Recorder) DeleteProgram(prog uint32) {
	r.free(prog)
	r.record("DeleteProgram", prog)
}

func (r *Recorder) GetUniformLocation(prog uint32, name string) int32 {
	r.record("GetUniformLocation", prog, name)
	if r.Hidden[name] {
		return -1
	}
	loc := int32(len(r.uniforms))
	r.uniforms[loc] = name
	return loc
}

func (r *Recorder) GetAttribLocation(prog uint32, name string) int32 {
	r.record("GetAttribLocation", prog, name)
	if r.Hidden[name] {
		return -1
	}
	return 0
}

func (r *Recorder) Uniform1f(location int32, v float32) {
	r.record("Uniform1f", location, v)
	if name, ok := r.uniforms[location]; ok {
		r.Values[name] = []float32{v}
	}
}

func (r *Recorder) Uniform2f(location int32, x, y float32) {
	r.record("Uniform2f", location, x, y)
	if name, ok := r.uniforms[location]; ok {
		r.Values[name] = []float32{x, y}
	}
}

func (r *Recorder) CreateVertexArray() uint32 {
	r.record("CreateVertexArray")
	return r.alloc("vertex array")
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.record("BindVertexArray", vao)
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.free(vao)
	r.record("DeleteVertexArray", vao)
}

func (r *Recorder) CreateBuffer() uint32 {
	r.record("CreateBuffer")
	return r.alloc("buffer")
}

func (r *Recorder) BufferStatic(buffer uint32, data []float32) {
	r.record("BufferStatic", buffer, append([]float32(nil), data...))
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	r.free(buffer)
	r.record("DeleteBuffer", buffer)
}

func (r *Recorder) VertexAttrib2f(location uint32) {
	r.record("VertexAttrib2f", location)
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) ClearColor(cr, cg, cb, ca float32) {
	r.record("ClearColor", cr, cg, cb, ca)
}

func (r *Recorder) Clear() {
	r.record("Clear")
}

func (r *Recorder) DrawTriangleStrip(first, count int32) {
	r.record("DrawTriangleStrip", first, count)
}

// Err reports the oldest queued error, like draining a GL error queue.
func (r *Recorder) Err() error {
	r.record("Err")
	if len(r.Errors) == 0 {
		return nil
	}
	err := r.Errors[0]
	r.Errors = r.Errors[1:]
	return err
}

var (
	_ opengl.Context       = (*Recorder)(nil)
	_ opengl.ErrorReporter = (*Recorder)(nil)
)
