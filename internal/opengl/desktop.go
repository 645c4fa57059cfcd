//go:build !js

package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Desktop is the OpenGL 4.1 core binding. The caller must have made a
// context current on the calling thread before Init.
type Desktop struct{}

// Init loads the GL function pointers for the current context.
func Init() (*Desktop, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoContext, err)
	}
	return &Desktop{}, nil
}

func (d *Desktop) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Desktop) Header() string {
	return "#version 410 core\n"
}

func (d *Desktop) CreateShader(stage ShaderStage) uint32 {
	if stage == VertexStage {
		return gl.CreateShader(gl.VERTEX_SHADER)
	}
	return gl.CreateShader(gl.FRAGMENT_SHADER)
}

func (d *Desktop) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (d *Desktop) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (d *Desktop) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Desktop) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logMsg := make([]byte, logLength)
	gl.GetShaderInfoLog(shader, logLength, nil, &logMsg[0])
	return string(logMsg)
}

func (d *Desktop) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Desktop) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Desktop) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Desktop) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (d *Desktop) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *Desktop) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Desktop) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logMsg := make([]byte, logLength)
	gl.GetProgramInfoLog(program, logLength, nil, &logMsg[0])
	return string(logMsg)
}

func (d *Desktop) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Desktop) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Desktop) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Desktop) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *Desktop) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *Desktop) Uniform2f(location int32, x, y float32) {
	gl.Uniform2f(location, x, y)
}

func (d *Desktop) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Desktop) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *Desktop) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *Desktop) CreateBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (d *Desktop) BufferStatic(buffer uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Desktop) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (d *Desktop) VertexAttrib2f(location uint32) {
	gl.VertexAttribPointer(location, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(location)
}

func (d *Desktop) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Desktop) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Desktop) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Desktop) DrawTriangleStrip(first, count int32) {
	gl.DrawArrays(gl.TRIANGLE_STRIP, first, count)
}

// Err drains the GL error queue and reports the first error, if any.
func (d *Desktop) Err() error {
	var first uint32
	// Bounded: a lost context can keep reporting errors.
	for i := 0; i < 16; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if first == 0 {
			first = code
		}
	}
	if first == 0 {
		return nil
	}
	return fmt.Errorf("gl error 0x%04x", first)
}
