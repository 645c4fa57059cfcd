package opengl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNoContext        = errors.New("no GL context available")
	ErrMissingAttribute = errors.New("vertex attribute not found")
)

// Names of the field program's inputs.
const (
	AttribPosition = "position"

	UniformTime       = "time"
	UniformResolution = "resolution"
	UniformPointer    = "pointer"
	UniformPresence   = "presence"
	UniformDensity    = "density"
	UniformPulse      = "pulse"
)

var Uniforms = []string{
	UniformTime,
	UniformResolution,
	UniformPointer,
	UniformPresence,
	UniformDensity,
	UniformPulse,
}

// QuadVertices is a triangle strip covering clip space.
var QuadVertices = []float32{
	-1.0, -1.0,
	1.0, -1.0,
	-1.0, 1.0,
	1.0, 1.0,
}

type CompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

// Program is a linked field program together with its full-surface quad.
type Program struct {
	ctx       Context
	handle    uint32
	vertex    uint32
	fragment  uint32
	vao       uint32
	vbo       uint32
	locations map[string]int32
}

func CompileShaderFromSource(ctx Context, source string, stage ShaderStage) (uint32, error) {
	shader := ctx.CreateShader(stage)
	ctx.ShaderSource(shader, ctx.Header()+source)
	ctx.CompileShader(shader)

	if !ctx.ShaderCompiled(shader) {
		logMsg := strings.TrimSpace(strings.TrimRight(ctx.ShaderInfoLog(shader), "\x00"))
		ctx.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: logMsg}
	}

	return shader, nil
}

// Build compiles and links the field program, resolves the location of
// every uniform and of the position attribute, and uploads the quad. On
// failure every object created so far is released and nothing is returned.
func Build(ctx Context, vertexSource, fragmentSource string) (*Program, error) {
	if ctx == nil {
		return nil, ErrNoContext
	}

	vertShader, err := CompileShaderFromSource(ctx, vertexSource, VertexStage)
	if err != nil {
		return nil, err
	}
	fragShader, err := CompileShaderFromSource(ctx, fragmentSource, FragmentStage)
	if err != nil {
		ctx.DeleteShader(vertShader)
		return nil, err
	}

	p := &Program{
		ctx:       ctx,
		vertex:    vertShader,
		fragment:  fragShader,
		locations: make(map[string]int32, len(Uniforms)+1),
	}

	p.handle = ctx.CreateProgram()
	ctx.AttachShader(p.handle, vertShader)
	ctx.AttachShader(p.handle, fragShader)
	ctx.LinkProgram(p.handle)

	if !ctx.ProgramLinked(p.handle) {
		logMsg := strings.TrimSpace(strings.TrimRight(ctx.ProgramInfoLog(p.handle), "\x00"))
		p.Destroy()
		return nil, &LinkError{Log: logMsg}
	}

	position := ctx.GetAttribLocation(p.handle, AttribPosition)
	if position < 0 {
		p.Destroy()
		return nil, fmt.Errorf("%w: %q", ErrMissingAttribute, AttribPosition)
	}
	p.locations[AttribPosition] = position

	for _, name := range Uniforms {
		p.locations[name] = ctx.GetUniformLocation(p.handle, name)
	}

	p.vao = ctx.CreateVertexArray()
	p.vbo = ctx.CreateBuffer()

	ctx.BindVertexArray(p.vao)
	ctx.BufferStatic(p.vbo, QuadVertices)
	ctx.VertexAttrib2f(uint32(position))
	ctx.BindVertexArray(0)

	return p, nil
}

// Location returns the resolved location for a uniform or attribute name,
// or -1 if the program does not use it.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return -1
}

// Missing lists the declared uniforms the linked program does not expose,
// usually because the GLSL compiler optimised them away.
func (p *Program) Missing() []string {
	var missing []string
	for _, name := range Uniforms {
		if p.Location(name) < 0 {
			missing = append(missing, name)
		}
	}
	return missing
}

func (p *Program) Handle() uint32 {
	return p.handle
}

// Bind makes the program and its quad current.
func (p *Program) Bind() {
	p.ctx.UseProgram(p.handle)
	p.ctx.BindVertexArray(p.vao)
}

// SetFloat uploads a float uniform by name. Unknown names are ignored.
func (p *Program) SetFloat(name string, v float32) {
	p.ctx.Uniform1f(p.Location(name), v)
}

// SetVec2 uploads a vec2 uniform by name. Unknown names are ignored.
func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	p.ctx.Uniform2f(p.Location(name), v.X(), v.Y())
}

// Draw issues the single full-surface draw call.
func (p *Program) Draw() {
	p.ctx.DrawTriangleStrip(0, int32(len(QuadVertices)/2))
	p.ctx.BindVertexArray(0)
}

// Destroy releases every GPU object the program owns and reports any GL
// error raised while doing so. It is safe to call more than once.
func (p *Program) Destroy() error {
	if p == nil || p.ctx == nil {
		return nil
	}
	ctx := p.ctx
	if p.vbo != 0 {
		ctx.DeleteBuffer(p.vbo)
		p.vbo = 0
	}
	if p.vao != 0 {
		ctx.DeleteVertexArray(p.vao)
		p.vao = 0
	}
	if p.handle != 0 {
		ctx.DetachShader(p.handle, p.vertex)
		ctx.DetachShader(p.handle, p.fragment)
		ctx.DeleteProgram(p.handle)
		p.handle = 0
	}
	if p.vertex != 0 {
		ctx.DeleteShader(p.vertex)
		p.vertex = 0
	}
	if p.fragment != 0 {
		ctx.DeleteShader(p.fragment)
		p.fragment = 0
	}
	p.ctx = nil

	if reporter, ok := ctx.(ErrorReporter); ok {
		if err := reporter.Err(); err != nil {
			return fmt.Errorf("failed to release field program: %w", err)
		}
	}
	return nil
}
