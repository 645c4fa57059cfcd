package opengl

// ShaderStage selects the pipeline stage a shader is compiled for.
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	if s == VertexStage {
		return "vertex"
	}
	return "fragment"
}

// Context is the subset of a GL rendering context the field renderer needs.
// Handles are plain integers; zero is never a valid object, and a negative
// location means the name was not found.
type Context interface {
	// Header is prepended to every shader source, e.g. a #version line.
	Header() string

	CreateShader(stage ShaderStage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	GetAttribLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, x, y float32)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	CreateBuffer() uint32
	// BufferStatic binds buffer as the array buffer and uploads data once.
	BufferStatic(buffer uint32, data []float32)
	DeleteBuffer(buffer uint32)
	// VertexAttrib2f points location at tightly packed vec2 floats in the
	// bound array buffer and enables it.
	VertexAttrib2f(location uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawTriangleStrip(first, count int32)
}

// ErrorReporter is implemented by contexts that can report pending GL
// errors, such as those raised while releasing objects.
type ErrorReporter interface {
	Err() error
}
