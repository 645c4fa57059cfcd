package models

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Viewport is the backing-store size of the drawing surface.
type Viewport struct {
	Width, Height int32
	PixelRatio    float32
}

// Resolution returns the viewport as a resolution uniform.
func (v Viewport) Resolution() mgl32.Vec2 {
	return mgl32.Vec2{float32(v.Width), float32(v.Height)}
}

// Session is the state shared by one rendering session.
//
// Every field has exactly one writer: Viewport belongs to the viewport
// manager, Pointer to the input tracker, Presence and Decaying to the
// presence machine, Density to the density drift, and FrameTime to the
// renderer. Everything else only reads.
type Session struct {
	Viewport  Viewport
	Pointer   mgl32.Vec2
	Presence  float32
	Decaying  bool
	Density   float32
	FrameTime float64
}

const InitialDensity = 0.5

func NewSession() *Session {
	return &Session{
		Viewport: Viewport{Width: 1, Height: 1, PixelRatio: 1},
		Density:  InitialDensity,
	}
}
