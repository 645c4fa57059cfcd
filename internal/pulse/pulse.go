// Package pulse computes the presence-modulated oscillator fed to the field
// program. It holds no state; the value is rebuilt from frame time and
// presence on every frame.
package pulse

import "math"

const (
	BaseFrequency = 0.783
	MaxFrequency  = 1.3
)

// Band is the frequency range swept as presence goes from 0 to 1.
type Band struct {
	Base float32
	Max  float32
}

var Default = Band{Base: BaseFrequency, Max: MaxFrequency}

// Frequency interpolates linearly between Base and Max. Presence outside
// [0, 1] is clamped.
func (b Band) Frequency(presence float32) float32 {
	if presence < 0 {
		presence = 0
	} else if presence > 1 {
		presence = 1
	}
	return b.Base + presence*(b.Max-b.Base)
}

// Value is a half-wave rectified sine, always in [0, 1]. The phase is
// computed in float64 so it stays smooth after days of frames.
func (b Band) Value(frameTime float64, presence float32) float32 {
	phase := frameTime * float64(b.Frequency(presence)) * 2 * math.Pi
	return float32(math.Max(0, math.Sin(phase)))
}
