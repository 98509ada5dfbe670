// texture.go - CPU-side textures with GPU sampling rules

package textmode

import "math"

// Texture is a tightly packed CPU texture. It samples the way the GPU path
// is configured to: nearest-neighbor with clamp-to-edge addressing.
type Texture struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// texelCoord maps a normalized coordinate to a texel index along an axis of
// n texels, clamping to the edge texels.
func texelCoord(t float32, n int) int {
	i := int(math.Floor(float64(t * float32(n))))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// SampleNearest returns the texel containing (u, v) as normalized channels.
// Channels the texture lacks read as 0; alpha reads as 1 unless stored.
func (t Texture) SampleNearest(u, v float32) [4]float32 {
	out := [4]float32{0, 0, 0, 1}
	if t.Width <= 0 || t.Height <= 0 || t.Channels <= 0 {
		return out
	}
	x := texelCoord(u, t.Width)
	y := texelCoord(v, t.Height)
	o := (y*t.Width + x) * t.Channels
	for c := 0; c < t.Channels && c < 4; c++ {
		out[c] = float32(t.Pix[o+c]) / 255
	}
	return out
}
