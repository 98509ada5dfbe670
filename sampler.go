// sampler.go - Per-pixel glyph sampling (CPU reference of the shader)

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/textmode
License: GPLv3 or later
*/

/*
sampler.go - Atlas Sampler

Maps a continuous texture coordinate covering the whole grid surface to a
final color. The Kage shader in sampler_shader.go performs the same steps in
the same order with the same float32 precision:

 1. charSize     = (1/gridWidth, 1/gridHeight)
 2. cellLocalUV  = mod(uv, charSize)
 3. cellCenterUV = uv - cellLocalUV + charSize/2
 4. glyph, fg, bg sampled at cellCenterUV (nearest, clamp-to-edge)
 5. glyph value decoded to (row, column) of the 16x16 atlas
 6. atlasUV      = cellLocalUV * (gridWidth/16, gridHeight/16) + (column, row)/16
 7. coverage     = atlas sample at atlasUV
 8. color        = fg*coverage + bg*(1-coverage), alpha 1

Sampling the per-cell textures at the cell center, never at uv itself, makes
nearest lookups land on the owning cell even when uv sits on a cell edge.

The function is pure: no state is shared between pixels.
*/

package textmode

import "math"

// Vec2 is a float32 2D vector matching the shader's vec2.
type Vec2 struct {
	X, Y float32
}

// RGBF is a normalized color in float32 channels.
type RGBF struct {
	R, G, B float32
}

// RGBFFromRGB normalizes an 8-bit color.
func RGBFFromRGB(c RGB) RGBF {
	return RGBF{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// RGB quantizes back to 8 bits, rounding to nearest.
func (c RGBF) RGB() RGB {
	return RGB{quantize(c.R), quantize(c.G), quantize(c.B)}
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v * 255)))
}

// glslMod is GLSL's mod: x - y*floor(x/y).
func glslMod(x, y float32) float32 {
	return x - y*float32(math.Floor(float64(x/y)))
}

// TexCoordFromNDC is the vertex stage: scale NDC into [0,1] and flip v once
// so that cell (0,0) lands at the top-left of the surface.
func TexCoordFromNDC(ndc Vec2) Vec2 {
	uv := Vec2{ndc.X*0.5 + 0.5, ndc.Y*0.5 + 0.5}
	uv.Y = 1 - uv.Y
	return uv
}

// CellUV splits uv into the position inside its cell and the cell's center.
func CellUV(uv Vec2, gridWidth, gridHeight int) (local, center Vec2) {
	charSize := Vec2{1 / float32(gridWidth), 1 / float32(gridHeight)}
	local = Vec2{glslMod(uv.X, charSize.X), glslMod(uv.Y, charSize.Y)}
	center = Vec2{
		uv.X - local.X + 0.5*charSize.X,
		uv.Y - local.Y + 0.5*charSize.Y,
	}
	return local, center
}

// GlyphIndex recovers the glyph index from its stored value (index/255).
func GlyphIndex(value float32) int {
	i := int(math.Floor(float64(value*255 + 0.5)))
	if i < 0 {
		return 0
	}
	if i > MAX_GLYPH_INDEX {
		return MAX_GLYPH_INDEX
	}
	return i
}

// DecodeGlyph returns the atlas row and column for a stored glyph value.
func DecodeGlyph(value float32) (row, column int) {
	i := GlyphIndex(value)
	return i / ATLAS_COLUMNS, i % ATLAS_COLUMNS
}

// AtlasUV maps a cell-local coordinate into the atlas tile at (row, column).
func AtlasUV(local Vec2, row, column, gridWidth, gridHeight int) Vec2 {
	return Vec2{
		local.X*(float32(gridWidth)/ATLAS_COLUMNS) + float32(column)/ATLAS_COLUMNS,
		local.Y*(float32(gridHeight)/ATLAS_ROWS) + float32(row)/ATLAS_ROWS,
	}
}

// Blend mixes foreground over background by coverage.
func Blend(fg, bg RGBF, coverage float32) RGBF {
	inv := 1 - coverage
	return RGBF{
		fg.R*coverage + bg.R*inv,
		fg.G*coverage + bg.G*inv,
		fg.B*coverage + bg.B*inv,
	}
}

// CellSample is what the per-cell textures hold at one cell center.
type CellSample struct {
	Glyph      int
	Foreground RGBF
	Background RGBF
}

// AtlasSampler evaluates the compositing function against CPU textures.
type AtlasSampler struct {
	GridWidth  int
	GridHeight int
	Atlas      Texture
	Glyph      Texture
	Foreground Texture
	Background Texture
}

// SampleCell reads the per-cell textures at a texture coordinate.
func (s *AtlasSampler) SampleCell(at Vec2) CellSample {
	g := s.Glyph.SampleNearest(at.X, at.Y)
	fg := s.Foreground.SampleNearest(at.X, at.Y)
	bg := s.Background.SampleNearest(at.X, at.Y)
	return CellSample{
		Glyph:      GlyphIndex(g[0]),
		Foreground: RGBF{fg[0], fg[1], fg[2]},
		Background: RGBF{bg[0], bg[1], bg[2]},
	}
}

// Sample returns the final color at uv.
func (s *AtlasSampler) Sample(uv Vec2) RGBF {
	local, center := CellUV(uv, s.GridWidth, s.GridHeight)

	g := s.Glyph.SampleNearest(center.X, center.Y)
	fg := s.Foreground.SampleNearest(center.X, center.Y)
	bg := s.Background.SampleNearest(center.X, center.Y)

	row, column := DecodeGlyph(g[0])
	a := AtlasUV(local, row, column, s.GridWidth, s.GridHeight)
	coverage := s.Atlas.SampleNearest(a.X, a.Y)[0]

	return Blend(RGBF{fg[0], fg[1], fg[2]}, RGBF{bg[0], bg[1], bg[2]}, coverage)
}
