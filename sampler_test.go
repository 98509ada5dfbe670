// sampler_test.go - Atlas sampler tests

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

package textmode

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestDecodeGlyph_Corners(t *testing.T) {
	tests := []struct {
		glyph    int
		row, col int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{15, 0, 15},
		{16, 1, 0},
		{65, 4, 1},
		{254, 15, 14},
		{255, 15, 15},
	}
	for _, tt := range tests {
		row, col := DecodeGlyph(float32(tt.glyph) / 255)
		if row != tt.row || col != tt.col {
			t.Errorf("glyph %d: got (%d,%d), want (%d,%d)", tt.glyph, row, col, tt.row, tt.col)
		}
	}
}

func TestDecodeGlyph_AllIndicesRoundTrip(t *testing.T) {
	for i := range ATLAS_GLYPHS {
		// Through the same 8-bit normalization the texture applies.
		v := float32(uint8(i)) / 255
		if got := GlyphIndex(v); got != i {
			t.Fatalf("glyph %d decoded as %d", i, got)
		}
	}
}

func TestGlyphIndex_Clamps(t *testing.T) {
	if got := GlyphIndex(-0.5); got != 0 {
		t.Fatalf("negative value decoded as %d", got)
	}
	if got := GlyphIndex(2); got != MAX_GLYPH_INDEX {
		t.Fatalf("value above one decoded as %d", got)
	}
}

func TestBlend(t *testing.T) {
	fg := RGBF{1, 0.5, 0}
	bg := RGBF{0, 0.25, 1}

	if got := Blend(fg, bg, 1); got != fg {
		t.Fatalf("coverage 1: got %+v, want %+v", got, fg)
	}
	if got := Blend(fg, bg, 0); got != bg {
		t.Fatalf("coverage 0: got %+v, want %+v", got, bg)
	}
	got := Blend(fg, bg, 0.5)
	if !approx(got.R, 0.5) || !approx(got.G, 0.375) || !approx(got.B, 0.5) {
		t.Fatalf("coverage 0.5: got %+v", got)
	}
}

func TestGLSLMod_Negative(t *testing.T) {
	if got := glslMod(-0.25, 1); !approx(got, 0.75) {
		t.Fatalf("mod(-0.25, 1) = %v, want 0.75", got)
	}
	if got := glslMod(0.7, 0.25); !approx(got, 0.2) {
		t.Fatalf("mod(0.7, 0.25) = %v, want 0.2", got)
	}
}

func TestTexCoordFromNDC_FlipsV(t *testing.T) {
	topLeft := TexCoordFromNDC(Vec2{-1, 1})
	if topLeft != (Vec2{0, 0}) {
		t.Fatalf("NDC top-left mapped to %+v, want (0,0)", topLeft)
	}
	bottomRight := TexCoordFromNDC(Vec2{1, -1})
	if bottomRight != (Vec2{1, 1}) {
		t.Fatalf("NDC bottom-right mapped to %+v, want (1,1)", bottomRight)
	}
}

func TestCellUV_CenterOfEveryCell(t *testing.T) {
	const gw, gh = 40, 30
	for y := range gh {
		for x := range gw {
			uv := Vec2{(float32(x) + 0.25) / gw, (float32(y) + 0.75) / gh}
			local, center := CellUV(uv, gw, gh)

			wantCenter := Vec2{(float32(x) + 0.5) / gw, (float32(y) + 0.5) / gh}
			if !approx(center.X, wantCenter.X) || !approx(center.Y, wantCenter.Y) {
				t.Fatalf("cell (%d,%d): center %+v, want %+v", x, y, center, wantCenter)
			}
			if !approx(local.X*gw, 0.25) || !approx(local.Y*gh, 0.75) {
				t.Fatalf("cell (%d,%d): local %+v", x, y, local)
			}
		}
	}
}

func TestAtlasUV_LandsInTile(t *testing.T) {
	const gw, gh = 80, 30
	row, col := 4, 1
	// Middle of the cell maps to the middle of the tile.
	local := Vec2{0.5 / gw, 0.5 / gh}
	a := AtlasUV(local, row, col, gw, gh)
	if !approx(a.X, (float32(col)+0.5)/16) || !approx(a.Y, (float32(row)+0.5)/16) {
		t.Fatalf("atlas uv %+v not at tile center", a)
	}
}

// sampleFixture builds a 2x1 grid whose atlas tile for glyph 1 is fully
// covered and every other tile is empty.
func sampleFixture() *AtlasSampler {
	const tile = 2
	atlasW, atlasH := ATLAS_COLUMNS*tile, ATLAS_ROWS*tile
	coverage := make([]byte, atlasW*atlasH)
	for y := range tile {
		for x := tile; x < 2*tile; x++ {
			coverage[y*atlasW+x] = 0xFF
		}
	}
	return &AtlasSampler{
		GridWidth:  2,
		GridHeight: 1,
		Atlas:      Texture{Width: atlasW, Height: atlasH, Channels: 1, Pix: coverage},
		Glyph:      Texture{Width: 2, Height: 1, Channels: 1, Pix: []byte{1, 0}},
		Foreground: Texture{Width: 2, Height: 1, Channels: 3, Pix: []byte{255, 0, 0, 255, 0, 0}},
		Background: Texture{Width: 2, Height: 1, Channels: 3, Pix: []byte{0, 0, 255, 0, 0, 255}},
	}
}

func TestAtlasSampler_SampleCell(t *testing.T) {
	s := sampleFixture()
	cell := s.SampleCell(Vec2{0.25, 0.5})
	if cell.Glyph != 1 {
		t.Fatalf("expected glyph 1, got %d", cell.Glyph)
	}
	if cell.Foreground != (RGBF{1, 0, 0}) || cell.Background != (RGBF{0, 0, 1}) {
		t.Fatalf("unexpected colors %+v", cell)
	}
}

func TestAtlasSampler_Sample(t *testing.T) {
	s := sampleFixture()

	if got := s.Sample(Vec2{0.25, 0.5}).RGB(); got != (RGB{255, 0, 0}) {
		t.Fatalf("covered cell: got %+v, want foreground", got)
	}
	if got := s.Sample(Vec2{0.75, 0.5}).RGB(); got != (RGB{0, 0, 255}) {
		t.Fatalf("empty glyph: got %+v, want background", got)
	}
}

func TestAtlasSampler_PlaceholderDrawsBackground(t *testing.T) {
	s := sampleFixture()
	s.Atlas = PlaceholderAtlas().Texture()
	for _, u := range []float32{0.1, 0.4, 0.6, 0.9} {
		if got := s.Sample(Vec2{u, 0.5}).RGB(); got != (RGB{0, 0, 255}) {
			t.Fatalf("u=%v: got %+v, want background", u, got)
		}
	}
}

func TestRGBF_RGBRoundsAndClamps(t *testing.T) {
	got := RGBF{-0.5, 0.5, 1.5}.RGB()
	if got != (RGB{0, 128, 255}) {
		t.Fatalf("got %+v", got)
	}
	for v := range 256 {
		c := RGB{uint8(v), uint8(v), uint8(v)}
		if back := RGBFFromRGB(c).RGB(); back != c {
			t.Fatalf("%+v round-tripped to %+v", c, back)
		}
	}
}

func TestTexture_SampleNearestClampsToEdge(t *testing.T) {
	tex := Texture{Width: 2, Height: 1, Channels: 1, Pix: []byte{0, 255}}
	if v := tex.SampleNearest(-1, 0.5)[0]; v != 0 {
		t.Fatalf("left clamp: got %v", v)
	}
	if v := tex.SampleNearest(5, 0.5)[0]; v != 1 {
		t.Fatalf("right clamp: got %v", v)
	}
	if a := tex.SampleNearest(0.5, 0.5)[3]; a != 1 {
		t.Fatalf("missing alpha should read 1, got %v", a)
	}
}
