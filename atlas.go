// atlas.go - Font atlas decoding and coverage extraction

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
atlas.go - Font Atlas

The atlas is an external pre-rendered image holding 256 glyphs as a 16x16
grid of equal tiles. Only a single coverage channel is kept: the image is
composited over black and reduced to luminance, so both white-on-black and
white-on-transparent atlases yield coverage in [0,1].

Until a real atlas arrives the renderer samples the placeholder, a single
black texel, which draws every cell as its background color.
*/

package textmode

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// FontAtlas is an immutable single-channel coverage texture.
type FontAtlas struct {
	width       int
	height      int
	coverage    []uint8
	placeholder bool
}

// PlaceholderAtlas returns the 1x1 black stand-in used while the real atlas
// loads.
func PlaceholderAtlas() *FontAtlas {
	return &FontAtlas{width: 1, height: 1, coverage: []uint8{0}, placeholder: true}
}

// NewFontAtlas extracts coverage from img.
func NewFontAtlas(img image.Image) (*FontAtlas, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("font atlas is empty (%dx%d)", b.Dx(), b.Dy())
	}
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Over)

	coverage := make([]uint8, b.Dx()*b.Dy())
	for y := range b.Dy() {
		copy(coverage[y*b.Dx():(y+1)*b.Dx()], gray.Pix[y*gray.Stride:y*gray.Stride+b.Dx()])
	}
	return &FontAtlas{width: b.Dx(), height: b.Dy(), coverage: coverage}, nil
}

// NewFontAtlasCoverage wraps raw coverage bytes, one per texel, row-major.
func NewFontAtlasCoverage(width, height int, coverage []uint8) (*FontAtlas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("font atlas is empty (%dx%d)", width, height)
	}
	if len(coverage) != width*height {
		return nil, fmt.Errorf("font atlas coverage has %d bytes, want %d", len(coverage), width*height)
	}
	return &FontAtlas{width: width, height: height, coverage: append([]uint8(nil), coverage...)}, nil
}

// DecodeAtlas decodes a PNG, GIF, JPEG, BMP or WebP atlas image.
func DecodeAtlas(r io.Reader) (*FontAtlas, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode font atlas: %w", err)
	}
	atlas, err := NewFontAtlas(img)
	if err != nil {
		return nil, format, err
	}
	return atlas, format, nil
}

// Size returns the atlas dimensions in texels.
func (a *FontAtlas) Size() (width, height int) {
	return a.width, a.height
}

// IsPlaceholder reports whether a is the stand-in atlas.
func (a *FontAtlas) IsPlaceholder() bool {
	return a.placeholder
}

// TileAligned reports whether both dimensions divide evenly into 16 tiles.
func (a *FontAtlas) TileAligned() bool {
	return a.width%ATLAS_COLUMNS == 0 && a.height%ATLAS_ROWS == 0
}

// TileRect returns the texel rectangle of glyph for a tile-aligned atlas.
func (a *FontAtlas) TileRect(glyph uint8) image.Rectangle {
	tw := a.width / ATLAS_COLUMNS
	th := a.height / ATLAS_ROWS
	col := int(glyph) % ATLAS_COLUMNS
	row := int(glyph) / ATLAS_COLUMNS
	return image.Rect(col*tw, row*th, (col+1)*tw, (row+1)*th)
}

// Texture exposes the coverage as a one-channel CPU texture.
func (a *FontAtlas) Texture() Texture {
	return Texture{Width: a.width, Height: a.height, Channels: GLYPH_CHANNELS, Pix: a.coverage}
}

// Spec describes the atlas upload for the given binding table.
func (a *FontAtlas) Spec(bindings BindingTable) TextureSpec {
	return TextureSpec{
		Role:     RoleAtlas,
		Unit:     bindings.Atlas,
		Width:    a.width,
		Height:   a.height,
		Channels: GLYPH_CHANNELS,
		Filter:   FilterNearest,
		Wrap:     WrapClampToEdge,
	}
}

// RGBA returns the coverage widened to RGBA8.
func (a *FontAtlas) RGBA() []byte {
	return ExpandRGBA(nil, a.coverage, GLYPH_CHANNELS)
}
