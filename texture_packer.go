// texture_packer.go - Encodes glyph grid buffers into texture layouts

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
texture_packer.go - Texture Packer

Three textures mirror the grid, each exactly width x height texels:

	glyph       1 channel   value = glyph index / 255
	foreground  3 channels  r, g, b
	background  3 channels  r, g, b

All three are sampled nearest-neighbor with clamp-to-edge addressing and
carry no mipmaps. Linear filtering would blend neighbouring glyph indices
into unrelated glyphs, so backends must honour the filter in TextureSpec.

Backends take RGBA8 uploads. ExpandRGBA widens a layout to RGBA with an
opaque alpha so premultiplication leaves the channels untouched.

Sync uploads once per frame. Buffers whose revision has not moved since the
last upload are skipped; Invalidate forces a full upload.
*/

package textmode

import (
	"fmt"
	"log/slog"
)

// TextureFilter is a texture sampling filter.
type TextureFilter int

const (
	FilterNearest TextureFilter = iota
	FilterLinear
)

// TextureWrap is a texture addressing mode.
type TextureWrap int

const (
	WrapClampToEdge TextureWrap = iota
	WrapRepeat
)

// TextureSpec describes one texture upload.
type TextureSpec struct {
	Role     TextureRole
	Unit     int
	Width    int
	Height   int
	Channels int // Channels in the packed layout before RGBA expansion
	Filter   TextureFilter
	Wrap     TextureWrap
	Mipmaps  bool
}

// TextureUploader receives RGBA8 texture data from the packer.
type TextureUploader interface {
	UploadTexture(spec TextureSpec, rgba []byte) error
}

// PackedGrid holds the exact byte layouts of the three grid textures.
type PackedGrid struct {
	Width      int
	Height     int
	Glyph      []byte
	Foreground []byte
	Background []byte
}

// PackGrid copies the grid buffers into their texture layouts.
func PackGrid(g *GlyphGrid) PackedGrid {
	return PackedGrid{
		Width:      g.width,
		Height:     g.height,
		Glyph:      append([]byte(nil), g.glyphs...),
		Foreground: append([]byte(nil), g.foreground...),
		Background: append([]byte(nil), g.background...),
	}
}

// ExpandRGBA widens a 1- or 3-channel layout into RGBA8, reusing dst when it
// is large enough. One channel is replicated into r, g and b.
func ExpandRGBA(dst, src []byte, channels int) []byte {
	texels := len(src) / channels
	need := texels * RGBA_CHANNELS
	if cap(dst) < need {
		dst = make([]byte, need)
	}
	dst = dst[:need]

	switch channels {
	case GLYPH_CHANNELS:
		for i, v := range src {
			o := i * RGBA_CHANNELS
			dst[o] = v
			dst[o+1] = v
			dst[o+2] = v
			dst[o+3] = 0xFF
		}
	case COLOR_CHANNELS:
		for i := range texels {
			s := i * COLOR_CHANNELS
			o := i * RGBA_CHANNELS
			dst[o] = src[s]
			dst[o+1] = src[s+1]
			dst[o+2] = src[s+2]
			dst[o+3] = 0xFF
		}
	case RGBA_CHANNELS:
		copy(dst, src)
	}
	return dst
}

// gridTexture indexes the packer's per-texture state.
const (
	gridTexGlyph = iota
	gridTexForeground
	gridTexBackground
	gridTexCount
)

// TexturePacker serialises a GlyphGrid into uploads for a backend.
type TexturePacker struct {
	bindings BindingTable
	log      *slog.Logger

	rgba     [gridTexCount][]byte
	revs     [gridTexCount]uint64
	valid    [gridTexCount]bool
	uploaded uint64
}

// NewTexturePacker creates a packer that binds through bindings.
func NewTexturePacker(bindings BindingTable, log *slog.Logger) *TexturePacker {
	if log == nil {
		log = Logger()
	}
	return &TexturePacker{bindings: bindings, log: log}
}

// Specs returns the texture descriptions for g in glyph, foreground,
// background order.
func (p *TexturePacker) Specs(g *GlyphGrid) [gridTexCount]TextureSpec {
	mk := func(role TextureRole, channels int) TextureSpec {
		return TextureSpec{
			Role:     role,
			Unit:     p.bindings.Unit(role),
			Width:    g.width,
			Height:   g.height,
			Channels: channels,
			Filter:   FilterNearest,
			Wrap:     WrapClampToEdge,
		}
	}
	return [gridTexCount]TextureSpec{
		mk(RoleGlyph, GLYPH_CHANNELS),
		mk(RoleForeground, COLOR_CHANNELS),
		mk(RoleBackground, COLOR_CHANNELS),
	}
}

// Invalidate forces the next Sync to upload all three textures.
func (p *TexturePacker) Invalidate() {
	p.valid = [gridTexCount]bool{}
}

// Uploads returns the total number of texture uploads performed.
func (p *TexturePacker) Uploads() uint64 {
	return p.uploaded
}

// Sync uploads every grid texture whose buffer changed since the previous
// call and returns how many were sent.
func (p *TexturePacker) Sync(g *GlyphGrid, up TextureUploader) (int, error) {
	specs := p.Specs(g)
	sources := [gridTexCount][]byte{g.glyphs, g.foreground, g.background}
	revs := [gridTexCount]uint64{g.glyphRev, g.fgRev, g.bgRev}

	sent := 0
	for i := range gridTexCount {
		if p.valid[i] && p.revs[i] == revs[i] {
			continue
		}
		p.rgba[i] = ExpandRGBA(p.rgba[i], sources[i], specs[i].Channels)
		if err := up.UploadTexture(specs[i], p.rgba[i]); err != nil {
			p.valid[i] = false
			return sent, fmt.Errorf("upload %s texture: %w", specs[i].Role, err)
		}
		p.revs[i] = revs[i]
		p.valid[i] = true
		p.uploaded++
		sent++
		p.log.Debug("textmode: texture uploaded",
			"role", specs[i].Role.String(),
			"unit", specs[i].Unit,
			"width", specs[i].Width,
			"height", specs[i].Height)
	}
	return sent, nil
}
