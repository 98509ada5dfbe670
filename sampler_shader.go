// sampler_shader.go - Kage source of the compositing shader

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
	"strconv"
	"strings"
)

// Uniform names shared by the shader and the ebiten backend.
const (
	UNIFORM_GRID_SIZE  = "GridSize"
	UNIFORM_ATLAS_SIZE = "AtlasSize"
)

// shaderTemplate mirrors AtlasSampler.Sample step for step. $ATLAS, $GLYPH,
// $FG and $BG are replaced with the source slots from the binding table.
//
// All source images share one backing size, so each texture's logical size
// comes in as a uniform (the grid textures are GridSize, the atlas is
// AtlasSize) and lookups are clamped to the last texel of that region.
const shaderTemplate = `//kage:unit pixels

package main

var GridSize vec2
var AtlasSize vec2

func sampleAtlas(uv vec2) vec4 {
	p := clamp(uv*AtlasSize, vec2(0.5), AtlasSize-vec2(0.5))
	return imageSrc$ATLASAt(imageSrc$ATLASOrigin() + p)
}

func sampleGlyph(uv vec2) vec4 {
	p := clamp(uv*GridSize, vec2(0.5), GridSize-vec2(0.5))
	return imageSrc$GLYPHAt(imageSrc$GLYPHOrigin() + p)
}

func sampleForeground(uv vec2) vec4 {
	p := clamp(uv*GridSize, vec2(0.5), GridSize-vec2(0.5))
	return imageSrc$FGAt(imageSrc$FGOrigin() + p)
}

func sampleBackground(uv vec2) vec4 {
	p := clamp(uv*GridSize, vec2(0.5), GridSize-vec2(0.5))
	return imageSrc$BGAt(imageSrc$BGOrigin() + p)
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	// Destination pixel to NDC (y up), then the vertex-stage mapping into
	// texture space with its single v flip.
	pos := (dstPos.xy - imageDstOrigin()) / imageDstSize()
	ndc := vec2(pos.x*2-1, 1-pos.y*2)
	tex := ndc*0.5 + vec2(0.5)
	uv := vec2(tex.x, 1-tex.y)

	charSize := vec2(1) / GridSize
	local := mod(uv, charSize)
	center := uv - local + charSize*0.5

	glyph := sampleGlyph(center).r
	fg := sampleForeground(center).rgb
	bg := sampleBackground(center).rgb

	gi := floor(glyph*255 + 0.5)
	row := floor(gi / 16)
	column := gi - row*16

	atlasUV := local*(GridSize/16) + vec2(column, row)/16
	coverage := sampleAtlas(atlasUV).r

	return vec4(fg*coverage+bg*(1-coverage), 1)
}
`

// ShaderSource returns the Kage compositing shader bound through b.
func ShaderSource(b BindingTable) []byte {
	r := strings.NewReplacer(
		"$ATLAS", strconv.Itoa(b.Atlas),
		"$GLYPH", strconv.Itoa(b.Glyph),
		"$FG", strconv.Itoa(b.Foreground),
		"$BG", strconv.Itoa(b.Background),
	)
	return []byte(r.Replace(shaderTemplate))
}
