// main.go - Render a 16x16 glyph atlas PNG for the textmode renderer
//
// Usage: textmode-atlas [-cell-width 8] [-cell-height 16] [-preview "A@"] out.png

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

package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/intuitionamiga/textmode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/term"
)

func main() {
	var (
		cellWidth  int
		cellHeight int
		preview    string
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.IntVar(&cellWidth, "cell-width", textmode.DEFAULT_CHAR_WIDTH, "Tile width in pixels")
	flagSet.IntVar(&cellHeight, "cell-height", textmode.DEFAULT_CHAR_HEIGHT, "Tile height in pixels")
	flagSet.StringVar(&preview, "preview", "A@", "Glyphs to preview when stdout is a terminal")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: textmode-atlas [-cell-width 8] [-cell-height 16] [-preview \"A@\"] out.png")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	outPath := flagSet.Arg(0)
	if outPath == "" {
		flagSet.Usage()
		os.Exit(1)
	}

	img, err := renderAtlas(basicfont.Face7x13, cellWidth, cellHeight)
	if err != nil {
		fmt.Printf("Error rendering atlas: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Printf("Error creating %s: %v\n", outPath, err)
		os.Exit(1)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		fmt.Printf("Error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Printf("Error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	b := img.Bounds()
	fmt.Printf("Written %dx%d atlas (%dx%d tiles of %dx%d) to %s\n",
		b.Dx(), b.Dy(), textmode.ATLAS_COLUMNS, textmode.ATLAS_ROWS, cellWidth, cellHeight, outPath)

	if term.IsTerminal(int(os.Stdout.Fd())) && preview != "" {
		atlas, err := textmode.NewFontAtlas(img)
		if err != nil {
			fmt.Printf("Error building preview: %v\n", err)
			os.Exit(1)
		}
		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			width = 80
		}
		fmt.Print(previewGlyphs(atlas, preview, width))
	}
}

// renderAtlas draws every printable glyph 0..255 of face centered in its
// tile, white on black.
func renderAtlas(face font.Face, cellWidth, cellHeight int) (*image.Gray, error) {
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf("tile size %dx%d must be positive", cellWidth, cellHeight)
	}
	img := image.NewGray(image.Rect(0, 0, textmode.ATLAS_COLUMNS*cellWidth, textmode.ATLAS_ROWS*cellHeight))

	m := face.Metrics()
	glyphHeight := (m.Ascent + m.Descent).Ceil()
	top := max((cellHeight-glyphHeight)/2, 0)

	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	for g := range textmode.ATLAS_GLYPHS {
		r := rune(g)
		if !unicode.IsPrint(r) {
			continue
		}
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		col := g % textmode.ATLAS_COLUMNS
		row := g / textmode.ATLAS_COLUMNS
		left := max((cellWidth-adv.Ceil())/2, 0)
		d.Dot = fixed.P(col*cellWidth+left, row*cellHeight+top+m.Ascent.Ceil())
		d.DrawString(string(r))
	}
	return img, nil
}

// previewGlyphs renders the named glyph tiles side by side as text art,
// dropping tiles that would overflow width columns.
func previewGlyphs(atlas *textmode.FontAtlas, glyphs string, width int) string {
	var tiles []image.Rectangle
	used := 0
	for _, r := range glyphs {
		if r < 0 || r > textmode.MAX_GLYPH_INDEX {
			continue
		}
		rect := atlas.TileRect(uint8(r))
		if used+rect.Dx()+1 > width {
			break
		}
		used += rect.Dx() + 1
		tiles = append(tiles, rect)
	}
	if len(tiles) == 0 {
		return ""
	}

	tex := atlas.Texture()
	var sb strings.Builder
	for y := range tiles[0].Dy() {
		for _, rect := range tiles {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				if tex.Pix[(rect.Min.Y+y)*tex.Width+x] >= 0x80 {
					sb.WriteByte('#')
				} else {
					sb.WriteByte('.')
				}
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
