// mirror_tcell.go - Shows a glyph grid in a terminal

package textmode

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// TerminalMirror copies a grid onto a tcell screen, one cell per terminal
// cell. Glyph indices are shown as their Latin-1 characters; control codes
// and other unprintable glyphs become spaces so only the background shows.
type TerminalMirror struct {
	screen tcell.Screen
}

// NewTerminalMirror wraps an initialised screen.
func NewTerminalMirror(screen tcell.Screen) *TerminalMirror {
	return &TerminalMirror{screen: screen}
}

// GlyphRune returns the terminal rune used for a glyph index.
func GlyphRune(glyph uint8) rune {
	r := rune(glyph)
	if !unicode.IsPrint(r) {
		return ' '
	}
	return r
}

// Show writes every cell that fits the screen and flushes it.
func (m *TerminalMirror) Show(g *GlyphGrid) {
	sw, sh := m.screen.Size()
	gw, gh := g.Size()
	for y := range min(gh, sh) {
		for x := range min(gw, sw) {
			cell, _ := g.At(x, y)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(cell.Foreground.R), int32(cell.Foreground.G), int32(cell.Foreground.B))).
				Background(tcell.NewRGBColor(int32(cell.Background.R), int32(cell.Background.G), int32(cell.Background.B)))
			m.screen.SetContent(x, y, GlyphRune(cell.Glyph), nil, style)
		}
	}
	m.screen.Show()
}
