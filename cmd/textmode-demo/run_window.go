//go:build !headless

package main

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/intuitionamiga/textmode"
	"golang.design/x/clipboard"
)

const pasteMaxBytes = 4096

type windowHost struct {
	clipboardOnce sync.Once
	clipboardOK   bool
	pasteRow      int
}

func runWindow(r *textmode.Renderer) error {
	h := &windowHost{pasteRow: 20}
	return textmode.RunGame(r, "textmode", h.update)
}

func (h *windowHost) update(r *textmode.Renderer) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		h.paste(r)
	}

	gw, _ := r.GridSize()
	status := fmt.Sprintf("%6.1f fps", ebiten.ActualFPS())
	r.SetString(gw-len(status)-1, 0, status, textmode.WithForeground(colorDim))
	return nil
}

// paste writes clipboard text one line per grid row, starting below the
// glyph table. Lines longer than the grid are cut at the right edge.
func (h *windowHost) paste(r *textmode.Renderer) {
	h.clipboardOnce.Do(func() {
		h.clipboardOK = clipboard.Init() == nil
	})
	if !h.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	if len(data) > pasteMaxBytes {
		data = data[:pasteMaxBytes]
	}
	_, gh := r.GridSize()
	for _, line := range splitLines(string(data)) {
		if h.pasteRow >= gh-2 {
			return
		}
		r.SetString(1, h.pasteRow, line, textmode.WithForeground(textmode.White))
		h.pasteRow++
	}
}
