//go:build !headless

// game_ebiten.go - ebiten.Game adapter for hosting a renderer in a window

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
	"errors"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game runs a Renderer inside ebiten's display-synchronized loop. Update is
// called once per tick before the frame is drawn; all grid writes belong
// there.
type Game struct {
	renderer *Renderer
	update   func(r *Renderer) error
	frameErr error
}

// NewGame wraps r. update may be nil.
func NewGame(r *Renderer, update func(r *Renderer) error) *Game {
	return &Game{renderer: r, update: update}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.frameErr != nil {
		return g.frameErr
	}
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if g.update != nil {
		return g.update(g.renderer)
	}
	return nil
}

// Draw implements ebiten.Game. The renderer draws its own surface and the
// surface is copied onto screen.
func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.renderer.Frame(); err != nil {
		g.frameErr = err
		g.renderer.log.Error("textmode: frame failed", "error", err)
		return
	}
	switch s := g.renderer.Surface().(type) {
	case *EbitenSurface:
		screen.DrawImage(s.EbitenImage(), nil)
	case softwareSurface:
		screen.WritePixels(s.RGBA().Pix)
	}
}

// Layout implements ebiten.Game. The logical screen is always the surface
// size; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.renderer.PixelSize()
}

// RunGame opens a window of the renderer's size times its display scale and
// blocks until the window closes.
func RunGame(r *Renderer, title string, update func(r *Renderer) error) error {
	w, h := r.PixelSize()
	scale := r.DisplayScale()
	ebiten.SetWindowSize(int(math.Round(float64(w)*scale)), int(math.Round(float64(h)*scale)))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(NewGame(r, update))
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
