// renderer.go - Public textmode renderer

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
renderer.go - Textmode Renderer

New builds a renderer from an explicit Config: grid, compositor backend and
an asynchronous font atlas load. There is no process-wide state; every
renderer owns its surface.

Two error channels exist on purpose:
- construction (New) returns a *RenderError when the surface or the shader
  cannot be created, and nothing is returned in that case
- per-cell writes never fail; bad coordinates and glyphs are dropped

Everything except the atlas fetch runs on the caller's goroutine. Call the
write methods and Frame from the same goroutine.
*/

package textmode

import (
	"context"
	"fmt"
	"log/slog"
)

// Renderer draws a glyph grid onto a surface.
type Renderer struct {
	cfg        Config
	grid       *GlyphGrid
	compositor *Compositor
	loader     *AtlasLoader
	log        *slog.Logger

	atlasState AtlasState
	atlasErr   error
}

// New creates a renderer and starts loading cfg.FontAtlasURL in the
// background. Until the load completes frames sample a black placeholder.
func New(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &RenderError{
			Operation: "configuration",
			Details:   err.Error(),
			Err:       ErrInvalidConfig,
		}
	}
	log := cfg.logger()

	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}
	compositor, err := newCompositor(backend, cfg.Bindings, log)
	if err != nil {
		backend.Close()
		return nil, &RenderError{Operation: "compositor setup", Details: backend.Name(), Err: err}
	}

	gw, gh := cfg.GridSize()
	grid := NewGlyphGrid(gw, gh)
	grid.SetGlyphPolicy(cfg.GlyphPolicy, cfg.ReplacementGlyph)

	r := &Renderer{
		cfg:        cfg,
		grid:       grid,
		compositor: compositor,
		loader:     NewAtlasLoader(cfg.HTTPClient, log),
		log:        log,
	}
	log.Info("textmode: renderer created",
		"backend", backend.Name(),
		"pixels", fmt.Sprintf("%dx%d", cfg.PixelWidth, cfg.PixelHeight),
		"grid", fmt.Sprintf("%dx%d", gw, gh))

	r.loader.Start(context.Background(), cfg.FontAtlasURL)
	return r, nil
}

// SetCell writes one cell. See GlyphGrid.SetCell.
func (r *Renderer) SetCell(x, y int, opts ...CellOption) {
	r.grid.SetCell(x, y, opts...)
}

// SetString writes a run of cells. See GlyphGrid.SetString.
func (r *Renderer) SetString(x, y int, text string, opts ...CellOption) {
	r.grid.SetString(x, y, text, opts...)
}

// Clear resets the grid. See GlyphGrid.Clear.
func (r *Renderer) Clear(opts ...CellOption) {
	r.grid.Clear(opts...)
}

// GridSize returns the grid size in cells.
func (r *Renderer) GridSize() (width, height int) {
	return r.grid.Size()
}

// PixelSize returns the surface size in pixels.
func (r *Renderer) PixelSize() (width, height int) {
	return r.cfg.PixelWidth, r.cfg.PixelHeight
}

// DisplayScale returns the cosmetic host-pixel multiplier.
func (r *Renderer) DisplayScale() float64 {
	return r.cfg.displayScale()
}

// Grid exposes the cell store for read access.
func (r *Renderer) Grid() *GlyphGrid {
	return r.grid
}

// Surface returns the renderable handle for the host.
func (r *Renderer) Surface() Surface {
	return r.compositor.backend.Surface()
}

// AtlasStatus reports the atlas load state and, when failed, its error.
func (r *Renderer) AtlasStatus() (AtlasState, error) {
	return r.atlasState, r.atlasErr
}

// AtlasLoaded is closed once the atlas load has finished, successfully or
// not. The result is adopted by the next Frame.
func (r *Renderer) AtlasLoaded() <-chan struct{} {
	return r.loader.Done()
}

// Frame adopts a finished atlas load, uploads the grid and draws.
func (r *Renderer) Frame() error {
	r.adoptAtlas()
	return r.compositor.DrawFrame(r.grid)
}

// Frames returns the number of frames drawn.
func (r *Renderer) Frames() uint64 {
	return r.compositor.Frames()
}

func (r *Renderer) adoptAtlas() {
	if r.atlasState != AtlasPending {
		return
	}
	res := r.loader.Result()
	if res == nil {
		return
	}
	err := res.Err
	if err == nil {
		err = r.compositor.SetAtlas(res.Atlas)
	}
	if err != nil {
		r.atlasState = AtlasFailed
		r.atlasErr = err
		r.log.Warn("textmode: continuing with placeholder atlas", "location", res.Location, "error", err)
		if r.cfg.OnAtlasError != nil {
			r.cfg.OnAtlasError(err)
		}
		return
	}

	r.atlasState = AtlasReady
	w, h := res.Atlas.Size()
	if !res.Atlas.TileAligned() {
		r.log.Warn("textmode: font atlas is not a multiple of 16 tiles", "width", w, "height", h)
	}
	r.log.Info("textmode: font atlas adopted", "location", res.Location, "format", res.Format, "width", w, "height", h)
	if r.cfg.OnAtlasReady != nil {
		r.cfg.OnAtlasReady(*res)
	}
}

// Close releases the backend's resources. The atlas fetch, if still in
// flight, is left to finish on its own.
func (r *Renderer) Close() error {
	return r.compositor.backend.Close()
}
