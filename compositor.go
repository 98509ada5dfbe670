// compositor.go - Per-frame texture upload and draw

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
compositor.go - Compositor

Each frame the compositor:

 1. re-uploads the grid textures through the TexturePacker
 2. binds the atlas and the three grid textures to the units named in the
    BindingTable and sets the grid-dimension uniform
 3. issues a single draw of the fullscreen quad

Backends own the actual surface. The software backend rasterizes on the CPU
and is always available; the ebiten backend runs the Kage shader on the GPU
and is compiled out by the headless build tag.
*/

package textmode

import (
	"fmt"
	"image"
	"log/slog"
)

// Surface is the renderable handle a host embeds.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)
	// Image returns the rendered surface. For GPU surfaces reading pixels
	// is only valid once the host's game loop is running.
	Image() image.Image
}

// compositorBackend is what a rendering backend provides to the compositor.
type compositorBackend interface {
	TextureUploader
	Name() string
	// SetAtlas replaces the atlas texture. invalidated reports that the
	// backend recreated its grid textures and needs a full re-upload.
	SetAtlas(atlas *FontAtlas) (invalidated bool, err error)
	Draw(gridWidth, gridHeight int) error
	Surface() Surface
	Close() error
}

// newBackend creates the backend selected by cfg.
func newBackend(cfg Config) (compositorBackend, error) {
	switch cfg.Backend {
	case BACKEND_SOFTWARE:
		return newSoftwareBackend(cfg)
	case BACKEND_EBITEN:
		return newEbitenBackend(cfg)
	}
	return nil, &RenderError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", cfg.Backend),
		Err:       ErrInvalidConfig,
	}
}

// Compositor drives one backend with the grid and atlas each frame.
type Compositor struct {
	backend compositorBackend
	packer  *TexturePacker
	atlas   *FontAtlas
	frames  uint64
	log     *slog.Logger
}

func newCompositor(backend compositorBackend, bindings BindingTable, log *slog.Logger) (*Compositor, error) {
	c := &Compositor{
		backend: backend,
		packer:  NewTexturePacker(bindings, log),
		log:     log,
	}
	if err := c.SetAtlas(PlaceholderAtlas()); err != nil {
		return nil, err
	}
	return c, nil
}

// SetAtlas binds a new atlas texture.
func (c *Compositor) SetAtlas(atlas *FontAtlas) error {
	invalidated, err := c.backend.SetAtlas(atlas)
	if err != nil {
		return fmt.Errorf("bind font atlas: %w", err)
	}
	if invalidated {
		c.packer.Invalidate()
	}
	c.atlas = atlas
	return nil
}

// Atlas returns the atlas currently bound.
func (c *Compositor) Atlas() *FontAtlas {
	return c.atlas
}

// DrawFrame uploads changed grid textures and draws the quad.
func (c *Compositor) DrawFrame(g *GlyphGrid) error {
	if _, err := c.packer.Sync(g, c.backend); err != nil {
		return err
	}
	w, h := g.Size()
	if err := c.backend.Draw(w, h); err != nil {
		return fmt.Errorf("draw frame %d: %w", c.frames, err)
	}
	c.frames++
	return nil
}

// Frames returns the number of frames drawn.
func (c *Compositor) Frames() uint64 {
	return c.frames
}
