// config.go - Renderer construction configuration

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
	"fmt"
	"log/slog"
	"net/http"

	"github.com/BurntSushi/toml"
)

// Config holds the construction options of a Renderer.
type Config struct {
	PixelWidth   int     `toml:"pixel_width"`
	PixelHeight  int     `toml:"pixel_height"`
	DisplayScale float64 `toml:"display_scale"` // Host pixels per surface pixel; cosmetic
	CharWidth    int     `toml:"char_width"`    // Cell size in pixels, only used to size the grid
	CharHeight   int     `toml:"char_height"`
	FontAtlasURL string  `toml:"font_atlas_url"` // Required: path, file://, http:// or https://

	Backend  int          `toml:"backend"`
	Bindings BindingTable `toml:"bindings"`

	GlyphPolicy      GlyphPolicy `toml:"glyph_policy"`
	ReplacementGlyph uint8       `toml:"replacement_glyph"`

	// Observers fire on the goroutine that calls Frame.
	OnAtlasReady func(AtlasResult) `toml:"-"`
	OnAtlasError func(error)       `toml:"-"`

	Logger     *slog.Logger `toml:"-"`
	HTTPClient *http.Client `toml:"-"`
}

// DefaultConfig returns a 640x480 surface of 8x16 cells bound through the
// default binding table. FontAtlasURL is left empty.
func DefaultConfig() Config {
	return Config{
		PixelWidth:       DEFAULT_PIXEL_WIDTH,
		PixelHeight:      DEFAULT_PIXEL_HEIGHT,
		DisplayScale:     1,
		CharWidth:        DEFAULT_CHAR_WIDTH,
		CharHeight:       DEFAULT_CHAR_HEIGHT,
		Backend:          BACKEND_SOFTWARE,
		Bindings:         DefaultBindings(),
		GlyphPolicy:      GlyphSkip,
		ReplacementGlyph: DEFAULT_REPLACEMENT,
	}
}

// LoadConfig reads a TOML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// GridDimensions derives the grid size in cells. Partial cells are dropped.
func GridDimensions(pixelWidth, pixelHeight, charWidth, charHeight int) (width, height int) {
	if charWidth <= 0 || charHeight <= 0 {
		return 0, 0
	}
	return pixelWidth / charWidth, pixelHeight / charHeight
}

// GridSize returns the grid dimensions this config produces.
func (c Config) GridSize() (width, height int) {
	return GridDimensions(c.PixelWidth, c.PixelHeight, c.CharWidth, c.CharHeight)
}

// Validate reports the first problem that would stop construction. A missing
// FontAtlasURL is not checked here; the load simply fails later.
func (c Config) Validate() error {
	if c.PixelWidth <= 0 || c.PixelHeight <= 0 {
		return fmt.Errorf("surface size %dx%d must be positive", c.PixelWidth, c.PixelHeight)
	}
	if c.CharWidth <= 0 || c.CharHeight <= 0 {
		return fmt.Errorf("cell size %dx%d must be positive", c.CharWidth, c.CharHeight)
	}
	if w, h := c.GridSize(); w == 0 || h == 0 {
		return fmt.Errorf("surface %dx%d holds no %dx%d cell", c.PixelWidth, c.PixelHeight, c.CharWidth, c.CharHeight)
	}
	if c.DisplayScale < 0 {
		return fmt.Errorf("display scale %g must not be negative", c.DisplayScale)
	}
	if c.Backend != BACKEND_SOFTWARE && c.Backend != BACKEND_EBITEN {
		return fmt.Errorf("unknown backend type: %d", c.Backend)
	}
	if err := c.Bindings.Validate(); err != nil {
		return fmt.Errorf("texture bindings: %w", err)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return Logger()
}

func (c Config) displayScale() float64 {
	if c.DisplayScale <= 0 {
		return 1
	}
	return c.DisplayScale
}
