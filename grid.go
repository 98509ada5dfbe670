// grid.go - Glyph grid: per-cell glyph and color buffers

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
grid.go - Glyph Grid

The grid owns three parallel row-major buffers sharing one (width, height):

	glyphs      width*height       bytes, index = y*width + x
	foreground  width*height*3     bytes, index*3 + channel
	background  width*height*3     bytes, index*3 + channel

Buffers are sized once and never resized. Every cell always holds a value;
the zero value is glyph 0 on black.

Writes never fail. Out-of-range coordinates and glyphs are ignored, which
keeps the write path cheap enough to call from rendering code every frame.
The grid does no locking: all writes must come from the goroutine that
drives Frame.
*/

package textmode

// GlyphPolicy decides what SetString does with a code point that does not fit
// a glyph index.
type GlyphPolicy int

const (
	// GlyphSkip leaves the cell's glyph unchanged; colors are still applied.
	GlyphSkip GlyphPolicy = iota
	// GlyphReplace writes the grid's replacement glyph instead.
	GlyphReplace
)

// Cell is a snapshot of one grid position.
type Cell struct {
	Glyph      uint8
	Foreground RGB
	Background RGB
}

type cellPatch struct {
	glyph    int
	hasGlyph bool
	fg       RGB
	hasFG    bool
	bg       RGB
	hasBG    bool
}

// CellOption selects which attributes a write touches. Attributes without an
// option keep their previous value.
type CellOption func(*cellPatch)

// WithGlyph sets the glyph index. Values outside [0,255] are ignored.
func WithGlyph(glyph int) CellOption {
	return func(p *cellPatch) {
		p.glyph = glyph
		p.hasGlyph = true
	}
}

// WithForeground sets the foreground color.
func WithForeground(c RGB) CellOption {
	return func(p *cellPatch) {
		p.fg = c
		p.hasFG = true
	}
}

// WithBackground sets the background color.
func WithBackground(c RGB) CellOption {
	return func(p *cellPatch) {
		p.bg = c
		p.hasBG = true
	}
}

func collectPatch(opts []CellOption) cellPatch {
	var p cellPatch
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}
	if p.hasGlyph && (p.glyph < 0 || p.glyph > MAX_GLYPH_INDEX) {
		p.hasGlyph = false
	}
	return p
}

// GlyphGrid is the CPU-side cell store read by the texture packer.
type GlyphGrid struct {
	width, height int
	glyphs        []uint8
	foreground    []uint8
	background    []uint8

	policy      GlyphPolicy
	replacement uint8

	// Bumped on every write that lands in the grid; the packer compares
	// them to skip unchanged uploads.
	glyphRev uint64
	fgRev    uint64
	bgRev    uint64
}

// NewGlyphGrid allocates a width x height grid. Dimensions below one are
// raised to one.
func NewGlyphGrid(width, height int) *GlyphGrid {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	cells := width * height
	return &GlyphGrid{
		width:       width,
		height:      height,
		glyphs:      make([]uint8, cells),
		foreground:  make([]uint8, cells*COLOR_CHANNELS),
		background:  make([]uint8, cells*COLOR_CHANNELS),
		replacement: DEFAULT_REPLACEMENT,
	}
}

// SetGlyphPolicy configures how SetString handles code points above 255.
func (g *GlyphGrid) SetGlyphPolicy(policy GlyphPolicy, replacement uint8) {
	g.policy = policy
	g.replacement = replacement
}

// Size returns the grid dimensions in cells.
func (g *GlyphGrid) Size() (width, height int) {
	return g.width, g.height
}

func (g *GlyphGrid) contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y). ok is false outside the grid.
func (g *GlyphGrid) At(x, y int) (cell Cell, ok bool) {
	if !g.contains(x, y) {
		return Cell{}, false
	}
	idx := y*g.width + x
	c := idx * COLOR_CHANNELS
	return Cell{
		Glyph:      g.glyphs[idx],
		Foreground: RGB{g.foreground[c], g.foreground[c+1], g.foreground[c+2]},
		Background: RGB{g.background[c], g.background[c+1], g.background[c+2]},
	}, true
}

// SetCell applies the given attributes to one cell. Out-of-range coordinates
// are a no-op; an out-of-range glyph is dropped while colors still apply.
func (g *GlyphGrid) SetCell(x, y int, opts ...CellOption) {
	if !g.contains(x, y) {
		return
	}
	p := collectPatch(opts)
	idx := y*g.width + x
	if p.hasGlyph {
		g.glyphs[idx] = uint8(p.glyph)
		g.glyphRev++
	}
	g.applyColors(idx, &p)
}

// SetString writes one cell per code point of text starting at (x, y),
// advancing x by one each time. Every cell gets the same colors. Cells past
// the right edge are skipped; there is no wrap to the next row. Glyph
// options are ignored since the text supplies the glyphs.
func (g *GlyphGrid) SetString(x, y int, text string, opts ...CellOption) {
	if y < 0 || y >= g.height {
		return
	}
	p := collectPatch(opts)
	p.hasGlyph = false

	col := x
	wroteGlyph := false
	for _, r := range text {
		if col >= g.width {
			break
		}
		if col >= 0 {
			idx := y*g.width + col
			if glyph, ok := g.glyphForRune(r); ok {
				g.glyphs[idx] = glyph
				wroteGlyph = true
			}
			g.applyColors(idx, &p)
		}
		col++
	}
	if wroteGlyph {
		g.glyphRev++
	}
}

// Clear resets every cell to glyph 0 on black, then applies opts to every
// cell.
func (g *GlyphGrid) Clear(opts ...CellOption) {
	clear(g.glyphs)
	clear(g.foreground)
	clear(g.background)
	g.glyphRev++
	g.fgRev++
	g.bgRev++

	p := collectPatch(opts)
	if p.hasGlyph {
		for i := range g.glyphs {
			g.glyphs[i] = uint8(p.glyph)
		}
	}
	for i := range g.glyphs {
		g.applyColors(i, &p)
	}
}

func (g *GlyphGrid) glyphForRune(r rune) (uint8, bool) {
	if r >= 0 && r <= MAX_GLYPH_INDEX {
		return uint8(r), true
	}
	if g.policy == GlyphReplace {
		return g.replacement, true
	}
	return 0, false
}

func (g *GlyphGrid) applyColors(idx int, p *cellPatch) {
	c := idx * COLOR_CHANNELS
	if p.hasFG {
		g.foreground[c] = p.fg.R
		g.foreground[c+1] = p.fg.G
		g.foreground[c+2] = p.fg.B
		g.fgRev++
	}
	if p.hasBG {
		g.background[c] = p.bg.R
		g.background[c+1] = p.bg.G
		g.background[c+2] = p.bg.B
		g.bgRev++
	}
}
