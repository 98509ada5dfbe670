// backend_software.go - CPU compositing backend

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
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// softwareRowsPerTask is the height of the horizontal band each worker
// renders.
const softwareRowsPerTask = 16

type softwareBackend struct {
	width    int
	height   int
	target   *image.RGBA
	textures [TEXTURE_UNITS]Texture
	bindings BindingTable
	workers  int
}

func newSoftwareBackend(cfg Config) (compositorBackend, error) {
	if cfg.PixelWidth <= 0 || cfg.PixelHeight <= 0 {
		return nil, &RenderError{
			Operation: "context acquisition",
			Details:   fmt.Sprintf("software surface %dx%d", cfg.PixelWidth, cfg.PixelHeight),
			Err:       ErrContextUnavailable,
		}
	}
	return &softwareBackend{
		width:    cfg.PixelWidth,
		height:   cfg.PixelHeight,
		target:   image.NewRGBA(image.Rect(0, 0, cfg.PixelWidth, cfg.PixelHeight)),
		bindings: cfg.Bindings,
		workers:  runtime.GOMAXPROCS(0),
	}, nil
}

func (sb *softwareBackend) Name() string {
	return "software"
}

func (sb *softwareBackend) UploadTexture(spec TextureSpec, rgba []byte) error {
	if spec.Unit < 0 || spec.Unit >= TEXTURE_UNITS {
		return fmt.Errorf("texture unit %d out of range", spec.Unit)
	}
	if role, ok := sb.bindings.RoleAt(spec.Unit); !ok || role != spec.Role {
		return fmt.Errorf("%s texture sent to unit %d which is bound to %s", spec.Role, spec.Unit, role)
	}
	if len(rgba) != spec.Width*spec.Height*RGBA_CHANNELS {
		return fmt.Errorf("%s upload has %d bytes, want %d", spec.Role, len(rgba), spec.Width*spec.Height*RGBA_CHANNELS)
	}
	tex := &sb.textures[spec.Unit]
	if cap(tex.Pix) < len(rgba) {
		tex.Pix = make([]byte, len(rgba))
	}
	tex.Pix = tex.Pix[:len(rgba)]
	copy(tex.Pix, rgba)
	tex.Width = spec.Width
	tex.Height = spec.Height
	tex.Channels = RGBA_CHANNELS
	return nil
}

func (sb *softwareBackend) SetAtlas(atlas *FontAtlas) (bool, error) {
	sb.textures[sb.bindings.Atlas] = atlas.Texture()
	return false, nil
}

// Draw rasterizes the fullscreen quad, running the sampler once per covered
// pixel center. Rows are split into bands rendered in parallel.
func (sb *softwareBackend) Draw(gridWidth, gridHeight int) error {
	sampler := &AtlasSampler{
		GridWidth:  gridWidth,
		GridHeight: gridHeight,
		Atlas:      sb.textures[sb.bindings.Atlas],
		Glyph:      sb.textures[sb.bindings.Glyph],
		Foreground: sb.textures[sb.bindings.Foreground],
		Background: sb.textures[sb.bindings.Background],
	}
	bounds := quadBounds(sb.width, sb.height)

	var g errgroup.Group
	g.SetLimit(sb.workers)
	for y0 := bounds.Min.Y; y0 < bounds.Max.Y; y0 += softwareRowsPerTask {
		y1 := min(y0+softwareRowsPerTask, bounds.Max.Y)
		g.Go(func() error {
			sb.drawRows(sampler, bounds.Min.X, bounds.Max.X, y0, y1)
			return nil
		})
	}
	return g.Wait()
}

func (sb *softwareBackend) drawRows(s *AtlasSampler, x0, x1, y0, y1 int) {
	for py := y0; py < y1; py++ {
		row := sb.target.Pix[py*sb.target.Stride:]
		for px := x0; px < x1; px++ {
			uv := TexCoordFromNDC(PixelToNDC(px, py, sb.width, sb.height))
			c := s.Sample(uv).RGB()
			o := px * RGBA_CHANNELS
			row[o] = c.R
			row[o+1] = c.G
			row[o+2] = c.B
			row[o+3] = 0xFF
		}
	}
}

// quadBounds is the pixel rectangle covered by the fullscreen quad, clipped
// to the surface.
func quadBounds(width, height int) image.Rectangle {
	verts, _ := FullscreenQuad()
	x0, y0 := NDCToPixel(verts[0], width, height)
	minX, minY, maxX, maxY := x0, y0, x0, y0
	for _, v := range verts[1:] {
		x, y := NDCToPixel(v, width, height)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	r := image.Rect(int(minX), int(minY), int(maxX), int(maxY))
	return r.Intersect(image.Rect(0, 0, width, height))
}

func (sb *softwareBackend) Surface() Surface {
	return softwareSurface{img: sb.target}
}

func (sb *softwareBackend) Close() error {
	return nil
}

type softwareSurface struct {
	img *image.RGBA
}

func (s softwareSurface) Size() (int, int) {
	return s.img.Rect.Dx(), s.img.Rect.Dy()
}

func (s softwareSurface) Image() image.Image {
	return s.img
}

// RGBA returns the backing image without copying.
func (s softwareSurface) RGBA() *image.RGBA {
	return s.img
}
