//go:build !headless

// backend_ebiten.go - GPU compositing backend on ebiten

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

	"github.com/hajimehoshi/ebiten/v2"
)

type ebitenBackend struct {
	width    int
	height   int
	target   *ebiten.Image
	shader   *ebiten.Shader
	bindings BindingTable

	// All four source images share one backing size; each role uses the
	// top-left region of its logical size.
	images [TEXTURE_UNITS]*ebiten.Image
	texW   int
	texH   int

	atlasW int
	atlasH int

	vertices []ebiten.Vertex
	indices  []uint16
	uniforms map[string]any
}

func newEbitenBackend(cfg Config) (compositorBackend, error) {
	if cfg.PixelWidth <= 0 || cfg.PixelHeight <= 0 {
		return nil, &RenderError{
			Operation: "context acquisition",
			Details:   fmt.Sprintf("ebiten surface %dx%d", cfg.PixelWidth, cfg.PixelHeight),
			Err:       ErrContextUnavailable,
		}
	}
	shader, err := ebiten.NewShader(ShaderSource(cfg.Bindings))
	if err != nil {
		return nil, &RenderError{
			Operation: "shader compilation",
			Details:   "compositing shader",
			Err:       fmt.Errorf("%w: %v", ErrShaderCompile, err),
		}
	}

	gw, gh := cfg.GridSize()
	eb := &ebitenBackend{
		width:    cfg.PixelWidth,
		height:   cfg.PixelHeight,
		target:   ebiten.NewImage(cfg.PixelWidth, cfg.PixelHeight),
		shader:   shader,
		bindings: cfg.Bindings,
		uniforms: make(map[string]any, 2),
	}
	eb.allocate(gw, gh)
	eb.buildQuad()
	return eb, nil
}

func (eb *ebitenBackend) Name() string {
	return "ebiten"
}

// allocate (re)creates the four source images at w x h.
func (eb *ebitenBackend) allocate(w, h int) {
	for i, img := range eb.images {
		if img != nil {
			img.Deallocate()
		}
		eb.images[i] = ebiten.NewImage(w, h)
	}
	eb.texW, eb.texH = w, h
}

func (eb *ebitenBackend) buildQuad() {
	verts, indices := FullscreenQuad()
	eb.vertices = make([]ebiten.Vertex, len(verts))
	for i, v := range verts {
		x, y := NDCToPixel(v, eb.width, eb.height)
		eb.vertices[i] = ebiten.Vertex{
			DstX:   x,
			DstY:   y,
			SrcX:   (v.X*0.5 + 0.5) * float32(eb.texW),
			SrcY:   (0.5 - v.Y*0.5) * float32(eb.texH),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
	eb.indices = indices[:]
}

func (eb *ebitenBackend) UploadTexture(spec TextureSpec, rgba []byte) error {
	if spec.Unit < 0 || spec.Unit >= TEXTURE_UNITS {
		return fmt.Errorf("texture unit %d out of range", spec.Unit)
	}
	if role, ok := eb.bindings.RoleAt(spec.Unit); !ok || role != spec.Role {
		return fmt.Errorf("%s texture sent to unit %d which is bound to %s", spec.Role, spec.Unit, role)
	}
	if spec.Width > eb.texW || spec.Height > eb.texH {
		return fmt.Errorf("%s texture %dx%d exceeds backing %dx%d", spec.Role, spec.Width, spec.Height, eb.texW, eb.texH)
	}
	if spec.Filter != FilterNearest || spec.Wrap != WrapClampToEdge {
		return fmt.Errorf("%s texture: only nearest, clamp-to-edge sampling is supported", spec.Role)
	}
	img := eb.images[spec.Unit]
	if spec.Width != eb.texW || spec.Height != eb.texH {
		img = img.SubImage(image.Rect(0, 0, spec.Width, spec.Height)).(*ebiten.Image)
	}
	img.WritePixels(rgba)
	return nil
}

func (eb *ebitenBackend) SetAtlas(atlas *FontAtlas) (bool, error) {
	aw, ah := atlas.Size()
	invalidated := false
	if aw > eb.texW || ah > eb.texH {
		eb.allocate(max(aw, eb.texW), max(ah, eb.texH))
		eb.buildQuad()
		invalidated = true
	}
	if err := eb.UploadTexture(atlas.Spec(eb.bindings), atlas.RGBA()); err != nil {
		return invalidated, err
	}
	eb.atlasW, eb.atlasH = aw, ah
	return invalidated, nil
}

func (eb *ebitenBackend) Draw(gridWidth, gridHeight int) error {
	eb.uniforms[UNIFORM_GRID_SIZE] = []float32{float32(gridWidth), float32(gridHeight)}
	eb.uniforms[UNIFORM_ATLAS_SIZE] = []float32{float32(eb.atlasW), float32(eb.atlasH)}

	op := &ebiten.DrawTrianglesShaderOptions{
		Uniforms: eb.uniforms,
		Blend:    ebiten.BlendCopy,
	}
	for unit, img := range eb.images {
		op.Images[unit] = img
	}
	eb.target.DrawTrianglesShader(eb.vertices, eb.indices, eb.shader, op)
	return nil
}

func (eb *ebitenBackend) Surface() Surface {
	return &EbitenSurface{img: eb.target}
}

func (eb *ebitenBackend) Close() error {
	for i, img := range eb.images {
		if img != nil {
			img.Deallocate()
			eb.images[i] = nil
		}
	}
	eb.shader.Deallocate()
	eb.target.Deallocate()
	return nil
}

// EbitenSurface is the handle of a renderer built with BACKEND_EBITEN.
type EbitenSurface struct {
	img *ebiten.Image
}

func (s *EbitenSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *EbitenSurface) Image() image.Image {
	return s.img
}

// EbitenImage returns the image the compositor draws into, for hosts that
// draw it onto their own screen.
func (s *EbitenSurface) EbitenImage() *ebiten.Image {
	return s.img
}
