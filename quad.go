// quad.go - Fullscreen quad geometry

package textmode

// QuadVertex is one corner in normalized device coordinates.
type QuadVertex struct {
	X, Y float32
}

// fullscreenQuad covers NDC [-1,1]^2 with two triangles. It never changes.
var fullscreenQuad = [4]QuadVertex{
	{-1, -1},
	{1, -1},
	{-1, 1},
	{1, 1},
}

var fullscreenQuadIndices = [6]uint16{0, 1, 2, 1, 3, 2}

// FullscreenQuad returns the quad's corners and triangle indices.
func FullscreenQuad() ([4]QuadVertex, [6]uint16) {
	return fullscreenQuad, fullscreenQuadIndices
}

// NDCToPixel maps an NDC corner to surface pixels with y pointing down.
func NDCToPixel(v QuadVertex, width, height int) (x, y float32) {
	x = (v.X*0.5 + 0.5) * float32(width)
	y = (1 - (v.Y*0.5 + 0.5)) * float32(height)
	return x, y
}

// PixelToNDC maps the center of surface pixel (px, py) to NDC.
func PixelToNDC(px, py, width, height int) Vec2 {
	return Vec2{
		(float32(px)+0.5)/float32(width)*2 - 1,
		1 - (float32(py)+0.5)/float32(height)*2,
	}
}
