// atlas_test.go - Font atlas decoding and loading tests

package textmode

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// testAtlasImage returns a 16x16 atlas of 1x1 tiles where only the listed
// glyphs are lit.
func testAtlasImage(lit ...uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, ATLAS_COLUMNS, ATLAS_ROWS))
	for _, g := range lit {
		img.SetNRGBA(int(g)%ATLAS_COLUMNS, int(g)/ATLAS_COLUMNS, color.NRGBA{255, 255, 255, 255})
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func writeAtlasFile(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "font.png")
	if err := os.WriteFile(path, encodePNG(t, img), 0o644); err != nil {
		t.Fatalf("write atlas: %v", err)
	}
	return path
}

func TestPlaceholderAtlas(t *testing.T) {
	a := PlaceholderAtlas()
	if !a.IsPlaceholder() {
		t.Fatal("placeholder not flagged")
	}
	if w, h := a.Size(); w != 1 || h != 1 {
		t.Fatalf("placeholder is %dx%d", w, h)
	}
	if c := a.Texture().SampleNearest(0.5, 0.5)[0]; c != 0 {
		t.Fatalf("placeholder coverage %v, want 0", c)
	}
}

func TestDecodeAtlas_PNG(t *testing.T) {
	a, format, err := DecodeAtlas(bytes.NewReader(encodePNG(t, testAtlasImage('A'))))
	if err != nil {
		t.Fatalf("DecodeAtlas: %v", err)
	}
	if format != "png" {
		t.Fatalf("format %q", format)
	}
	if a.IsPlaceholder() || !a.TileAligned() {
		t.Fatal("decoded atlas should be a tile-aligned real atlas")
	}
	tex := a.Texture()
	if tex.Pix[4*16+1] != 0xFF {
		t.Fatalf("glyph A texel = %d", tex.Pix[4*16+1])
	}
	if tex.Pix[0] != 0 {
		t.Fatalf("glyph 0 texel = %d", tex.Pix[0])
	}
}

func TestNewFontAtlas_TransparentIsUncovered(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 0})
	img.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 255})

	a, err := NewFontAtlas(img)
	if err != nil {
		t.Fatalf("NewFontAtlas: %v", err)
	}
	pix := a.Texture().Pix
	if pix[0] != 0 || pix[1] != 0xFF {
		t.Fatalf("coverage %v, want [0 255]", pix)
	}
}

func TestNewFontAtlas_OffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(10, 10, 12, 11))
	img.SetGray(11, 10, color.Gray{Y: 200})
	a, err := NewFontAtlas(img)
	if err != nil {
		t.Fatalf("NewFontAtlas: %v", err)
	}
	if pix := a.Texture().Pix; pix[0] != 0 || pix[1] != 200 {
		t.Fatalf("coverage %v, want [0 200]", pix)
	}
}

func TestDecodeAtlas_Garbage(t *testing.T) {
	if _, _, err := DecodeAtlas(strings.NewReader("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNewFontAtlasCoverage(t *testing.T) {
	if _, err := NewFontAtlasCoverage(2, 2, []uint8{1, 2, 3}); err == nil {
		t.Fatal("short coverage should fail")
	}
	if _, err := NewFontAtlasCoverage(0, 2, nil); err == nil {
		t.Fatal("empty atlas should fail")
	}
	src := []uint8{1, 2, 3, 4}
	a, err := NewFontAtlasCoverage(2, 2, src)
	if err != nil {
		t.Fatalf("NewFontAtlasCoverage: %v", err)
	}
	src[0] = 99
	if a.Texture().Pix[0] != 1 {
		t.Fatal("atlas aliases caller's slice")
	}
}

func TestFontAtlas_TileRect(t *testing.T) {
	a, _ := NewFontAtlasCoverage(128, 256, make([]uint8, 128*256))
	r := a.TileRect('A')
	want := image.Rect(8, 64, 16, 80)
	if r != want {
		t.Fatalf("TileRect(A) = %v, want %v", r, want)
	}
	if r := a.TileRect(255); r != image.Rect(120, 240, 128, 256) {
		t.Fatalf("TileRect(255) = %v", r)
	}
}

func TestFontAtlas_Spec(t *testing.T) {
	a, _ := NewFontAtlasCoverage(16, 16, make([]uint8, 256))
	spec := a.Spec(BindingTable{Atlas: 2, Glyph: 0, Foreground: 1, Background: 3})
	if spec.Role != RoleAtlas || spec.Unit != 2 || spec.Width != 16 || spec.Channels != 1 {
		t.Fatalf("unexpected spec %+v", spec)
	}
	if len(a.RGBA()) != 16*16*4 {
		t.Fatalf("RGBA has %d bytes", len(a.RGBA()))
	}
}

func TestLoadAtlas_File(t *testing.T) {
	path := writeAtlasFile(t, testAtlasImage('A'))

	for _, loc := range []string{path, "file://" + path} {
		a, _, err := LoadAtlas(context.Background(), nil, loc)
		if err != nil {
			t.Fatalf("LoadAtlas(%q): %v", loc, err)
		}
		if w, h := a.Size(); w != 16 || h != 16 {
			t.Fatalf("LoadAtlas(%q) size %dx%d", loc, w, h)
		}
	}
}

func TestLoadAtlas_HTTP(t *testing.T) {
	body := encodePNG(t, testAtlasImage('B'))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/font.png" {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	a, format, err := LoadAtlas(context.Background(), srv.Client(), srv.URL+"/font.png")
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if format != "png" || a.Texture().Pix[4*16+2] != 0xFF {
		t.Fatalf("unexpected atlas (format %q)", format)
	}

	_, _, err = LoadAtlas(context.Background(), srv.Client(), srv.URL+"/missing.png")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 error, got %v", err)
	}
}

func TestLoadAtlas_Failures(t *testing.T) {
	tests := []string{
		"",
		filepath.Join(t.TempDir(), "absent.png"),
		"gopher://example.com/font.png",
	}
	for _, loc := range tests {
		if _, _, err := LoadAtlas(context.Background(), nil, loc); err == nil {
			t.Errorf("LoadAtlas(%q) should fail", loc)
		}
	}
}

func TestAtlasLoader_PublishesOnce(t *testing.T) {
	path := writeAtlasFile(t, testAtlasImage())
	l := NewAtlasLoader(nil, nil)
	if l.Result() != nil {
		t.Fatal("result before start")
	}
	l.Start(context.Background(), path)
	l.Start(context.Background(), "ignored")

	select {
	case <-l.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("loader did not finish")
	}
	res := l.Result()
	if res == nil || res.Err != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Location != path || res.Format != "png" {
		t.Fatalf("result %+v", res)
	}
}

func TestAtlasLoader_Failure(t *testing.T) {
	l := NewAtlasLoader(nil, nil)
	l.Start(context.Background(), filepath.Join(t.TempDir(), "absent.png"))
	<-l.Done()
	if res := l.Result(); res == nil || res.Err == nil || res.Atlas != nil {
		t.Fatalf("expected failed result, got %+v", res)
	}
}

func TestAtlasState_String(t *testing.T) {
	if AtlasFailed.String() != "failed" || AtlasState(7).String() != "AtlasState(7)" {
		t.Fatal("unexpected AtlasState strings")
	}
}
