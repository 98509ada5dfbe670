// main.go - Demo host for the textmode renderer
//
// Usage: textmode-demo [-config textmode.toml] [-atlas font.png]
//                      [-backend ebiten|software|terminal] [-png out.png]

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

package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/intuitionamiga/textmode"
)

var (
	colorTitle  = textmode.MustParseHex("#ff1493")
	colorText   = textmode.MustParseHex("#bebebe")
	colorDim    = textmode.MustParseHex("#787878")
	colorBanner = textmode.MustParseHex("#0055aa")
)

func main() {
	var (
		configPath string
		atlasPath  string
		backend    string
		pngPath    string
		width      int
		height     int
		scale      float64
		verbose    bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&configPath, "config", "", "TOML configuration file")
	flagSet.StringVar(&atlasPath, "atlas", "", "Font atlas path or URL (overrides config)")
	flagSet.StringVar(&backend, "backend", "ebiten", "Backend: ebiten, software or terminal")
	flagSet.StringVar(&pngPath, "png", "", "Render one software frame to this PNG and exit")
	flagSet.IntVar(&width, "width", textmode.DEFAULT_PIXEL_WIDTH, "Surface width in pixels")
	flagSet.IntVar(&height, "height", textmode.DEFAULT_PIXEL_HEIGHT, "Surface height in pixels")
	flagSet.Float64Var(&scale, "scale", 1, "Window scale")
	flagSet.BoolVar(&verbose, "v", false, "Log renderer diagnostics to stderr")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: textmode-demo [-config textmode.toml] [-atlas font.png] [-backend ebiten|software|terminal] [-png out.png]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cfg := textmode.DefaultConfig()
	if configPath != "" {
		loaded, err := textmode.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Explicit flags win over the config file.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "atlas":
			cfg.FontAtlasURL = atlasPath
		case "width":
			cfg.PixelWidth = width
		case "height":
			cfg.PixelHeight = height
		case "scale":
			cfg.DisplayScale = scale
		}
	})
	if cfg.FontAtlasURL == "" {
		fmt.Println("Error: a font atlas is required (-atlas or font_atlas_url)")
		os.Exit(1)
	}

	if verbose {
		textmode.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	cfg.OnAtlasError = func(err error) {
		fmt.Printf("Font atlas unavailable, drawing backgrounds only: %v\n", err)
	}

	backend = strings.ToLower(backend)
	if pngPath != "" {
		backend = "software"
	}
	switch backend {
	case "ebiten":
		cfg.Backend = textmode.BACKEND_EBITEN
	case "software", "terminal":
		cfg.Backend = textmode.BACKEND_SOFTWARE
	default:
		fmt.Printf("Error: unknown backend %q\n", backend)
		os.Exit(1)
	}

	r, err := textmode.New(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize renderer: %v\n", err)
		os.Exit(1)
	}

	drawDemo(r)

	switch {
	case pngPath != "":
		err = writePNG(r, pngPath)
	case backend == "terminal":
		err = runTerminal(r)
	default:
		err = runWindow(r)
	}
	if err = closeAfter(r, err); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// closeAfter releases the renderer once its run finishes. os.Exit skips
// deferred calls, so the error path must close before exiting.
func closeAfter(r io.Closer, runErr error) error {
	closeErr := r.Close()
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return fmt.Errorf("close renderer: %w", closeErr)
	}
	return nil
}

// drawDemo fills the grid with a title, the full glyph table and a color
// ramp.
func drawDemo(r *textmode.Renderer) {
	gw, gh := r.GridSize()
	r.Clear(textmode.WithForeground(colorText))

	r.SetString(1, 0, "TEXTMODE", textmode.WithForeground(colorTitle))
	r.SetString(10, 0, fmt.Sprintf("%dx%d cells", gw, gh), textmode.WithForeground(colorDim))

	for g := range textmode.ATLAS_GLYPHS {
		x := 2 + (g%textmode.ATLAS_COLUMNS)*2
		y := 2 + g/textmode.ATLAS_COLUMNS
		r.SetCell(x, y, textmode.WithGlyph(g))
	}

	for x := range gw {
		v := uint8(x * 255 / max(gw-1, 1))
		r.SetCell(x, gh-2, textmode.WithGlyph(' '), textmode.WithBackground(textmode.RGB{R: v, G: 0, B: 255 - v}))
	}
	r.SetString(0, gh-1, strings.Repeat(" ", gw), textmode.WithBackground(colorBanner))
	r.SetString(1, gh-1, "Ctrl+Shift+V paste  Esc quit", textmode.WithForeground(textmode.White), textmode.WithBackground(colorBanner))
}

func writePNG(r *textmode.Renderer, path string) error {
	<-r.AtlasLoaded()
	if err := r.Frame(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, r.Surface().Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	w, h := r.PixelSize()
	fmt.Printf("Written %dx%d frame to %s\n", w, h, path)
	return nil
}
