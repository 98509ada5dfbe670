// atlas_loader.go - Asynchronous font atlas loading

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
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"sync/atomic"
)

// AtlasState tracks the font atlas through its single asynchronous load.
type AtlasState int

const (
	AtlasPending AtlasState = iota // placeholder in use, load in flight
	AtlasReady                     // real atlas adopted
	AtlasFailed                    // load failed, placeholder stays
)

func (s AtlasState) String() string {
	switch s {
	case AtlasPending:
		return "pending"
	case AtlasReady:
		return "ready"
	case AtlasFailed:
		return "failed"
	}
	return fmt.Sprintf("AtlasState(%d)", int(s))
}

// AtlasResult is the outcome of a finished load.
type AtlasResult struct {
	Location string
	Format   string
	Atlas    *FontAtlas
	Err      error
}

// AtlasLoader fetches and decodes one atlas on a background goroutine and
// publishes the result for the frame goroutine to pick up. There is no
// timeout: a hung fetch leaves Result returning nil forever.
type AtlasLoader struct {
	client  *http.Client
	log     *slog.Logger
	result  atomic.Pointer[AtlasResult]
	started atomic.Bool
	done    chan struct{}
}

// NewAtlasLoader creates a loader. A nil client uses http.DefaultClient.
func NewAtlasLoader(client *http.Client, log *slog.Logger) *AtlasLoader {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = Logger()
	}
	return &AtlasLoader{client: client, log: log, done: make(chan struct{})}
}

// Start begins loading location. Only the first call has any effect.
func (l *AtlasLoader) Start(ctx context.Context, location string) {
	if !l.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(l.done)
		atlas, format, err := LoadAtlas(ctx, l.client, location)
		if err != nil {
			l.log.Warn("textmode: font atlas load failed", "location", location, "error", err)
		} else {
			w, h := atlas.Size()
			l.log.Debug("textmode: font atlas decoded", "location", location, "format", format, "width", w, "height", h)
		}
		l.result.Store(&AtlasResult{Location: location, Format: format, Atlas: atlas, Err: err})
	}()
}

// Result returns the finished load, or nil while it is still in flight.
func (l *AtlasLoader) Result() *AtlasResult {
	return l.result.Load()
}

// Done is closed once Result is available.
func (l *AtlasLoader) Done() <-chan struct{} {
	return l.done
}

// LoadAtlas synchronously opens and decodes an atlas. location is a file
// path, a file:// URL or an http(s):// URL.
func LoadAtlas(ctx context.Context, client *http.Client, location string) (*FontAtlas, string, error) {
	rc, err := openAtlas(ctx, client, location)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()
	return DecodeAtlas(rc)
}

func openAtlas(ctx context.Context, client *http.Client, location string) (io.ReadCloser, error) {
	if location == "" {
		return nil, fmt.Errorf("font atlas location is empty")
	}
	u, err := url.Parse(location)
	// Single-letter schemes are Windows drive letters.
	if err != nil || len(u.Scheme) <= 1 {
		return os.Open(location)
	}
	switch u.Scheme {
	case "file":
		return os.Open(u.Path)
	case "http", "https":
		if client == nil {
			client = http.DefaultClient
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, fmt.Errorf("font atlas request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch font atlas: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch font atlas: %s", resp.Status)
		}
		return resp.Body, nil
	}
	return nil, fmt.Errorf("font atlas location %q: unsupported scheme %q", location, u.Scheme)
}
