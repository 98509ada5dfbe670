//go:build headless

package textmode

func newEbitenBackend(cfg Config) (compositorBackend, error) {
	return nil, &RenderError{
		Operation: "context acquisition",
		Details:   "ebiten backend not available in headless build",
		Err:       ErrContextUnavailable,
	}
}
