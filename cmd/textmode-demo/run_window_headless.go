//go:build headless

package main

import (
	"errors"

	"github.com/intuitionamiga/textmode"
)

func runWindow(r *textmode.Renderer) error {
	return errors.New("window backend not available in headless build, use -backend terminal or -png")
}
