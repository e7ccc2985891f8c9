package config

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lgbarn/xadrez-go/internal/errors"
)

// ColourMode selects when ANSI colour is used.
type ColourMode int

const (
	ColourAuto ColourMode = iota // colour only when writing to a terminal
	ColourAlways
	ColourNever
)

// ParseColourMode maps "auto", "always" and "never" to a mode.
func ParseColourMode(s string) (ColourMode, error) {
	switch s {
	case "auto", "":
		return ColourAuto, nil
	case "always":
		return ColourAlways, nil
	case "never":
		return ColourNever, nil
	}
	return ColourAuto, errors.Wrapf(errors.ErrInvalidConfig, "colour mode %q", s)
}

// String returns the flag spelling of the mode.
func (m ColourMode) String() string {
	switch m {
	case ColourAlways:
		return "always"
	case ColourNever:
		return "never"
	}
	return "auto"
}

// Enabled resolves the mode against the stream output goes to.
func (m ColourMode) Enabled(w io.Writer) bool {
	switch m {
	case ColourAlways:
		return true
	case ColourNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DisplayConfig holds settings for drawing the board.
type DisplayConfig struct {
	Colour ColourMode

	// ShowBoard prints the final board after each replayed script
	ShowBoard bool

	// ShowCaptured lists captured pieces under the board
	ShowCaptured bool
}

// NewDisplayConfig creates a DisplayConfig with default values.
func NewDisplayConfig() *DisplayConfig {
	return &DisplayConfig{
		Colour:       ColourAuto,
		ShowCaptured: true,
	}
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	if d.Colour < ColourAuto || d.Colour > ColourNever {
		return errors.Wrapf(errors.ErrInvalidConfig, "colour mode %d", d.Colour)
	}
	return nil
}
