// Package config provides configuration for the xadrez console and replay tool.
package config

import (
	"io"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	// PromotionDefault is the kind a pawn becomes on the last rank until
	// the player picks another.
	PromotionDefault chess.Kind

	// StartFEN is the position an interactive match starts from; empty
	// means the standard setup.
	StartFEN string

	Display DisplayConfig
	Replay  ReplayConfig

	// File handling
	OutputFilename string

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:        1,
		PromotionDefault: chess.Queen,
		Display:          *NewDisplayConfig(),
		Replay:           *NewReplayConfig(),
		OutputFile:       os.Stdout,
		LogFile:          os.Stderr,
	}
}

// SetOutput sets the stream boards and results are written to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.Verbosity < 0 || c.Verbosity > 2 {
		result = multierror.Append(result, errors.Wrapf(errors.ErrInvalidConfig, "verbosity %d not in 0..2", c.Verbosity))
	}
	if !c.PromotionDefault.IsPromotionTarget() {
		result = multierror.Append(result, errors.Wrapf(errors.ErrInvalidConfig, "cannot promote to %s", c.PromotionDefault))
	}
	if err := c.Display.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.Replay.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if c.OutputFile == nil {
		result = multierror.Append(result, errors.Wrap(errors.ErrInvalidConfig, "no output stream"))
	}
	if c.LogFile == nil {
		result = multierror.Append(result, errors.Wrap(errors.ErrInvalidConfig, "no log stream"))
	}
	return result.ErrorOrNil()
}

// UseColour reports whether board output should carry ANSI colour.
func (c *Config) UseColour() bool {
	return c.Display.Colour.Enabled(c.OutputFile)
}
