package config

import (
	"io"

	"github.com/lgbarn/xadrez-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// DetectDuplicates reports scripts that end in an already seen position.
func (b *ConfigBuilder) DetectDuplicates() *ConfigBuilder {
	b.cfg.Replay.Duplicates = true
	return b
}

// WithStartFEN sets the starting position of an interactive match.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.StartFEN = fen
	return b
}

// WithPromotionDefault sets the kind pawns promote to before a choice is made.
func (b *ConfigBuilder) WithPromotionDefault(kind chess.Kind) *ConfigBuilder {
	b.cfg.PromotionDefault = kind
	return b
}

// WithColour sets the colour mode.
func (b *ConfigBuilder) WithColour(mode ColourMode) *ConfigBuilder {
	b.cfg.Display.Colour = mode
	return b
}

// WithBoard enables printing the final board of each replay.
func (b *ConfigBuilder) WithBoard(enabled bool) *ConfigBuilder {
	b.cfg.Display.ShowBoard = enabled
	return b
}

// WithReplay sets the scripts to replay and the worker count.
func (b *ConfigBuilder) WithReplay(workers int, files ...string) *ConfigBuilder {
	b.cfg.Replay.Workers = workers
	b.cfg.Replay.Files = files
	return b
}

// ContinueOnError keeps replaying a script past rejected moves.
func (b *ConfigBuilder) ContinueOnError(enabled bool) *ConfigBuilder {
	b.cfg.Replay.StopOnError = !enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
