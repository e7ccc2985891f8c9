// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"strings"

	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/config"
	"github.com/lgbarn/xadrez-go/internal/errors"
)

var (
	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	colourMode = flag.String("colour", "auto", "ANSI colour: auto, always, never")
	jsonOutput = flag.Bool("J", false, "Write replay results as JSON")
	showBoard  = flag.Bool("board", false, "Print the final board of each replayed script")

	// Game options
	promoteTo = flag.String("promote", "Q", "Default promotion piece: B, N, R or Q")
	startFEN  = flag.String("fen", "", "Start the interactive match from a FEN position")

	// Replay options
	replay    = flag.Bool("replay", false, "Replay the move scripts given as arguments instead of playing")
	workers   = flag.Int("workers", 1, "Number of scripts replayed concurrently")
	keepGoing = flag.Bool("k", false, "Keep replaying a script after a rejected move")
	dupes     = flag.Bool("D", false, "Report scripts that end in the same position as an earlier one")

	// Logging
	logFile = flag.String("l", "", "Write diagnostics to log file")
	verbose = flag.Bool("v", false, "Log every move")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no summary)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration. args are the
// positional arguments left after flag parsing.
func applyFlags(cfg *config.Config, args []string) error {
	mode, err := config.ParseColourMode(*colourMode)
	if err != nil {
		return err
	}
	cfg.Display.Colour = mode
	cfg.Display.ShowBoard = *showBoard

	kind, err := parsePromotion(*promoteTo)
	if err != nil {
		return err
	}
	cfg.PromotionDefault = kind
	cfg.StartFEN = strings.TrimSpace(*startFEN)

	if *replay {
		cfg.Replay.Files = args
	}
	cfg.Replay.Workers = *workers
	cfg.Replay.StopOnError = !*keepGoing
	cfg.Replay.Duplicates = *dupes

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
	return cfg.Validate()
}

// parsePromotion accepts a promotion letter in either case.
func parsePromotion(s string) (chess.Kind, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		if kind := chess.KindFromLetter(s[0]); kind.IsPromotionTarget() {
			return kind, nil
		}
	}
	return chess.NoKind, errors.Wrapf(errors.ErrInvalidPromotion, "%q, valid pieces are B, N, R and Q", s)
}
