// xadrez is a two-player chess game for the terminal. With -replay it
// replays move scripts instead and reports how each one ends.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/xadrez-go/internal/config"
	"github.com/lgbarn/xadrez-go/internal/hashing"
	"github.com/lgbarn/xadrez-go/internal/match"
	"github.com/lgbarn/xadrez-go/internal/output"
	"github.com/lgbarn/xadrez-go/internal/script"
	"github.com/lgbarn/xadrez-go/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("xadrez version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "xadrez: %v\n", err)
		os.Exit(2)
	}
	if *replay && cfg.Replay.Interactive() {
		fmt.Fprintln(os.Stderr, "xadrez: -replay needs at least one script")
		os.Exit(2)
	}

	setupLogFile(cfg)
	setupOutputFile(cfg)

	if cfg.Replay.Interactive() {
		os.Exit(play(cfg, os.Stdin))
	}
	os.Exit(replayAll(cfg, *jsonOutput))
}

// play runs an interactive match and returns the exit status.
func play(cfg *config.Config, in io.Reader) int {
	m, err := newMatch(cfg)
	if err != nil {
		fmt.Fprintf(cfg.LogFile, "xadrez: %v\n", err)
		return 2
	}
	logf(cfg, 2, "match %s: started from %s\n", m.ID(), m.FEN())

	if err := NewConsole(cfg, m, in).Run(); err != nil {
		if err == io.EOF {
			logf(cfg, 1, "match %s: abandoned on turn %d\n", m.ID(), m.Turn())
			return 0
		}
		fmt.Fprintf(cfg.LogFile, "xadrez: %v\n", err)
		return 1
	}
	return 0
}

func newMatch(cfg *config.Config) (*match.Match, error) {
	opt := match.WithPromotionDefault(cfg.PromotionDefault)
	if cfg.StartFEN == "" {
		return match.New(opt), nil
	}
	return match.NewFromFEN(cfg.StartFEN, opt)
}

// replayAll replays every script and returns 1 if any of them failed.
func replayAll(cfg *config.Config, jsonFormat bool) int {
	opts := script.ReplayOptions{
		StopOnError: cfg.Replay.StopOnError,
		Match:       []match.Option{match.WithPromotionDefault(cfg.PromotionDefault)},
	}
	results := worker.Run(cfg.Replay.Files, worker.ReplayFile(opts), worker.WithWorkers(cfg.Replay.Workers))
	if cfg.Replay.Duplicates {
		d := hashing.NewDuplicateDetector(false)
		markDuplicates(results, d)
		logf(cfg, 2, "%d distinct final positions, %d duplicates\n", d.UniqueCount(), d.DuplicateCount())
	}

	w := output.NewResultWriter(cfg.OutputFile, cfg, jsonFormat)
	for _, r := range results {
		if r.Report != nil {
			logf(cfg, 2, "match %s: replayed %s, %d moves\n", r.Report.Match.ID(), r.Path, r.Report.Played)
		}
		if err := w.WriteResult(r); err != nil {
			fmt.Fprintf(cfg.LogFile, "xadrez: %v\n", err)
			return 1
		}
	}
	if err := w.Close(); err != nil {
		fmt.Fprintf(cfg.LogFile, "xadrez: %v\n", err)
		return 1
	}

	if err := worker.Errors(results); err != nil {
		logf(cfg, 1, "%v\n", err)
		return 1
	}
	logf(cfg, 1, "%d scripts replayed\n", len(results))
	return 0
}

// markDuplicates runs results through d in command-line order, so the
// first script to reach a position is the one later scripts point at.
func markDuplicates(results []worker.ProcessResult, d *hashing.DuplicateDetector) {
	for i := range results {
		rep := results[i].Report
		if rep == nil {
			continue
		}
		if first, dup := d.CheckAndAdd(results[i].Path, rep.Match); dup {
			results[i].DuplicateOf = first
		}
	}
}

// logf writes to the log stream when the verbosity is at least level.
func logf(cfg *config.Config, level int, format string, args ...interface{}) {
	if cfg.Verbosity >= level {
		fmt.Fprintf(cfg.LogFile, format, args...)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
	cfg.OutputFilename = *outputFile
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: xadrez [options]\n")
	fmt.Fprintf(os.Stderr, "       xadrez -replay [options] script...\n\n")
	fmt.Fprintf(os.Stderr, "A two-player chess game. Moves are entered as source and target squares, e.g. e2 then e4.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nMove scripts hold one move per line (e2e4, e2-e4 or e2 e4);\n")
	fmt.Fprintf(os.Stderr, "a promotion piece may follow the target (a7a8=N). '#' starts a comment.\n")
	fmt.Fprintf(os.Stderr, "A leading \"fen <position>\" line starts the script from a custom position.\n")
}
