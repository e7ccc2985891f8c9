package config

import (
	"github.com/lgbarn/xadrez-go/internal/errors"
)

// MaxWorkers bounds the replay worker pool.
const MaxWorkers = 64

// ReplayConfig holds settings for batch replay of move scripts.
type ReplayConfig struct {
	// Files are the move scripts to replay. Empty means interactive play.
	Files []string

	// Workers is the number of scripts replayed concurrently
	Workers int

	// StopOnError abandons a script at its first rejected move. When false
	// the rejected line is reported and replay continues with the next one.
	StopOnError bool

	// Duplicates reports scripts whose final position matches an earlier
	// script's.
	Duplicates bool
}

// NewReplayConfig creates a ReplayConfig with default values.
func NewReplayConfig() *ReplayConfig {
	return &ReplayConfig{
		Workers:     1,
		StopOnError: true,
	}
}

// Validate checks that the replay configuration is valid.
func (r *ReplayConfig) Validate() error {
	if r.Workers < 1 || r.Workers > MaxWorkers {
		return errors.Wrapf(errors.ErrInvalidConfig, "workers %d not in 1..%d", r.Workers, MaxWorkers)
	}
	return nil
}

// Interactive reports whether no scripts were given.
func (r *ReplayConfig) Interactive() bool {
	return len(r.Files) == 0
}
