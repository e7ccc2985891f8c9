package script

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/errors"
	"github.com/lgbarn/xadrez-go/internal/match"
)

// ReplayOptions controls how a script is replayed.
type ReplayOptions struct {
	// StopOnError abandons the script at the first rejected step.
	StopOnError bool
	// Match options applied to the new match, e.g. the promotion default.
	Match []match.Option
}

// Report is the outcome of replaying one script.
type Report struct {
	Script *Script
	Match  *match.Match
	Played int // steps accepted by the match
	// Err collects every rejected step as a *multierror.Error, or is nil.
	Err error
}

// Replay plays every step of s on a new match.
func Replay(s *Script, opts ReplayOptions) *Report {
	r := &Report{Script: s}
	if s.FEN == "" {
		r.Match = match.New(opts.Match...)
	} else {
		m, err := match.NewFromFEN(s.FEN, opts.Match...)
		if err != nil {
			r.Match = match.New(opts.Match...)
			r.Err = errors.Wrapf(err, "%s starting position", s.Name)
			return r
		}
		r.Match = m
	}
	var result *multierror.Error

	for _, step := range s.Steps {
		played, err := r.apply(step)
		if played {
			r.Played++
		}
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "%s line %d", s.Name, step.Line))
			if opts.StopOnError {
				break
			}
		}
	}
	r.Err = result.ErrorOrNil()
	return r
}

// apply reports whether the move itself was played; a bad promotion
// choice after a played move still returns an error.
func (r *Report) apply(step Step) (bool, error) {
	if _, err := r.Match.PerformMove(step.Source, step.Target); err != nil {
		return false, err
	}
	if step.Promotion == chess.NoKind {
		return true, nil
	}
	if r.Match.PendingPromotion() == nil {
		return true, errors.Wrapf(errors.ErrNoPromotion, "move %s", step)
	}
	_, err := r.Match.ResolvePromotion(step.Promotion)
	return true, err
}

// Outcome summarises the final state, e.g. "checkmate, Black wins".
func (r *Report) Outcome() string {
	m := r.Match
	switch {
	case m.Checkmate():
		return fmt.Sprintf("checkmate, %s wins", m.CurrentPlayer())
	case m.InCheck():
		return fmt.Sprintf("%s to move, in check", m.CurrentPlayer())
	}
	return fmt.Sprintf("%s to move", m.CurrentPlayer())
}

// Errors returns the individual step failures.
func (r *Report) Errors() []error {
	if r.Err == nil {
		return nil
	}
	if merr, ok := r.Err.(*multierror.Error); ok {
		return merr.Errors
	}
	return []error{r.Err}
}
