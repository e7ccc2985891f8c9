// console.go - Interactive two-player game on the terminal
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/config"
	"github.com/lgbarn/xadrez-go/internal/match"
	"github.com/lgbarn/xadrez-go/internal/render"
)

// Console runs a match against input lines until checkmate or end of input.
type Console struct {
	cfg     *config.Config
	m       *match.Match
	in      *bufio.Scanner
	out     io.Writer
	printer *render.Printer
}

// NewConsole creates a console playing m, reading from in and drawing to
// cfg.OutputFile.
func NewConsole(cfg *config.Config, m *match.Match, in io.Reader) *Console {
	return &Console{
		cfg:     cfg,
		m:       m,
		in:      bufio.NewScanner(in),
		out:     cfg.OutputFile,
		printer: render.NewPrinter(cfg.OutputFile, cfg.UseColour()),
	}
}

// Run plays until checkmate. It returns io.EOF if input ends first.
func (c *Console) Run() error {
	for !c.m.Checkmate() {
		if err := c.turn(); err != nil {
			return err
		}
	}
	c.printer.Clear()
	c.printer.Match(c.m)
	logf(c.cfg, 1, "match %s: checkmate on turn %d, %s wins\n", c.m.ID(), c.m.Turn(), c.m.CurrentPlayer())
	return nil
}

// turn reads and plays one move. Rejected input is reported and the turn
// starts over; only running out of input is an error.
func (c *Console) turn() error {
	c.printer.Clear()
	c.printer.Match(c.m)
	fmt.Fprintln(c.out)

	source, err := c.readSquare("Source: ")
	if err != nil {
		return err
	}
	if source == nil {
		return nil
	}
	destinations, err := c.m.SafeDestinations(*source)
	if err != nil {
		c.reject(err)
		return nil
	}

	c.printer.Clear()
	c.printer.Board(c.m.BoardSnapshot(), destinations)
	fmt.Fprintln(c.out)

	target, err := c.readSquare("Target: ")
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}

	mover := c.m.CurrentPlayer()
	captured, err := c.m.PerformMove(*source, *target)
	if err != nil {
		c.reject(err)
		return nil
	}
	logf(c.cfg, 2, "match %s: %s %s-%s\n", c.m.ID(), mover, source, target)
	if captured != nil {
		logf(c.cfg, 2, "match %s: captured %s on %s\n", c.m.ID(), captured.Kind, captured.Square)
	}

	if c.m.PendingPromotion() != nil {
		return c.promote()
	}
	return nil
}

// promote asks for a promotion piece until a valid one is given.
func (c *Console) promote() error {
	for {
		fmt.Fprint(c.out, "Enter piece for promotion (B/N/R/Q): ")
		line, err := c.readLine()
		if err != nil {
			return err
		}
		kind, err := parsePromotion(line)
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		if _, err := c.m.ResolvePromotion(kind); err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		logf(c.cfg, 2, "match %s: promoted to %s\n", c.m.ID(), kind)
		return nil
	}
}

// readSquare returns nil without error when the line is not a square; the
// message has already been shown.
func (c *Console) readSquare(prompt string) (*chess.Square, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.readLine()
	if err != nil {
		return nil, err
	}
	sq, err := chess.ParseSquare(line)
	if err != nil {
		c.reject(err)
		return nil, nil
	}
	return &sq, nil
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// reject shows err and waits for Enter so the message is not cleared at once.
func (c *Console) reject(err error) {
	fmt.Fprintln(c.out, err)
	logf(c.cfg, 2, "match %s: rejected: %v\n", c.m.ID(), err)
	if c.cfg.UseColour() {
		c.readLine() //nolint:errcheck // end of input is seen by the next read
	}
}
