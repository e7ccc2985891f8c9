package output

import (
	"strings"

	"github.com/lgbarn/xadrez-go/internal/match"
	"github.com/lgbarn/xadrez-go/internal/worker"
)

// JSONResult represents one replayed script in JSON format.
type JSONResult struct {
	File        string     `json:"file"`
	MatchID     string     `json:"matchId,omitempty"`
	Played      int        `json:"played"`
	Outcome     string     `json:"outcome,omitempty"`
	Turn        int        `json:"turn,omitempty"`
	ToMove      string     `json:"toMove,omitempty"`
	Check       bool       `json:"check,omitempty"`
	Checkmate   bool       `json:"checkmate,omitempty"`
	Moves       []JSONMove `json:"moves,omitempty"`
	Captured    []string   `json:"captured,omitempty"`
	Errors      []string   `json:"errors,omitempty"`
	FinalFEN    string     `json:"finalFen,omitempty"`
	DuplicateOf string     `json:"duplicateOf,omitempty"`
}

// JSONMove represents a ply in JSON format.
type JSONMove struct {
	Turn      int    `json:"turn"`
	Colour    string `json:"colour"` // "white" or "black"
	Text      string `json:"text"`
	Piece     string `json:"piece"`
	From      string `json:"from"`
	To        string `json:"to"`
	Captured  string `json:"captured,omitempty"`
	Promotion string `json:"promotion,omitempty"`
	Castle    bool   `json:"castle,omitempty"`
	EnPassant bool   `json:"enPassant,omitempty"`
	Check     bool   `json:"check,omitempty"`
	Checkmate bool   `json:"checkmate,omitempty"`
}

// JSONOutput holds multiple results for array output.
type JSONOutput struct {
	Results []*JSONResult `json:"results"`
}

// ResultToJSON converts a replay result to JSON format.
func ResultToJSON(r worker.ProcessResult) *JSONResult {
	jr := &JSONResult{File: r.Path}
	if r.Err != nil {
		jr.Errors = []string{r.Err.Error()}
		return jr
	}
	if r.Report == nil {
		return jr
	}

	m := r.Report.Match
	jr.MatchID = m.ID()
	jr.Played = r.Report.Played
	jr.Outcome = r.Report.Outcome()
	jr.Turn = m.Turn()
	jr.ToMove = lower(m.CurrentPlayer().String())
	jr.Check = m.InCheck()
	jr.Checkmate = m.Checkmate()
	jr.FinalFEN = m.FEN()
	jr.DuplicateOf = r.DuplicateOf

	for _, ply := range m.History() {
		jr.Moves = append(jr.Moves, convertPly(ply))
	}
	for _, v := range m.Captured() {
		jr.Captured = append(jr.Captured, v.String())
	}
	for _, err := range r.Report.Errors() {
		jr.Errors = append(jr.Errors, err.Error())
	}
	return jr
}

func convertPly(ply match.Ply) JSONMove {
	jm := JSONMove{
		Turn:      ply.Turn,
		Colour:    lower(ply.Colour.String()),
		Text:      ply.String(),
		Piece:     lower(ply.Kind.String()),
		From:      ply.From.String(),
		To:        ply.To.String(),
		Castle:    ply.Castle,
		EnPassant: ply.EnPassant,
		Check:     ply.Check,
		Checkmate: ply.Checkmate,
	}
	if ply.Captured != nil {
		jm.Captured = lower(ply.Captured.Kind.String())
	}
	if ply.Promotion.IsPromotionTarget() {
		jm.Promotion = lower(ply.Promotion.String())
	}
	return jm
}

func lower(s string) string {
	return strings.ToLower(s)
}
