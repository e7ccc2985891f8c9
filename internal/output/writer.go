package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/xadrez-go/internal/config"
	"github.com/lgbarn/xadrez-go/internal/render"
	"github.com/lgbarn/xadrez-go/internal/worker"
)

// ResultWriter is the interface for writing replay results.
type ResultWriter interface {
	// WriteResult writes a single result.
	WriteResult(r worker.ProcessResult) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close flushes and releases any resources.
	Close() error
}

// NewResultWriter returns the writer matching cfg.
func NewResultWriter(w io.Writer, cfg *config.Config, jsonFormat bool) ResultWriter {
	if jsonFormat {
		return NewJSONWriter(w)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes one summary line per result, followed by the move list
// at verbosity 2 and the final board when the config asks for it.
type TextWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{w: w, cfg: cfg}
}

// WriteResult writes a result as text.
func (tw *TextWriter) WriteResult(r worker.ProcessResult) error {
	if r.Err != nil {
		_, err := fmt.Fprintf(tw.w, "%s: error: %v\n", r.Path, r.Err)
		return err
	}
	rep := r.Report
	line := fmt.Sprintf("%s: %d moves, %s", r.Path, rep.Played, rep.Outcome())
	if errs := rep.Errors(); len(errs) > 0 {
		line += fmt.Sprintf(", first error: %v", errs[0])
	}
	if r.DuplicateOf != "" {
		line += ", same position as " + r.DuplicateOf
	}
	if _, err := fmt.Fprintln(tw.w, line); err != nil {
		return err
	}

	if tw.cfg.Verbosity > 1 {
		WriteMoves(NewLineWriter(tw.w, DefaultLineLength), rep.Match.History())
	}
	if tw.cfg.Display.ShowBoard {
		p := render.NewPrinter(tw.w, tw.cfg.UseColour())
		p.Board(rep.Match.BoardSnapshot(), nil)
		if tw.cfg.Display.ShowCaptured {
			p.Captured(rep.Match.Captured())
		}
		fmt.Fprintln(tw.w)
	}
	return nil
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter buffers results and writes them as a JSON array on Flush.
type JSONWriter struct {
	w       io.Writer
	results []*JSONResult
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// WriteResult buffers a result.
func (jw *JSONWriter) WriteResult(r worker.ProcessResult) error {
	jw.results = append(jw.results, ResultToJSON(r))
	return nil
}

// Flush writes all buffered results as a JSON array.
func (jw *JSONWriter) Flush() error {
	if len(jw.results) == 0 {
		return nil
	}
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Results: jw.results})
	jw.results = jw.results[:0]
	return err
}

// Close flushes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
