// Package audit accumulates the notes produced by cleaning stages and
// renders them as the cleaning summary.
package audit

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/table"
	"github.com/goccy/go-json"
)

// DefaultTitle is the title line of the text summary.
const DefaultTitle = "Netflix dataset cleaning summary"

// Note is one recorded action, tagged with the stage that produced it.
type Note struct {
	Stage string `json:"stage"`
	Text  string `json:"text"`
}

// Recorder collects notes in stage execution order. Skipped stages are
// kept apart from action notes.
type Recorder struct {
	notes   []Note
	skipped []Note
}

// NewRecorder returns an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends the notes of one stage, in order.
func (r *Recorder) Record(stage string, texts ...string) {
	for _, t := range texts {
		r.notes = append(r.notes, Note{Stage: stage, Text: t})
	}
}

// Skip records that a stage did not run.
func (r *Recorder) Skip(stage, reason string) {
	r.skipped = append(r.skipped, Note{Stage: stage, Text: reason})
}

// Notes returns a copy of the recorded action notes.
func (r *Recorder) Notes() []Note {
	out := make([]Note, len(r.notes))
	copy(out, r.notes)
	return out
}

// Skipped returns a copy of the skip entries.
func (r *Recorder) Skipped() []Note {
	out := make([]Note, len(r.skipped))
	copy(out, r.skipped)
	return out
}

// Summary is the write-once result of a cleaning run.
type Summary struct {
	RunID         string        `json:"run_id"`
	OriginalShape table.Shape   `json:"original_shape"`
	FinalShape    table.Shape   `json:"final_shape"`
	Notes         []string      `json:"notes"`
	Skipped       []string      `json:"skipped,omitempty"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration_ns"`
}

// Summary builds the cleaning summary from the recorded notes.
func (r *Recorder) Summary(runID string, original, final table.Shape, startedAt time.Time, elapsed time.Duration) *Summary {
	s := &Summary{
		RunID:         runID,
		OriginalShape: original,
		FinalShape:    final,
		Notes:         make([]string, 0, len(r.notes)),
		StartedAt:     startedAt,
		Duration:      elapsed,
	}
	for _, n := range r.notes {
		s.Notes = append(s.Notes, n.Text)
	}
	for _, n := range r.skipped {
		s.Skipped = append(s.Skipped, n.Text)
	}
	return s
}

// RenderText renders the plain-text report. An empty title falls back to
// DefaultTitle.
func RenderText(s *Summary, title string) string {
	if title == "" {
		title = DefaultTitle
	}
	var b strings.Builder
	b.WriteString(title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", len([]rune(title))))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Original shape: %s\n", s.OriginalShape)
	fmt.Fprintf(&b, "Final shape: %s\n\n", s.FinalShape)
	b.WriteString("Actions performed:\n")
	for _, n := range s.Notes {
		b.WriteString("- ")
		b.WriteString(n)
		b.WriteByte('\n')
	}
	if len(s.Skipped) > 0 {
		b.WriteString("\nSkipped stages:\n")
		for _, n := range s.Skipped {
			b.WriteString("- ")
			b.WriteString(n)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RenderJSON renders the summary as indented JSON.
func RenderJSON(s *Summary) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode summary")
	}
	return append(data, '\n'), nil
}

// WriteText writes the text report to path.
func WriteText(path string, s *Summary, title string) error {
	return writeFile(path, []byte(RenderText(s, title)))
}

// WriteJSON writes the JSON summary to path.
func WriteJSON(path string, s *Summary) error {
	data, err := RenderJSON(s)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write summary").
			WithDetail("path", path)
	}
	return nil
}
