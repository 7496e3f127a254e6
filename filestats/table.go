// SPDX-License-Identifier: EPL-2.0

package filestats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

const (
	ColumnUtterance  = "sample_utterance"
	ColumnSpeaker    = "sample_speaker"
	ColumnFilename   = "sample_filename"
	ColumnDuration   = "sample_duration"
	ColumnSampleRate = "sample_samplerate"

	// DefaultMarker flags a tree produced by the transform step.
	DefaultMarker = "_transformed"
)

// Row is one probed file.
type Row struct {
	Label      string
	Filename   string
	Duration   float64 // seconds
	SampleRate int     // Hz
}

// Table holds one Row per scanned file. Columns[0] is the label column,
// ColumnUtterance or ColumnSpeaker.
type Table struct {
	Columns [4]string
	Rows    []Row
}

func NewTable(labelColumn string) *Table {
	return &Table{
		Columns: [4]string{labelColumn, ColumnFilename, ColumnDuration, ColumnSampleRate},
	}
}

// Records returns the rows keyed by column name, the shape used by the JSON
// and YAML writers.
func (t *Table) Records() []map[string]any {
	out := make([]map[string]any, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, map[string]any{
			t.Columns[0]: r.Label,
			t.Columns[1]: r.Filename,
			t.Columns[2]: r.Duration,
			t.Columns[3]: r.SampleRate,
		})
	}

	return out
}

func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns[:]); err != nil {
		return fmt.Errorf("%w", err)
	}

	for _, r := range t.Rows {
		err := cw.Write([]string{
			r.Label,
			r.Filename,
			strconv.FormatFloat(r.Duration, 'f', -1, 64),
			strconv.Itoa(r.SampleRate),
		})
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func (t *Table) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(t.Records())
}

func (t *Table) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.Records()); err != nil {
		return fmt.Errorf("%w", err)
	}

	return enc.Close()
}

// Render draws the table for a terminal, followed by a summary footer.
func (t *Table) Render(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	tw.AppendHeader(header)

	for _, r := range t.Rows {
		tw.AppendRow(table.Row{r.Label, r.Filename, fmt.Sprintf("%.3f", r.Duration), r.SampleRate})
	}

	s := t.Summary()
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d labels", s.Labels),
		fmt.Sprintf("%d files", s.Files),
		fmt.Sprintf("%.3f", s.TotalDuration),
		fmt.Sprint(s.SampleRates),
	})

	tw.Render()
}

// Summary aggregates a table.
type Summary struct {
	Files         int
	Labels        int
	TotalDuration float64
	MinDuration   float64
	MaxDuration   float64
	MeanDuration  float64
	SampleRates   []int // distinct, ascending
}

func (t *Table) Summary() Summary {
	s := Summary{Files: len(t.Rows)}
	if s.Files == 0 {
		return s
	}

	labels := make(map[string]struct{})
	s.MinDuration = math.Inf(1)

	for _, r := range t.Rows {
		labels[r.Label] = struct{}{}
		s.TotalDuration += r.Duration
		s.MinDuration = min(s.MinDuration, r.Duration)
		s.MaxDuration = max(s.MaxDuration, r.Duration)

		if !slices.Contains(s.SampleRates, r.SampleRate) {
			s.SampleRates = append(s.SampleRates, r.SampleRate)
		}
	}

	slices.Sort(s.SampleRates)
	s.Labels = len(labels)
	s.MeanDuration = s.TotalDuration / float64(s.Files)

	return s
}
