package observ

import (
	"fmt"
	"slices"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Phase is one timed step of expanding a file. Items counts what the step
// worked on (syntax nodes, macro calls) in the given Unit.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Items int
	Unit  string
}

// Timer records the phases of one file in order. A nil *Timer is valid and
// records nothing. Timer is not safe for concurrent use.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin starts a phase and returns its handle; -1 on a nil Timer.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase idx. Unknown handles are ignored.
func (t *Timer) End(idx, items int, unit string) {
	if t == nil || idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur, p.Items, p.Unit = time.Since(p.Start), items, unit
}

// PhaseReport — фаза в сериализуемом виде.
type PhaseReport struct {
	Name       string  `json:"name" yaml:"name"`
	DurationMS float64 `json:"duration_ms" yaml:"duration_ms"`
	Items      int     `json:"items,omitempty" yaml:"items,omitempty"`
	Unit       string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Report is what a Timer measured, or the sum over several files.
type Report struct {
	TotalMS float64       `json:"total_ms" yaml:"total_ms"`
	Files   int           `json:"files,omitempty" yaml:"files,omitempty"`
	Phases  []PhaseReport `json:"phases" yaml:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	r := Report{Files: 1, Phases: make([]PhaseReport, len(t.phases))}
	for i, p := range t.phases {
		ms := millis(p.Dur)
		r.Phases[i] = PhaseReport{Name: p.Name, DurationMS: ms, Items: p.Items, Unit: p.Unit}
		r.TotalMS += ms
	}
	return r
}

// Merge adds other into r. Phases with the same name are summed; new names
// keep the order in which they were first seen.
func (r *Report) Merge(other Report) {
	for _, p := range other.Phases {
		i := slices.IndexFunc(r.Phases, func(q PhaseReport) bool { return q.Name == p.Name })
		if i < 0 {
			r.Phases = append(r.Phases, p)
			continue
		}
		r.Phases[i].DurationMS += p.DurationMS
		r.Phases[i].Items += p.Items
		if r.Phases[i].Unit == "" {
			r.Phases[i].Unit = p.Unit
		}
	}
	r.TotalMS += other.TotalMS
	r.Files += other.Files
}

// Summary renders the report as a table with a per-item cost column.
func (r Report) Summary() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetTitle(fmt.Sprintf("timings (%d files)", r.Files))
	tw.AppendHeader(table.Row{"phase", "ms", "items", "per item"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	for _, p := range r.Phases {
		items, per := "", ""
		if p.Items > 0 {
			items = fmt.Sprintf("%d %s", p.Items, p.Unit)
			per = fmt.Sprintf("%.1f µs", p.DurationMS*1000/float64(p.Items))
		}
		tw.AppendRow(table.Row{p.Name, fmt.Sprintf("%.2f", p.DurationMS), items, per})
	}
	tw.AppendFooter(table.Row{"total", fmt.Sprintf("%.2f", r.TotalMS), "", ""})
	return tw.Render() + "\n"
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
