// Package observ measures the phases of a run for --timings.
package observ

import (
	"fmt"
	"io"
	"time"
)

// Phase records the duration and metadata of one phase of a run.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks phases in the order they were started. The zero value is
// ready to use; a nil *Timer ignores every call, so callers need not check
// whether timings were requested.
type Timer struct {
	phases []Phase
	now    func() time.Time
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

func (t *Timer) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, Phase{Name: name, Start: t.clock()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if t == nil || idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = t.clock().Sub(p.Start)
	p.Note = note
}

// PhaseReport представляет сжатую информацию о фазе для вывода.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report returns the phases and their sum in milliseconds.
func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// WriteSummary prints one line per phase and a total, prefixed with "//" so
// the summary can sit next to C++ output without breaking it.
func (t *Timer) WriteSummary(w io.Writer) error {
	report := t.Report()
	for _, p := range report.Phases {
		line := fmt.Sprintf("// timing: %-12s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  (" + p.Note + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "// timing: %-12s %8.2f ms\n", "total", report.TotalMS)
	return err
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
