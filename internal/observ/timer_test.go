package observ

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := &Timer{now: fakeClock(time.Millisecond)}
	read := tm.Begin("read")
	tm.End(read, "")
	load := tm.Begin("load")
	tm.End(load, "cache hit")
	tm.End(42, "ignored")

	want := Report{
		TotalMS: 2,
		Phases: []PhaseReport{
			{Name: "read", DurationMS: 1},
			{Name: "load", DurationMS: 1, Note: "cache hit"},
		},
	}
	if diff := cmp.Diff(want, tm.Report()); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := tm.WriteSummary(&buf); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	wantText := "// timing: read             1.00 ms\n" +
		"// timing: load             1.00 ms  (cache hit)\n" +
		"// timing: total            2.00 ms\n"
	if diff := cmp.Diff(wantText, buf.String()); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("read")
	tm.End(idx, "")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Errorf("nil timer reported phases: %+v", r)
	}
}
