package observ

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	parse := tm.Begin("parse")
	resolve := tm.Begin("resolve")
	tm.End(resolve, 2, "calls")
	tm.End(parse, 7, "nodes")
	tm.End(42, 1, "ignored")

	rep := tm.Report()
	want := Report{Files: 1, Phases: []PhaseReport{
		{Name: "parse", Items: 7, Unit: "nodes"},
		{Name: "resolve", Items: 2, Unit: "calls"},
	}}
	ignoreTime := cmpopts.IgnoreFields(PhaseReport{}, "DurationMS")
	if diff := cmp.Diff(want, rep, ignoreTime, cmpopts.IgnoreFields(Report{}, "TotalMS")); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	if sum := rep.Phases[0].DurationMS + rep.Phases[1].DurationMS; rep.TotalMS != sum {
		t.Errorf("total %v != sum of phases %v", rep.TotalMS, sum)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("x")
	if idx != -1 {
		t.Errorf("Begin on nil = %d, want -1", idx)
	}
	tm.End(idx, 0, "")
	if diff := cmp.Diff(Report{}, tm.Report()); diff != "" {
		t.Errorf("nil timer report (-want +got):\n%s", diff)
	}
}

func TestReportMerge(t *testing.T) {
	a := Report{TotalMS: 3, Files: 1, Phases: []PhaseReport{{Name: "parse", DurationMS: 1, Items: 4, Unit: "nodes"}, {Name: "expand", DurationMS: 2}}}
	b := Report{TotalMS: 5, Files: 2, Phases: []PhaseReport{{Name: "expand", DurationMS: 4}, {Name: "resolve", DurationMS: 1, Items: 3, Unit: "calls"}}}
	a.Merge(b)

	want := Report{TotalMS: 8, Files: 3, Phases: []PhaseReport{
		{Name: "parse", DurationMS: 1, Items: 4, Unit: "nodes"},
		{Name: "expand", DurationMS: 6},
		{Name: "resolve", DurationMS: 1, Items: 3, Unit: "calls"},
	}}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("merged (-want +got):\n%s", diff)
	}
}

func TestReportSummary(t *testing.T) {
	r := Report{TotalMS: 3, Files: 2, Phases: []PhaseReport{
		{Name: "resolve", DurationMS: 2, Items: 4, Unit: "calls"},
		{Name: "expand", DurationMS: 1},
	}}
	out := r.Summary()
	for _, want := range []string{"timings (2 files)", "resolve", "4 calls", "500.0 µs", "expand", "3.00"} {
		if !strings.Contains(strings.ToLower(out), strings.ToLower(want)) {
			t.Errorf("summary lacks %q:\n%s", want, out)
		}
	}
}
