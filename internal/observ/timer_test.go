package observ_test

import (
	"strings"
	"testing"

	"pubdiff/internal/observ"
)

func TestTimerReport(t *testing.T) {
	timer := observ.NewTimer()
	idx := timer.Begin("diff")
	timer.End(idx, "3 entries")

	report := timer.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("want 1 phase, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "diff" || report.Phases[0].Note != "3 entries" {
		t.Fatalf("unexpected phase: %+v", report.Phases[0])
	}
	if report.Phases[0].DurationMS < 0 {
		t.Fatalf("negative duration")
	}
}

func TestTimerSummaryContainsPhases(t *testing.T) {
	timer := observ.NewTimer()
	timer.End(timer.Begin("load old"), "")
	timer.End(timer.Begin("load new"), "")

	summary := timer.Summary()
	for _, want := range []string{"load old", "load new", "total"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := observ.NewTimer()
	timer.End(5, "ignored") // must not panic
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Fatalf("phantom phase recorded: %+v", got)
	}
}
