package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	tr := New(LevelDispatch)

	// WHEN summarized
	summary := Summarize(tr)

	// THEN all counts are zero
	if summary.TotalEvents != 0 {
		t.Errorf("expected 0 total events, got %d", summary.TotalEvents)
	}
	if len(summary.KindCounts) != 0 {
		t.Errorf("expected empty kind counts, got %v", summary.KindCounts)
	}
	if summary.FirstTime != 0 || summary.LastTime != 0 {
		t.Error("expected zero first/last times")
	}
}

func TestSummarize_NilTrace_Safe(t *testing.T) {
	summary := Summarize(nil)
	if summary == nil {
		t.Fatal("Summarize(nil) returned nil")
	}
	if summary.TotalEvents != 0 {
		t.Errorf("expected 0 total events, got %d", summary.TotalEvents)
	}
}

func TestSummarize_CountsKindsAndSpan(t *testing.T) {
	// GIVEN a trace with a mix of event kinds
	tr := New(LevelDispatch)
	tr.RecordDispatch(2.0, "ARRIVAL", -1, 0)
	tr.RecordDispatch(4.0, "ARRIVAL", -1, 0)
	tr.RecordDispatch(5.0, "PASSAGE", 0, 1)
	tr.RecordDispatch(8.0, "DEPARTURE", 1, -1)

	// WHEN summarized
	summary := Summarize(tr)

	// THEN counts and time span reflect the records
	if summary.TotalEvents != 4 {
		t.Errorf("TotalEvents = %d, want 4", summary.TotalEvents)
	}
	if summary.KindCounts["ARRIVAL"] != 2 {
		t.Errorf("ARRIVAL count = %d, want 2", summary.KindCounts["ARRIVAL"])
	}
	if summary.KindCounts["PASSAGE"] != 1 || summary.KindCounts["DEPARTURE"] != 1 {
		t.Errorf("kind counts = %v, want one PASSAGE and one DEPARTURE", summary.KindCounts)
	}
	if summary.FirstTime != 2.0 || summary.LastTime != 8.0 {
		t.Errorf("time span = [%v, %v], want [2, 8]", summary.FirstTime, summary.LastTime)
	}
}
