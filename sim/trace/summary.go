package trace

// Summary aggregates statistics from a dispatch trace.
type Summary struct {
	TotalEvents int
	KindCounts  map[string]int // event kind → dispatch count
	FirstTime   float64
	LastTime    float64
}

// Summarize computes aggregate statistics from a dispatch trace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *Trace) *Summary {
	summary := &Summary{
		KindCounts: make(map[string]int),
	}
	if t == nil || len(t.Records) == 0 {
		return summary
	}

	summary.TotalEvents = len(t.Records)
	summary.FirstTime = t.Records[0].Time
	summary.LastTime = t.Records[len(t.Records)-1].Time
	for _, r := range t.Records {
		summary.KindCounts[r.Kind]++
	}

	return summary
}
