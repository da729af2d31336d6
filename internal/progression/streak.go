package progression

import "sort"

// ComputeStreaks derives the current and longest consecutive-day
// streaks from the set of qualifying days.
//
// The current streak is the length of the maximal run of consecutive
// days ending at today; if today has no qualifying event yet, the run
// ending at yesterday still counts, pending today's contribution. A gap
// of one or more full days breaks a run. Zero qualifying days means
// both streaks are zero.
func ComputeStreaks(days []Day, today Day) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}

	sorted := make([]Day, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	runLen := 0
	var runEnd Day
	for i, d := range sorted {
		if i > 0 && d == sorted[i-1] {
			continue
		}
		if runLen > 0 && d == runEnd.Add(1) {
			runLen++
		} else {
			runLen = 1
		}
		runEnd = d
		if runLen > longest {
			longest = runLen
		}
	}

	// Only the final run can still be alive: qualifying days never lie
	// in the future, so any earlier run ended before yesterday.
	if runEnd == today || runEnd == today.Add(-1) {
		current = runLen
	}
	return current, longest
}
