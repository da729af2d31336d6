package progression

import "testing"

func TestComputeStreaks_Empty(t *testing.T) {
	current, longest := ComputeStreaks(nil, Day("2025-09-04"))
	if current != 0 || longest != 0 {
		t.Fatalf("expected 0/0 for no qualifying days, got %d/%d", current, longest)
	}
}

func TestComputeStreaks_SingleToday(t *testing.T) {
	today := Day("2025-09-04")
	current, longest := ComputeStreaks([]Day{today}, today)
	if current != 1 || longest != 1 {
		t.Fatalf("expected 1/1, got %d/%d", current, longest)
	}
}

func TestComputeStreaks_RunEndingYesterdayStillCounts(t *testing.T) {
	today := Day("2025-09-04")
	days := []Day{today.Add(-3), today.Add(-2), today.Add(-1)}
	current, longest := ComputeStreaks(days, today)
	if current != 3 {
		t.Fatalf("run ending yesterday should count as current, got %d", current)
	}
	if longest != 3 {
		t.Fatalf("expected longest 3, got %d", longest)
	}
}

func TestComputeStreaks_GapBreaksRun(t *testing.T) {
	today := Day("2025-09-04")
	days := []Day{today.Add(-5), today.Add(-4), today.Add(-3), today}
	current, longest := ComputeStreaks(days, today)
	if current != 1 {
		t.Fatalf("expected current 1 after a gap, got %d", current)
	}
	if longest != 3 {
		t.Fatalf("expected longest 3 from the earlier run, got %d", longest)
	}
}

func TestComputeStreaks_StaleRunGivesNoCurrent(t *testing.T) {
	today := Day("2025-09-04")
	days := []Day{today.Add(-7), today.Add(-6), today.Add(-5)}
	current, longest := ComputeStreaks(days, today)
	if current != 0 {
		t.Fatalf("run ending before yesterday must not count, got %d", current)
	}
	if longest != 3 {
		t.Fatalf("expected longest 3, got %d", longest)
	}
}

func TestComputeStreaks_DuplicateDays(t *testing.T) {
	today := Day("2025-09-04")
	days := []Day{today, today, today.Add(-1), today.Add(-1)}
	current, longest := ComputeStreaks(days, today)
	if current != 2 || longest != 2 {
		t.Fatalf("duplicates must not inflate runs, got %d/%d", current, longest)
	}
}

func TestComputeStreaks_MonthBoundary(t *testing.T) {
	days := []Day{"2025-08-30", "2025-08-31", "2025-09-01"}
	current, longest := ComputeStreaks(days, Day("2025-09-01"))
	if current != 3 || longest != 3 {
		t.Fatalf("expected 3/3 across the month boundary, got %d/%d", current, longest)
	}
}
