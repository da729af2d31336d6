package progression

import "math"

// DailyStats aggregates one day's activity for dashboard rendering.
type DailyStats struct {
	Day              Day `json:"day"`
	TasksCompleted   int `json:"tasksCompleted"`
	PomodoroSessions int `json:"pomodoroSessions"`
	FocusMinutes     int `json:"focusMinutes"`
	MoodRating       int `json:"moodRating"`
}

// WeeklySummary rolls the trailing seven days up for the dashboard.
type WeeklySummary struct {
	TasksThisWeek     int     `json:"tasksThisWeek"`
	PomodorosThisWeek int     `json:"pomodorosThisWeek"`
	FocusMinutesWeek  int     `json:"focusMinutesThisWeek"`
	AverageMood       float64 `json:"averageMoodThisWeek"`
}

// CalculateDailyStats computes per-day aggregates from events for each
// day in [from, to], inclusive. Days with no activity are included with
// zero counts so charts get a continuous axis.
func CalculateDailyStats(events []Event, from, to Day) []DailyStats {
	// Index into out by day; taking element pointers here would go stale
	// as append grows the slice.
	byDay := make(map[Day]int)
	out := make([]DailyStats, 0)
	for d := from; d <= to; d = d.Add(1) {
		out = append(out, DailyStats{Day: d})
		byDay[d] = len(out) - 1
	}

	for _, ev := range events {
		i, ok := byDay[ev.Day]
		if !ok {
			continue
		}
		ds := &out[i]
		switch ev.Kind {
		case KindTaskCompleted:
			ds.TasksCompleted++
		case KindPomodoroFinished:
			ds.PomodoroSessions++
			ds.FocusMinutes += metaInt(ev.Metadata, "duration_minutes")
		case KindMoodLogged:
			ds.MoodRating = metaInt(ev.Metadata, "rating")
		}
	}
	return out
}

// CalculateWeekly rolls up the seven days ending at the given day.
func CalculateWeekly(events []Event, endDay Day) WeeklySummary {
	days := CalculateDailyStats(events, endDay.Add(-6), endDay)

	var sum WeeklySummary
	moodSum, moodDays := 0, 0
	for _, ds := range days {
		sum.TasksThisWeek += ds.TasksCompleted
		sum.PomodorosThisWeek += ds.PomodoroSessions
		sum.FocusMinutesWeek += ds.FocusMinutes
		if ds.MoodRating > 0 {
			moodSum += ds.MoodRating
			moodDays++
		}
	}
	if moodDays > 0 {
		// One decimal place, matching the dashboard display.
		sum.AverageMood = math.Round(float64(moodSum)/float64(moodDays)*10) / 10
	}
	return sum
}
