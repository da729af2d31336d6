package progression

import "time"

// Achievement is a badge with a one-time unlock. The predicate is
// evaluated against the derived State after every ledger append;
// unlocking flips Unlocked exactly once, stamps UnlockedAt and credits
// CoinReward in the same transition.
//
// Predicates are monotone in the tracked counters: streak-based badges
// check LongestStreak rather than CurrentStreak so a broken streak can
// never relock them.
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CoinReward  int        `json:"coinReward"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`

	predicate func(State) bool
}

// snapshot returns a copy safe to hand to callers: the predicate is
// stripped so snapshots compare by value.
func (a *Achievement) snapshot() Achievement {
	c := *a
	c.predicate = nil
	return c
}

func defaultAchievements() []*Achievement {
	return []*Achievement{
		{
			ID:          "first-task",
			Name:        "First Steps",
			Description: "Complete your first task",
			CoinReward:  10,
			predicate:   func(s State) bool { return s.TasksCompleted >= 1 },
		},
		{
			ID:          "focus-master",
			Name:        "Focus Master",
			Description: "Complete 5 pomodoro sessions",
			CoinReward:  25,
			predicate:   func(s State) bool { return s.PomodoroSessions >= 5 },
		},
		{
			ID:          "note-taker",
			Name:        "Note Taker",
			Description: "Create 10 sticky notes",
			CoinReward:  15,
			predicate:   func(s State) bool { return s.NotesCreated >= 10 },
		},
		{
			ID:          "streak-5",
			Name:        "Getting Started",
			Description: "Complete tasks for 5 days in a row",
			CoinReward:  15,
			predicate:   func(s State) bool { return s.LongestStreak >= 5 },
		},
		{
			ID:          "week-warrior",
			Name:        "Week Warrior",
			Description: "Stay productive for 7 days straight",
			CoinReward:  50,
			predicate:   func(s State) bool { return s.LongestStreak >= 7 },
		},
		{
			ID:          "mood-tracker",
			Name:        "Mood Tracker",
			Description: "Log your mood 20 times",
			CoinReward:  20,
			predicate:   func(s State) bool { return s.MoodEntries >= 20 },
		},
		{
			ID:          "pomodoro-master",
			Name:        "Pomodoro Master",
			Description: "Complete 25 pomodoro sessions",
			CoinReward:  40,
			predicate:   func(s State) bool { return s.PomodoroSessions >= 25 },
		},
		{
			ID:          "task-completionist",
			Name:        "Task Completionist",
			Description: "Complete 100 tasks total",
			CoinReward:  60,
			predicate:   func(s State) bool { return s.TasksCompleted >= 100 },
		},
		{
			ID:          "focus-champion",
			Name:        "Focus Champion",
			Description: "Accumulate 10 hours of focused work time",
			CoinReward:  50,
			predicate:   func(s State) bool { return s.FocusMinutes >= 600 },
		},
	}
}
