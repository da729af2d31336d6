package progression

// State is the derived, recomputable progression aggregate for one
// user. All counters are monotonically non-decreasing except
// CurrentStreak, which resets when a day passes without a qualifying
// event. Coins never go negative: purchases that cannot be afforded are
// rejected before any mutation.
type State struct {
	Experience       int `json:"experience"`
	Coins            int `json:"coins"`
	TasksCompleted   int `json:"tasksCompleted"`
	PomodoroSessions int `json:"pomodoroSessions"`
	MoodEntries      int `json:"moodEntries"`
	NotesCreated     int `json:"notesCreated"`
	FocusMinutes     int `json:"focusMinutes"`
	CurrentStreak    int `json:"currentStreak"`
	LongestStreak    int `json:"longestStreak"`
}

// LevelFor converts accumulated experience into a level by ceiling
// division over the per-level threshold. The level is always derived,
// never stored, so it cannot drift from the experience total.
func LevelFor(experience, xpPerLevel int) int {
	if experience <= 0 || xpPerLevel <= 0 {
		return 0
	}
	return (experience + xpPerLevel - 1) / xpPerLevel
}
