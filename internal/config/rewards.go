package config

// Rewards holds the payout table mapping progression events to
// experience and coin deltas, plus the leveling threshold.
type Rewards struct {
	TaskXP        int `yaml:"task_xp" json:"task_xp"`
	TaskCoins     int `yaml:"task_coins" json:"task_coins"`
	PomodoroXP    int `yaml:"pomodoro_xp" json:"pomodoro_xp"`
	PomodoroCoins int `yaml:"pomodoro_coins" json:"pomodoro_coins"`

	// Mood payouts apply once per calendar day. Re-logging the same day
	// updates the mood value but pays nothing.
	MoodXP    int `yaml:"mood_xp" json:"mood_xp"`
	MoodCoins int `yaml:"mood_coins" json:"mood_coins"`

	NoteXP    int `yaml:"note_xp" json:"note_xp"`
	NoteCoins int `yaml:"note_coins" json:"note_coins"`

	XPPerLevel int `yaml:"xp_per_level" json:"xp_per_level"`
}

// DefaultRewards returns the standard payout table
func DefaultRewards() Rewards {
	return Rewards{
		TaskXP:        25,
		TaskCoins:     5,
		PomodoroXP:    40,
		PomodoroCoins: 8,
		MoodXP:        10,
		MoodCoins:     2,
		NoteXP:        5,
		NoteCoins:     0,
		XPPerLevel:    1000,
	}
}

// RelaxedRewards pays out more generously for casual use
func RelaxedRewards() Rewards {
	r := DefaultRewards()
	r.TaskCoins = 8
	r.PomodoroCoins = 12
	r.MoodCoins = 4
	r.XPPerLevel = 750
	return r
}

// HardcoreRewards slows progression down for long-running users
func HardcoreRewards() Rewards {
	r := DefaultRewards()
	r.TaskXP = 15
	r.TaskCoins = 3
	r.PomodoroXP = 25
	r.PomodoroCoins = 5
	r.MoodCoins = 1
	r.XPPerLevel = 1500
	return r
}
