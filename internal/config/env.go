package config

import (
	"os"
	"strconv"
)

// RewardsFromEnv overlays the payout table with environment variables.
// Unset variables leave the base value untouched.
func RewardsFromEnv(base Rewards) Rewards {
	r := base

	if val := getEnvInt("EVORA_TASK_XP"); val > 0 {
		r.TaskXP = val
	}
	if val := getEnvInt("EVORA_TASK_COINS"); val > 0 {
		r.TaskCoins = val
	}
	if val := getEnvInt("EVORA_POMODORO_XP"); val > 0 {
		r.PomodoroXP = val
	}
	if val := getEnvInt("EVORA_POMODORO_COINS"); val > 0 {
		r.PomodoroCoins = val
	}
	if val := getEnvInt("EVORA_MOOD_XP"); val > 0 {
		r.MoodXP = val
	}
	if val := getEnvInt("EVORA_MOOD_COINS"); val > 0 {
		r.MoodCoins = val
	}
	if val := getEnvInt("EVORA_XP_PER_LEVEL"); val > 0 {
		r.XPPerLevel = val
	}

	// Support preset modes
	switch os.Getenv("EVORA_REWARDS_PRESET") {
	case "relaxed":
		return RelaxedRewards()
	case "hardcore":
		return HardcoreRewards()
	}

	return r
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
