package pomodoro

import (
	"time"

	"github.com/google/uuid"

	"github.com/AabiaAli/Evora/internal/config"
)

type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return true
	}
	return false
}

// PlannedMinutes returns the configured length for a mode.
func (m Mode) PlannedMinutes(cfg config.PomodoroConfig) int {
	switch m {
	case ModeShortBreak:
		return cfg.ShortBreakMinutes
	case ModeLongBreak:
		return cfg.LongBreakMinutes
	default:
		return cfg.FocusMinutes
	}
}

// Session is one run of the timer. A session that is started and never
// finished stays open; only finished focus sessions count toward
// progression.
type Session struct {
	ID             string     `json:"id"`
	Mode           Mode       `json:"mode"`
	PlannedMinutes int        `json:"planned_minutes"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	Completed      bool       `json:"completed"`
}

func NewSession(mode Mode, plannedMinutes int, startedAt time.Time) Session {
	return Session{
		ID:             uuid.NewString(),
		Mode:           mode,
		PlannedMinutes: plannedMinutes,
		StartedAt:      startedAt,
	}
}
