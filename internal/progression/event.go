package progression

import "time"

type Kind string

const (
	KindTaskCompleted    Kind = "task_completed"
	KindPomodoroFinished Kind = "pomodoro_finished"
	KindMoodLogged       Kind = "mood_logged"
	KindNoteCreated      Kind = "note_created"
	KindItemPurchased    Kind = "item_purchased"
)

const dayLayout = "2006-01-02"

// Day is a calendar date at day granularity, formatted "2006-01-02".
// Progression events are dated by Day; ordering within a day is
// append order.
type Day string

func DayOf(t time.Time) Day {
	return Day(t.In(time.Local).Format(dayLayout))
}

func (d Day) Valid() bool {
	_, err := time.ParseInLocation(dayLayout, string(d), time.Local)
	return err == nil
}

func (d Day) Time() time.Time {
	t, _ := time.ParseInLocation(dayLayout, string(d), time.Local)
	return t
}

// Add returns the day n calendar days later (or earlier for negative n).
func (d Day) Add(n int) Day {
	return Day(d.Time().AddDate(0, 0, n).Format(dayLayout))
}

type Metadata map[string]any

// Event is an immutable progression ledger entry. Events are never
// mutated after append; the single exception is mood_logged, where the
// latest entry for a calendar day supersedes earlier ones in place.
type Event struct {
	ID       int      `json:"id"`
	Kind     Kind     `json:"kind"`
	Day      Day      `json:"day"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// qualifiesForStreak reports whether the event counts toward the
// consecutive-day streak. Mood logs and purchases do not.
func (e Event) qualifiesForStreak() bool {
	return e.Kind == KindTaskCompleted || e.Kind == KindPomodoroFinished
}
