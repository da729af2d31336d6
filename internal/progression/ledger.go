package progression

// Ledger is the append-only record of progression events for one user.
// It is the sole source of truth for derived state: counters, streaks
// and achievement unlocks are all recomputable from it.
//
// The ledger is not safe for concurrent use on its own; the owning
// Engine serializes access.
type Ledger struct {
	events []Event
	nextID int
}

func NewLedger() *Ledger {
	return &Ledger{
		events: make([]Event, 0),
		nextID: 1,
	}
}

// Append records an event and returns it with its assigned ID. For
// mood_logged, a later entry on the same day supersedes the earlier one
// in place (keeping its ID and position); superseded reports whether
// that happened.
func (l *Ledger) Append(kind Kind, day Day, metadata Metadata) (ev Event, superseded bool) {
	if kind == KindMoodLogged {
		for i := len(l.events) - 1; i >= 0; i-- {
			if l.events[i].Kind == KindMoodLogged && l.events[i].Day == day {
				l.events[i].Metadata = metadata
				return l.events[i], true
			}
		}
	}

	ev = Event{
		ID:       l.nextID,
		Kind:     kind,
		Day:      day,
		Metadata: metadata,
	}
	l.events = append(l.events, ev)
	l.nextID++
	return ev, false
}

// ByKind returns events of the given kind in insertion order.
func (l *Ledger) ByKind(kind Kind) []Event {
	out := make([]Event, 0)
	for _, ev := range l.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// ByDay returns events of all kinds recorded on the given day.
func (l *Ledger) ByDay(day Day) []Event {
	out := make([]Event, 0)
	for _, ev := range l.events {
		if ev.Day == day {
			out = append(out, ev)
		}
	}
	return out
}

// All returns a copy of the full event log in insertion order.
func (l *Ledger) All() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

func (l *Ledger) Len() int { return len(l.events) }

// qualifyingDays returns the distinct days carrying at least one
// streak-qualifying event, in no particular order.
func (l *Ledger) qualifyingDays() []Day {
	seen := make(map[Day]bool)
	for _, ev := range l.events {
		if ev.qualifiesForStreak() {
			seen[ev.Day] = true
		}
	}
	out := make([]Day, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	return out
}
