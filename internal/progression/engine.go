package progression

import (
	"fmt"
	"sync"

	"github.com/AabiaAli/Evora/internal/config"
	"github.com/AabiaAli/Evora/internal/wardrobe"
)

// Result is the outcome of a successful report: the updated state
// snapshot plus any achievements that unlocked on this transition, in
// evaluation order. Each unlock is surfaced exactly once.
type Result struct {
	State    State         `json:"state"`
	Unlocked []Achievement `json:"unlocked,omitempty"`
}

// Engine owns the progression state for a single user: the event
// ledger, the derived counters and streaks, achievement unlocks and the
// wardrobe store. All operations are synchronous and all-or-nothing.
//
// The engine itself is the serialization boundary: one mutex guards
// every operation, so a single instance can sit behind an HTTP mux.
type Engine struct {
	mu      sync.Mutex
	clock   Clock
	rewards config.Rewards

	ledger       *Ledger
	state        State
	achievements []*Achievement
	store        *wardrobe.Store

	// recorder, when set, observes every live ledger append. Replayed
	// events are not re-recorded.
	recorder func(Event)
}

// SetRecorder installs a sink for live ledger appends, typically a
// durable event store.
func (e *Engine) SetRecorder(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recorder = fn
}

// record appends to the ledger and notifies the recorder.
func (e *Engine) record(kind Kind, day Day, md Metadata) (Event, bool) {
	ev, superseded := e.ledger.Append(kind, day, md)
	if e.recorder != nil {
		e.recorder(ev)
	}
	return ev, superseded
}

func NewEngine(rewards config.Rewards, clock Clock) *Engine {
	if clock == nil {
		clock = RealClock{}
	}
	e := &Engine{
		clock:        clock,
		rewards:      rewards,
		ledger:       NewLedger(),
		achievements: defaultAchievements(),
	}
	e.store = wardrobe.NewStore(wardrobe.DefaultCatalog(), (*engineWallet)(e))
	return e
}

// engineWallet exposes the engine's coin balance to the wardrobe store.
// It is only ever called with the engine mutex held.
type engineWallet Engine

func (w *engineWallet) Balance() int { return w.state.Coins }

func (w *engineWallet) Debit(amount int) bool {
	if amount <= 0 {
		return true
	}
	if w.state.Coins < amount {
		return false
	}
	w.state.Coins -= amount
	return true
}

func (e *Engine) today() Day { return DayOf(e.clock.Now()) }

func (e *Engine) validateDay(day Day) error {
	if !day.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTimestamp, day)
	}
	if day > e.today() {
		return fmt.Errorf("%w: %s is in the future", ErrInvalidTimestamp, day)
	}
	return nil
}

func (e *Engine) pay(xp, coins int) {
	e.state.Experience += xp
	e.state.Coins += coins
}

func (e *Engine) refreshStreaks() {
	current, longest := ComputeStreaks(e.ledger.qualifyingDays(), e.today())
	e.state.CurrentStreak = current
	if longest > e.state.LongestStreak {
		e.state.LongestStreak = longest
	}
}

// evaluate checks every locked achievement against the current state,
// unlocking and crediting in catalog order. Predicates never depend on
// coins, so a single pass suffices.
func (e *Engine) evaluate() []Achievement {
	var unlocked []Achievement
	for _, a := range e.achievements {
		if a.Unlocked || !a.predicate(e.state) {
			continue
		}
		a.Unlocked = true
		at := e.clock.Now()
		a.UnlockedAt = &at
		e.state.Coins += a.CoinReward
		unlocked = append(unlocked, a.snapshot())
	}
	return unlocked
}

func (e *Engine) finish() Result {
	unlocked := e.evaluate()
	return Result{State: e.state, Unlocked: unlocked}
}

// ReportTaskCompleted records a completed task for today.
func (e *Engine) ReportTaskCompleted(taskID string) (Result, error) {
	return e.ReportTaskCompletedOn(taskID, e.today())
}

// ReportTaskCompletedOn records a completed task for the given day,
// which may be backdated but never future-dated.
func (e *Engine) ReportTaskCompletedOn(taskID string, day Day) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validateDay(day); err != nil {
		return Result{}, err
	}
	e.record(KindTaskCompleted, day, Metadata{"task_id": taskID})
	e.state.TasksCompleted++
	e.pay(e.rewards.TaskXP, e.rewards.TaskCoins)
	e.refreshStreaks()
	return e.finish(), nil
}

// ReportPomodoroFinished records a finished focus session for today.
func (e *Engine) ReportPomodoroFinished(durationMinutes int) (Result, error) {
	return e.ReportPomodoroFinishedOn(durationMinutes, e.today())
}

func (e *Engine) ReportPomodoroFinishedOn(durationMinutes int, day Day) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if durationMinutes <= 0 {
		return Result{}, ErrInvalidDuration
	}
	if err := e.validateDay(day); err != nil {
		return Result{}, err
	}
	e.record(KindPomodoroFinished, day, Metadata{"duration_minutes": durationMinutes})
	e.state.PomodoroSessions++
	e.state.FocusMinutes += durationMinutes
	e.pay(e.rewards.PomodoroXP, e.rewards.PomodoroCoins)
	e.refreshStreaks()
	return e.finish(), nil
}

// ReportMoodLogged records a mood entry for today. Re-logging the same
// day replaces the stored mood but pays out only once per day.
func (e *Engine) ReportMoodLogged(rating int, note string) (Result, error) {
	return e.ReportMoodLoggedOn(rating, note, e.today())
}

func (e *Engine) ReportMoodLoggedOn(rating int, note string, day Day) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if rating < 1 || rating > 5 {
		return Result{}, ErrInvalidMoodRating
	}
	if err := e.validateDay(day); err != nil {
		return Result{}, err
	}
	md := Metadata{"rating": rating}
	if note != "" {
		md["note"] = note
	}
	_, superseded := e.record(KindMoodLogged, day, md)
	if !superseded {
		e.state.MoodEntries++
		e.pay(e.rewards.MoodXP, e.rewards.MoodCoins)
	}
	return e.finish(), nil
}

// ReportNoteCreated records a created sticky note for today.
func (e *Engine) ReportNoteCreated(noteID string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.record(KindNoteCreated, e.today(), Metadata{"note_id": noteID})
	e.state.NotesCreated++
	e.pay(e.rewards.NoteXP, e.rewards.NoteCoins)
	return e.finish(), nil
}

// PurchaseItem buys a wardrobe item, deducting its cost atomically and
// recording the purchase in the ledger.
func (e *Engine) PurchaseItem(itemID string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	it, err := e.store.Purchase(itemID)
	if err != nil {
		return Result{}, err
	}
	e.record(KindItemPurchased, e.today(), Metadata{"item_id": it.ID, "cost": it.Cost})
	return e.finish(), nil
}

// EquipItem toggles an owned item in its slot. Equip state is session
// state and is not written to the ledger.
func (e *Engine) EquipItem(itemID string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.store.Equip(itemID); err != nil {
		return Result{}, err
	}
	return Result{State: e.state}, nil
}

// State returns the current derived snapshot. Streaks are re-derived so
// a day passing without activity is reflected immediately.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refreshStreaks()
	return e.state
}

// Level derives the current level from accumulated experience.
func (e *Engine) Level() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return LevelFor(e.state.Experience, e.rewards.XPPerLevel)
}

// Achievements returns the full catalog with current unlock status.
func (e *Engine) Achievements() []Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Achievement, 0, len(e.achievements))
	for _, a := range e.achievements {
		out = append(out, a.snapshot())
	}
	return out
}

func (e *Engine) Inventory() wardrobe.Inventory {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Inventory()
}

func (e *Engine) Catalog() []wardrobe.Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Catalog()
}

// Events returns the full ledger in insertion order.
func (e *Engine) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.All()
}

// Replay rebuilds state from a stored event log by re-running the
// reward calculator, streak tracker and achievement evaluator over it.
// It must only be called on a fresh engine.
func (e *Engine) Replay(events []Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ledger.Len() > 0 {
		return fmt.Errorf("replay on non-empty ledger (%d events)", e.ledger.Len())
	}
	for _, ev := range events {
		if !ev.Day.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidTimestamp, ev.Day)
		}
		if err := e.apply(ev); err != nil {
			return fmt.Errorf("replay event %d (%s): %w", ev.ID, ev.Kind, err)
		}
		// Unlock credits must interleave exactly as they did live, so
		// purchases further down the log stay affordable.
		e.evaluate()
	}
	e.refreshStreaks()
	return nil
}

func (e *Engine) apply(ev Event) error {
	switch ev.Kind {
	case KindTaskCompleted:
		e.ledger.Append(ev.Kind, ev.Day, ev.Metadata)
		e.state.TasksCompleted++
		e.pay(e.rewards.TaskXP, e.rewards.TaskCoins)
		e.refreshStreaks()
	case KindPomodoroFinished:
		e.ledger.Append(ev.Kind, ev.Day, ev.Metadata)
		e.state.PomodoroSessions++
		e.state.FocusMinutes += metaInt(ev.Metadata, "duration_minutes")
		e.pay(e.rewards.PomodoroXP, e.rewards.PomodoroCoins)
		e.refreshStreaks()
	case KindMoodLogged:
		if _, superseded := e.ledger.Append(ev.Kind, ev.Day, ev.Metadata); !superseded {
			e.state.MoodEntries++
			e.pay(e.rewards.MoodXP, e.rewards.MoodCoins)
		}
	case KindNoteCreated:
		e.ledger.Append(ev.Kind, ev.Day, ev.Metadata)
		e.state.NotesCreated++
		e.pay(e.rewards.NoteXP, e.rewards.NoteCoins)
	case KindItemPurchased:
		itemID, _ := ev.Metadata["item_id"].(string)
		if _, err := e.store.Purchase(itemID); err != nil {
			return err
		}
		e.ledger.Append(ev.Kind, ev.Day, ev.Metadata)
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
	return nil
}

func metaInt(md Metadata, key string) int {
	switch v := md[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
