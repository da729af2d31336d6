package progression

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AabiaAli/Evora/internal/config"
	"github.com/AabiaAli/Evora/internal/wardrobe"
)

func newTestEngine(t *testing.T) (*Engine, *FakeClock) {
	t.Helper()
	clock := NewFakeClock(time.Date(2025, 9, 4, 12, 0, 0, 0, time.Local))
	return NewEngine(config.DefaultRewards(), clock), clock
}

func TestEmptyLedger(t *testing.T) {
	e, _ := newTestEngine(t)

	s := e.State()
	assert.Equal(t, 0, s.Coins)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 0, s.LongestStreak)
	assert.Equal(t, 0, e.Level())
}

func TestTaskCompletionPaysOut(t *testing.T) {
	e, _ := newTestEngine(t)

	res, err := e.ReportTaskCompleted("t1")
	require.NoError(t, err)

	assert.Equal(t, 1, res.State.TasksCompleted)
	assert.Equal(t, 25, res.State.Experience)
	// 5 coins for the task plus the 10-coin First Steps unlock.
	assert.Equal(t, 15, res.State.Coins)
	require.Len(t, res.Unlocked, 1)
	assert.Equal(t, "first-task", res.Unlocked[0].ID)
}

func TestStreakAcrossGap(t *testing.T) {
	e, clock := newTestEngine(t)
	today := DayOf(clock.Now())

	for _, d := range []Day{today.Add(-2), today.Add(-1), today} {
		_, err := e.ReportTaskCompletedOn("t", d)
		require.NoError(t, err)
	}
	s := e.State()
	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)

	// One full idle day breaks the run.
	clock.Advance(48 * time.Hour)
	s = e.State()
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)

	res, err := e.ReportTaskCompleted("t")
	require.NoError(t, err)
	assert.Equal(t, 1, res.State.CurrentStreak)
	assert.Equal(t, 3, res.State.LongestStreak)
}

func TestStreakPendingToday(t *testing.T) {
	e, clock := newTestEngine(t)
	today := DayOf(clock.Now())

	_, err := e.ReportTaskCompletedOn("t", today.Add(-1))
	require.NoError(t, err)

	// Yesterday's run still counts while today is pending.
	assert.Equal(t, 1, e.State().CurrentStreak)

	_, err = e.ReportPomodoroFinished(25)
	require.NoError(t, err)
	assert.Equal(t, 2, e.State().CurrentStreak)
}

func TestMoodPaysOncePerDay(t *testing.T) {
	e, _ := newTestEngine(t)

	res, err := e.ReportMoodLogged(4, "great day")
	require.NoError(t, err)
	assert.Equal(t, 1, res.State.MoodEntries)
	assert.Equal(t, 2, res.State.Coins)
	assert.Equal(t, 10, res.State.Experience)

	// Re-logging the same day replaces the mood but pays nothing.
	res, err = e.ReportMoodLogged(2, "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.State.MoodEntries)
	assert.Equal(t, 2, res.State.Coins)
	assert.Equal(t, 10, res.State.Experience)

	moods := e.Events()
	logged := 0
	for _, ev := range moods {
		if ev.Kind == KindMoodLogged {
			logged++
			assert.Equal(t, 2, metaInt(ev.Metadata, "rating"))
		}
	}
	assert.Equal(t, 1, logged)
}

func TestInvalidMoodRating(t *testing.T) {
	e, _ := newTestEngine(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := e.ReportMoodLogged(rating, "")
		assert.ErrorIs(t, err, ErrInvalidMoodRating)
	}
	assert.Equal(t, 0, e.State().MoodEntries)
}

func TestFutureAndMalformedDaysRejected(t *testing.T) {
	e, clock := newTestEngine(t)
	today := DayOf(clock.Now())

	_, err := e.ReportTaskCompletedOn("t", today.Add(1))
	assert.ErrorIs(t, err, ErrInvalidTimestamp)

	_, err = e.ReportTaskCompletedOn("t", Day("not-a-day"))
	assert.ErrorIs(t, err, ErrInvalidTimestamp)

	_, err = e.ReportPomodoroFinished(0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	assert.Equal(t, 0, e.State().TasksCompleted)
}

func TestPurchaseAndEquipFlow(t *testing.T) {
	e, _ := newTestEngine(t)

	// 18 tasks pay 90 coins; the First Steps unlock tops it up to 100.
	for i := 0; i < 18; i++ {
		_, err := e.ReportTaskCompleted("t")
		require.NoError(t, err)
	}
	require.Equal(t, 100, e.State().Coins)

	_, err := e.PurchaseItem("rainbow") // costs 150
	assert.ErrorIs(t, err, wardrobe.ErrInsufficientFunds)
	assert.Equal(t, 100, e.State().Coins)

	res, err := e.PurchaseItem("crown") // costs 100
	require.NoError(t, err)
	assert.Equal(t, 0, res.State.Coins)
	assert.Equal(t, []string{"crown"}, e.Inventory().Owned)

	_, err = e.PurchaseItem("crown")
	assert.ErrorIs(t, err, wardrobe.ErrAlreadyOwned)

	_, err = e.EquipItem("glasses")
	assert.ErrorIs(t, err, wardrobe.ErrNotOwned)

	_, err = e.EquipItem("crown")
	require.NoError(t, err)
	assert.Equal(t, "crown", e.Inventory().Equipped[wardrobe.SlotHat])

	// Equipping the equipped item toggles it off; it stays owned.
	_, err = e.EquipItem("crown")
	require.NoError(t, err)
	assert.Empty(t, e.Inventory().Equipped[wardrobe.SlotHat])
	assert.Equal(t, []string{"crown"}, e.Inventory().Owned)
}

func TestAchievementUnlocksExactlyOnce(t *testing.T) {
	e, _ := newTestEngine(t)

	var before State
	for i := 0; i < 4; i++ {
		res, err := e.ReportPomodoroFinished(25)
		require.NoError(t, err)
		before = res.State
		assert.Empty(t, res.Unlocked, "no unlock before the 5th session")
	}

	res, err := e.ReportPomodoroFinished(25)
	require.NoError(t, err)
	require.Len(t, res.Unlocked, 1)
	assert.Equal(t, "focus-master", res.Unlocked[0].ID)
	// Coins jump by the session payout plus the unlock reward in the
	// same transition.
	assert.Equal(t, before.Coins+8+25, res.State.Coins)

	res, err = e.ReportPomodoroFinished(25)
	require.NoError(t, err)
	assert.Empty(t, res.Unlocked, "unlock must never re-surface")

	unlocked := 0
	for _, a := range e.Achievements() {
		if a.Unlocked {
			unlocked++
			assert.NotNil(t, a.UnlockedAt)
		}
	}
	assert.Equal(t, 1, unlocked)

	// Reading the catalog twice is idempotent.
	assert.Equal(t, e.Achievements(), e.Achievements())
}

func TestCountersAreMonotonic(t *testing.T) {
	e, _ := newTestEngine(t)

	var prev State
	step := func(s State) {
		assert.GreaterOrEqual(t, s.TasksCompleted, prev.TasksCompleted)
		assert.GreaterOrEqual(t, s.PomodoroSessions, prev.PomodoroSessions)
		assert.GreaterOrEqual(t, s.Experience, prev.Experience)
		assert.GreaterOrEqual(t, s.Coins, 0)
		assert.GreaterOrEqual(t, s.LongestStreak, s.CurrentStreak)
		prev = s
	}

	for i := 0; i < 10; i++ {
		res, err := e.ReportTaskCompleted("t")
		require.NoError(t, err)
		step(res.State)
		res, err = e.ReportPomodoroFinished(25)
		require.NoError(t, err)
		step(res.State)
	}
}

func TestReplayReproducesState(t *testing.T) {
	a, clock := newTestEngine(t)
	today := DayOf(clock.Now())

	for i := 0; i < 18; i++ {
		_, err := a.ReportTaskCompletedOn("t", today.Add(-i%3))
		require.NoError(t, err)
	}
	_, err := a.ReportPomodoroFinished(25)
	require.NoError(t, err)
	_, err = a.ReportMoodLogged(5, "flow")
	require.NoError(t, err)
	_, err = a.PurchaseItem("glasses")
	require.NoError(t, err)

	b := NewEngine(config.DefaultRewards(), clock)
	require.NoError(t, b.Replay(a.Events()))

	assert.Equal(t, a.State(), b.State())
	assert.Equal(t, a.Inventory().Owned, b.Inventory().Owned)

	// Replaying into a non-fresh engine is refused.
	err = b.Replay(a.Events())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidTimestamp))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, 0, LevelFor(0, 1000))
	assert.Equal(t, 1, LevelFor(1, 1000))
	assert.Equal(t, 1, LevelFor(1000, 1000))
	assert.Equal(t, 2, LevelFor(1001, 1000))
	assert.Equal(t, 0, LevelFor(500, 0))
}
