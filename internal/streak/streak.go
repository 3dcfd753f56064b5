// Package streak holds the pure streak, gamification and rollup arithmetic.
// Repositories feed it event history; it never touches storage itself.
package streak

import (
	"time"

	"github.com/neurohabit/backend/pkg/entity"
)

// Window is the bounded lookback for current-streak recomputation. Events
// older than this never count, so an untouched habit resets within a week.
const Window = 7 * 24 * time.Hour

// Current walks completion events ordered by completion time descending and
// returns the consecutive-calendar-day streak. The caller is responsible for
// limiting events to the lookback window. Several completions on the same
// day collapse into one streak day; the first gap longer than one day stops
// the scan.
func Current(events []entity.HabitEvent) int {
	if len(events) == 0 {
		return 0
	}
	streak := 1
	last := calendarDay(events[0].CompletedAt)
	for _, ev := range events[1:] {
		day := calendarDay(ev.CompletedAt)
		diff := daysBetween(day, last)
		if diff == 1 {
			streak++
			last = day
		} else if diff > 1 {
			break
		}
	}
	return streak
}

// Apply sets the habit's current streak from events and raises the longest
// streak when exceeded. Longest never decreases. Idempotent for identical
// event history.
func Apply(habit *entity.Habit, events []entity.HabitEvent) {
	habit.CurrentStreak = Current(events)
	if habit.CurrentStreak > habit.LongestStreak {
		habit.LongestStreak = habit.CurrentStreak
	}
}

// CompletionRate computes the trailing-7-day completion percentage assuming
// one expected completion per active habit per day. Habits on other cadences
// are counted the same way; the denominator is active*7 regardless of
// configured frequency. Returns 0.0 when the user has no active habits.
func CompletionRate(actualCompletions, activeHabits int) float64 {
	expected := activeHabits * 7
	if expected == 0 {
		return 0.0
	}
	return float64(actualCompletions) / float64(expected) * 100
}

// calendarDay truncates to a UTC calendar date, so the day boundary is an
// explicit conversion instead of ambient clock behavior.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier) / (24 * time.Hour))
}
