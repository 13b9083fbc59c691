package stats

import (
	"slices"
	"time"

	"github.com/nhle/dailykit/internal/model"
)

// TimerSummary aggregates finished timers started in a window.
type TimerSummary struct {
	Focus    time.Duration
	Sessions int
}

// Timers sums EndedAt-StartedAt over timers started in w that have ended.
// Running or abandoned timers are left out entirely. Inputs with EndedAt
// before StartedAt are not checked and contribute a negative duration.
func Timers(timers []model.Timer, w Window) TimerSummary {
	var sum TimerSummary
	for _, t := range timers {
		if t.EndedAt == nil || !w.Contains(t.StartedAt) {
			continue
		}
		sum.Focus += t.EndedAt.Sub(t.StartedAt)
		sum.Sessions++
	}
	return sum
}

// FocusTime is today's total focus time.
func FocusTime(timers []model.Timer, now time.Time) time.Duration {
	return Timers(timers, Today(now)).Focus
}

// MenuCount is how often a menu was logged.
type MenuCount struct {
	Name  string
	Count int
}

// TopMenus ranks the menus of the meals dated in w by count, highest first,
// and returns at most n of them (all when n <= 0). Ties keep the order in
// which each name first appears in meals.
func TopMenus(meals []model.Meal, w Window, n int) []MenuCount {
	var ranked []MenuCount
	index := make(map[string]int)
	for _, m := range meals {
		if !w.Contains(m.MealDate) {
			continue
		}
		i, seen := index[m.MenuName]
		if !seen {
			i = len(ranked)
			index[m.MenuName] = i
			ranked = append(ranked, MenuCount{Name: m.MenuName})
		}
		ranked[i].Count++
	}

	slices.SortStableFunc(ranked, func(a, b MenuCount) int {
		return b.Count - a.Count
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Meals counts the meals dated in w.
func Meals(meals []model.Meal, w Window) int {
	n := 0
	for _, m := range meals {
		if w.Contains(m.MealDate) {
			n++
		}
	}
	return n
}

// NoteSummary aggregates notes.
type NoteSummary struct {
	// Active counts notes created or edited in the window.
	Active int

	Pinned   int
	Locked   int
	Archived int
}

// Notes tallies notes. Pinned, Locked and Archived cover the whole list;
// pinned notes that are archived are not counted as pinned.
func Notes(notes []model.Note, w Window) NoteSummary {
	var sum NoteSummary
	for _, n := range notes {
		if InRange(n.CreatedAt, n.UpdatedAt, w) {
			sum.Active++
		}
		if n.IsArchived {
			sum.Archived++
		} else if n.IsPinned {
			sum.Pinned++
		}
		if n.IsLocked {
			sum.Locked++
		}
	}
	return sum
}

// CalcSummary aggregates calculator history.
type CalcSummary struct {
	Count     int
	Favorites int
}

// Calculations counts entries created in w and favorites over the whole list.
func Calculations(entries []model.CalcEntry, w Window) CalcSummary {
	var sum CalcSummary
	for _, e := range entries {
		if w.Contains(e.CreatedAt) {
			sum.Count++
		}
		if e.Favorite {
			sum.Favorites++
		}
	}
	return sum
}

// FortuneFor returns the fortune keyed to the day of now.
func FortuneFor(fortunes []model.Fortune, now time.Time) (model.Fortune, bool) {
	key := model.DateKey(now)
	for _, f := range fortunes {
		if f.DateKey == key {
			return f, true
		}
	}
	return model.Fortune{}, false
}
