package stats

import (
	"time"

	"github.com/nhle/dailykit/internal/model"
)

// topMenuCount is how many menus the dashboard ranks.
const topMenuCount = 3

// Snapshot is the set of cached lists the dashboard is computed from.
type Snapshot struct {
	Tasks    []model.Task
	Notes    []model.Note
	Timers   []model.Timer
	Meals    []model.Meal
	Calc     []model.CalcEntry
	Fortunes []model.Fortune
}

// Summary is the dashboard for one period.
type Summary struct {
	Period Period
	Window Window

	Todos               TodoSummary
	HighPriorityPending int
	DueInPeriod         int

	Notes NoteSummary

	Timers     TimerSummary
	FocusToday time.Duration

	Meals    int
	TopMenus []MenuCount

	Calculations CalcSummary

	Fortune    model.Fortune
	HasFortune bool
}

// Summarize computes the dashboard of period p at now.
func Summarize(s Snapshot, p Period, now time.Time) Summary {
	w := WindowFor(p, now)
	fortune, ok := FortuneFor(s.Fortunes, now)

	return Summary{
		Period:              p,
		Window:              w,
		Todos:               Todos(s.Tasks, w, p == PeriodWeek),
		HighPriorityPending: HighPriorityPending(s.Tasks),
		DueInPeriod:         DueIn(s.Tasks, w),
		Notes:               Notes(s.Notes, w),
		Timers:              Timers(s.Timers, w),
		FocusToday:          FocusTime(s.Timers, now),
		Meals:               Meals(s.Meals, w),
		TopMenus:            TopMenus(s.Meals, w, topMenuCount),
		Calculations:        Calculations(s.Calc, w),
		Fortune:             fortune,
		HasFortune:          ok,
	}
}
