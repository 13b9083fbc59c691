package stats

import (
	"math"

	"github.com/nhle/dailykit/internal/model"
)

// CompletionRate returns round(100*completed/total), or 0 when total is 0.
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// CategoryCount is the completion tally of one category.
type CategoryCount struct {
	Completed int
	Total     int
}

// Rate is the completion rate of the category.
func (c CategoryCount) Rate() int { return CompletionRate(c.Completed, c.Total) }

// TodoSummary aggregates the tasks active in a window.
type TodoSummary struct {
	Completed int
	Total     int
	Rate      int

	// ByCategory always holds work, home and personal.
	ByCategory map[model.Category]CategoryCount

	// Weekdays counts completed tasks per weekday of UpdatedAt, 0=Monday.
	// Only filled when requested (the week view).
	Weekdays [7]int
}

// Todos tallies the tasks in range of w. A task counts as completed when it
// is done and its UpdatedAt lies in w, so an old task finished inside w
// counts for w.
func Todos(tasks []model.Task, w Window, weekdays bool) TodoSummary {
	sum := TodoSummary{ByCategory: make(map[model.Category]CategoryCount, len(model.Categories))}
	for _, c := range model.Categories {
		sum.ByCategory[c] = CategoryCount{}
	}

	loc := w.Start.Location()
	for _, t := range tasks {
		if !InRange(t.CreatedAt, t.UpdatedAt, w) {
			continue
		}

		sum.Total++
		bucket, known := sum.ByCategory[t.Category]
		bucket.Total++
		if t.IsDone && w.Contains(t.UpdatedAt) {
			sum.Completed++
			bucket.Completed++
			if weekdays {
				sum.Weekdays[weekdayIndex(t.UpdatedAt, loc)]++
			}
		}
		if known {
			sum.ByCategory[t.Category] = bucket
		}
	}

	sum.Rate = CompletionRate(sum.Completed, sum.Total)
	return sum
}

// HighPriorityPending counts the high-priority tasks not yet done, over the
// whole list.
func HighPriorityPending(tasks []model.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.IsDone && t.Priority == model.PriorityHigh {
			n++
		}
	}
	return n
}

// DueIn counts the pending tasks whose due date lies in w.
func DueIn(tasks []model.Task, w Window) int {
	n := 0
	for _, t := range tasks {
		if !t.IsDone && t.DueDate != nil && w.Contains(*t.DueDate) {
			n++
		}
	}
	return n
}
