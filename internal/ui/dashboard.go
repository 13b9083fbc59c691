// Package ui renders the dashboard and entity lists as terminal text.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/state"
	"github.com/nhle/dailykit/internal/stats"
	"github.com/nhle/dailykit/internal/theme"
)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// RenderSummary renders the dashboard cards for s.
func RenderSummary(s stats.Summary) string {
	title := theme.HeaderStyle.Render(fmt.Sprintf(
		"dailykit · %s · %s – %s",
		s.Period,
		s.Window.Start.Format("Jan 2"),
		s.Window.End.Format("Jan 2"),
	))

	cards := []string{
		card("To-dos", renderTodos(s)),
		card("Focus", renderFocus(s)),
		card("Meals", renderMeals(s)),
		card("Notes & calculator", renderNotes(s)),
	}
	if s.HasFortune {
		cards = append(cards, card("Fortune", s.Fortune.Text))
	}

	return lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, cards...)...)
}

func card(title, body string) string {
	return theme.CardStyle.Render(theme.SectionStyle.Render(title) + "\n" + body)
}

func renderTodos(s stats.Summary) string {
	var b strings.Builder
	t := s.Todos
	fmt.Fprintf(&b, "completed %d / %d  %s\n",
		t.Completed, t.Total, theme.RateStyle(t.Rate).Render(fmt.Sprintf("%d%%", t.Rate)))
	for _, c := range model.Categories {
		cc := t.ByCategory[c]
		fmt.Fprintf(&b, "%s %d / %d\n", theme.CategoryStyle(c).Render(string(c)), cc.Completed, cc.Total)
	}
	fmt.Fprintf(&b, "high priority pending: %s",
		theme.PriorityStyle(model.PriorityHigh).Render(fmt.Sprint(s.HighPriorityPending)))
	if s.DueInPeriod > 0 {
		fmt.Fprintf(&b, "\ndue this %s: %d", s.Period, s.DueInPeriod)
	}
	if s.Period == stats.PeriodWeek {
		b.WriteString("\n")
		b.WriteString(renderWeekdays(t.Weekdays))
	}
	return b.String()
}

func renderWeekdays(days [7]int) string {
	peak := 0
	for _, n := range days {
		peak = max(peak, n)
	}

	var rows []string
	for i, n := range days {
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("█", n*10/peak)
		}
		rows = append(rows, fmt.Sprintf("%s %-10s %d", weekdayLabels[i], bar, n))
	}
	return strings.Join(rows, "\n")
}

func renderFocus(s stats.Summary) string {
	return fmt.Sprintf("today: %s\n%s: %s in %d sessions",
		FormatDuration(s.FocusToday), s.Period, FormatDuration(s.Timers.Focus), s.Timers.Sessions)
}

func renderMeals(s stats.Summary) string {
	if s.Meals == 0 {
		return theme.HelpStyle.Render("no meals logged")
	}
	lines := []string{fmt.Sprintf("%d meals logged", s.Meals)}
	for i, m := range s.TopMenus {
		lines = append(lines, fmt.Sprintf("%d. %s ×%d", i+1, m.Name, m.Count))
	}
	return strings.Join(lines, "\n")
}

func renderNotes(s stats.Summary) string {
	n := s.Notes
	return fmt.Sprintf("notes edited: %d (pinned %d, locked %d, archived %d)\ncalculations: %d (favorites %d)",
		n.Active, n.Pinned, n.Locked, n.Archived, s.Calculations.Count, s.Calculations.Favorites)
}

// FormatDuration renders d as "1h 25m" or "25m"; seconds are dropped.
func FormatDuration(d time.Duration) string {
	d = d.Truncate(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// RenderTasks renders one line per task.
func RenderTasks(tasks []model.Task) string {
	if len(tasks) == 0 {
		return theme.HelpStyle.Render("no tasks")
	}
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		box := "[ ]"
		title := t.Title
		if t.IsDone {
			box = "[x]"
			title = theme.DimmedStyle.Render(title)
		}
		lines[i] = fmt.Sprintf("%4d %s %s %s %s", t.ID, box,
			theme.PriorityStyle(t.Priority).Render(string(t.Priority)),
			theme.CategoryStyle(t.Category).Render(string(t.Category)),
			title)
	}
	return strings.Join(lines, "\n")
}

// RenderNotes renders one line per note. Locked notes hide their content.
func RenderNotes(notes []model.Note) string {
	if len(notes) == 0 {
		return theme.HelpStyle.Render("no notes")
	}
	lines := make([]string, len(notes))
	for i, n := range notes {
		marker := " "
		if n.IsPinned {
			marker = "*"
		}
		body := n.Content
		if n.IsLocked {
			body = theme.DimmedStyle.Render("(locked)")
		}
		lines[i] = fmt.Sprintf("%4d %s %s  %s", n.ID, marker, n.Title, firstLine(body))
	}
	return strings.Join(lines, "\n")
}

// RenderTimers renders one line per timer.
func RenderTimers(timers []model.Timer) string {
	if len(timers) == 0 {
		return theme.HelpStyle.Render("no timers")
	}
	lines := make([]string, len(timers))
	for i, t := range timers {
		status := "running"
		if t.EndedAt != nil {
			status = FormatDuration(t.EndedAt.Sub(t.StartedAt))
		}
		lines[i] = fmt.Sprintf("%4d %s %s (%s)", t.ID, t.StartedAt.Format("Jan 2 15:04"), t.Label, status)
	}
	return strings.Join(lines, "\n")
}

// RenderCalcHistory renders one line per calculator entry.
func RenderCalcHistory(entries []model.CalcEntry) string {
	if len(entries) == 0 {
		return theme.HelpStyle.Render("no history")
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		star := " "
		if e.Favorite {
			star = "★"
		}
		lines[i] = fmt.Sprintf("%4d %s %s = %s", e.ID, star, e.Expression, e.Result)
	}
	return strings.Join(lines, "\n")
}

// RenderWeather renders the weather state, including a stale-data warning.
func RenderWeather(st state.WeatherState) string {
	var parts []string
	if st.Error != "" {
		parts = append(parts, theme.ErrorStyle.Render(st.Error))
	}
	if st.Data == nil {
		if len(parts) == 0 {
			parts = append(parts, theme.HelpStyle.Render("no weather data"))
		}
		return strings.Join(parts, "\n")
	}

	w := st.Data
	parts = append(parts, fmt.Sprintf("%s: %.1f°C, %s, wind %.0f km/h",
		w.Location, w.TemperatureC, w.Description, w.WindSpeedKmh))
	for _, f := range w.Forecast {
		parts = append(parts, fmt.Sprintf("  %s  %.0f° / %.0f°", f.Date, f.MinC, f.MaxC))
	}
	parts = append(parts, theme.DimmedStyle.Render("updated "+st.LastUpdated.Format("15:04")))
	return strings.Join(parts, "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
