package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/dailykit/internal/stats"
	"github.com/nhle/dailykit/internal/ui"
)

var (
	timerDuration time.Duration
	timerPeriod   string
	mealAt        string
	mealPeriod    string
	calcFavorites bool
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Track focus sessions",
}

var timerStartCmd = &cobra.Command{
	Use:   "start [label]",
	Short: "Start a focus timer",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ok := kit.Timers.Start(cmd.Context(), strings.Join(args, " "), timerDuration)
		if !ok {
			return errNotSaved("timer")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "started timer %d\n", t.ID)
		return nil
	},
}

var timerStopCmd = &cobra.Command{
	Use:   "stop [id]",
	Short: "Stop a running timer (the most recent one without an id)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int64
		if len(args) == 1 {
			var err error
			if id, err = parseID(args[0]); err != nil {
				return err
			}
		} else {
			running := kit.Timers.Running()
			if len(running) == 0 {
				return fmt.Errorf("no running timer")
			}
			id = running[0].ID
		}
		if !kit.Timers.Stop(cmd.Context(), id) {
			return fmt.Errorf("timer %d is not running or could not be saved", id)
		}
		return nil
	},
}

var timerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List timers, most recently started first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		timers := kit.Timers.Items()
		if timerPeriod != "" {
			p, err := stats.ParsePeriod(timerPeriod)
			if err != nil {
				return err
			}
			w := stats.WindowFor(p, time.Now())
			if timers, err = kit.Timers.StartedBetween(cmd.Context(), w.Start, w.End); err != nil {
				return fmt.Errorf("listing timers: %w", err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTimers(timers))
		return nil
	},
}

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log meals",
}

var mealAddCmd = &cobra.Command{
	Use:   "add [menu]",
	Short: "Log a meal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at := time.Now()
		if mealAt != "" {
			var err error
			at, err = time.ParseInLocation("2006-01-02 15:04", mealAt, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --at %q (want \"YYYY-MM-DD HH:MM\")", mealAt)
			}
		}
		m, ok := kit.Meals.Log(cmd.Context(), strings.Join(args, " "), at)
		if !ok {
			return errNotSaved("meal")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "logged meal %d\n", m.ID)
		return nil
	},
}

var mealTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Rank the most logged menus of the period",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := stats.ParsePeriod(mealPeriod)
		if err != nil {
			return err
		}
		w := stats.WindowFor(p, time.Now())
		meals, err := kit.Meals.Between(cmd.Context(), w.Start, w.End)
		if err != nil {
			return fmt.Errorf("reading meals: %w", err)
		}
		ranked := stats.TopMenus(meals, w, 3)
		for i, m := range ranked {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s ×%d\n", i+1, m.Name, m.Count)
		}
		return nil
	},
}

var calcCmd = &cobra.Command{
	Use:   "calc [expression]",
	Short: "Evaluate an expression and keep it in the history",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := kit.Calc.Evaluate(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), e.Result)
		return nil
	},
}

var calcHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the recent calculator history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := kit.Calc.Items()
		if calcFavorites {
			var err error
			if entries, err = kit.Calc.Favorites(cmd.Context()); err != nil {
				return fmt.Errorf("listing favorites: %w", err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderCalcHistory(entries))
		return nil
	},
}

var calcStarCmd = &cobra.Command{
	Use:   "star [id]",
	Short: "Toggle a history entry as favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if !kit.Calc.ToggleFavorite(cmd.Context(), id) {
			return fmt.Errorf("no cached history entry %d, or it could not be saved", id)
		}
		return nil
	},
}

var calcClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the whole calculator history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return kit.Calc.Clear(cmd.Context())
	},
}

func init() {
	timerStartCmd.Flags().DurationVar(&timerDuration, "duration", 25*time.Minute, "planned duration")
	timerListCmd.Flags().StringVarP(&timerPeriod, "period", "p", "", "only timers started today, this week or this month")
	timerCmd.AddCommand(timerStartCmd, timerStopCmd, timerListCmd)

	mealAddCmd.Flags().StringVar(&mealAt, "at", "", "meal time (\"YYYY-MM-DD HH:MM\", default now)")
	mealTopCmd.Flags().StringVarP(&mealPeriod, "period", "p", string(stats.PeriodWeek), "today, week or month")
	mealCmd.AddCommand(mealAddCmd, mealTopCmd)

	calcHistoryCmd.Flags().BoolVar(&calcFavorites, "favorites", false, "every favorite entry, including ones past the history limit")
	calcCmd.AddCommand(calcHistoryCmd, calcStarCmd, calcClearCmd)
}
