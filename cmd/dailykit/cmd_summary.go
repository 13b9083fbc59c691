package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/state"
	"github.com/nhle/dailykit/internal/stats"
	refresh "github.com/nhle/dailykit/internal/sync"
	"github.com/nhle/dailykit/internal/ui"
)

var (
	period       string
	weatherWatch bool
	weatherEvery time.Duration
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the dashboard for today, this week or this month",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

var fortuneCmd = &cobra.Command{
	Use:   "fortune",
	Short: "Show today's fortune",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, ok := kit.Fortunes.Today(cmd.Context())
		if !ok {
			return errNotSaved("today's fortune")
		}
		fmt.Fprintln(cmd.OutOrStdout(), f.Text)
		return nil
	},
}

var weatherCmd = &cobra.Command{
	Use:   "weather [city]",
	Short: "Show the current weather and forecast",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var q model.WeatherQuery
		if len(args) == 1 {
			q.City = args[0]
		}
		if !weatherWatch {
			st := kit.RefreshWeather(cmd.Context(), q)
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderWeather(st))
			return nil
		}
		return watchWeather(cmd, q)
	},
}

// watchWeather re-renders the weather every weatherEvery until interrupted.
func watchWeather(cmd *cobra.Command, q model.WeatherQuery) error {
	ctx := cmd.Context()
	p := refresh.New(logger)
	p.Register(refresh.Job{
		Name:     "weather",
		Interval: weatherEvery,
		Run: func(ctx context.Context) error {
			if st := kit.RefreshWeather(ctx, q); st.Error != "" {
				return errors.New(st.Error)
			}
			return nil
		},
	})
	p.Start(ctx)
	defer p.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case res := <-p.Results():
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderWeather(kit.Weather.State()))
			if res.Err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), describeFailure(p.Statuses(), res.Name))
			}
		}
	}
}

// describeFailure tells how stale the data of a failing job is.
func describeFailure(statuses []refresh.Status, name string) string {
	for _, st := range statuses {
		if st.Name != name {
			continue
		}
		if st.LastRun.IsZero() {
			return fmt.Sprintf("%s: no successful refresh yet", name)
		}
		return fmt.Sprintf("%s: showing data from %s", name, st.LastRun.Format("15:04"))
	}
	return fmt.Sprintf("%s: not registered", name)
}

func init() {
	summaryCmd.Flags().StringVarP(&period, "period", "p", string(stats.PeriodToday), "today, week or month")
	weatherCmd.Flags().BoolVarP(&weatherWatch, "watch", "w", false, "keep refreshing until interrupted")
	weatherCmd.Flags().DurationVar(&weatherEvery, "every", state.DefaultWeatherFreshness, "refresh interval with --watch")
}

func runSummary(cmd *cobra.Command, args []string) error {
	p := stats.PeriodToday
	if period != "" {
		var err error
		if p, err = stats.ParsePeriod(period); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	// Draw today's fortune so the dashboard can show it.
	kit.Fortunes.Today(ctx)

	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderSummary(kit.Summary(p)))
	return nil
}
