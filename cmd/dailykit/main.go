// Command dailykit is the terminal front end for the to-do, notes, timer,
// meal, calculator and fortune tools and their summary dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/dailykit/internal/app"
	"github.com/nhle/dailykit/internal/logging"
	"github.com/nhle/dailykit/internal/model"
)

var (
	// Flags
	configPath string
	dbPath     string
	verbose    bool

	logger *zap.Logger
	kit    *app.App
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dailykit",
	Short: "Personal to-dos, notes, timers, meals and a daily dashboard",
	Long: `dailykit keeps small personal records in a local SQLite file
and summarises them on a dashboard for today, this week or this month.

Run without arguments to show today's dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := model.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
		if verbose {
			cfg.Log.Level = "debug"
		}

		logger, err = logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		kit, err = app.Open(cfg, logger)
		if err != nil {
			return err
		}
		kit.LoadAll(cmd.Context())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if kit != nil {
			if err := kit.Close(); err != nil {
				logger.Warn("closing store", zap.Error(err))
			}
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runSummary,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(summaryCmd, todoCmd, noteCmd, timerCmd, mealCmd, calcCmd, fortuneCmd, weatherCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// parseID parses a record id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// errNotSaved reports a write the store rejected; details are in the log.
func errNotSaved(what string) error {
	return fmt.Errorf("could not save %s (see log)", what)
}
