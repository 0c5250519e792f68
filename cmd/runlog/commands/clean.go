package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"runlog/internal/config"
	"runlog/internal/logger"
	"runlog/retention"
)

func cleanCmd() *cobra.Command {
	var (
		dir        string
		prefix     string
		maxAgeDays int
		schedule   string
		once       bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove old session log files",
		Long: `Remove session log files older than the retention age. The logging
session itself never deletes anything; clean is the housekeeping task
that bounds log directory growth.

A schedule (from --schedule or retention.schedule in the config file)
keeps clean running and sweeping until interrupted; --once forces a
single sweep regardless of any configured schedule.

Examples:
  # One sweep with the configured retention
  runlog clean --once

  # Keep one week of logs
  runlog clean --max-age 7

  # Keep sweeping nightly until interrupted
  runlog clean --schedule "0 3 * * *"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if dir == "" {
				dir = cfg.Logs.Dir
			}
			if prefix == "" {
				prefix = cfg.Logs.Prefix
			}
			if maxAgeDays == 0 {
				maxAgeDays = cfg.Retention.MaxAgeDays
			}
			schedule = resolveSchedule(schedule, once, cfg.Retention.Schedule)

			policy, err := retention.NewPolicy(dir, prefix, time.Duration(maxAgeDays)*24*time.Hour)
			if err != nil {
				return fmt.Errorf("invalid retention policy: %w", err)
			}

			removed, err := policy.Sweep()
			if err != nil {
				return fmt.Errorf("sweep failed: %w", err)
			}
			fmt.Printf("Removed %d file(s) older than %d day(s) from %s\n", removed, maxAgeDays, dir)

			if schedule == "" {
				return nil
			}

			sweeper, err := retention.NewSweeper(policy, schedule)
			if err != nil {
				return err
			}
			sweeper.Start()
			logger.Log.Info("Sweeping {dir} on schedule {schedule}; Ctrl+C to stop", dir, schedule)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			sweeper.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Log directory (default from config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Log file prefix (default from config)")
	cmd.Flags().IntVar(&maxAgeDays, "max-age", 0, "Retention age in days (default from config)")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron expression for repeated sweeps")
	cmd.Flags().BoolVar(&once, "once", false, "Sweep once even when a schedule is configured")

	return cmd
}

// resolveSchedule decides whether clean stays resident. --once wins over
// everything; an explicit --schedule wins over the config file; an empty
// result means a single sweep.
func resolveSchedule(flagValue string, once bool, configValue string) string {
	if once {
		return ""
	}
	if flagValue != "" {
		return flagValue
	}
	return configValue
}
