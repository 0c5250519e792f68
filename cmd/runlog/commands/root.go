// Package commands implements CLI commands for runlog.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"runlog/internal/config"
)

var (
	version string
	rootCmd = &cobra.Command{
		Use:   "runlog",
		Short: "Session log management for automation scripts",
		Long: `runlog manages the daily error/debug logs and per-run transcripts
written by runlog sessions: inspect record counts, verify file
integrity, and sweep old logs under a retention policy.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Init()
		},
	}
)

// Execute runs the CLI.
func Execute(v string) error {
	version = v

	rootCmd.AddCommand(
		versionCmd(),
		statsCmd(),
		verifyCmd(),
		cleanCmd(),
	)

	return rootCmd.Execute()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("runlog version %s\n", version)
		},
	}
}
