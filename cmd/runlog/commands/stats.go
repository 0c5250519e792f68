package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"runlog/internal/config"
)

// recordHeader matches the first line of any record: timestamp and
// severity tag. Continuation lines of error blocks do not match.
var recordHeader = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3})\] \[([A-Z]+)\]`)

// LogStats contains record counts and time range for one day's logs.
type LogStats struct {
	Date         string    `json:"date"`
	ErrorLog     string    `json:"error_log"`
	DebugLog     string    `json:"debug_log"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	InfoCount    int       `json:"info_count"`
	ErrorLogSize int64     `json:"error_log_size"`
	DebugLogSize int64     `json:"debug_log_size"`
	FirstRecord  time.Time `json:"first_record"`
	LastRecord   time.Time `json:"last_record"`
}

// statsCmd creates the stats command.
func statsCmd() *cobra.Command {
	var (
		dir    string
		prefix string
		date   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Display record counts for a day's session logs",
		Long: `Count the error, warning, and info records in a day's session logs
and report the covered time range.

Examples:
  # Today's logs in the configured log directory
  runlog stats

  # A specific day, as JSON
  runlog stats --date 20250107 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if dir == "" {
				dir = cfg.Logs.Dir
			}
			if prefix == "" {
				prefix = cfg.Logs.Prefix
			}
			if date == "" {
				date = time.Now().Format("20060102")
			}

			stats, err := gatherStats(dir, prefix, date)
			if err != nil {
				return fmt.Errorf("failed to gather statistics: %w", err)
			}

			switch format {
			case "json":
				return outputStatsJSON(stats)
			case "table":
				return outputStatsTable(stats)
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Log directory (default from config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Log file prefix (default from config)")
	cmd.Flags().StringVar(&date, "date", "", "Day to inspect, YYYYMMDD (default today)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, json)")

	return cmd
}

// gatherStats scans the error and debug logs for the given day.
func gatherStats(dir, prefix, date string) (*LogStats, error) {
	stats := &LogStats{
		Date:     date,
		ErrorLog: filepath.Join(dir, fmt.Sprintf("%s_errors_%s.log", prefix, date)),
		DebugLog: filepath.Join(dir, fmt.Sprintf("%s_debug_%s.log", prefix, date)),
	}

	errSize, errFound, err := scanLog(stats.ErrorLog, stats)
	if err != nil {
		return nil, err
	}
	stats.ErrorLogSize = errSize

	dbgSize, dbgFound, err := scanLog(stats.DebugLog, stats)
	if err != nil {
		return nil, err
	}
	stats.DebugLogSize = dbgSize

	if !errFound && !dbgFound {
		return nil, fmt.Errorf("no logs for %s under %s", date, dir)
	}
	return stats, nil
}

// scanLog tallies record headers in one log file. A missing file is not
// an error; it reports found=false so the caller can tell an empty day
// from a wrong path.
func scanLog(path string, stats *LogStats) (size int64, found bool, err error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return 0, false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := recordHeader.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		switch m[2] {
		case "WARNING":
			stats.WarningCount++
		case "INFO":
			stats.InfoCount++
		default:
			// Errors keep their severity override in the tag, so
			// anything that is not WARNING or INFO is an error record.
			stats.ErrorCount++
		}

		if ts, err := time.Parse("2006-01-02 15:04:05.000", m[1]); err == nil {
			if stats.FirstRecord.IsZero() || ts.Before(stats.FirstRecord) {
				stats.FirstRecord = ts
			}
			if ts.After(stats.LastRecord) {
				stats.LastRecord = ts
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return stat.Size(), true, nil
}

func outputStatsJSON(stats *LogStats) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}

func outputStatsTable(stats *LogStats) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Date:\t%s\n", stats.Date)
	fmt.Fprintf(w, "Error log:\t%s (%d bytes)\n", stats.ErrorLog, stats.ErrorLogSize)
	fmt.Fprintf(w, "Debug log:\t%s (%d bytes)\n", stats.DebugLog, stats.DebugLogSize)
	fmt.Fprintf(w, "Errors:\t%d\n", stats.ErrorCount)
	fmt.Fprintf(w, "Warnings:\t%d\n", stats.WarningCount)
	fmt.Fprintf(w, "Info:\t%d\n", stats.InfoCount)
	if !stats.FirstRecord.IsZero() {
		fmt.Fprintf(w, "First record:\t%s\n", stats.FirstRecord.Format("2006-01-02 15:04:05.000"))
		fmt.Fprintf(w, "Last record:\t%s\n", stats.LastRecord.Format("2006-01-02 15:04:05.000"))
	}

	return w.Flush()
}
