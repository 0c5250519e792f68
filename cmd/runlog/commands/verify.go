package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cobra"

	"runlog/internal/config"
	"runlog/internal/logger"
)

// FileReport describes one verified log file.
type FileReport struct {
	Path          string
	Size          int64
	Records       int
	BadTimestamps int
	Checksum      string
}

func verifyCmd() *cobra.Command {
	var (
		dir    string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify session log files",
		Long: `Verify the session log files in a directory.

This command checks:
- Every record header carries a parseable timestamp
- File sizes and record counts
- An xxHash64 checksum per file, for comparing copies`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if dir == "" {
				dir = cfg.Logs.Dir
			}
			if prefix == "" {
				prefix = cfg.Logs.Prefix
			}

			pattern := filepath.Join(dir, prefix+"_*.log")
			files, err := filepath.Glob(pattern)
			if err != nil {
				return fmt.Errorf("failed to list log files: %w", err)
			}
			if len(files) == 0 {
				return fmt.Errorf("no log files matching %s", pattern)
			}

			logger.Log.Info("Verifying {count} file(s) under {dir}", len(files), dir)

			failed := 0
			for _, path := range files {
				report, err := verifyFile(path)
				if err != nil {
					logger.Log.Error("{path}: {error}", path, err)
					failed++
					continue
				}

				if report.BadTimestamps > 0 {
					logger.Log.Error("{path}: {bad} record(s) with malformed timestamps", path, report.BadTimestamps)
					failed++
				} else {
					logger.Log.Info("{path}: {records} record(s), {size} bytes, xxh64 {sum}",
						path, report.Records, report.Size, report.Checksum)
				}
			}

			if failed > 0 {
				return fmt.Errorf("verification failed for %d file(s)", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Log directory (default from config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Log file prefix (default from config)")

	return cmd
}

// verifyFile checksums a log file and validates its record headers.
func verifyFile(path string) (*FileReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat: %w", err)
	}

	digest := xxhash.New()
	if _, err := io.Copy(digest, file); err != nil {
		return nil, fmt.Errorf("failed to checksum: %w", err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind: %w", err)
	}

	report := &FileReport{
		Path:     path,
		Size:     stat.Size(),
		Checksum: fmt.Sprintf("%016x", digest.Sum64()),
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := recordHeader.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		report.Records++
		if _, err := time.Parse("2006-01-02 15:04:05.000", m[1]); err != nil {
			report.BadTimestamps++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read: %w", err)
	}

	return report, nil
}
