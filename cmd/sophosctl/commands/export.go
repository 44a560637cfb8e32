package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const exportDirPerm = 0o750

// ExportCSV writes a header row plus data rows to a timestamped CSV file
// under dir, creating the directory if needed. The file is named
// sophos_<kind>_<YYYYMMDD_HHMMSS>.csv. Zero rows still produce a file with
// the header row.
func ExportCSV(dir, kind string, header []string, rows [][]string) (string, error) {
	if err := os.MkdirAll(dir, exportDirPerm); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("sophos_%s_%s.csv", kind, timestamp))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating CSV file: %w", err)
	}

	writer := csv.NewWriter(file)

	err = writer.Write(header)
	if err == nil {
		err = writer.WriteAll(rows)
	}

	writer.Flush()

	if err == nil {
		err = writer.Error()
	}

	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		return "", fmt.Errorf("writing CSV file: %w", err)
	}

	return path, nil
}

// csvDir returns the configured CSV export directory.
func csvDir() string {
	dir := viper.GetString("csv-dir")
	if dir == "" {
		dir = "output"
	}

	return dir
}
