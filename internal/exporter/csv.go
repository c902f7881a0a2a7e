package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"admissioncli/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	baseDir string
	logger  *slog.Logger
}

// NewCSVWriter creates a writer that resolves relative paths against baseDir.
// An empty baseDir means the working directory.
func NewCSVWriter(baseDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{baseDir: baseDir, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers []string
	Records [][]string
}

// WriteRecords writes the normalized extract, header first, to w.
func (cw *CSVWriter) WriteRecords(w io.Writer, records []domain.NormalizedRecord) error {
	return writeRows(w, domain.CSVHeader, RecordsToRows(records))
}

// WriteCSV writes data to a CSV file, replacing any existing content, and
// returns the path written.
func (cw *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := cw.resolvePath(filePath)

	cw.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if err := writeRows(file, options.Headers, options.Records); err != nil {
		return "", err
	}
	return fullPath, file.Close()
}

// WriteRecordsFile writes the normalized extract to filePath.
func (cw *CSVWriter) WriteRecordsFile(filePath string, records []domain.NormalizedRecord) (string, error) {
	return cw.WriteCSV(filePath, WriteOptions{
		Headers: domain.CSVHeader,
		Records: RecordsToRows(records),
	})
}

func writeRows(w io.Writer, headers []string, rows [][]string) error {
	writer := csv.NewWriter(w)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// resolvePath anchors relative paths at the writer's base directory
func (cw *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || cw.baseDir == "" {
		return filePath
	}
	return filepath.Join(cw.baseDir, filePath)
}
