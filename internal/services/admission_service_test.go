package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissioncli/internal/config"
	apperrors "admissioncli/internal/errors"
	"admissioncli/internal/shared/testutil"
)

func newTestService(t *testing.T) (*AdmissionService, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, handler := testutil.NewTestLogger(t)
	return NewAdmissionService(config.Default(), nil, logger), handler
}

func TestAdmissionService_Process(t *testing.T) {
	svc, _ := newTestService(t)
	data := testutil.BuildAdmissionWorkbook(t, testutil.SampleAdmissionRow())

	result, err := svc.Process(context.Background(), "admissions.xlsx", bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, Status{Success: true, Message: "File processed successfully!"}, result.Status)
	assert.Equal(t, config.DefaultOutputFileName, result.FileName)
	assert.Zero(t, result.Anomalies)
	require.Len(t, result.Records, 2)

	expected := "S.No,District,Institution Name,Class,Sanctioned,Admitted,Vacancies\n" +
		"1,Adilabad,ABC Govt  School,V,15,13,2\n" +
		"1,Adilabad,ABC Govt  School,Inter 1st Year,30,27,3\n"
	assert.Equal(t, expected, string(result.CSV))
}

func TestAdmissionService_Process_Anomalies(t *testing.T) {
	svc, handler := newTestService(t)
	overfull := []interface{}{2, "Nirmal", "Overfull (Girls) School", 5, 9, 0, 0, "", 1, 1, 0, 0}
	data := testutil.BuildAdmissionWorkbook(t, testutil.SampleAdmissionRow(), overfull)

	result, err := svc.Process(context.Background(), "admissions.xlsx", bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Anomalies)
	assert.Contains(t, string(result.CSV), "2,Nirmal,Overfull  School,V,5,9,-4\n")

	testutil.AssertLogContains(t, handler, slog.LevelWarn, "Admitted exceeds sanctioned")
	assert.True(t, handler.ContainsAttr("serial_number", int64(2)))
}

func TestAdmissionService_Process_Failures(t *testing.T) {
	elevenRows := append([][]interface{}{}, testutil.AdmissionHeaderBand...)
	elevenRows = append(elevenRows,
		testutil.SampleAdmissionRow()[:11],
		testutil.AdmissionFooter[:11])

	tests := []struct {
		name      string
		filename  string
		data      func(t *testing.T) []byte
		checkType func(error) bool
		message   string
	}{
		{
			name:      "eleven columns",
			filename:  "admissions.xlsx",
			data:      func(t *testing.T) []byte { return testutil.BuildWorkbook(t, elevenRows) },
			checkType: apperrors.IsParseError,
			message:   "Error processing file: too few columns: expected 12, found 11",
		},
		{
			name:      "lock file",
			filename:  "~$admissions.xlsx",
			data:      func(t *testing.T) []byte { return testutil.BuildAdmissionWorkbook(t, testutil.SampleAdmissionRow()) },
			checkType: apperrors.IsValidationError,
			message:   "Error processing file: file ~$admissions.xlsx is a temporary Excel file",
		},
		{
			name:      "wrong extension",
			filename:  "admissions.csv",
			data:      func(t *testing.T) []byte { return []byte("a,b\n") },
			checkType: apperrors.IsValidationError,
			message:   "Error processing file: file admissions.csv is not a supported spreadsheet",
		},
		{
			name:      "corrupt workbook",
			filename:  "admissions.xlsx",
			data:      func(t *testing.T) []byte { return []byte("not a zip") },
			checkType: apperrors.IsParseError,
			message:   "Error processing file: failed to open workbook",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, handler := newTestService(t)

			result, err := svc.Process(context.Background(), tt.filename, bytes.NewReader(tt.data(t)))
			require.Error(t, err)
			assert.True(t, tt.checkType(err), "unexpected error type: %v", err)

			require.NotNil(t, result)
			assert.False(t, result.Status.Success)
			assert.True(t, strings.HasPrefix(result.Status.Message, tt.message), result.Status.Message)
			assert.Empty(t, result.Records)
			assert.Empty(t, result.CSV)

			testutil.AssertLogContains(t, handler, slog.LevelError, "Admission file failed")
		})
	}
}

func TestAdmissionService_Process_NilReader(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Process(context.Background(), "admissions.xlsx", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestAdmissionService_ProcessFileAndSave(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "admissions.xlsx")
	require.NoError(t, os.WriteFile(in, testutil.BuildAdmissionWorkbook(t, testutil.SampleAdmissionRow()), 0644))

	svc, _ := newTestService(t)
	result, err := svc.ProcessFile(context.Background(), in)
	require.NoError(t, err)

	out := filepath.Join(dir, "out", "cleaned.csv")
	written, err := svc.SaveCSV(result, out)
	require.NoError(t, err)
	assert.Equal(t, out, written)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, string(result.CSV), string(content))
}

func TestAdmissionService_ProcessFile_Missing(t *testing.T) {
	svc, _ := newTestService(t)
	result, err := svc.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
	assert.False(t, result.Status.Success)
	assert.Contains(t, result.Status.Message, "does not exist")
}

func TestAdmissionService_CustomPipelineConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.HeaderRows = 1
	cfg.Pipeline.FooterRows = 0
	cfg.Pipeline.OutputFileName = "out.csv"

	logger, _ := testutil.NewTestLogger(t)
	svc := NewAdmissionService(cfg, nil, logger)

	rows := [][]interface{}{{"title"}, testutil.SampleAdmissionRow()}
	result, err := svc.Process(context.Background(), "book.xlsx", bytes.NewReader(testutil.BuildWorkbook(t, rows)))
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
	assert.Equal(t, "out.csv", result.FileName)
}

func TestAdmissionService_ConcurrentRuns(t *testing.T) {
	svc, _ := newTestService(t)
	data := testutil.BuildAdmissionWorkbook(t, testutil.SampleAdmissionRow())

	const workers = 8
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			result, err := svc.Process(context.Background(), fmt.Sprintf("book-%d.xlsx", i), bytes.NewReader(data))
			if err == nil && len(result.Records) != 2 {
				err = fmt.Errorf("worker %d: got %d records", i, len(result.Records))
			}
			errs <- err
		}(i)
	}
	for i := 0; i < workers; i++ {
		assert.NoError(t, <-errs)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Status
	}{
		{"success", nil, Status{Success: true, Message: "File processed successfully!"}},
		{"plain error", errors.New("boom"), Status{Message: "Error processing file: boom"}},
		{
			"wrapped parse error",
			fmt.Errorf("load x.xlsx: %w", apperrors.NewParsingError("too few columns", nil)),
			Status{Message: "Error processing file: too few columns"},
		},
		{
			"parse error with cause",
			apperrors.NewParsingError("failed to open workbook", errors.New("zip: not a valid zip file")),
			Status{Message: "Error processing file: failed to open workbook: zip: not a valid zip file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFor(tt.err))
		})
	}
}

func TestOutcomeFor(t *testing.T) {
	assert.Equal(t, "parse_error", outcomeFor(apperrors.NewParsingError("x", nil)))
	assert.Equal(t, "transform_error", outcomeFor(apperrors.NewTransformError("x", nil)))
	assert.Equal(t, "rejected", outcomeFor(apperrors.NewAppValidationError("x")))
	assert.Equal(t, "failed", outcomeFor(errors.New("x")))
}

func TestHealthService(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthService("1.2.3", logger)

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)

	live := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", live.Status)
	assert.Contains(t, live.Runtime, "goroutines")

	version := hs.Version()
	assert.Equal(t, "1.2.3", version.Version)
	assert.Equal(t, "v1", version.CSVFormat)
}
