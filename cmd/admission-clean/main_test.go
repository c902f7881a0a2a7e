package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissioncli/internal/shared/testutil"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "admissions.xlsx")
	require.NoError(t, os.WriteFile(in, testutil.BuildAdmissionWorkbook(t, testutil.SampleAdmissionRow()), 0644))
	out := filepath.Join(dir, "cleaned.csv")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-in", in, "-out", out}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "File processed successfully!\n", stdout.String())

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"S.No,District,Institution Name,Class,Sanctioned,Admitted,Vacancies\n"+
			"1,Adilabad,ABC Govt  School,V,15,13,2\n"+
			"1,Adilabad,ABC Govt  School,Inter 1st Year,30,27,3\n",
		string(content))
}

func TestRun_OutputNameFromConfig(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "admissions.xlsx")
	require.NoError(t, os.WriteFile(in, testutil.BuildAdmissionWorkbook(t, testutil.SampleAdmissionRow()), 0644))
	configured := filepath.Join(dir, "district_admissions.csv")
	t.Setenv("ADMISSION_PIPELINE_OUTPUT_FILE_NAME", configured)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-in", in}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	content, err := os.ReadFile(configured)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "S.No,District,Institution Name,Class,"))
}

func TestRun_Failures(t *testing.T) {
	dir := t.TempDir()

	elevenRows := append([][]interface{}{}, testutil.AdmissionHeaderBand...)
	elevenRows = append(elevenRows, testutil.SampleAdmissionRow()[:11], testutil.AdmissionFooter[:11])
	narrow := filepath.Join(dir, "narrow.xlsx")
	require.NoError(t, os.WriteFile(narrow, testutil.BuildWorkbook(t, elevenRows), 0644))

	tests := []struct {
		name         string
		args         []string
		expectedCode int
		stdout       string
	}{
		{
			name:         "missing in flag",
			args:         nil,
			expectedCode: 2,
		},
		{
			name:         "eleven columns",
			args:         []string{"-in", narrow, "-out", filepath.Join(dir, "narrow.csv")},
			expectedCode: 1,
			stdout:       "Error processing file: too few columns: expected 12, found 11\n",
		},
		{
			name:         "missing input",
			args:         []string{"-in", filepath.Join(dir, "absent.xlsx")},
			expectedCode: 1,
			stdout:       "does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.expectedCode, code)
			if tt.stdout != "" {
				assert.Contains(t, stdout.String(), tt.stdout)
			}
		})
	}

	_, err := os.Stat(filepath.Join(dir, "narrow.csv"))
	assert.True(t, os.IsNotExist(err), "no output on failure")
}

func TestRun_InDirPicksLatest(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "cleaned.csv")

	good := testutil.BuildAdmissionWorkbook(t, testutil.SampleAdmissionRow())
	older := filepath.Join(in, "broken.xlsx")
	newer := filepath.Join(in, "adilabad.xlsx")
	require.NoError(t, os.WriteFile(older, []byte("not a zip"), 0644))
	require.NoError(t, os.WriteFile(newer, good, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "~$adilabad.xlsx"), []byte("lock"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("ignore"), 0644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-in-dir", in, "-out", out}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "File processed successfully!\n", stdout.String())

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "S.No,District,Institution Name,Class,"))
}

func TestRun_InDirEmpty(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-in-dir", t.TempDir()}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "no workbooks found")
}

func TestRun_ConflictingInputs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-in", "a.xlsx", "-in-dir", "."}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "exactly one of -in or -in-dir")
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-version"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout.String(), "Admission Cleaner v"))
}
