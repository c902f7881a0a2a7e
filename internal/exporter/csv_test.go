package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissioncli/pkg/contracts/domain"
)

func sampleRecords() []domain.NormalizedRecord {
	return []domain.NormalizedRecord{
		{SerialNumber: 1, District: "Adilabad", InstitutionName: "ABC Govt B School", ClassLevel: domain.ClassLevelV, Sanctioned: 15, Admitted: 13, Vacancies: 2},
		{SerialNumber: 1, District: "Adilabad", InstitutionName: "ABC Govt B School", ClassLevel: domain.ClassLevelInterFirstYear, Sanctioned: 30, Admitted: 27, Vacancies: 3},
	}
}

func TestWriteRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter("", nil).WriteRecords(&buf, sampleRecords()))

	expected := "S.No,District,Institution Name,Class,Sanctioned,Admitted,Vacancies\n" +
		"1,Adilabad,ABC Govt B School,V,15,13,2\n" +
		"1,Adilabad,ABC Govt B School,Inter 1st Year,30,27,3\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteRecords_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter("", nil).WriteRecords(&buf, nil))
	assert.Equal(t, "S.No,District,Institution Name,Class,Sanctioned,Admitted,Vacancies\n", buf.String())
}

func TestWriteRecords_QuotesAndNegatives(t *testing.T) {
	records := []domain.NormalizedRecord{
		{SerialNumber: 7, District: "Ranga Reddy", InstitutionName: "School, Annex", ClassLevel: domain.ClassLevelV, Sanctioned: 1000, Admitted: 1200, Vacancies: -200},
	}
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter("", nil).WriteRecords(&buf, records))
	assert.Contains(t, buf.String(), `7,Ranga Reddy,"School, Annex",V,1000,1200,-200`+"\n")
}

func TestRecordToRow(t *testing.T) {
	row := RecordToRow(sampleRecords()[1])
	assert.Equal(t, []string{"1", "Adilabad", "ABC Govt B School", "Inter 1st Year", "30", "27", "3"}, row)
	assert.Len(t, row, len(domain.CSVHeader))
}

func TestWriteCSV(t *testing.T) {
	tests := []struct {
		name     string
		options  WriteOptions
		prefill  string
		expected string
	}{
		{
			name:     "headers and rows",
			options:  WriteOptions{Headers: []string{"a", "b"}, Records: [][]string{{"1", "2"}}},
			expected: "a,b\n1,2\n",
		},
		{
			name:     "truncates existing",
			options:  WriteOptions{Headers: []string{"a"}},
			prefill:  "old contents\n",
			expected: "a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			w := NewCSVWriter(dir, nil)
			if tt.prefill != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "out.csv"), []byte(tt.prefill), 0644))
			}

			path, err := w.WriteCSV("out.csv", tt.options)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "out.csv"), path)

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(content))
		})
	}
}

func TestWriteRecordsFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "cleaned_admission_data.csv")

	path, err := NewCSVWriter("/ignored", nil).WriteRecordsFile(target, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, target, path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter("", nil).WriteRecords(&buf, sampleRecords()))
	assert.Equal(t, buf.String(), string(content))
	assert.False(t, bytes.HasPrefix(content, []byte("\xEF\xBB\xBF")), "no byte order mark")
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "out.csv", NewCSVWriter("", nil).resolvePath("out.csv"))
	assert.Equal(t, filepath.Join("exports", "out.csv"), NewCSVWriter("exports", nil).resolvePath("out.csv"))
	abs := filepath.Join(t.TempDir(), "x.csv")
	assert.Equal(t, abs, NewCSVWriter("exports", nil).resolvePath(abs))
}
