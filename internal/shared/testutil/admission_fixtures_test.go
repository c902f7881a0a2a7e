package testutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildAdmissionWorkbook(t *testing.T) {
	data := BuildAdmissionWorkbook(t, SampleAdmissionRow())

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, len(AdmissionHeaderBand)+2)

	assert.Equal(t, "Minority Welfare Department", rows[0][0])
	assert.Equal(t, []string{"1", "Adilabad", "ABC Govt (Boys) School", "10", "8", "5", "5", "Science", "20", "18", "10", "9"}, rows[4])
	assert.Equal(t, "Total", rows[5][1])
}
