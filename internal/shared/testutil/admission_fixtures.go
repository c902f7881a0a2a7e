package testutil

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// AdmissionHeaderBand mimics the title and caption rows above the data
// band of a real admission sheet.
var AdmissionHeaderBand = [][]interface{}{
	{"Minority Welfare Department"},
	{"Statement showing admissions for the academic year"},
	{"", "", "", "Class V", "", "", "", "Inter 1st Year"},
	{"S.No", "District", "Name of the Institution", "Minorities", "", "Non Minorities", "", "Course", "Minorities", "", "Non Minorities", ""},
}

// AdmissionFooter is the trailing totals row.
var AdmissionFooter = []interface{}{"", "Total", "", 999, 999, 999, 999, "", 999, 999, 999, 999}

// SampleAdmissionRow returns the worked example row: one boys' school in
// Adilabad with a Science inter course.
func SampleAdmissionRow() []interface{} {
	return []interface{}{1, "Adilabad", "ABC Govt (Boys) School", 10, 8, 5, 5, "Science", 20, 18, 10, 9}
}

// BuildWorkbook writes the given rows, verbatim, to the first sheet of a new
// workbook and returns its bytes.
func BuildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name for row %d: %v", i+1, err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("write row %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return buf.Bytes()
}

// BuildAdmissionWorkbook wraps data rows in the standard four-row header band
// and a totals footer.
func BuildAdmissionWorkbook(t *testing.T, dataRows ...[]interface{}) []byte {
	t.Helper()

	rows := make([][]interface{}, 0, len(AdmissionHeaderBand)+len(dataRows)+1)
	rows = append(rows, AdmissionHeaderBand...)
	rows = append(rows, dataRows...)
	rows = append(rows, AdmissionFooter)
	return BuildWorkbook(t, rows)
}
