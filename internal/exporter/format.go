package exporter

import (
	"strconv"

	"admissioncli/pkg/contracts/domain"
)

// formatInt renders a count as a plain base-10 integer, no separators
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// RecordToRow renders a record in CSVHeader column order
func RecordToRow(r domain.NormalizedRecord) []string {
	return []string{
		formatInt(r.SerialNumber),
		r.District,
		r.InstitutionName,
		r.ClassLevel.String(),
		formatInt(r.Sanctioned),
		formatInt(r.Admitted),
		formatInt(r.Vacancies),
	}
}

// RecordsToRows renders every record, preserving order
func RecordsToRows(records []domain.NormalizedRecord) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = RecordToRow(r)
	}
	return rows
}
