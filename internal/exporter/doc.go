// Package exporter writes the normalized admission extract as CSV.
//
// CSVWriter renders records with the fixed header
// S.No,District,Institution Name,Class,Sanctioned,Admitted,Vacancies
// and one line per record, counts as plain integers. Output has no BOM.
//
// Example usage:
//
//	w := exporter.NewCSVWriter("", logger)
//	var buf bytes.Buffer
//	err := w.WriteRecords(&buf, records)
//
//	path, err := w.WriteRecordsFile("cleaned_admission_data.csv", records)
package exporter
