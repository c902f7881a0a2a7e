// Package shared holds helpers used across the admission cleaner's packages.
//
// The testutil subpackage provides:
//
//	- BufferedSlogHandler and NewTestLogger for asserting on structured logs
//	- in-memory admission workbooks built with excelize (BuildAdmissionWorkbook,
//	  BuildWorkbook) plus the header band, footer and sample row they use
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    data := testutil.BuildAdmissionWorkbook(t, testutil.SampleAdmissionRow())
//	    ...
//	    testutil.AssertLogContains(t, logs, slog.LevelInfo, "Admission file processed")
//	}
package shared
