// Package dataprocessing turns an admission statistics workbook into the
// normalized long table.
//
// # Architecture
//
// The package has two stages:
//
// 1. Loader: reads the workbook, skips the header band, names the 12 columns by position and drops the totals row
// 2. Transform: cleans institution names, coerces counts and splits each row into a V and an Inter 1st Year record
//
// # Usage
//
//	table, err := dataprocessing.NewLoader(dataprocessing.DefaultLoaderOptions()).Load(f)
//	if err != nil {
//	    return err
//	}
//	records, err := dataprocessing.Transform(table)
//
// # Data Flow
//
//	Excel bytes → Loader → domain.Table → Transform → []domain.NormalizedRecord
//
// # Error Handling
//
// Layout problems surface as parsing errors from the loader and structural
// problems as transform errors; see errors.IsParseError and
// errors.IsTransformError. A malformed cell is never an error: counts fall
// back to 0 and names are cleaned best-effort.
//
// Both stages are pure. Logging, metrics and tracing live in the services
// layer.
package dataprocessing
