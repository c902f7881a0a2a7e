// Package files discovers admission workbooks on disk.
//
// The CLI uses it to pick the newest workbook out of a drop directory:
//
//	workbooks, err := files.NewDiscovery("/data").FindWorkbooks("incoming")
//	latest, ok := files.GetLatestFile(workbooks)
package files
