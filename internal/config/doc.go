// Package config provides configuration loading for the admission cleaner.
//
// Values are resolved in three layers, lowest precedence first:
//
//	1. Default() values (see constants.go)
//	2. A YAML file: $ADMISSION_CONFIG_FILE, config.yaml or configs/config.yaml
//	3. Environment variables prefixed with ADMISSION_
//
// Examples:
//
//	ADMISSION_SERVER_PORT=9000
//	ADMISSION_LOGGING_LEVEL=debug
//	ADMISSION_PIPELINE_HEADER_ROWS=4
//	ADMISSION_UPLOAD_MAX_FILE_SIZE=10485760
//
// The sheet offsets (header band and footer rows) are configuration rather
// than detection: the workbook layout is fixed and known in advance.
package config
