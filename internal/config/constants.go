package config

import "time"

// Application constants
const (
	AppName = "Admission Cleaner"

	// EnvPrefix namespaces every environment variable, e.g. ADMISSION_SERVER_PORT.
	EnvPrefix = "ADMISSION"
)

// Sheet layout. The admission workbook carries a four-row title band above
// the data and a single totals row below it; both are positional.
const (
	DefaultHeaderRows = 4
	DefaultFooterRows = 1
)

// Output
const (
	DefaultOutputFileName = "cleaned_admission_data.csv"
	CSVContentType        = "text/csv"
)

// Upload limits
const (
	DefaultMaxUploadSize = 32 << 20 // 32MB
	ExcelExtension       = ".xlsx"
	ExcelLockFilePrefix  = "~$"
)

// Server defaults
const (
	DefaultPort            = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultRateLimitRPS   = 10
	DefaultRateLimitBurst = 20
)

// Log defaults
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultLogOutput   = "console"
	DefaultLogFilePath = "logs/app.log"
)

// Status messages shown by the presentation shells
const (
	MsgProcessed       = "File processed successfully!"
	MsgProcessingError = "Error processing file"
)
