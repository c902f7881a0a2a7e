// Package app provides application initialization and lifecycle management
// for the admission cleaning web service.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, config file and ADMISSION_* environment
//	2. Initialize logging and OpenTelemetry providers
//	3. Create the admission and health services
//	4. Set up the chi router with middleware and handlers
//	5. Configure the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication(nil)
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests within
// Server.ShutdownTimeout, flushes telemetry and closes the log file.
// Initialization errors are returned to the caller; the package never calls
// os.Exit.
package app
