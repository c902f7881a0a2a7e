// Package services implements the business logic layer of the admission
// cleaner. It sits between the transports (HTTP handlers and the CLI) and
// the pure pipeline in internal/dataprocessing.
//
// # Service Layer Responsibilities
//
//	- Upload name validation before any bytes reach the loader
//	- Logging, metrics and tracing around each pipeline stage
//	- Anomaly reporting for negative vacancies
//	- Translating failures into a single user-facing status message
//
// # Usage
//
//	svc := services.NewAdmissionService(cfg, metrics, logger)
//	result, err := svc.Process(ctx, header.Filename, file)
//	if err != nil {
//	    fmt.Println(result.Status.Message)
//	    return err
//	}
//	w.Write(result.CSV)
//
// Services receive their logger by injection and fall back to
// slog.Default when given nil.
package services
