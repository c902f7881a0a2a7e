// Package http implements the HTTP handlers for the admission cleaning service.
// Handlers stay thin: they parse the upload, delegate to the service layer and
// format the response.
//
// # Endpoints
//
//	POST /api/admissions/clean    multipart "file" field, returns the CSV as an attachment
//	POST /api/admissions/preview  multipart "file" field, returns records and per-class totals as JSON
//	GET  /api/health              service health
//	GET  /api/health/live         liveness with runtime details
//	GET  /api/version             build and runtime information
//
// # Error Handling
//
// All failures are rendered as RFC 7807 Problem Details through
// errors.ErrorHandler:
//
//	{
//	    "type": "/errors/admission/sheet-layout",
//	    "title": "Spreadsheet Layout Not Recognised",
//	    "status": 422,
//	    "detail": "too few columns: expected 12, found 11",
//	    "instance": "/api/admissions/clean",
//	    "trace_id": "5f0c..."
//	}
//
// Uploads without a "file" part are rejected with 400 and bodies over the
// configured upload limit with 413, before the workbook is opened.
package http
