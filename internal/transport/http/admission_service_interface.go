package http

import (
	"context"
	"io"

	"admissioncli/internal/services"
)

// AdmissionServiceInterface defines the pipeline operations the admission handler needs
type AdmissionServiceInterface interface {
	Process(ctx context.Context, filename string, r io.Reader) (*services.Result, error)
}
