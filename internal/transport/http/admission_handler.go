package http

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"admissioncli/internal/config"
	"admissioncli/internal/dataprocessing"
	apierrors "admissioncli/internal/errors"
	"admissioncli/internal/services"
	"admissioncli/pkg/contracts/domain"
)

// UploadField is the multipart form field carrying the workbook
const UploadField = "file"

// PreviewResponse is the JSON body of a successful preview
type PreviewResponse struct {
	Status    services.Status           `json:"status"`
	Summary   domain.AdmissionSummary   `json:"summary"`
	Records   []domain.NormalizedRecord `json:"records"`
	Anomalies int                       `json:"anomalies"`
}

// Render implements the render.Renderer interface
func (p *PreviewResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// AdmissionHandler accepts workbook uploads and runs the cleaning pipeline
type AdmissionHandler struct {
	service       AdmissionServiceInterface
	maxUploadSize int64
	logger        *slog.Logger
	errorHandler  *apierrors.ErrorHandler
}

// NewAdmissionHandler creates a new admission handler
func NewAdmissionHandler(service AdmissionServiceInterface, maxUploadSize int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AdmissionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = config.DefaultMaxUploadSize
	}
	return &AdmissionHandler{
		service:       service,
		maxUploadSize: maxUploadSize,
		logger:        logger.With(slog.String("handler", "admission")),
		errorHandler:  errorHandler,
	}
}

// Routes returns the admission routes
func (h *AdmissionHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/clean", h.Clean)
	r.Post("/preview", h.Preview)

	return r
}

// Clean handles POST /api/admissions/clean and returns the CSV as an attachment
func (h *AdmissionHandler) Clean(w http.ResponseWriter, r *http.Request) {
	result, ok := h.process(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", config.CSVContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Header().Set("X-Admission-Anomalies", fmt.Sprintf("%d", result.Anomalies))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.CSV); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write CSV response",
			slog.String("error", err.Error()))
	}
}

// Preview handles POST /api/admissions/preview and returns the records as JSON
func (h *AdmissionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	result, ok := h.process(w, r)
	if !ok {
		return
	}

	render.Render(w, r, &PreviewResponse{
		Status:    result.Status,
		Summary:   dataprocessing.Summarize(result.Records),
		Records:   result.Records,
		Anomalies: result.Anomalies,
	})
}

// process reads the uploaded workbook and runs the pipeline. It renders the
// error response itself and reports false when the request is finished.
func (h *AdmissionHandler) process(w http.ResponseWriter, r *http.Request) (*services.Result, bool) {
	file, header, err := h.readUpload(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, false
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "admission upload received",
		slog.String("file", header.Filename),
		slog.Int64("size", header.Size))

	result, err := h.service.Process(r.Context(), header.Filename, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, false
	}
	return result, true
}

func (h *AdmissionHandler) readUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if r.ContentLength > h.maxUploadSize {
		return nil, nil, apierrors.ErrPayloadTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, apierrors.ErrPayloadTooLarge
		}
		return nil, nil, apierrors.InvalidRequestWithError(err)
	}

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		return nil, nil, apierrors.ErrMissingFile
	}
	return file, header, nil
}
