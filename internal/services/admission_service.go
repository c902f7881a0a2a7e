package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"admissioncli/internal/config"
	"admissioncli/internal/dataprocessing"
	apperrors "admissioncli/internal/errors"
	"admissioncli/internal/exporter"
	"admissioncli/internal/infrastructure"
	"admissioncli/internal/validation"
	"admissioncli/pkg/contracts/domain"
)

// Status is the single pass/fail outcome reported to the user
type Status struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Result is the output of one pipeline run
type Result struct {
	Records   []domain.NormalizedRecord `json:"records"`
	CSV       []byte                    `json:"-"`
	FileName  string                    `json:"file_name"`
	Anomalies int                       `json:"anomalies"`
	Status    Status                    `json:"status"`
}

// AdmissionService runs the load, reshape and export pipeline for one
// workbook per call. It holds no per-run state and is safe for concurrent use.
type AdmissionService struct {
	loader     *dataprocessing.Loader
	validator  *validation.FileValidator
	writer     *exporter.CSVWriter
	metrics    *infrastructure.PipelineMetrics
	tracer     trace.Tracer
	outputName string
	logger     *slog.Logger
}

// NewAdmissionService creates the service from configuration. metrics may be nil.
func NewAdmissionService(cfg *config.Config, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *AdmissionService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "admission_service")

	outputName := cfg.Pipeline.OutputFileName
	if outputName == "" {
		outputName = config.DefaultOutputFileName
	}

	logger.Info("AdmissionService initialized",
		slog.Int("header_rows", cfg.Pipeline.HeaderRows),
		slog.Int("footer_rows", cfg.Pipeline.FooterRows),
		slog.String("sheet", cfg.Pipeline.SheetName),
		slog.Any("allowed_extensions", cfg.Upload.AllowedExtensions))

	return &AdmissionService{
		loader: dataprocessing.NewLoader(dataprocessing.LoaderOptions{
			HeaderRows: cfg.Pipeline.HeaderRows,
			FooterRows: cfg.Pipeline.FooterRows,
			SheetName:  cfg.Pipeline.SheetName,
		}),
		validator:  validation.NewFileValidator(logger, cfg.Upload.AllowedExtensions...),
		writer:     exporter.NewCSVWriter("", logger),
		metrics:    metrics,
		tracer:     infrastructure.Tracer(),
		outputName: outputName,
		logger:     logger,
	}
}

// Process validates filename, then loads, reshapes and renders r as CSV.
// On failure the returned Result carries only the failure Status.
func (s *AdmissionService) Process(ctx context.Context, filename string, r io.Reader) (*Result, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "admission.process",
		trace.WithAttributes(attribute.String("admission.file", filename)))
	defer span.End()

	result, err := s.run(ctx, filename, r)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.RecordRun(ctx, outcomeFor(err), 0, 0, elapsed)
		s.logger.ErrorContext(ctx, "Admission file failed",
			slog.String("file", filename),
			slog.String("error_type", string(apperrors.TypeOf(err))),
			slog.String("error", err.Error()),
			slog.Duration("duration", elapsed))
		return &Result{FileName: s.outputName, Status: StatusFor(err)}, err
	}

	span.SetAttributes(
		attribute.Int("admission.records", len(result.Records)),
		attribute.Int("admission.anomalies", result.Anomalies))
	span.SetStatus(codes.Ok, "processed")
	s.metrics.RecordRun(ctx, infrastructure.OutcomeSuccess, len(result.Records), result.Anomalies, elapsed)
	s.logger.InfoContext(ctx, "Admission file processed",
		slog.String("file", filename),
		slog.Int("records", len(result.Records)),
		slog.Int("anomalies", result.Anomalies),
		slog.Int("csv_bytes", len(result.CSV)),
		slog.Duration("duration", elapsed))
	return result, nil
}

// ProcessFile runs Process on a workbook read from disk
func (s *AdmissionService) ProcessFile(ctx context.Context, path string) (*Result, error) {
	if err := s.validator.ValidateExcelFile(path); err != nil {
		s.metrics.RecordRun(ctx, infrastructure.OutcomeRejected, 0, 0, 0)
		return &Result{FileName: s.outputName, Status: StatusFor(err)}, err
	}

	f, err := os.Open(path)
	if err != nil {
		err = apperrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
		return &Result{FileName: s.outputName, Status: StatusFor(err)}, err
	}
	defer f.Close()

	return s.Process(ctx, filepath.Base(path), f)
}

// SaveCSV writes a successful result's records to path and returns the path written
func (s *AdmissionService) SaveCSV(result *Result, path string) (string, error) {
	if path == "" {
		path = s.outputName
	}
	written, err := s.writer.WriteRecordsFile(path, result.Records)
	if err != nil {
		return "", apperrors.NewStorageError("failed to write CSV", err)
	}
	return written, nil
}

func (s *AdmissionService) run(ctx context.Context, filename string, r io.Reader) (*Result, error) {
	if err := s.validator.ValidateUploadName(filename); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperrors.NewAppValidationError(ErrNilInput.Error())
	}

	_, loadSpan := s.tracer.Start(ctx, "admission.load")
	table, err := s.loader.Load(r)
	if err != nil {
		loadSpan.RecordError(err)
		loadSpan.SetStatus(codes.Error, "load failed")
		loadSpan.End()
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}
	loadSpan.SetAttributes(attribute.Int("admission.rows", len(table.Rows)))
	loadSpan.End()

	s.logger.DebugContext(ctx, "Workbook loaded",
		slog.String("file", filename),
		slog.Int("rows", len(table.Rows)))

	_, transformSpan := s.tracer.Start(ctx, "admission.transform")
	records, err := dataprocessing.Transform(table)
	if err != nil {
		transformSpan.RecordError(err)
		transformSpan.SetStatus(codes.Error, "transform failed")
		transformSpan.End()
		return nil, fmt.Errorf("transform %s: %w", filename, err)
	}
	transformSpan.SetAttributes(attribute.Int("admission.records", len(records)))
	transformSpan.End()

	anomalies := s.reportAnomalies(ctx, records)

	_, exportSpan := s.tracer.Start(ctx, "admission.export")
	var buf bytes.Buffer
	if err := s.writer.WriteRecords(&buf, records); err != nil {
		exportSpan.RecordError(err)
		exportSpan.SetStatus(codes.Error, "export failed")
		exportSpan.End()
		return nil, apperrors.NewStorageError("failed to render CSV", err)
	}
	exportSpan.SetAttributes(attribute.Int("admission.csv_bytes", buf.Len()))
	exportSpan.End()

	return &Result{
		Records:   records,
		CSV:       buf.Bytes(),
		FileName:  s.outputName,
		Anomalies: anomalies,
		Status:    StatusFor(nil),
	}, nil
}

// reportAnomalies logs every record with a negative vacancy and returns the count.
func (s *AdmissionService) reportAnomalies(ctx context.Context, records []domain.NormalizedRecord) int {
	count := 0
	for _, r := range records {
		if !r.HasNegativeVacancy() {
			continue
		}
		count++
		s.logger.WarnContext(ctx, "Admitted exceeds sanctioned",
			slog.Int("serial_number", r.SerialNumber),
			slog.String("institution", r.InstitutionName),
			slog.String("class", r.ClassLevel.String()),
			slog.Int("sanctioned", r.Sanctioned),
			slog.Int("admitted", r.Admitted),
			slog.Int("vacancies", r.Vacancies))
	}
	return count
}

// StatusFor converts a pipeline outcome into the user-facing status line
func StatusFor(err error) Status {
	if err == nil {
		return Status{Success: true, Message: config.MsgProcessed}
	}
	return Status{Success: false, Message: fmt.Sprintf("%s: %s", config.MsgProcessingError, apperrors.UserMessage(err))}
}

func outcomeFor(err error) string {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrTypeParsing:
		return infrastructure.OutcomeParseError
	case apperrors.ErrTypeTransform:
		return infrastructure.OutcomeTransformError
	case apperrors.ErrTypeValidation:
		return infrastructure.OutcomeRejected
	default:
		return infrastructure.OutcomeFailed
	}
}
