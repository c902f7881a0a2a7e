package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome labels for admission_files_processed_total
const (
	OutcomeSuccess        = "success"
	OutcomeParseError     = "parse_error"
	OutcomeTransformError = "transform_error"
	OutcomeRejected       = "rejected"
	OutcomeFailed         = "failed"
)

// PipelineMetrics are the instruments recorded once per processed file
type PipelineMetrics struct {
	FilesProcessed    metric.Int64Counter
	RecordsEmitted    metric.Int64Counter
	NegativeVacancies metric.Int64Counter
	Duration          metric.Float64Histogram
}

// NewPipelineMetrics creates the pipeline instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	filesProcessed, err := meter.Int64Counter(
		"admission_files_processed_total",
		metric.WithDescription("Admission workbooks processed, by outcome"),
	)
	if err != nil {
		return nil, err
	}

	recordsEmitted, err := meter.Int64Counter(
		"admission_records_emitted_total",
		metric.WithDescription("Normalized records produced"),
	)
	if err != nil {
		return nil, err
	}

	negativeVacancies, err := meter.Int64Counter(
		"admission_negative_vacancies_total",
		metric.WithDescription("Records where admitted exceeds sanctioned"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"admission_pipeline_duration_seconds",
		metric.WithDescription("Time to load, reshape and export one workbook"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		FilesProcessed:    filesProcessed,
		RecordsEmitted:    recordsEmitted,
		NegativeVacancies: negativeVacancies,
		Duration:          duration,
	}, nil
}

// RecordRun records one pipeline run. A nil receiver is a no-op.
func (m *PipelineMetrics) RecordRun(ctx context.Context, outcome string, records, anomalies int, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.FilesProcessed.Add(ctx, 1, attrs)
	m.Duration.Record(ctx, elapsed.Seconds(), attrs)
	if records > 0 {
		m.RecordsEmitted.Add(ctx, int64(records))
	}
	if anomalies > 0 {
		m.NegativeVacancies.Add(ctx, int64(anomalies))
	}
}
