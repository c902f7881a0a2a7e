package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"admissioncli/internal/config"
)

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "test.log")
	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	logger, err := InitializeLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("test message", "key", "value")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &entry))
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNewLogger_TraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(config.LoggingConfig{Level: "debug", Format: "json", Output: "console"}, &buf)
	require.NoError(t, err)

	ctx := WithTraceID(context.Background(), "trace-123")
	logger.InfoContext(ctx, "with trace")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trace-123", entry["trace_id"])
}

func TestNewLogger_LevelsAndFormat(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		wantEmpty bool
		contains  string
	}{
		{
			name:      "debug suppressed at info",
			cfg:       config.LoggingConfig{Level: "info", Format: "json", Output: "console"},
			wantEmpty: true,
		},
		{
			name:     "debug emitted at debug",
			cfg:      config.LoggingConfig{Level: "debug", Format: "json", Output: "console"},
			contains: `"level":"DEBUG"`,
		},
		{
			name:     "text format",
			cfg:      config.LoggingConfig{Level: "debug", Format: "text", Output: "console"},
			contains: "level=DEBUG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewLogger(tt.cfg, &buf)
			require.NoError(t, err)

			logger.Debug("probe")

			if tt.wantEmpty {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("warning").String())
	assert.Equal(t, "ERROR", parseLogLevel("ERROR").String())
	assert.Equal(t, "INFO", parseLogLevel("bogus").String())
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	traceID := GetTraceID(ctx)
	assert.NotEmpty(t, traceID)
	assert.Len(t, strings.Split(traceID, "-"), 5)

	assert.Equal(t, traceID, GetTraceID(EnsureTraceID(ctx)))
}

func TestPipelineMetrics_RecordRun(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	m, err := NewPipelineMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordRun(ctx, OutcomeSuccess, 4, 1, 20*time.Millisecond)
	m.RecordRun(ctx, OutcomeParseError, 0, 0, time.Millisecond)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if data, ok := md.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range data.DataPoints {
					sums[md.Name] += dp.Value
				}
			}
		}
	}

	assert.Equal(t, int64(2), sums["admission_files_processed_total"])
	assert.Equal(t, int64(4), sums["admission_records_emitted_total"])
	assert.Equal(t, int64(1), sums["admission_negative_vacancies_total"])
}

func TestPipelineMetrics_NilReceiver(t *testing.T) {
	var m *PipelineMetrics
	assert.NotPanics(t, func() {
		m.RecordRun(context.Background(), OutcomeSuccess, 1, 0, time.Second)
	})
}

func TestInitializeOTel_Disabled(t *testing.T) {
	providers, err := InitializeOTel(config.TelemetryConfig{TraceExporter: "none"}, nil)
	require.NoError(t, err)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.TracerProvider)
	assert.NoError(t, providers.Shutdown(context.Background()))
}
