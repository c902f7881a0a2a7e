package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"admissioncli/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized", slog.String("version", version))

	return &HealthService{
		version:   version,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}

	hs.logger.DebugContext(ctx, "HealthCheck: completed",
		slog.String("status", status.Status),
		slog.String("uptime", time.Since(hs.startTime).String()))

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// VersionResponse is the build information plus process uptime
type VersionResponse struct {
	contracts.VersionInfo
	Uptime    float64 `json:"uptime"`
	StartTime string  `json:"start_time"`
}

// Version returns version information
func (hs *HealthService) Version() VersionResponse {
	info := contracts.GetVersionInfo()
	info.Version = hs.version
	return VersionResponse{
		VersionInfo: info,
		Uptime:      time.Since(hs.startTime).Seconds(),
		StartTime:   hs.startTime.Format(time.RFC3339),
	}
}
