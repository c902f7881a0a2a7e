package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "admissioncli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Upload    UploadConfig    `yaml:"upload" envconfig:"UPLOAD"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gt=0s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0s"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// UploadConfig bounds what the input acquisition side accepts
type UploadConfig struct {
	MaxFileSize       int64    `yaml:"max_file_size" envconfig:"MAX_FILE_SIZE" validate:"gt=0"`
	AllowedExtensions []string `yaml:"allowed_extensions" envconfig:"ALLOWED_EXTENSIONS" validate:"min=1,dive,startswith=."`
}

// PipelineConfig holds the fixed sheet offsets and output naming
type PipelineConfig struct {
	HeaderRows     int    `yaml:"header_rows" envconfig:"HEADER_ROWS" validate:"min=0"`
	FooterRows     int    `yaml:"footer_rows" envconfig:"FOOTER_ROWS" validate:"min=0"`
	SheetName      string `yaml:"sheet_name" envconfig:"SHEET_NAME"`
	OutputFileName string `yaml:"output_file_name" envconfig:"OUTPUT_FILE_NAME" validate:"required,endswith=.csv"`
}

// SecurityConfig contains request throttling configuration
type SecurityConfig struct {
	EnableRateLimit bool    `yaml:"enable_rate_limit" envconfig:"ENABLE_RATE_LIMIT"`
	RPS             float64 `yaml:"rps" envconfig:"RPS" validate:"gt=0"`
	Burst           int     `yaml:"burst" envconfig:"BURST" validate:"min=1"`
}

// TelemetryConfig switches the OpenTelemetry providers
type TelemetryConfig struct {
	EnableMetrics bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	EnableTracing bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	TraceExporter string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"min=0,max=1"`
	Environment   string  `yaml:"environment" envconfig:"ENVIRONMENT"`
}

// Load builds the configuration from defaults, then the first config file
// found, then ADMISSION_* environment variables (highest precedence).
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile is Load with an explicit config file. An empty path skips the file layer.
// Failures are CONFIG app errors.
func LoadFile(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err)
		}
	}

	// No default tags: envconfig only touches fields whose variable is set,
	// which keeps file values intact underneath.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the struct tags and normalizes a few values
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
	for i, ext := range c.Upload.AllowedExtensions {
		c.Upload.AllowedExtensions[i] = strings.ToLower(strings.TrimSpace(ext))
	}

	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s=%s)", fe.Namespace(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG_FILE"); explicit != "" {
		return explicit
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFilePath,
		},
		Upload: UploadConfig{
			MaxFileSize:       DefaultMaxUploadSize,
			AllowedExtensions: []string{ExcelExtension},
		},
		Pipeline: PipelineConfig{
			HeaderRows:     DefaultHeaderRows,
			FooterRows:     DefaultFooterRows,
			OutputFileName: DefaultOutputFileName,
		},
		Security: SecurityConfig{
			EnableRateLimit: true,
			RPS:             DefaultRateLimitRPS,
			Burst:           DefaultRateLimitBurst,
		},
		Telemetry: TelemetryConfig{
			EnableMetrics: true,
			EnableTracing: false,
			TraceExporter: "none",
			SampleRatio:   1.0,
			Environment:   "development",
		},
	}
}
