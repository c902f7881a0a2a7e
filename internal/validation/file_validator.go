package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"admissioncli/internal/config"
	apperrors "admissioncli/internal/errors"
)

// FileValidator rejects inputs the pipeline should never see
type FileValidator struct {
	logger            *slog.Logger
	allowedExtensions []string
}

// NewFileValidator creates a new file validator. With no extensions given
// only .xlsx is accepted.
func NewFileValidator(logger *slog.Logger, allowedExtensions ...string) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	if len(allowedExtensions) == 0 {
		allowedExtensions = []string{config.ExcelExtension}
	}
	exts := make([]string, len(allowedExtensions))
	for i, ext := range allowedExtensions {
		exts[i] = strings.ToLower(ext)
	}
	return &FileValidator{
		logger:            logger,
		allowedExtensions: exts,
	}
}

// ValidateUploadName checks a client-supplied file name before any bytes are read
func (v *FileValidator) ValidateUploadName(name string) error {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return apperrors.NewAppValidationError("file name is required")
	}

	if strings.HasPrefix(base, config.ExcelLockFilePrefix) {
		v.logger.Warn("Rejected temporary Excel file", slog.String("file", base))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is a temporary Excel file", base)).
			WithContext("file", base)
	}

	ext := strings.ToLower(filepath.Ext(base))
	for _, allowed := range v.allowedExtensions {
		if ext == allowed {
			return nil
		}
	}

	v.logger.Warn("Rejected file with unsupported extension",
		slog.String("file", base),
		slog.String("extension", ext))
	return apperrors.NewAppValidationError(
		fmt.Sprintf("file %s is not a supported spreadsheet (allowed: %s)", base, strings.Join(v.allowedExtensions, ", "))).
		WithContext("file", base).
		WithContext("extension", ext)
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s does not exist", path))
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateExcelFile checks that path names a readable, non-temporary workbook
func (v *FileValidator) ValidateExcelFile(path string) error {
	if err := v.ValidateUploadName(path); err != nil {
		return err
	}
	return v.ValidateFile(path)
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}
