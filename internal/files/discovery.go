package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"admissioncli/internal/config"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds admission workbooks on disk
type Discovery struct {
	basePath   string
	extensions []string
}

// NewDiscovery creates a new file discovery instance. Relative directories
// are resolved against basePath. With no extensions only .xlsx is matched.
func NewDiscovery(basePath string, extensions ...string) *Discovery {
	if len(extensions) == 0 {
		extensions = []string{config.ExcelExtension}
	}
	normalized := make([]string, len(extensions))
	for i, ext := range extensions {
		normalized[i] = strings.ToLower(ext)
	}
	return &Discovery{basePath: basePath, extensions: normalized}
}

// FindWorkbooks lists the workbooks directly inside dir, sorted by name.
// Excel lock files (~$name.xlsx) and subdirectories are skipped.
func (d *Discovery) FindWorkbooks(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, config.ExcelLockFilePrefix) || !d.matches(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

func (d *Discovery) matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range d.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
