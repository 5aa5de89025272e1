package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arkenix/client-portal/internal/domain/contact"
)

// LocalSource opens spreadsheets from disk for the command-line importer. Relative
// paths resolve against BaseDir.
type LocalSource struct {
	BaseDir string
}

func NewLocalSource(baseDir string) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir}
}

func (s *LocalSource) Resolve(sourcePath string) string {
	if filepath.IsAbs(sourcePath) {
		return filepath.Clean(sourcePath)
	}
	return filepath.Join(s.BaseDir, sourcePath)
}

// Open refuses directories and anything that is not .csv or .xlsx before reading.
func (s *LocalSource) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Resolve(sourcePath)
	if _, ok := contact.DetectFormat(path); !ok {
		return nil, fmt.Errorf("open %s: only .csv and .xlsx files are supported", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open %s: is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return f, nil
}
