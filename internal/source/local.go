package source

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/model"
)

// LocalSource reads scans from a directory tree.
type LocalSource struct {
	logger *slog.Logger
	root   string
}

// NewLocalSource creates a source rooted at dir.
func NewLocalSource(dir string, logger *slog.Logger) (*LocalSource, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to access source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", common.ErrInvalidConfig, abs)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalSource{root: abs, logger: logger}, nil
}

// List returns the absolute paths of every supported file, sorted.
func (s *LocalSource) List(ctx context.Context) ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !IsSupported(d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.root, err)
	}

	sort.Strings(files)
	s.logger.Debug("listed local documents", "root", s.root, "count", len(files))
	return files, nil
}

// Fetch reads one file.
func (s *LocalSource) Fetch(ctx context.Context, url string) (model.Document, error) {
	if err := ctx.Err(); err != nil {
		return model.Document{}, err
	}
	if !IsSupported(url) {
		return model.Document{}, fmt.Errorf("%w: unsupported file type %s", common.ErrInvalidDocument, url)
	}

	data, err := os.ReadFile(url)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to read %s: %w", url, err)
	}

	return model.Document{
		Name: filepath.Base(url),
		URL:  url,
		Data: data,
	}, nil
}
