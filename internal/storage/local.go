// Package storage persists rendered documents on local disk and maps
// them to public URLs.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Local writes documents under Dir and returns URLs below PublicBase,
// e.g. Dir=/var/lib/famorg/documents, PublicBase=/documents.
type Local struct {
	dir        string
	publicBase string
	logger     *slog.Logger
}

func NewLocal(dir, publicBase string, logger *slog.Logger) (*Local, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure storage dir: %w", err)
	}
	if publicBase == "" {
		publicBase = "/documents"
	}
	return &Local{dir: dir, publicBase: strings.TrimRight(publicBase, "/"), logger: logger}, nil
}

// Dir exposes the root so the HTTP layer can serve it statically.
func (l *Local) Dir() string { return l.dir }

func (l *Local) Upload(_ context.Context, data []byte, filename, _ string) (string, error) {
	name := sanitizeFilename(filename)
	if name == "" {
		return "", fmt.Errorf("empty filename")
	}
	path := filepath.Join(l.dir, name)

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("rename: %w", err)
	}

	url := l.publicBase + "/" + name
	l.logger.Debug("storage.local.ok", "path", path, "bytes", len(data))
	return url, nil
}

// sanitizeFilename strips any path components so a crafted filename
// cannot escape the storage dir.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
