package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrOutsideRoot is returned when asked to remove a path that the store does not own.
var ErrOutsideRoot = errors.New("path outside upload directory")

// Local writes uploads below a directory served statically by the API.
type Local struct {
	root   string
	prefix string
	logger zerolog.Logger
}

// NewLocal ensures dir exists and returns a store rooted there. Stored paths are
// built under publicPath, the URL prefix dir is served from; empty means "uploads".
func NewLocal(dir, publicPath string, logger zerolog.Logger) (*Local, error) {
	dir = filepath.Clean(strings.TrimSpace(dir))
	if dir == "" || dir == "." {
		return nil, fmt.Errorf("upload directory must be provided")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	prefix := strings.Trim(path.Clean("/"+strings.TrimSpace(publicPath)), "/")
	if prefix == "" {
		prefix = "uploads"
	}

	return &Local{
		root:   dir,
		prefix: prefix,
		logger: logger.With().Str("component", "local_storage").Logger(),
	}, nil
}

// Save stores reader under a random name keeping the extension of name.
// The returned path is relative, e.g. "uploads/<uuid>.pdf".
func (s *Local) Save(ctx context.Context, name string, reader io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fileName := uuid.NewString() + strings.ToLower(filepath.Ext(name))
	target := filepath.Join(s.root, fileName)

	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	if _, err := io.Copy(file, reader); err != nil {
		_ = file.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close upload: %w", err)
	}

	stored := s.prefix + "/" + fileName
	s.logger.Debug().Str("path", stored).Msg("upload stored")
	return stored, nil
}

// Remove deletes a file previously returned by Save. Missing files are ignored.
func (s *Local) Remove(ctx context.Context, stored string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name, ok := strings.CutPrefix(strings.TrimPrefix(filepath.ToSlash(stored), "/"), s.prefix+"/")
	if !ok || name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return ErrOutsideRoot
	}

	if err := os.Remove(filepath.Join(s.root, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
