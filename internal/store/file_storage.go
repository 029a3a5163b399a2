package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/MKhiriev/med-cms/internal/logger"
)

// localFileStorage is the file-system implementation of [FileStorage].
// Every path is resolved inside root through [os.Root], so stored paths
// cannot escape the upload directory.
type localFileStorage struct {
	root   *os.Root
	logger *logger.Logger
}

// NewLocalFileStorage opens (creating when missing) dir as the storage root.
func NewLocalFileStorage(dir string, log *logger.Logger) (FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating upload dir: %w", err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("error opening upload dir: %w", err)
	}

	log.Debug().Str("dir", dir).Msg("creating local file storage")
	return &localFileStorage{root: root, logger: log}, nil
}

// Save writes body to p and returns the number of bytes written. A partial
// file is removed on failure.
func (s *localFileStorage) Save(ctx context.Context, p string, body io.Reader) (int64, error) {
	log := logger.FromContext(ctx)

	clean, err := cleanStoredPath(p)
	if err != nil {
		return 0, err
	}

	if dir := path.Dir(clean); dir != "." {
		if err := s.root.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}

	f, err := s.root.Create(clean)
	if err != nil {
		log.Err(err).Str("func", "*localFileStorage.Save").Str("path", clean).Msg("error creating file")
		return 0, fmt.Errorf("error creating file: %w", err)
	}

	n, copyErr := io.Copy(f, &ctxReader{ctx: ctx, r: body})
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		log.Err(err).Str("func", "*localFileStorage.Save").Str("path", clean).Msg("error writing file")
		_ = s.root.Remove(clean)
		return 0, fmt.Errorf("error writing file: %w", err)
	}

	return n, nil
}

func (s *localFileStorage) Open(ctx context.Context, p string) (io.ReadCloser, int64, error) {
	clean, err := cleanStoredPath(p)
	if err != nil {
		return nil, 0, err
	}

	f, err := s.root.Open(clean)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, ErrStoredFileNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("error opening file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("error reading file info: %w", err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, 0, ErrStoredFileNotFound
	}
	return f, info.Size(), nil
}

func (s *localFileStorage) Exists(ctx context.Context, p string) (bool, error) {
	clean, err := cleanStoredPath(p)
	if err != nil {
		return false, err
	}

	info, err := s.root.Stat(clean)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking file: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

// Delete removes p. A missing file is not an error.
func (s *localFileStorage) Delete(ctx context.Context, p string) error {
	clean, err := cleanStoredPath(p)
	if err != nil {
		return err
	}

	if err := s.root.Remove(clean); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error deleting file: %w", err)
	}
	return nil
}

func cleanStoredPath(p string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(p, `\`, "/"))
	if clean == "." || clean == "/" || strings.HasPrefix(clean, "../") || clean == ".." || path.IsAbs(clean) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStoredPath, p)
	}
	return clean, nil
}

// Close releases the storage root.
func (s *localFileStorage) Close() error {
	return s.root.Close()
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
