package blob

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
)

// FS stores uploads on the local filesystem under a base directory and
// resolves URLs under a fixed public prefix.
type FS struct {
	base   string
	prefix string
}

func NewFS(base, prefix string) (*FS, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload dir")
	}
	return &FS{base: base, prefix: prefix}, nil
}

func (s *FS) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key = path.Clean("/" + key)[1:]
	dst := filepath.Join(s.base, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", errors.Wrap(err, "create upload subdir")
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(err, "create upload file")
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", errors.Wrap(err, "write upload file")
	}
	return key, nil
}

func (s *FS) URL(p string) string {
	return s.prefix + "/" + p
}

// Dir exposes the base directory for the router's file server.
func (s *FS) Dir() string {
	return s.base
}
