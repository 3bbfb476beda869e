package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Local writes uploads below a directory that the router serves statically.
type Local struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

// NewLocal stores files under dir and reports URLs under urlPrefix.
func NewLocal(dir, urlPrefix string) *Local {
	return &Local{dir: dir, urlPrefix: urlPrefix, now: time.Now}
}

// Dir is the root directory files are written to.
func (l *Local) Dir() string {
	return l.dir
}

func (l *Local) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) (string, error) {
	name := objectName(folder, filename, l.now())
	dst := filepath.Join(l.dir, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return l.urlPrefix + "/" + name, nil
}
