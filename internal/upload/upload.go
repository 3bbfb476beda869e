// Package upload stores machine and spare-part images and returns their public URLs.
package upload

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"maintenance-backend/config"
)

// Uploader persists one image and returns the URL it is served from.
type Uploader interface {
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) (string, error)
}

// New builds the uploader selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Uploader, error) {
	switch cfg.Driver {
	case "minio":
		return NewMinIO(ctx, cfg)
	case "local":
		return NewLocal(cfg.LocalDir, "/uploads"), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// objectName builds folder/yyyy/mm/<id>_<name> for a new upload.
func objectName(folder, filename string, now time.Time) string {
	base := unsafeName.ReplaceAllString(filepath.Base(filename), "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "image"
	}
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return path.Join(folder, fmt.Sprintf("%d/%02d", now.Year(), now.Month()), id+"_"+base)
}
