// Package storage persists uploaded images and logos under a public-facing
// blob path. Entity rows reference files by relative path strings.
package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/edmarcres18/mhrhci-backend/pkg/common"
)

// MaxImages bounds the image list length per entity.
const MaxImages = 5

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".avif": true,
}

// Disk stores files below <root>/public/storage and serves them under
// <publicURL>/storage/<relpath>.
type Disk struct {
	root      string
	publicURL string
}

// NewDisk creates a disk store rooted at the configured workdir.
func NewDisk(workdir, publicURL string) *Disk {
	return &Disk{
		root:      filepath.Join(workdir, "public", "storage"),
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Save writes one uploaded file into dir and returns its relative path.
func (d *Disk) Save(dir string, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", errors.Errorf("unsupported image type %q", ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	rel := path.Join(dir, common.UUID()+ext)
	abs := filepath.Join(d.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", errors.Wrap(err, "create storage dir")
	}

	dst, err := os.Create(abs)
	if err != nil {
		return "", errors.Wrap(err, "create blob")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(abs)
		return "", errors.Wrap(err, "write blob")
	}
	return rel, nil
}

// SaveAll writes every upload or none: when one write fails, files already
// written for this operation are removed before returning. Compensating
// action, not two-phase commit.
func (d *Disk) SaveAll(dir string, files []*multipart.FileHeader) ([]string, error) {
	saved := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := d.Save(dir, f)
		if err != nil {
			d.RemoveAll(saved)
			return nil, err
		}
		saved = append(saved, rel)
	}
	return saved, nil
}

// Remove deletes one stored file.
func (d *Disk) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(d.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove blob %s", rel)
	}
	return nil
}

// RemoveAll deletes stored files best-effort, logging failures. Orphaned
// blobs are never surfaced to the caller as the primary error.
func (d *Disk) RemoveAll(rels []string) {
	for _, rel := range rels {
		if err := d.Remove(rel); err != nil {
			zap.L().Warn("stored file cleanup failed", zap.String("path", rel), zap.Error(err))
		}
	}
}

// URL formats a stored relative path as an absolute URL. Already-absolute
// references pass through unchanged.
func (d *Disk) URL(rel string) string {
	if rel == "" {
		return ""
	}
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") {
		return rel
	}
	return d.publicURL + "/storage/" + strings.TrimLeft(rel, "/")
}

// URLs maps a list of stored paths to absolute URLs, skipping blanks.
func (d *Disk) URLs(rels []string) []string {
	out := make([]string, 0, len(rels))
	for _, rel := range rels {
		if rel == "" {
			continue
		}
		out = append(out, d.URL(rel))
	}
	return out
}
