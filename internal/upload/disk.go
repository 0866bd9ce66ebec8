package upload

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filter-backend/internal/logger"
)

// URLPrefix is the route the HTTP server mounts the upload directory on.
const URLPrefix = "/uploads"

// DiskUploader writes files under Root/<folder>/ and serves them through
// PublicURL + URLPrefix.
type DiskUploader struct {
	Root      string
	PublicURL string
}

func NewDiskUploader(root, publicURL string) *DiskUploader {
	return &DiskUploader{Root: root, PublicURL: strings.TrimRight(publicURL, "/")}
}

func (d *DiskUploader) Upload(_ context.Context, folder string, file File) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Name))
	filename := uuid.NewString() + extension

	dir := filepath.Join(d.Root, filepath.Clean("/"+folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error("create upload directory failed", zap.String("dir", dir), zap.Error(err))
		return "", err
	}

	fullPath := filepath.Join(dir, filename)
	if err := os.WriteFile(fullPath, file.Data, 0o644); err != nil {
		logger.Error("save upload failed", zap.String("path", fullPath), zap.Error(err))
		return "", err
	}

	rel := path.Join(strings.Trim(folder, "/"), filename)
	logger.Debug("upload saved", zap.String("path", fullPath))
	return d.PublicURL + URLPrefix + "/" + rel, nil
}

// Delete removes a file previously returned by Upload. URLs outside the
// upload root are refused.
func (d *DiskUploader) Delete(_ context.Context, url string) error {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return nil
	}

	rel := strings.TrimPrefix(trimmed, d.PublicURL)
	if !strings.HasPrefix(rel, URLPrefix+"/") {
		return fmt.Errorf("refusing to delete non-upload url: %s", url)
	}
	rel = strings.TrimPrefix(path.Clean(strings.TrimPrefix(rel, URLPrefix)), "/")

	cleanBase := filepath.Clean(d.Root)
	cleanTarget := filepath.Clean(filepath.Join(cleanBase, filepath.FromSlash(rel)))
	if cleanTarget == cleanBase || !strings.HasPrefix(cleanTarget, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside upload root: %s", url)
	}

	if err := os.Remove(cleanTarget); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
