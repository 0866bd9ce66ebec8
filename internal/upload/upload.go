// Package upload validates image files and hands them to an image host.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"filter-backend/internal/logger"
)

const (
	MaxImageSize       = 5 << 20
	MaxFilesPerRequest = 4
)

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image file too large (max 5MB)")
	ErrTooManyFiles    = fmt.Errorf("at most %d images are allowed", MaxFilesPerRequest)
)

// File is an image held in memory between request parsing and upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader stores files on an image host and returns their public URL.
type Uploader interface {
	Upload(ctx context.Context, folder string, file File) (string, error)
	Delete(ctx context.Context, url string) error
}

// ValidateImage checks the extension whitelist and the size cap.
func ValidateImage(name string, size int64) error {
	extension := strings.ToLower(filepath.Ext(name))
	if extension == "" {
		return fmt.Errorf("%w: image file extension is required", ErrUnsupportedType)
	}
	if _, ok := allowedExtensions[extension]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, extension)
	}
	if size > MaxImageSize {
		return ErrTooLarge
	}
	return nil
}

// ReadFileHeader validates and buffers a multipart file.
func ReadFileHeader(header *multipart.FileHeader) (File, error) {
	if err := ValidateImage(header.Filename, header.Size); err != nil {
		return File{}, err
	}

	in, err := header.Open()
	if err != nil {
		return File{}, fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer in.Close()

	data, err := io.ReadAll(io.LimitReader(in, MaxImageSize+1))
	if err != nil {
		return File{}, fmt.Errorf("read upload %s: %w", header.Filename, err)
	}
	if len(data) > MaxImageSize {
		return File{}, ErrTooLarge
	}

	return File{
		Name:        header.Filename,
		ContentType: contentTypeFor(header.Filename, header.Header.Get("Content-Type")),
		Data:        data,
	}, nil
}

func contentTypeFor(name, declared string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if ct, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// UploadAll uploads files concurrently and returns URLs in input order. Either
// every file is uploaded or none remain: on failure the ones that succeeded are
// deleted before the error is returned.
func UploadAll(ctx context.Context, u Uploader, folder string, files []File) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			url, err := u.Upload(gctx, folder, f)
			if err != nil {
				return fmt.Errorf("upload %s: %w", f.Name, err)
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uploaded := make([]string, 0, len(urls))
		for _, url := range urls {
			if url != "" {
				uploaded = append(uploaded, url)
			}
		}
		Rollback(context.WithoutCancel(ctx), u, uploaded)
		return nil, err
	}
	return urls, nil
}

// Rollback deletes already uploaded files. Failures are logged and swallowed.
func Rollback(ctx context.Context, u Uploader, urls []string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := u.Delete(ctx, url); err != nil {
			logger.Warn("upload rollback failed", zap.String("url", url), zap.Error(err))
		}
	}
}
