// Package uploadtest provides an in-memory upload.Uploader for tests.
package uploadtest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"filter-backend/internal/upload"
)

var ErrInjected = errors.New("uploadtest: injected failure")

// Fake records uploads in memory. FailOn makes uploads of matching file names
// fail; FailAll fails every upload.
type Fake struct {
	mu      sync.Mutex
	seq     int
	Stored  map[string]upload.File
	Deleted []string
	FailOn  string
	FailAll bool
}

func New() *Fake {
	return &Fake{Stored: make(map[string]upload.File)}
}

func (f *Fake) Upload(_ context.Context, folder string, file upload.File) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailAll || (f.FailOn != "" && strings.Contains(file.Name, f.FailOn)) {
		return "", ErrInjected
	}
	f.seq++
	url := fmt.Sprintf("https://img.test/%s/%d-%s", folder, f.seq, file.Name)
	f.Stored[url] = file
	return url, nil
}

func (f *Fake) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, url)
	delete(f.Stored, url)
	return nil
}

func (f *Fake) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Stored)
}

func (f *Fake) DeletedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Deleted...)
}
