// Package storage uploads product images and returns publicly resolvable URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Uploader stores a raw file and returns its public URL. Uploads are
// passthrough; no resizing or transcoding happens here.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// LocalStorage writes files under the media dir served at /media. It is
// the fallback when no object-storage bucket is configured.
type LocalStorage struct {
	Dir     string
	BaseURL string // site base URL, no trailing slash
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (l *LocalStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	clean := filepath.Clean(key)
	if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	full := filepath.Join(l.Dir, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return "", err
	}
	return l.BaseURL + "/media/" + filepath.ToSlash(clean), nil
}
