// Package localstore keeps uploaded images on disk. It backs development
// setups where no Cloudinary account is configured; the router serves Dir
// as static files under the base URL.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	dir     string
	bucket  string
	baseURL string
}

// New creates <root>/<bucket> when missing. baseURL is the public prefix
// that maps to root, e.g. "http://localhost:8080/uploads".
func New(root, bucket, baseURL string) (*Store, error) {
	bucket = strings.Trim(bucket, "/")
	if bucket == "" || strings.Contains(bucket, "..") {
		return nil, fmt.Errorf("localstore: invalid bucket %q", bucket)
	}
	dir := filepath.Join(root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *Store) Upload(ctx context.Context, key string, r io.Reader, _ string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(p)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(p)
		return "", err
	}
	return s.baseURL + "/" + s.bucket + "/" + key, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

func (s *Store) KeyFromURL(url string) (string, bool) {
	prefix := s.baseURL + "/" + s.bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}

func (s *Store) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", errors.New("localstore: invalid key")
	}
	return filepath.Join(s.dir, key), nil
}
