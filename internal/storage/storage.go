// Package storage is the object storage gateway used for property images.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"estatesite/internal/logger"
)

const (
	DefaultExtension   = "jpg"
	DefaultContentType = "image/jpeg"
)

// Gateway uploads and deletes objects in one bucket.
type Gateway interface {
	// Upload stores r under key and returns its public URL.
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL strips the bucket prefix from a public URL. URLs outside the
	// bucket return false.
	KeyFromURL(url string) (string, bool)
}

// NewKey returns a fresh "<uuid>.<ext>" key keeping the extension of filename.
func NewKey(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		ext = DefaultExtension
	}
	return uuid.NewString() + "." + ext
}

// KeyAfterBucket returns what follows the "<bucket>/" path segment in url.
// The bucket must start url or follow a slash, so "estate" does not match
// inside "realestate/".
func KeyAfterBucket(url, bucket string) (string, bool) {
	segment := strings.Trim(bucket, "/") + "/"
	var key string
	if rest, ok := strings.CutPrefix(url, segment); ok {
		key = rest
	} else {
		i := strings.Index(url, "/"+segment)
		if i < 0 {
			return "", false
		}
		key = url[i+1+len(segment):]
	}
	if j := strings.IndexAny(key, "?#"); j >= 0 {
		key = key[:j]
	}
	if key == "" {
		return "", false
	}
	return key, true
}

type DeleteResult struct {
	URL string
	Key string
	Err error
}

// DeleteAll removes the object behind every URL. Each failure is logged and
// recorded; the loop always runs to the end.
func DeleteAll(ctx context.Context, gw Gateway, urls []string, log *slog.Logger) []DeleteResult {
	results := make([]DeleteResult, 0, len(urls))
	for _, u := range urls {
		key, ok := gw.KeyFromURL(u)
		if !ok {
			log.Warn("image url outside bucket, skipped", slog.String("url", u))
			continue
		}
		err := gw.Delete(ctx, key)
		if err != nil {
			log.Error("delete image failed", slog.String("key", key), logger.Err(err))
		}
		results = append(results, DeleteResult{URL: u, Key: key, Err: err})
	}
	return results
}

// Failed counts the results that carry an error.
func Failed(results []DeleteResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
