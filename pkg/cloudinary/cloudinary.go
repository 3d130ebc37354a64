package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"

	"estatesite/internal/storage"
)

// Config holds Cloudinary credentials and the folder acting as the bucket.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Eager transformation generated on upload so the site can serve a
// web-optimized rendition without a first-hit delay.
const imageEager = "q_auto,f_auto,w_1600,c_limit"

var (
	eagerAsyncFalse = false
	overwriteFalse  = false
	invalidateTrue  = true
)

// assetAPI is the part of the Cloudinary uploader the gateway calls.
type assetAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Gateway stores property images in one Cloudinary folder. Object keys are
// "<public id>.<format>" relative to the folder.
type Gateway struct {
	folder string
	api    assetAPI
}

// NewGateway builds a Gateway from Cloudinary cloud name, API key, and secret.
func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary: cloud name, api key and secret are required")
	}
	c, err := config.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(c)
	if err != nil {
		return nil, err
	}
	return newGateway(cfg.Folder, up), nil
}

func newGateway(folder string, api assetAPI) *Gateway {
	return &Gateway{folder: strings.Trim(folder, "/"), api: api}
}

// Upload stores the image under key. The folder is part of the public id
// rather than the Folder param so URLs carry it in both folder modes. The
// content type is detected by Cloudinary itself.
func (g *Gateway) Upload(ctx context.Context, key string, file io.Reader, _ string) (string, error) {
	publicID, format := splitKey(key)
	result, err := g.api.Upload(ctx, file, uploader.UploadParams{
		PublicID:     path.Join(g.folder, publicID),
		Format:       format,
		ResourceType: "image",
		Overwrite:    &overwriteFalse,
		Eager:        imageEager,
		EagerAsync:   &eagerAsyncFalse,
	})
	if err != nil {
		return "", err
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload %s: %s", key, result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload %s: empty url", key)
	}
	return result.SecureURL, nil
}

// Delete destroys the asset behind key. An asset that is already gone is
// reported as an error so callers can log it.
func (g *Gateway) Delete(ctx context.Context, key string) error {
	publicID, _ := splitKey(key)
	result, err := g.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     path.Join(g.folder, publicID),
		ResourceType: "image",
		Invalidate:   &invalidateTrue,
	})
	if err != nil {
		return err
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", key, result.Error.Message)
	}
	if result.Result != "ok" {
		return fmt.Errorf("cloudinary destroy %s: %s", key, result.Result)
	}
	return nil
}

// KeyFromURL maps ".../image/upload/v123/<folder>/<id>.<ext>" to "<id>.<ext>".
func (g *Gateway) KeyFromURL(url string) (string, bool) {
	_, rest, ok := strings.Cut(url, "/upload/")
	if !ok {
		return "", false
	}
	return storage.KeyAfterBucket(rest, g.folder)
}

func splitKey(key string) (publicID, format string) {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext), strings.TrimPrefix(ext, ".")
}
