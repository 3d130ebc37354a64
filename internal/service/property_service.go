package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/url"

	"gorm.io/datatypes"

	"estatesite/internal/cache"
	"estatesite/internal/models"
	"estatesite/internal/repository"
	"estatesite/internal/storage"
	"estatesite/internal/validation"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrImagesRequired   = errors.New("Please upload at least one property image.")
)

// Cache tags for the views that show listings.
const (
	TagHome     = "/"
	TagProjects = "/projects"
)

func TagProperty(id string) string { return "/property/" + id }

const propertyListKey = "properties:list"

// ImageUpload is one file attached to a mutation.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// ImageUploadsFromForm keeps the non-empty files of a multipart field.
func ImageUploadsFromForm(files []*multipart.FileHeader) []ImageUpload {
	out := make([]ImageUpload, 0, len(files))
	for _, fh := range files {
		if fh == nil || fh.Size <= 0 {
			continue
		}
		out = append(out, ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open:        func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	return out
}

// PropertyService runs every listing mutation as validate, upload, write
// row, clean up storage, invalidate cached reads, re-read.
type PropertyService struct {
	repo  *repository.PropertyRepository
	store storage.Gateway
	cache *cache.Store
	log   *slog.Logger
}

func NewPropertyService(repo *repository.PropertyRepository, store storage.Gateway, c *cache.Store, log *slog.Logger) *PropertyService {
	return &PropertyService{repo: repo, store: store, cache: c, log: log.With(slog.String("component", "properties"))}
}

// List returns all listings, newest first.
func (s *PropertyService) List(ctx context.Context) ([]PropertyView, error) {
	return cache.Remember(ctx, s.cache, propertyListKey, []string{TagHome, TagProjects}, 0,
		func(ctx context.Context) ([]PropertyView, error) {
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, fmt.Errorf("list properties: %w", err)
			}
			return NewPropertyViews(list), nil
		})
}

// Get returns nil, nil when the listing does not exist.
func (s *PropertyService) Get(ctx context.Context, id string) (*PropertyView, error) {
	return cache.Remember(ctx, s.cache, "property:"+id, []string{TagProperty(id)}, 0,
		func(ctx context.Context) (*PropertyView, error) {
			p, err := s.repo.GetByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("get property %s: %w", id, err)
			}
			if p == nil {
				return nil, cache.ErrMiss
			}
			v := NewPropertyView(p)
			return &v, nil
		})
}

// Create validates form, uploads files in order and inserts the row with the
// first uploaded image as thumbnail. Uploaded objects are removed again when
// a later step fails.
func (s *PropertyService) Create(ctx context.Context, form url.Values, files []ImageUpload) ([]PropertyView, error) {
	in, err := validation.ParsePropertyForm(form, validation.ModeCreate)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrImagesRequired
	}

	urls, err := s.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	bedrooms, bathrooms, area := in.Bedrooms, in.Bathrooms, in.Area
	p := &models.Property{
		Title:        in.Title,
		Location:     in.Location,
		Price:        in.Price,
		Currency:     in.Currency,
		Bedrooms:     &bedrooms,
		Bathrooms:    &bathrooms,
		Area:         &area,
		Category:     in.Category,
		Description:  &in.Description,
		ThumbnailURL: urls[0],
		GalleryURLs:  urls,
		Features:     in.ModelFeatures(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.discard(ctx, urls)
		return nil, fmt.Errorf("insert property: %w", err)
	}
	s.log.Info("property created", slog.String("id", p.ID), slog.Int("images", len(urls)))

	s.cache.Invalidate(TagHome, TagProjects, TagProperty(p.ID))
	return s.List(ctx)
}

// Update applies the scalar fields, drops the gallery URLs listed in removed
// and appends newly uploaded files after the kept ones. A blank price keeps
// the stored price. When nothing would be left in the gallery the stored
// gallery is kept untouched.
func (s *PropertyService) Update(ctx context.Context, id string, form url.Values, removed []string, files []ImageUpload) ([]PropertyView, error) {
	in, err := validation.ParsePropertyForm(form, validation.ModeUpdate)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load property %s: %w", id, err)
	}
	if existing == nil {
		return nil, ErrPropertyNotFound
	}

	removeSet := make(map[string]struct{}, len(removed))
	for _, u := range removed {
		removeSet[u] = struct{}{}
	}
	var retained, dropped []string
	for _, u := range existing.GalleryURLs {
		if _, ok := removeSet[u]; ok {
			dropped = append(dropped, u)
			continue
		}
		retained = append(retained, u)
	}
	if len(retained) == 0 && len(files) == 0 && len(dropped) > 0 {
		s.log.Warn("update would empty the gallery, keeping stored images", slog.String("id", id))
		dropped = nil
	}

	added, err := s.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"title":       in.Title,
		"location":    in.Location,
		"bedrooms":    in.Bedrooms,
		"bathrooms":   in.Bathrooms,
		"area":        in.Area,
		"category":    in.Category,
		"description": in.Description,
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Currency != "" {
		fields["currency"] = in.Currency
	}
	if in.Features != nil {
		fields["features"] = datatypes.JSONSlice[models.PropertyFeature](in.ModelFeatures())
	}
	if len(dropped) > 0 || len(added) > 0 {
		gallery := append(append([]string{}, retained...), added...)
		fields["thumbnail_url"] = gallery[0]
		fields["gallery_urls"] = datatypes.JSONSlice[string](gallery)
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		s.discard(ctx, added)
		return nil, fmt.Errorf("update property %s: %w", id, err)
	}

	results := storage.DeleteAll(ctx, s.store, dropped, s.log)
	s.log.Info("property updated",
		slog.String("id", id),
		slog.Int("added", len(added)),
		slog.Int("removed", len(results)),
		slog.Int("cleanup_failures", storage.Failed(results)))

	s.cache.Invalidate(TagHome, TagProjects, TagProperty(id))
	return s.List(ctx)
}

// Delete removes every stored image of the listing, then the row.
func (s *PropertyService) Delete(ctx context.Context, id string) ([]PropertyView, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load property %s: %w", id, err)
	}
	if existing == nil {
		return nil, ErrPropertyNotFound
	}

	results := storage.DeleteAll(ctx, s.store, imageURLs(existing), s.log)

	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete property %s: %w", id, err)
	}
	if !found {
		return nil, ErrPropertyNotFound
	}
	s.log.Info("property deleted",
		slog.String("id", id),
		slog.Int("images", len(results)),
		slog.Int("cleanup_failures", storage.Failed(results)))

	s.cache.Invalidate(TagHome, TagProjects, TagProperty(id))
	return s.List(ctx)
}

func (s *PropertyService) uploadAll(ctx context.Context, files []ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		u, err := s.upload(ctx, f)
		if err != nil {
			s.discard(ctx, urls)
			return nil, fmt.Errorf("upload %q: %w", f.Filename, err)
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func (s *PropertyService) upload(ctx context.Context, f ImageUpload) (string, error) {
	r, err := f.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()
	contentType := f.ContentType
	if contentType == "" {
		contentType = storage.DefaultContentType
	}
	return s.store.Upload(ctx, storage.NewKey(f.Filename), r, contentType)
}

// discard deletes objects uploaded by a mutation that did not complete.
func (s *PropertyService) discard(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}
	results := storage.DeleteAll(context.WithoutCancel(ctx), s.store, urls, s.log)
	if n := storage.Failed(results); n > 0 {
		s.log.Warn("orphaned uploads left in storage", slog.Int("count", n))
	}
}

// imageURLs lists the gallery plus the thumbnail when it is not part of it.
func imageURLs(p *models.Property) []string {
	urls := append([]string{}, p.GalleryURLs...)
	if p.ThumbnailURL == "" {
		return urls
	}
	for _, u := range urls {
		if u == p.ThumbnailURL {
			return urls
		}
	}
	return append(urls, p.ThumbnailURL)
}

// IsNotFound reports whether err means the addressed record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPropertyNotFound) ||
		errors.Is(err, ErrServiceNotFound) ||
		errors.Is(err, ErrContactNotFound)
}
