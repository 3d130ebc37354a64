package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"estatesite/internal/cache"
	"estatesite/internal/models"
	"estatesite/internal/repository"
	"estatesite/internal/validation"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrSlugTaken       = errors.New("slug already in use")
)

const (
	TagServices = "/services"
	TagAbout    = "/about"
	TagContacts = "/contacts"
)

func TagService(slug string) string { return "/services/" + slug }

// CatalogService manages the site copy around the listings: services,
// the company singleton and contact entries.
type CatalogService struct {
	services *repository.ServiceRepository
	company  *repository.CompanyRepository
	contacts *repository.ContactRepository
	cache    *cache.Store
	log      *slog.Logger
}

func NewCatalogService(
	services *repository.ServiceRepository,
	company *repository.CompanyRepository,
	contacts *repository.ContactRepository,
	c *cache.Store,
	log *slog.Logger,
) *CatalogService {
	return &CatalogService{
		services: services,
		company:  company,
		contacts: contacts,
		cache:    c,
		log:      log.With(slog.String("component", "catalog")),
	}
}

// ---- services ----

func (s *CatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	return cache.Remember(ctx, s.cache, "services:list", []string{TagServices}, 0,
		func(ctx context.Context) ([]models.Service, error) {
			return s.services.ListActive(ctx)
		})
}

// ServiceBySlug returns nil, nil for unknown or inactive slugs.
func (s *CatalogService) ServiceBySlug(ctx context.Context, slug string) (*models.Service, error) {
	slug = normalizeSlug(slug)
	return cache.Remember(ctx, s.cache, "service:"+slug, []string{TagService(slug)}, 0,
		func(ctx context.Context) (*models.Service, error) {
			svc, err := s.services.GetBySlug(ctx, slug)
			if err == nil && svc == nil {
				return nil, cache.ErrMiss
			}
			return svc, err
		})
}

func (s *CatalogService) AllServices(ctx context.Context) ([]models.Service, error) {
	return s.services.ListAll(ctx)
}

// CreateService stores a new service; IsActive defaults to true when omitted.
func (s *CatalogService) CreateService(ctx context.Context, in validation.ServiceInput) (*models.Service, error) {
	in.Slug = normalizeSlug(in.Slug)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	taken, err := s.services.SlugExists(ctx, in.Slug, "")
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return nil, ErrSlugTaken
	}
	svc := &models.Service{
		Slug:         in.Slug,
		Name:         strings.TrimSpace(in.Name),
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Image:        trimmedOrNil(in.Image),
		DisplayOrder: in.DisplayOrder,
		IsActive:     in.IsActive == nil || *in.IsActive,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("insert service: %w", err)
	}
	s.log.Info("service created", slog.String("id", svc.ID), slog.String("slug", svc.Slug))
	s.cache.Invalidate(TagServices, TagService(svc.Slug))
	return svc, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, id string, p validation.ServicePatch) (*models.Service, error) {
	if p.Slug != nil {
		slug := normalizeSlug(*p.Slug)
		p.Slug = &slug
	}
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	existing, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load service %s: %w", id, err)
	}
	if existing == nil {
		return nil, ErrServiceNotFound
	}

	fields := map[string]any{}
	if p.Slug != nil && *p.Slug != existing.Slug {
		taken, err := s.services.SlugExists(ctx, *p.Slug, id)
		if err != nil {
			return nil, fmt.Errorf("check slug: %w", err)
		}
		if taken {
			return nil, ErrSlugTaken
		}
		fields["slug"] = *p.Slug
	}
	setTrimmed(fields, "name", p.Name)
	setTrimmed(fields, "title", p.Title)
	setTrimmed(fields, "description", p.Description)
	if p.Image != nil {
		fields["image"] = trimmedOrNil(p.Image)
	}
	if p.DisplayOrder != nil {
		fields["display_order"] = *p.DisplayOrder
	}
	if p.IsActive != nil {
		fields["is_active"] = *p.IsActive
	}

	if err := s.services.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update service %s: %w", id, err)
	}
	updated, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload service %s: %w", id, err)
	}
	if updated == nil {
		s.cache.Invalidate(TagServices, TagService(existing.Slug))
		return nil, ErrServiceNotFound
	}
	s.cache.Invalidate(TagServices, TagService(existing.Slug), TagService(updated.Slug))
	return updated, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	existing, err := s.services.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load service %s: %w", id, err)
	}
	if existing == nil {
		return ErrServiceNotFound
	}
	if _, err := s.services.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete service %s: %w", id, err)
	}
	s.log.Info("service deleted", slog.String("id", id), slog.String("slug", existing.Slug))
	s.cache.Invalidate(TagServices, TagService(existing.Slug))
	return nil
}

// ---- company ----

func (s *CatalogService) Company(ctx context.Context) (*models.CompanyInfo, error) {
	return cache.Remember(ctx, s.cache, "company", []string{TagHome, TagAbout, TagContacts, TagServices}, 0,
		func(ctx context.Context) (*models.CompanyInfo, error) {
			info, err := s.company.Get(ctx)
			if err == nil && info == nil {
				return nil, cache.ErrMiss
			}
			return info, err
		})
}

// UpdateCompany replaces every field of the company row. Blank optional
// fields are stored as null and a blank name keeps the current one.
func (s *CatalogService) UpdateCompany(ctx context.Context, in validation.CompanyInfoInput) (*models.CompanyInfo, error) {
	in.Name = trimmedOrNil(in.Name)
	in.Email = trimmedOrNil(in.Email)
	in.CalendlyLink = trimmedOrNil(in.CalendlyLink)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	fields := map[string]any{
		"tagline":           trimmedOrNil(in.Tagline),
		"phone":             trimmedOrNil(in.Phone),
		"email":             in.Email,
		"calendly_link":     in.CalendlyLink,
		"founded":           trimmedOrNil(in.Founded),
		"locations":         trimmedOrNil(in.Locations),
		"vision":            trimmedOrNil(in.Vision),
		"mission":           trimmedOrNil(in.Mission),
		"purpose":           trimmedOrNil(in.Purpose),
		"design_philosophy": trimmedOrNil(in.DesignPhilosophy),
	}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if err := s.company.Update(ctx, fields); err != nil {
		return nil, fmt.Errorf("update company info: %w", err)
	}
	s.cache.Invalidate(TagHome, TagAbout, TagContacts, TagServices)
	return s.company.Get(ctx)
}

// ---- contacts ----

func (s *CatalogService) ListContacts(ctx context.Context) ([]models.ContactInfo, error) {
	return cache.Remember(ctx, s.cache, "contacts:list", []string{TagContacts}, 0,
		func(ctx context.Context) ([]models.ContactInfo, error) {
			return s.contacts.ListActive(ctx)
		})
}

func (s *CatalogService) AllContacts(ctx context.Context) ([]models.ContactInfo, error) {
	return s.contacts.ListAll(ctx)
}

// CreateContact stores a new entry; IsActive defaults to true when omitted.
func (s *CatalogService) CreateContact(ctx context.Context, in validation.ContactInput) (*models.ContactInfo, error) {
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Value = strings.TrimSpace(in.Value)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	c := &models.ContactInfo{
		Type:         in.Type,
		Label:        trimmedOrNil(in.Label),
		Value:        in.Value,
		DisplayOrder: in.DisplayOrder,
		IsPrimary:    in.IsPrimary,
		IsActive:     in.IsActive == nil || *in.IsActive,
	}
	if err := s.contacts.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	s.cache.Invalidate(TagContacts)
	return c, nil
}

func (s *CatalogService) UpdateContact(ctx context.Context, id string, p validation.ContactPatch) (*models.ContactInfo, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}
	existing, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load contact %s: %w", id, err)
	}
	if existing == nil {
		return nil, ErrContactNotFound
	}
	fields := map[string]any{}
	if p.Type != nil {
		fields["type"] = strings.ToLower(strings.TrimSpace(*p.Type))
	}
	if p.Label != nil {
		fields["label"] = trimmedOrNil(p.Label)
	}
	setTrimmed(fields, "value", p.Value)
	if p.DisplayOrder != nil {
		fields["display_order"] = *p.DisplayOrder
	}
	if p.IsPrimary != nil {
		fields["is_primary"] = *p.IsPrimary
	}
	if p.IsActive != nil {
		fields["is_active"] = *p.IsActive
	}
	if err := s.contacts.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update contact %s: %w", id, err)
	}
	s.cache.Invalidate(TagContacts)
	return s.contacts.GetByID(ctx, id)
}

func (s *CatalogService) DeleteContact(ctx context.Context, id string) error {
	found, err := s.contacts.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete contact %s: %w", id, err)
	}
	if !found {
		return ErrContactNotFound
	}
	s.cache.Invalidate(TagContacts)
	return nil
}

func normalizeSlug(slug string) string {
	return strings.Join(strings.Fields(strings.ToLower(slug)), "-")
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func setTrimmed(fields map[string]any, column string, v *string) {
	if v != nil {
		fields[column] = strings.TrimSpace(*v)
	}
}
