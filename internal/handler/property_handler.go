package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"estatesite/internal/domain"
	"estatesite/internal/service"
	"estatesite/internal/validation"
)

type PropertyHandler struct {
	svc      *service.PropertyService
	maxBytes int64
	log      *slog.Logger
}

func NewPropertyHandler(svc *service.PropertyService, maxUploadBytes int64, log *slog.Logger) *PropertyHandler {
	return &PropertyHandler{svc: svc, maxBytes: maxUploadBytes, log: log}
}

func (h *PropertyHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, err, "Failed to load properties.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *PropertyHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, err, "Failed to load property.")
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (h *PropertyHandler) Create(c *gin.Context) {
	form, files, ok := h.readForm(c)
	if !ok {
		return
	}
	list, err := h.svc.Create(c.Request.Context(), form, files)
	if err != nil {
		fail(c, h.log, err, "Failed to create property. Please try again.")
		return
	}
	success(c, http.StatusCreated, list)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	form, files, ok := h.readForm(c)
	if !ok {
		return
	}
	removed, err := validation.ParseRemovedImages(form.Get(domain.FormFieldRemovedImages))
	if err != nil {
		fail(c, h.log, err, "")
		return
	}
	list, err := h.svc.Update(c.Request.Context(), c.Param("id"), form, removed, files)
	if err != nil {
		fail(c, h.log, err, "Failed to update property. Please try again.")
		return
	}
	success(c, http.StatusOK, list)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	list, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, err, "Failed to delete property. Please try again.")
		return
	}
	success(c, http.StatusOK, list)
}

// readForm parses the multipart body, capped at maxBytes. It writes the
// error response itself and reports false on failure.
func (h *PropertyHandler) readForm(c *gin.Context) (url.Values, []service.ImageUpload, bool) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}
	mf, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Upload too large."})
			return nil, nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected a multipart form."})
		return nil, nil, false
	}
	return url.Values(mf.Value), service.ImageUploadsFromForm(mf.File[domain.FormFieldImages]), true
}
