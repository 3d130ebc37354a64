package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"estatesite/internal/service"
	"estatesite/internal/validation"
)

// CatalogHandler serves services, company info and contacts.
type CatalogHandler struct {
	svc *service.CatalogService
	log *slog.Logger
}

func NewCatalogHandler(svc *service.CatalogService, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	list, err := h.svc.ListServices(c.Request.Context())
	if err != nil {
		fail(c, h.log, err, "Failed to load services.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	s, err := h.svc.ServiceBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.log, err, "Failed to load service.")
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s})
}

func (h *CatalogHandler) AdminListServices(c *gin.Context) {
	list, err := h.svc.AllServices(c.Request.Context())
	if err != nil {
		fail(c, h.log, err, "Failed to load services.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var in validation.ServiceInput
	if !bind(c, &in) {
		return
	}
	s, err := h.svc.CreateService(c.Request.Context(), in)
	if err != nil {
		fail(c, h.log, err, "Failed to create service. Please try again.")
		return
	}
	success(c, http.StatusCreated, s)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var in validation.ServicePatch
	if !bind(c, &in) {
		return
	}
	s, err := h.svc.UpdateService(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, h.log, err, "Failed to update service. Please try again.")
		return
	}
	success(c, http.StatusOK, s)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.svc.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.log, err, "Failed to delete service. Please try again.")
		return
	}
	success(c, http.StatusOK, nil)
}

func (h *CatalogHandler) GetCompany(c *gin.Context) {
	info, err := h.svc.Company(c.Request.Context())
	if err != nil {
		fail(c, h.log, err, "Failed to load company info.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": info})
}

func (h *CatalogHandler) UpdateCompany(c *gin.Context) {
	var in validation.CompanyInfoInput
	if !bind(c, &in) {
		return
	}
	info, err := h.svc.UpdateCompany(c.Request.Context(), in)
	if err != nil {
		fail(c, h.log, err, "Failed to update company info. Please try again.")
		return
	}
	success(c, http.StatusOK, info)
}

func (h *CatalogHandler) ListContacts(c *gin.Context) {
	list, err := h.svc.ListContacts(c.Request.Context())
	if err != nil {
		fail(c, h.log, err, "Failed to load contacts.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *CatalogHandler) AdminListContacts(c *gin.Context) {
	list, err := h.svc.AllContacts(c.Request.Context())
	if err != nil {
		fail(c, h.log, err, "Failed to load contacts.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *CatalogHandler) CreateContact(c *gin.Context) {
	var in validation.ContactInput
	if !bind(c, &in) {
		return
	}
	ci, err := h.svc.CreateContact(c.Request.Context(), in)
	if err != nil {
		fail(c, h.log, err, "Failed to create contact. Please try again.")
		return
	}
	success(c, http.StatusCreated, ci)
}

func (h *CatalogHandler) UpdateContact(c *gin.Context) {
	var in validation.ContactPatch
	if !bind(c, &in) {
		return
	}
	ci, err := h.svc.UpdateContact(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, h.log, err, "Failed to update contact. Please try again.")
		return
	}
	success(c, http.StatusOK, ci)
}

func (h *CatalogHandler) DeleteContact(c *gin.Context) {
	if err := h.svc.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.log, err, "Failed to delete contact. Please try again.")
		return
	}
	success(c, http.StatusOK, nil)
}

// bind decodes a JSON or form body. Field rules are checked by the service.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body."})
		return false
	}
	return true
}
