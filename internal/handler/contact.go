package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estate/internal/model"
	"estate/internal/service"
)

// ContactHandler serves the company contact details
type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Get handles GET /api/contact-settings. Before anything is saved the body is {}.
func (h *ContactHandler) Get(c *gin.Context) {
	settings, err := h.contactService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if settings == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Update handles PUT /api/admin/contact-settings
func (h *ContactHandler) Update(c *gin.Context) {
	var req model.ContactSettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	settings, err := h.contactService.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
