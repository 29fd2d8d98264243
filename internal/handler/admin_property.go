package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estate/internal/model"
	"estate/internal/search"
	"estate/internal/service"
)

// AdminPropertyHandler manages listings from the admin panel
type AdminPropertyHandler struct {
	searchService *service.SearchService
}

func NewAdminPropertyHandler(searchService *service.SearchService) *AdminPropertyHandler {
	return &AdminPropertyHandler{searchService: searchService}
}

// List handles GET /api/admin/properties
func (h *AdminPropertyHandler) List(c *gin.Context) {
	var raw search.RawFilter
	if err := c.ShouldBindQuery(&raw); err != nil {
		badRequest(c, err)
		return
	}

	response, err := h.searchService.AdminSearch(c.Request.Context(), raw.Normalize())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/admin/properties
func (h *AdminPropertyHandler) Create(c *gin.Context) {
	var req model.PropertyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	property, err := h.searchService.CreateProperty(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, property)
}

// Update handles PUT /api/admin/properties/:id
func (h *AdminPropertyHandler) Update(c *gin.Context) {
	var req model.PropertyPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	property, err := h.searchService.UpdateProperty(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// Delete handles DELETE /api/admin/properties/:id
func (h *AdminPropertyHandler) Delete(c *gin.Context) {
	if err := h.searchService.DeleteProperty(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
