package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estate/internal/model"
	"estate/internal/service"
)

// LocationHandler serves the location list and its admin management
type LocationHandler struct {
	locationService *service.LocationService
}

func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// ListActive handles GET /api/locations
func (h *LocationHandler) ListActive(c *gin.Context) {
	locations, err := h.locationService.Active(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// ListAll handles GET /api/admin/locations
func (h *LocationHandler) ListAll(c *gin.Context) {
	locations, err := h.locationService.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// Create handles POST /api/admin/locations
func (h *LocationHandler) Create(c *gin.Context) {
	var req model.LocationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	location, err := h.locationService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, location)
}

// Update handles PUT /api/admin/locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	var req model.LocationPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	location, err := h.locationService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

// Delete handles DELETE /api/admin/locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	if err := h.locationService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
