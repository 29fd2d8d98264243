package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estate/internal/model"
	"estate/internal/search"
	"estate/internal/service"
)

// PropertyHandler serves the public property pages
type PropertyHandler struct {
	searchService *service.SearchService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(searchService *service.SearchService) *PropertyHandler {
	return &PropertyHandler{searchService: searchService}
}

// Search handles GET /api/properties
func (h *PropertyHandler) Search(c *gin.Context) {
	var raw search.RawFilter
	if err := c.ShouldBindQuery(&raw); err != nil {
		badRequest(c, err)
		return
	}

	response, err := h.searchService.Search(c.Request.Context(), raw.Normalize())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Featured handles GET /api/properties/featured
func (h *PropertyHandler) Featured(c *gin.Context) {
	properties, err := h.searchService.Featured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.PropertyListResponse{Results: properties, Total: len(properties)})
}

// Get handles GET /api/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	property, err := h.searchService.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if property == nil {
		notFound(c, "Property")
		return
	}

	c.JSON(http.StatusOK, property)
}

// Related handles GET /api/properties/:id/related
func (h *PropertyHandler) Related(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	property, err := h.searchService.GetProperty(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if property == nil {
		notFound(c, "Property")
		return
	}

	related, err := h.searchService.Related(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, related)
}
