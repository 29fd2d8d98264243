package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estate/internal/model"
	"estate/internal/service"
)

// InquiryHandler handles the contact form and the admin inbox
type InquiryHandler struct {
	inquiryService *service.InquiryService
}

func NewInquiryHandler(inquiryService *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// Submit handles POST /api/inquiries
func (h *InquiryHandler) Submit(c *gin.Context) {
	var req model.InquiryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	inquiry, err := h.inquiryService.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}

// List handles GET /api/admin/inquiries
func (h *InquiryHandler) List(c *gin.Context) {
	inquiries, err := h.inquiryService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

// UpdateStatus handles PUT /api/admin/inquiries/:id/status
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	var req model.InquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	inquiry, err := h.inquiryService.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiry)
}
