package handler

import (
	"github.com/gin-gonic/gin"

	"estate/internal/service"
)

// Services groups everything the HTTP layer calls into
type Services struct {
	Search    *service.SearchService
	Admin     *service.AdminService
	Locations *service.LocationService
	Inquiries *service.InquiryService
	Contact   *service.ContactService
	Stats     *service.StatsService
}

// RegisterRoutes mounts the public and admin API under /api
func RegisterRoutes(router gin.IRouter, svc Services) {
	properties := NewPropertyHandler(svc.Search)
	adminProperties := NewAdminPropertyHandler(svc.Search)
	auth := NewAuthHandler(svc.Admin)
	locations := NewLocationHandler(svc.Locations)
	inquiries := NewInquiryHandler(svc.Inquiries)
	contact := NewContactHandler(svc.Contact)
	stats := NewStatsHandler(svc.Stats)

	api := router.Group("/api")
	{
		api.GET("/properties", properties.Search)
		api.GET("/properties/featured", properties.Featured)
		api.GET("/properties/:id", properties.Get)
		api.GET("/properties/:id/related", properties.Related)
		api.GET("/locations", locations.ListActive)
		api.POST("/inquiries", inquiries.Submit)
		api.GET("/contact-settings", contact.Get)

		api.POST("/admin/login", auth.Login)
		api.POST("/admin/logout", auth.Logout)
	}

	admin := api.Group("/admin", RequireAdmin(svc.Admin))
	{
		admin.GET("/me", auth.Me)

		admin.GET("/properties", adminProperties.List)
		admin.POST("/properties", adminProperties.Create)
		admin.PUT("/properties/:id", adminProperties.Update)
		admin.DELETE("/properties/:id", adminProperties.Delete)

		admin.GET("/locations", locations.ListAll)
		admin.POST("/locations", locations.Create)
		admin.PUT("/locations/:id", locations.Update)
		admin.DELETE("/locations/:id", locations.Delete)

		admin.GET("/inquiries", inquiries.List)
		admin.PUT("/inquiries/:id/status", inquiries.UpdateStatus)

		admin.PUT("/contact-settings", contact.Update)
		admin.GET("/stats", stats.Dashboard)
	}
}
