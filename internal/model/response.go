package model

// PropertyListResponse represents a list of properties
type PropertyListResponse struct {
	Results []Property `json:"results"`
	Total   int        `json:"total"`
	Took    int64      `json:"took_ms"` // Response time in milliseconds
}

// DashboardStats represents GET /api/admin/stats
type DashboardStats struct {
	TotalProperties    int `json:"totalProperties"`
	FeaturedProperties int `json:"featuredProperties"`
	NewInquiries       int `json:"newInquiries"`
	TotalLocations     int `json:"totalLocations"`
}

// ErrorResponse is the body of every failed request. Retryable is set when
// the failure came from infrastructure rather than the request itself.
type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}
