package model

import "time"

// Location is an area offered in the search form
type Location struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	City        string    `json:"city" db:"city"`
	Governorate string    `json:"governorate" db:"governorate"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// LocationInput is the payload for creating a location
type LocationInput struct {
	Name        string  `json:"name" yaml:"name" binding:"required"`
	City        string  `json:"city" yaml:"city" binding:"required"`
	Governorate string  `json:"governorate" yaml:"governorate" binding:"required"`
	ImageURL    *string `json:"image_url" yaml:"image_url"`
	IsActive    *bool   `json:"is_active" yaml:"is_active"`
}

// ToLocation applies defaults (active unless stated otherwise)
func (in LocationInput) ToLocation() Location {
	loc := Location{
		Name:        in.Name,
		City:        in.City,
		Governorate: in.Governorate,
		ImageURL:    in.ImageURL,
		IsActive:    true,
	}
	if in.IsActive != nil {
		loc.IsActive = *in.IsActive
	}
	return loc
}

// LocationPatch is a partial location update
type LocationPatch struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	City        *string `json:"city" binding:"omitempty,min=1"`
	Governorate *string `json:"governorate" binding:"omitempty,min=1"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

// Apply copies every set field of the patch onto loc
func (lp LocationPatch) Apply(loc *Location) {
	if lp.Name != nil {
		loc.Name = *lp.Name
	}
	if lp.City != nil {
		loc.City = *lp.City
	}
	if lp.Governorate != nil {
		loc.Governorate = *lp.Governorate
	}
	if lp.ImageURL != nil {
		loc.ImageURL = lp.ImageURL
	}
	if lp.IsActive != nil {
		loc.IsActive = *lp.IsActive
	}
}
