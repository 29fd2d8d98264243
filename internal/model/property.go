package model

import (
	"time"

	"github.com/lib/pq"
)

// Price types offered on the site
const (
	PriceTypeSale = "for sale"
	PriceTypeRent = "for rent"
)

// Property represents a listing shown on the public site
type Property struct {
	ID           string         `json:"id" db:"id"`
	Title        string         `json:"title" db:"title"`
	Description  *string        `json:"description,omitempty" db:"description"`
	Location     string         `json:"location" db:"location"`
	Governorate  *string        `json:"governorate,omitempty" db:"governorate"`
	City         *string        `json:"city,omitempty" db:"city"`
	Price        float64        `json:"price" db:"price"`
	PriceType    string         `json:"price_type" db:"price_type"`
	PropertyType string         `json:"property_type" db:"property_type"`
	Bedrooms     *int           `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms    *int           `json:"bathrooms,omitempty" db:"bathrooms"`
	Area         *float64       `json:"area,omitempty" db:"area"`
	Parking      *int           `json:"parking,omitempty" db:"parking"`
	Images       pq.StringArray `json:"images" db:"images"`
	Features     pq.StringArray `json:"features" db:"features"`
	Amenities    pq.StringArray `json:"amenities" db:"amenities"`
	AgentName    *string        `json:"agent_name,omitempty" db:"agent_name"`
	AgentPhone   *string        `json:"agent_phone,omitempty" db:"agent_phone"`
	AgentEmail   *string        `json:"agent_email,omitempty" db:"agent_email"`
	AgentImage   *string        `json:"agent_image,omitempty" db:"agent_image"`
	IsFeatured   bool           `json:"is_featured" db:"is_featured"`
	IsActive     bool           `json:"is_active" db:"is_active"`
	SpecialType  *string        `json:"special_type,omitempty" db:"special_type"`
	FloorNumber  *string        `json:"floor_number,omitempty" db:"floor_number"`
	BuildYear    *int           `json:"build_year,omitempty" db:"build_year"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// PropertyInput is the payload for creating a property.
// Title, location, price, property type and at least one image are mandatory.
type PropertyInput struct {
	Title        string   `json:"title" yaml:"title" binding:"required"`
	Description  *string  `json:"description" yaml:"description"`
	Location     string   `json:"location" yaml:"location" binding:"required"`
	Governorate  *string  `json:"governorate" yaml:"governorate"`
	City         *string  `json:"city" yaml:"city"`
	Price        *float64 `json:"price" yaml:"price" binding:"required,gte=0"`
	PriceType    string   `json:"price_type" yaml:"price_type" binding:"omitempty,oneof='for sale' 'for rent'"`
	PropertyType string   `json:"property_type" yaml:"property_type" binding:"required"`
	Bedrooms     *int     `json:"bedrooms" yaml:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms    *int     `json:"bathrooms" yaml:"bathrooms" binding:"omitempty,gte=0"`
	Area         *float64 `json:"area" yaml:"area" binding:"omitempty,gt=0"`
	Parking      *int     `json:"parking" yaml:"parking" binding:"omitempty,gte=0"`
	Images       []string `json:"images" yaml:"images" binding:"required,min=1,dive,required"`
	Features     []string `json:"features" yaml:"features"`
	Amenities    []string `json:"amenities" yaml:"amenities"`
	AgentName    *string  `json:"agent_name" yaml:"agent_name"`
	AgentPhone   *string  `json:"agent_phone" yaml:"agent_phone"`
	AgentEmail   *string  `json:"agent_email" yaml:"agent_email" binding:"omitempty,email"`
	AgentImage   *string  `json:"agent_image" yaml:"agent_image"`
	IsFeatured   *bool    `json:"is_featured" yaml:"is_featured"`
	IsActive     *bool    `json:"is_active" yaml:"is_active"`
	SpecialType  *string  `json:"special_type" yaml:"special_type"`
	FloorNumber  *string  `json:"floor_number" yaml:"floor_number"`
	BuildYear    *int     `json:"build_year" yaml:"build_year" binding:"omitempty,gte=1800"`
}

// ToProperty builds a Property with defaults applied. ID and timestamps are
// left for the repository to fill in.
func (in PropertyInput) ToProperty() Property {
	p := Property{
		Title:        in.Title,
		Description:  in.Description,
		Location:     in.Location,
		Governorate:  in.Governorate,
		City:         in.City,
		PriceType:    in.PriceType,
		PropertyType: in.PropertyType,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		Area:         in.Area,
		Parking:      in.Parking,
		Images:       pq.StringArray(in.Images),
		Features:     pq.StringArray(in.Features),
		Amenities:    pq.StringArray(in.Amenities),
		AgentName:    in.AgentName,
		AgentPhone:   in.AgentPhone,
		AgentEmail:   in.AgentEmail,
		AgentImage:   in.AgentImage,
		IsActive:     true,
		SpecialType:  in.SpecialType,
		FloorNumber:  in.FloorNumber,
		BuildYear:    in.BuildYear,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if p.PriceType == "" {
		p.PriceType = PriceTypeSale
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if p.Features == nil {
		p.Features = pq.StringArray{}
	}
	if p.Amenities == nil {
		p.Amenities = pq.StringArray{}
	}
	return p
}

// PropertyPatch is a partial update. Nil fields are left unchanged.
type PropertyPatch struct {
	Title        *string   `json:"title" binding:"omitempty,min=1"`
	Description  *string   `json:"description"`
	Location     *string   `json:"location" binding:"omitempty,min=1"`
	Governorate  *string   `json:"governorate"`
	City         *string   `json:"city"`
	Price        *float64  `json:"price" binding:"omitempty,gte=0"`
	PriceType    *string   `json:"price_type" binding:"omitempty,oneof='for sale' 'for rent'"`
	PropertyType *string   `json:"property_type" binding:"omitempty,min=1"`
	Bedrooms     *int      `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms    *int      `json:"bathrooms" binding:"omitempty,gte=0"`
	Area         *float64  `json:"area" binding:"omitempty,gt=0"`
	Parking      *int      `json:"parking" binding:"omitempty,gte=0"`
	Images       *[]string `json:"images" binding:"omitempty,min=1"`
	Features     *[]string `json:"features"`
	Amenities    *[]string `json:"amenities"`
	AgentName    *string   `json:"agent_name"`
	AgentPhone   *string   `json:"agent_phone"`
	AgentEmail   *string   `json:"agent_email" binding:"omitempty,email"`
	AgentImage   *string   `json:"agent_image"`
	IsFeatured   *bool     `json:"is_featured"`
	IsActive     *bool     `json:"is_active"`
	SpecialType  *string   `json:"special_type"`
	FloorNumber  *string   `json:"floor_number"`
	BuildYear    *int      `json:"build_year" binding:"omitempty,gte=1800"`
}

// Apply copies every set field of the patch onto p
func (pp PropertyPatch) Apply(p *Property) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Description != nil {
		p.Description = pp.Description
	}
	if pp.Location != nil {
		p.Location = *pp.Location
	}
	if pp.Governorate != nil {
		p.Governorate = pp.Governorate
	}
	if pp.City != nil {
		p.City = pp.City
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.PriceType != nil {
		p.PriceType = *pp.PriceType
	}
	if pp.PropertyType != nil {
		p.PropertyType = *pp.PropertyType
	}
	if pp.Bedrooms != nil {
		p.Bedrooms = pp.Bedrooms
	}
	if pp.Bathrooms != nil {
		p.Bathrooms = pp.Bathrooms
	}
	if pp.Area != nil {
		p.Area = pp.Area
	}
	if pp.Parking != nil {
		p.Parking = pp.Parking
	}
	if pp.Images != nil {
		p.Images = pq.StringArray(*pp.Images)
	}
	if pp.Features != nil {
		p.Features = pq.StringArray(*pp.Features)
	}
	if pp.Amenities != nil {
		p.Amenities = pq.StringArray(*pp.Amenities)
	}
	if pp.AgentName != nil {
		p.AgentName = pp.AgentName
	}
	if pp.AgentPhone != nil {
		p.AgentPhone = pp.AgentPhone
	}
	if pp.AgentEmail != nil {
		p.AgentEmail = pp.AgentEmail
	}
	if pp.AgentImage != nil {
		p.AgentImage = pp.AgentImage
	}
	if pp.IsFeatured != nil {
		p.IsFeatured = *pp.IsFeatured
	}
	if pp.IsActive != nil {
		p.IsActive = *pp.IsActive
	}
	if pp.SpecialType != nil {
		p.SpecialType = pp.SpecialType
	}
	if pp.FloorNumber != nil {
		p.FloorNumber = pp.FloorNumber
	}
	if pp.BuildYear != nil {
		p.BuildYear = pp.BuildYear
	}
}

// RelatedListings holds the three independent "you may also like" sections
// of the property detail page. A property can appear in more than one bucket.
type RelatedListings struct {
	Nearby       []Property `json:"nearby_properties"`
	SimilarPrice []Property `json:"similar_price_properties"`
	SimilarArea  []Property `json:"similar_area_properties"`
}

// EmptyRelatedListings returns buckets that marshal as [] rather than null
func EmptyRelatedListings() *RelatedListings {
	return &RelatedListings{
		Nearby:       []Property{},
		SimilarPrice: []Property{},
		SimilarArea:  []Property{},
	}
}
