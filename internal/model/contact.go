package model

import "time"

// DefaultCompanyName is used until an admin sets one
const DefaultCompanyName = "Inspire Real Estate"

// ContactSettings is the single row of company contact details
type ContactSettings struct {
	ID             string    `json:"id" db:"id"`
	Phone          *string   `json:"phone,omitempty" db:"phone"`
	Email          *string   `json:"email,omitempty" db:"email"`
	FacebookURL    *string   `json:"facebook_url,omitempty" db:"facebook_url"`
	InstagramURL   *string   `json:"instagram_url,omitempty" db:"instagram_url"`
	TwitterURL     *string   `json:"twitter_url,omitempty" db:"twitter_url"`
	LinkedinURL    *string   `json:"linkedin_url,omitempty" db:"linkedin_url"`
	YoutubeURL     *string   `json:"youtube_url,omitempty" db:"youtube_url"`
	WhatsappNumber *string   `json:"whatsapp_number,omitempty" db:"whatsapp_number"`
	Address        *string   `json:"address,omitempty" db:"address"`
	CompanyName    string    `json:"company_name" db:"company_name"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// ContactSettingsInput is a partial update of the contact settings
type ContactSettingsInput struct {
	Phone          *string `json:"phone" yaml:"phone"`
	Email          *string `json:"email" yaml:"email" binding:"omitempty,email"`
	FacebookURL    *string `json:"facebook_url" yaml:"facebook_url" binding:"omitempty,url"`
	InstagramURL   *string `json:"instagram_url" yaml:"instagram_url" binding:"omitempty,url"`
	TwitterURL     *string `json:"twitter_url" yaml:"twitter_url" binding:"omitempty,url"`
	LinkedinURL    *string `json:"linkedin_url" yaml:"linkedin_url" binding:"omitempty,url"`
	YoutubeURL     *string `json:"youtube_url" yaml:"youtube_url" binding:"omitempty,url"`
	WhatsappNumber *string `json:"whatsapp_number" yaml:"whatsapp_number"`
	Address        *string `json:"address" yaml:"address"`
	CompanyName    *string `json:"company_name" yaml:"company_name" binding:"omitempty,min=1"`
}

// Apply copies every set field onto s
func (in ContactSettingsInput) Apply(s *ContactSettings) {
	if in.Phone != nil {
		s.Phone = in.Phone
	}
	if in.Email != nil {
		s.Email = in.Email
	}
	if in.FacebookURL != nil {
		s.FacebookURL = in.FacebookURL
	}
	if in.InstagramURL != nil {
		s.InstagramURL = in.InstagramURL
	}
	if in.TwitterURL != nil {
		s.TwitterURL = in.TwitterURL
	}
	if in.LinkedinURL != nil {
		s.LinkedinURL = in.LinkedinURL
	}
	if in.YoutubeURL != nil {
		s.YoutubeURL = in.YoutubeURL
	}
	if in.WhatsappNumber != nil {
		s.WhatsappNumber = in.WhatsappNumber
	}
	if in.Address != nil {
		s.Address = in.Address
	}
	if in.CompanyName != nil {
		s.CompanyName = *in.CompanyName
	}
	if s.CompanyName == "" {
		s.CompanyName = DefaultCompanyName
	}
}
