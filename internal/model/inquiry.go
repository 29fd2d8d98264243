package model

import "time"

// InquiryStatusNew is the status of an inquiry nobody has handled yet
const InquiryStatusNew = "new"

// Inquiry is a contact request left by a visitor
type Inquiry struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       *string   `json:"email,omitempty" db:"email"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	Message     string    `json:"message" db:"message"`
	PropertyID  *string   `json:"property_id,omitempty" db:"property_id"`
	InquiryType *string   `json:"inquiry_type,omitempty" db:"inquiry_type"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// InquiryInput is the public contact form payload
type InquiryInput struct {
	Name        string  `json:"name" binding:"required"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Message     string  `json:"message" binding:"required"`
	PropertyID  *string `json:"property_id" binding:"omitempty,uuid"`
	InquiryType *string `json:"inquiry_type"`
}

// ToInquiry builds a new inquiry in the "new" status
func (in InquiryInput) ToInquiry() Inquiry {
	return Inquiry{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Message:     in.Message,
		PropertyID:  in.PropertyID,
		InquiryType: in.InquiryType,
		Status:      InquiryStatusNew,
	}
}

// InquiryStatusRequest represents PUT /api/admin/inquiries/:id/status
type InquiryStatusRequest struct {
	Status string `json:"status" binding:"required,max=64"`
}
