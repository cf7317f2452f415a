package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultServiceType is preselected on the contact form.
const DefaultServiceType = "General"

// Inquiry is a message a visitor sent through the contact form.
type Inquiry struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ClientName  string    `json:"client_name" gorm:"size:255;not null"`
	Email       string    `json:"email" gorm:"size:255;not null;index"`
	Message     string    `json:"message" gorm:"type:text;not null"`
	ServiceType string    `json:"service_type" gorm:"size:120;not null"`
	Read        bool      `json:"read" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// TableName keeps the collection name used by the hosted schema.
func (Inquiry) TableName() string {
	return "services_inquiries"
}

// InquiryInput holds the fields a visitor submits.
type InquiryInput struct {
	ClientName  string `json:"client_name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Message     string `json:"message" validate:"required"`
	ServiceType string `json:"service_type" validate:"required"`
}

// NewInquiry builds an unsaved, unread Inquiry from input.
func NewInquiry(in InquiryInput) *Inquiry {
	return &Inquiry{
		ClientName:  in.ClientName,
		Email:       in.Email,
		Message:     in.Message,
		ServiceType: in.ServiceType,
	}
}

// BeforeCreate sets the ID before creating the record.
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
