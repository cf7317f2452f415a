package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a digital asset listed in the store. Checkout happens on PurchaseLink.
type Product struct {
	ID           string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	Title        string          `json:"title" gorm:"size:255;not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	ImageURL     string          `json:"image_url" gorm:"size:1024;not null"`
	PurchaseLink string          `json:"purchase_link" gorm:"size:1024;not null"`
	CreatedAt    time.Time       `json:"created_at" gorm:"index"`
}

// ProductInput holds the caller-supplied fields of a new product.
type ProductInput struct {
	Title        string          `json:"title" validate:"required"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url" validate:"required"`
	PurchaseLink string          `json:"purchase_link" validate:"required"`
}

// NewProduct builds an unsaved Product from input.
func NewProduct(in ProductInput) *Product {
	return &Product{
		Title:        in.Title,
		Price:        in.Price,
		ImageURL:     in.ImageURL,
		PurchaseLink: in.PurchaseLink,
	}
}

// BeforeCreate sets the ID before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
