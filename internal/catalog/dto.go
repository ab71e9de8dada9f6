package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gtlearning/storefront-backend/internal/pricing"
	"github.com/gtlearning/storefront-backend/pkg/db/models"
	"github.com/gtlearning/storefront-backend/pkg/enums"
)

// CreateProductInput is the payload for registering a new product.
type CreateProductInput struct {
	Name          string   `json:"name" validate:"required,min=1,max=255"`
	Description   string   `json:"description" validate:"max=4000"`
	Category      string   `json:"category" validate:"required"`
	Price         string   `json:"price" validate:"required"`
	OriginalPrice *string  `json:"original_price,omitempty"`
	ImageURL      string   `json:"image_url" validate:"omitempty,url"`
	Grade         string   `json:"grade" validate:"max=64"`
	Subject       string   `json:"subject" validate:"max=128"`
	Tags          []string `json:"tags" validate:"max=20,dive,min=1,max=64"`
	InStock       *bool    `json:"in_stock,omitempty"`
	Featured      bool     `json:"featured"`
}

// UpdateProductInput carries the mutable fields. Pointers distinguish
// omitted fields from zero values.
type UpdateProductInput struct {
	Name          *string   `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description   *string   `json:"description,omitempty" validate:"omitempty,max=4000"`
	Category      *string   `json:"category,omitempty"`
	Price         *string   `json:"price,omitempty"`
	OriginalPrice *string   `json:"original_price,omitempty"`
	ImageURL      *string   `json:"image_url,omitempty" validate:"omitempty,url"`
	Grade         *string   `json:"grade,omitempty" validate:"omitempty,max=64"`
	Subject       *string   `json:"subject,omitempty" validate:"omitempty,max=128"`
	Tags          *[]string `json:"tags,omitempty"`
	InStock       *bool     `json:"in_stock,omitempty"`
	Featured      *bool     `json:"featured,omitempty"`
}

// ProductView is the API projection of a product, including the
// derived discount percentage.
type ProductView struct {
	ID              uuid.UUID             `json:"id"`
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	Category        enums.ProductCategory `json:"category"`
	Price           decimal.Decimal       `json:"price"`
	OriginalPrice   *decimal.Decimal      `json:"original_price,omitempty"`
	DiscountPercent int                   `json:"discount_percent"`
	ImageURL        string                `json:"image_url,omitempty"`
	Grade           string                `json:"grade,omitempty"`
	Subject         string                `json:"subject,omitempty"`
	Tags            []string              `json:"tags"`
	InStock         bool                  `json:"in_stock"`
	Featured        bool                  `json:"featured"`
}

func toProductView(product *models.Product) ProductView {
	view := ProductView{
		ID:              product.ID,
		Name:            product.Name,
		Description:     product.Description,
		Category:        product.Category,
		Price:           product.Price,
		OriginalPrice:   product.OriginalPrice,
		DiscountPercent: pricing.DiscountPercent(product),
		ImageURL:        product.ImageURL,
		Grade:           product.Grade,
		Subject:         product.Subject,
		Tags:            product.Tags,
		InStock:         product.InStock,
		Featured:        product.Featured,
	}
	if view.Tags == nil {
		view.Tags = []string{}
	}
	return view
}
