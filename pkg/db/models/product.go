package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/gtlearning/storefront-backend/pkg/enums"
)

// Product represents a purchasable catalog record. The catalog owns
// these rows; order and quote line items only ever hold snapshots.
type Product struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name          string                `gorm:"column:name;not null"`
	Description   string                `gorm:"column:description;not null;default:''"`
	Price         decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	OriginalPrice *decimal.Decimal      `gorm:"column:original_price;type:numeric(12,2)"`
	Category      enums.ProductCategory `gorm:"column:category;not null"`
	ImageURL      string                `gorm:"column:image_url;not null;default:''"`
	Grade         string                `gorm:"column:grade;not null;default:''"`
	Subject       string                `gorm:"column:subject;not null;default:''"`
	InStock       bool                  `gorm:"column:in_stock;not null;default:true"`
	Featured      bool                  `gorm:"column:featured;not null;default:false"`
	Tags          pq.StringArray        `gorm:"column:tags;type:text[]"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
