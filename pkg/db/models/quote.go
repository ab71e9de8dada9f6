package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gtlearning/storefront-backend/pkg/enums"
	"github.com/gtlearning/storefront-backend/pkg/types"
)

// Quote is a non-binding price estimate with a human-facing reference
// number and a fixed validity window.
type Quote struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	ReferenceNumber string            `gorm:"column:reference_number;not null;uniqueIndex"`
	Customer        types.Customer    `gorm:"column:customer;type:jsonb;serializer:json;not null"`
	Comments        *string           `gorm:"column:comments"`
	Subtotal        decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Total           decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Currency        enums.Currency    `gorm:"column:currency;not null;default:'ZAR'"`
	Status          enums.QuoteStatus `gorm:"column:status;not null;default:'pending'"`
	Items           []QuoteLineItem   `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	ExpiresAt       time.Time         `gorm:"column:expires_at;not null"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// QuoteLineItem mirrors OrderLineItem for quotes: a snapshot of the
// catalog fields at submission time.
type QuoteLineItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	QuoteID   uuid.UUID       `gorm:"column:quote_id;type:uuid;not null"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Name      string          `gorm:"column:name;not null"`
	Category  string          `gorm:"column:category;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	LineTotal decimal.Decimal `gorm:"column:line_total;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// QuoteCounter backs the per-year reference number sequence. One row
// per year, bumped inside the quote creation transaction.
type QuoteCounter struct {
	Year    int   `gorm:"column:year;primaryKey"`
	LastSeq int64 `gorm:"column:last_seq;not null;default:0"`
}
