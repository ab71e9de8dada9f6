package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gtlearning/storefront-backend/pkg/enums"
	"github.com/gtlearning/storefront-backend/pkg/types"
)

// Order is a placed, priced transaction record. Rows are immutable
// after creation except for status and updated_at.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Customer      types.Customer    `gorm:"column:customer;type:jsonb;serializer:json;not null"`
	PaymentMethod string            `gorm:"column:payment_method;not null"`
	Subtotal      decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Shipping      decimal.Decimal   `gorm:"column:shipping;type:numeric(12,2);not null;default:0"`
	Total         decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Currency      enums.Currency    `gorm:"column:currency;not null;default:'ZAR'"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Items         []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
