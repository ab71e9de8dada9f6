package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gtlearning/storefront-backend/pkg/enums"
	"github.com/gtlearning/storefront-backend/pkg/types"
)

// LineItemInput is one requested order line before pricing.
type LineItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderInput is the payload for placing an order.
type CreateOrderInput struct {
	Customer      types.Customer  `json:"customer"`
	Items         []LineItemInput `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
	Shipping      string          `json:"shipping,omitempty"`
	Currency      string          `json:"currency,omitempty"`
}

// UpdateStatusInput carries a requested status change.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// LineItemView is the priced snapshot of one order line.
type LineItemView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderView is the API projection of an order. PaymentURL is derived
// at read time and never stored. Message is only set on placement
// confirmations.
type OrderView struct {
	ID            uuid.UUID         `json:"id"`
	Message       string            `json:"message,omitempty"`
	Customer      types.Customer    `json:"customer"`
	Items         []LineItemView    `json:"items"`
	PaymentMethod string            `json:"payment_method"`
	PaymentURL    string            `json:"payment_url"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	Shipping      decimal.Decimal   `json:"shipping"`
	Total         decimal.Decimal   `json:"total"`
	Currency      enums.Currency    `json:"currency"`
	Status        enums.OrderStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ListResult is one page of orders plus the cursor for the next page.
type ListResult struct {
	Orders     []OrderView `json:"orders"`
	NextCursor string      `json:"next_cursor,omitempty"`
}
