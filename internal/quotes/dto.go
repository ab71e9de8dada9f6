package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gtlearning/storefront-backend/pkg/enums"
	"github.com/gtlearning/storefront-backend/pkg/types"
)

// LineItemInput is one requested quote line before pricing.
type LineItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// CreateQuoteInput is the payload for submitting a quote request.
type CreateQuoteInput struct {
	Customer types.Customer  `json:"customer"`
	Items    []LineItemInput `json:"items" validate:"required,min=1,dive"`
	Comments *string         `json:"comments,omitempty"`
	Currency string          `json:"currency,omitempty"`
}

// UpdateStatusInput carries a requested status change.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// LineItemView is the priced snapshot of one quote line.
type LineItemView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// QuoteView is the API projection of a quote.
type QuoteView struct {
	ID              uuid.UUID         `json:"id"`
	ReferenceNumber string            `json:"reference_number"`
	Customer        types.Customer    `json:"customer"`
	Items           []LineItemView    `json:"items"`
	Comments        *string           `json:"comments,omitempty"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	Total           decimal.Decimal   `json:"total"`
	Currency        enums.Currency    `json:"currency"`
	Status          enums.QuoteStatus `json:"status"`
	ExpiresAt       time.Time         `json:"expires_at"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ListResult is one page of quotes plus the cursor for the next page.
type ListResult struct {
	Quotes     []QuoteView `json:"quotes"`
	NextCursor string      `json:"next_cursor,omitempty"`
}
