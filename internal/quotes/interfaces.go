package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gtlearning/storefront-backend/pkg/db/models"
	"github.com/gtlearning/storefront-backend/pkg/enums"
	"github.com/gtlearning/storefront-backend/pkg/pagination"
)

// Repository is the persistence surface for quotes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// NextSequence bumps and returns this year's reference counter.
	// Callers must run it inside the quote creation transaction.
	NextSequence(ctx context.Context, year int) (int64, error)
	Create(ctx context.Context, quote *models.Quote) (*models.Quote, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	FindByReference(ctx context.Context, reference string) (*models.Quote, error)
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Quote, error)
	// UpdateStatus flips the status only when the row still holds
	// expected. It reports whether a row was updated.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next enums.QuoteStatus) (bool, error)
}

// Service exposes quote submission and lifecycle management.
type Service interface {
	CreateQuote(ctx context.Context, input CreateQuoteInput) (*QuoteView, error)
	GetQuote(ctx context.Context, id uuid.UUID) (*QuoteView, error)
	GetQuoteByReference(ctx context.Context, reference string) (*QuoteView, error)
	ListQuotes(ctx context.Context, params pagination.Params) (*ListResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*QuoteView, error)
}
