package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gtlearning/storefront-backend/pkg/db/models"
	"github.com/gtlearning/storefront-backend/pkg/enums"
	"github.com/gtlearning/storefront-backend/pkg/pagination"
)

// Repository is the persistence surface for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Order, error)
	// UpdateStatus flips the status only when the row still holds
	// expected. It reports whether a row was updated.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next enums.OrderStatus) (bool, error)
}

// Service exposes order placement and lifecycle management.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderView, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListOrders(ctx context.Context, params pagination.Params) (*ListResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*OrderView, error)
}
