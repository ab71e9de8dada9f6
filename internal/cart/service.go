package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gtlearning/storefront-backend/internal/pricing"
	"github.com/gtlearning/storefront-backend/pkg/db/models"
	pkgerrors "github.com/gtlearning/storefront-backend/pkg/errors"
)

// ProductLoader is the catalog surface the cart service depends on.
type ProductLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// View is the API-facing projection of a cart.
type View struct {
	Token     string          `json:"token"`
	Lines     []LineView      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"item_count"`
}

// LineView is one aggregated line with its computed total.
type LineView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Service exposes cart mutation and retrieval keyed by cart token.
type Service interface {
	Fetch(ctx context.Context, token string) (*View, error)
	AddItem(ctx context.Context, token string, productID uuid.UUID, quantity int) (*View, error)
	SetQuantity(ctx context.Context, token string, productID uuid.UUID, quantity int) (*View, error)
	RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*View, error)
	Clear(ctx context.Context, token string) (*View, error)
}

type service struct {
	store    SnapshotStore
	products ProductLoader
	ttl      time.Duration
}

// NewService builds the cart service.
func NewService(store SnapshotStore, products ProductLoader, ttl time.Duration) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart snapshot store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &service{store: store, products: products, ttl: ttl}, nil
}

func (s *service) Fetch(ctx context.Context, token string) (*View, error) {
	c, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return newView(token, c), nil
}

func (s *service) AddItem(ctx context.Context, token string, productID uuid.UUID, quantity int) (*View, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	c, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := c.Add(product, quantity); err != nil {
		return nil, err
	}
	return s.persist(ctx, token, c)
}

func (s *service) SetQuantity(ctx context.Context, token string, productID uuid.UUID, quantity int) (*View, error) {
	c, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	c.SetQuantity(productID, quantity)
	return s.persist(ctx, token, c)
}

func (s *service) RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*View, error) {
	c, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)
	return s.persist(ctx, token, c)
}

func (s *service) Clear(ctx context.Context, token string) (*View, error) {
	if err := s.store.Delete(ctx, token); err != nil {
		return nil, err
	}
	return newView(token, New()), nil
}

func (s *service) load(ctx context.Context, token string) (*Cart, error) {
	lines, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	return Restore(lines), nil
}

func (s *service) persist(ctx context.Context, token string, c *Cart) (*View, error) {
	if err := s.store.Save(ctx, token, c.Lines(), s.ttl); err != nil {
		return nil, err
	}
	return newView(token, c), nil
}

func newView(token string, c *Cart) *View {
	lines := c.Lines()
	views := make([]LineView, 0, len(lines))
	for _, line := range lines {
		lineTotal, err := pricing.LineTotal(line.UnitPrice, line.Quantity)
		if err != nil {
			lineTotal = decimal.Zero
		}
		views = append(views, LineView{
			ProductID: line.ProductID,
			Name:      line.Name,
			Category:  line.Category,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
	}
	return &View{
		Token:     token,
		Lines:     views,
		Subtotal:  c.Subtotal(),
		ItemCount: c.ItemCount(),
	}
}
