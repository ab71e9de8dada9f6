package orders

import (
	"context"
	goerrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gtlearning/storefront-backend/internal/payments"
	"github.com/gtlearning/storefront-backend/internal/pricing"
	"github.com/gtlearning/storefront-backend/pkg/db/models"
	"github.com/gtlearning/storefront-backend/pkg/enums"
	pkgerrors "github.com/gtlearning/storefront-backend/pkg/errors"
	"github.com/gtlearning/storefront-backend/pkg/logger"
	"github.com/gtlearning/storefront-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ProductLoader is the catalog surface order placement depends on.
type ProductLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo            Repository
	tx              txRunner
	products        ProductLoader
	log             *logger.Logger
	defaultCurrency enums.Currency
}

// NewService builds the order lifecycle service.
func NewService(repo Repository, tx txRunner, products ProductLoader, log *logger.Logger, defaultCurrency enums.Currency) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders: repository is required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders: tx runner is required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders: product loader is required")
	}
	if !defaultCurrency.IsValid() {
		defaultCurrency = enums.CurrencyZAR
	}
	return &service{
		repo:            repo,
		tx:              tx,
		products:        products,
		log:             log,
		defaultCurrency: defaultCurrency,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderView, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if missing := input.Customer.MissingFields(); len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer details are incomplete").
			WithDetails(map[string]any{"missing_fields": missing})
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}

	currency, err := s.resolveCurrency(input.Currency)
	if err != nil {
		return nil, err
	}
	shipping, err := parseShipping(input.Shipping)
	if err != nil {
		return nil, err
	}

	items, subtotal, err := s.priceLineItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	total, err := pricing.OrderTotal(subtotal, shipping)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Customer:      input.Customer,
		PaymentMethod: strings.TrimSpace(input.PaymentMethod),
		Subtotal:      subtotal,
		Shipping:      shipping,
		Total:         total,
		Currency:      currency,
		Status:        enums.OrderStatusPending,
		Items:         items,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create order")
	}

	if s.log != nil {
		s.log.Info(s.log.WithOrderID(ctx, order.ID.String()), "order created")
	}
	view := toOrderView(order)
	view.Message = "Order received. Continue to the payment URL to complete checkout."
	return &view, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load order")
	}
	view := toOrderView(order)
	return &view, nil
}

func (s *service) ListOrders(ctx context.Context, params pagination.Params) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := s.repo.List(ctx, pagination.LimitWithBuffer(params.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list orders")
	}

	result := &ListResult{Orders: make([]OrderView, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		result.Orders = append(result.Orders, toOrderView(&rows[i]))
	}
	if hasMore {
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*OrderView, error) {
	next, err := enums.ParseOrderStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load order")
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, transitionError(order.Status, next)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, order.Status, next)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update order status")
	}
	if !updated {
		// A concurrent writer moved the order first. Reload to report
		// the transition that actually failed.
		current, reloadErr := s.repo.FindByID(ctx, id)
		if reloadErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, reloadErr, "failed to reload order")
		}
		return nil, transitionError(current.Status, next)
	}

	order.Status = next
	if s.log != nil {
		s.log.Info(s.log.WithOrderID(ctx, order.ID.String()), "order status updated")
	}
	view := toOrderView(order)
	return &view, nil
}

func (s *service) priceLineItems(ctx context.Context, inputs []LineItemInput) ([]models.OrderLineItem, decimal.Decimal, error) {
	items := make([]models.OrderLineItem, 0, len(inputs))
	subtotal := decimal.Zero

	for _, line := range inputs {
		if line.Quantity <= 0 {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidQuantity, "item quantity must be a positive integer")
		}
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if goerrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
					WithDetails(map[string]any{"product_id": line.ProductID})
			}
			return nil, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		lineTotal, err := pricing.LineTotal(product.Price, line.Quantity)
		if err != nil {
			return nil, decimal.Zero, err
		}
		items = append(items, models.OrderLineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Category:  product.Category.String(),
			UnitPrice: product.Price.Round(2),
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}
	return items, subtotal.Round(2), nil
}

func (s *service) resolveCurrency(raw string) (enums.Currency, error) {
	if strings.TrimSpace(raw) == "" {
		return s.defaultCurrency, nil
	}
	currency, err := enums.ParseCurrency(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	return currency, nil
}

func parseShipping(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	shipping, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeInvalidAmount, "shipping must be a decimal number")
	}
	if shipping.IsNegative() {
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeInvalidAmount, "shipping must not be negative")
	}
	return shipping.Round(2), nil
}

func transitionError(from, to enums.OrderStatus) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "order status transition disallowed").
		WithDetails(map[string]any{"from": from, "to": to})
}

func toOrderView(order *models.Order) OrderView {
	items := make([]LineItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, LineItemView{
			ProductID: item.ProductID,
			Name:      item.Name,
			Category:  item.Category,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}
	return OrderView{
		ID:            order.ID,
		Customer:      order.Customer,
		Items:         items,
		PaymentMethod: order.PaymentMethod,
		PaymentURL:    payments.Resolve(order.PaymentMethod, order.ID),
		Subtotal:      order.Subtotal,
		Shipping:      order.Shipping,
		Total:         order.Total,
		Currency:      order.Currency,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
