package quotes

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

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

// ProductLoader is the catalog surface quote submission depends on.
type ProductLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Config carries the quote lifecycle tunables.
type Config struct {
	ReferencePrefix string
	Validity        time.Duration
	DefaultCurrency enums.Currency
}

type service struct {
	repo     Repository
	tx       txRunner
	products ProductLoader
	log      *logger.Logger
	cfg      Config
	now      func() time.Time
}

// NewService builds the quote lifecycle service.
func NewService(repo Repository, tx txRunner, products ProductLoader, log *logger.Logger, cfg Config) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "quotes: repository is required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "quotes: tx runner is required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "quotes: product loader is required")
	}
	if cfg.ReferencePrefix == "" {
		cfg.ReferencePrefix = "GT"
	}
	if cfg.Validity <= 0 {
		cfg.Validity = 30 * 24 * time.Hour
	}
	if !cfg.DefaultCurrency.IsValid() {
		cfg.DefaultCurrency = enums.CurrencyZAR
	}
	return &service{
		repo:     repo,
		tx:       tx,
		products: products,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}, nil
}

func (s *service) CreateQuote(ctx context.Context, input CreateQuoteInput) (*QuoteView, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote must contain at least one item")
	}
	if missing := input.Customer.MissingFields(); len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer details are incomplete").
			WithDetails(map[string]any{"missing_fields": missing})
	}
	currency, err := s.resolveCurrency(input.Currency)
	if err != nil {
		return nil, err
	}

	items, subtotal, err := s.priceLineItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	quote := &models.Quote{
		Customer:  input.Customer,
		Comments:  trimComments(input.Comments),
		Subtotal:  subtotal,
		Total:     subtotal,
		Currency:  currency,
		Status:    enums.QuoteStatusPending,
		Items:     items,
		ExpiresAt: now.Add(s.cfg.Validity),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		seq, err := repo.NextSequence(ctx, now.Year())
		if err != nil {
			return err
		}
		quote.ReferenceNumber = fmt.Sprintf("%s-%d-%04d", s.cfg.ReferencePrefix, now.Year(), seq)
		_, err = repo.Create(ctx, quote)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create quote")
	}

	if s.log != nil {
		s.log.Info(s.log.WithQuoteRef(ctx, quote.ReferenceNumber), "quote created")
	}
	view := toQuoteView(quote)
	return &view, nil
}

func (s *service) GetQuote(ctx context.Context, id uuid.UUID) (*QuoteView, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	quote, err = s.expireIfDue(ctx, quote)
	if err != nil {
		return nil, err
	}
	view := toQuoteView(quote)
	return &view, nil
}

func (s *service) GetQuoteByReference(ctx context.Context, reference string) (*QuoteView, error) {
	quote, err := s.repo.FindByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		return nil, mapLookupError(err)
	}
	quote, err = s.expireIfDue(ctx, quote)
	if err != nil {
		return nil, err
	}
	view := toQuoteView(quote)
	return &view, nil
}

func (s *service) ListQuotes(ctx context.Context, params pagination.Params) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := s.repo.List(ctx, pagination.LimitWithBuffer(params.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list quotes")
	}

	result := &ListResult{Quotes: make([]QuoteView, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	now := s.now().UTC()
	for i := range rows {
		// Listing reports overdue pending quotes as expired without
		// writing; the write happens on the next direct read or update.
		if rows[i].Status == enums.QuoteStatusPending && now.After(rows[i].ExpiresAt) {
			rows[i].Status = enums.QuoteStatusExpired
		}
		result.Quotes = append(result.Quotes, toQuoteView(&rows[i]))
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

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*QuoteView, error) {
	next, err := enums.ParseQuoteStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	quote, err = s.expireIfDue(ctx, quote)
	if err != nil {
		return nil, err
	}

	if next == enums.QuoteStatusExpired && quote.Status == enums.QuoteStatusPending && !s.now().UTC().After(quote.ExpiresAt) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "quote has not reached its expiry date").
			WithDetails(map[string]any{"expires_at": quote.ExpiresAt})
	}
	// An explicit expire request on an overdue quote succeeds even when
	// the lazy flip above (or a concurrent writer) already recorded it.
	if next == enums.QuoteStatusExpired && quote.Status == enums.QuoteStatusExpired {
		view := toQuoteView(quote)
		return &view, nil
	}
	if !quote.Status.CanTransitionTo(next) {
		return nil, transitionError(quote.Status, next)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, quote.Status, next)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update quote status")
	}
	if !updated {
		current, reloadErr := s.repo.FindByID(ctx, id)
		if reloadErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, reloadErr, "failed to reload quote")
		}
		return nil, transitionError(current.Status, next)
	}

	quote.Status = next
	if s.log != nil {
		s.log.Info(s.log.WithQuoteRef(ctx, quote.ReferenceNumber), "quote status updated")
	}
	view := toQuoteView(quote)
	return &view, nil
}

// expireIfDue flips an overdue pending quote to expired before any
// caller acts on it. Losing the guarded update means another writer
// got there first, so the row is reloaded either way.
func (s *service) expireIfDue(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if quote.Status != enums.QuoteStatusPending || !s.now().UTC().After(quote.ExpiresAt) {
		return quote, nil
	}

	updated, err := s.repo.UpdateStatus(ctx, quote.ID, enums.QuoteStatusPending, enums.QuoteStatusExpired)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to expire quote")
	}
	if updated {
		quote.Status = enums.QuoteStatusExpired
		return quote, nil
	}
	current, err := s.repo.FindByID(ctx, quote.ID)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return current, nil
}

func (s *service) priceLineItems(ctx context.Context, inputs []LineItemInput) ([]models.QuoteLineItem, decimal.Decimal, error) {
	items := make([]models.QuoteLineItem, 0, len(inputs))
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
		items = append(items, models.QuoteLineItem{
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
		return s.cfg.DefaultCurrency, nil
	}
	currency, err := enums.ParseCurrency(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	return currency, nil
}

func trimComments(comments *string) *string {
	if comments == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comments)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapLookupError(err error) error {
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load quote")
}

func transitionError(from, to enums.QuoteStatus) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "quote status transition disallowed").
		WithDetails(map[string]any{"from": from, "to": to})
}

func toQuoteView(quote *models.Quote) QuoteView {
	items := make([]LineItemView, 0, len(quote.Items))
	for _, item := range quote.Items {
		items = append(items, LineItemView{
			ProductID: item.ProductID,
			Name:      item.Name,
			Category:  item.Category,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}
	return QuoteView{
		ID:              quote.ID,
		ReferenceNumber: quote.ReferenceNumber,
		Customer:        quote.Customer,
		Items:           items,
		Comments:        quote.Comments,
		Subtotal:        quote.Subtotal,
		Total:           quote.Total,
		Currency:        quote.Currency,
		Status:          quote.Status,
		ExpiresAt:       quote.ExpiresAt,
		CreatedAt:       quote.CreatedAt,
		UpdatedAt:       quote.UpdatedAt,
	}
}
