package catalog

import (
	"context"
	goerrors "errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gtlearning/storefront-backend/pkg/db/models"
	"github.com/gtlearning/storefront-backend/pkg/enums"
	"github.com/gtlearning/storefront-backend/pkg/errors"
)

// Service exposes catalog management and browsing.
type Service interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error)
	ListProducts(ctx context.Context, filters ListFilters) ([]ProductView, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductView, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductView, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService builds the catalog service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New(errors.CodeInternal, "catalog: repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "product not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to load product")
	}
	view := toProductView(product)
	return &view, nil
}

func (s *service) ListProducts(ctx context.Context, filters ListFilters) ([]ProductView, error) {
	products, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to list products")
	}
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, toProductView(&products[i]))
	}
	return views, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductView, error) {
	category, err := enums.ParseProductCategory(input.Category)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, err.Error())
	}
	price, originalPrice, err := parsePrices(input.Price, input.OriginalPrice)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		Category:      category,
		Price:         price,
		OriginalPrice: originalPrice,
		ImageURL:      strings.TrimSpace(input.ImageURL),
		Grade:         strings.TrimSpace(input.Grade),
		Subject:       strings.TrimSpace(input.Subject),
		Tags:          pq.StringArray(input.Tags),
		InStock:       true,
		Featured:      input.Featured,
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if product.Tags == nil {
		product.Tags = pq.StringArray{}
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to create product")
	}
	view := toProductView(created)
	return &view, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductView, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "product not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to load product")
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		category, err := enums.ParseProductCategory(*input.Category)
		if err != nil {
			return nil, errors.New(errors.CodeValidation, err.Error())
		}
		product.Category = category
	}
	if input.Price != nil {
		price, err := parseAmount(*input.Price)
		if err != nil {
			return nil, err
		}
		product.Price = price
	}
	if input.OriginalPrice != nil {
		if strings.TrimSpace(*input.OriginalPrice) == "" {
			product.OriginalPrice = nil
		} else {
			original, err := parseAmount(*input.OriginalPrice)
			if err != nil {
				return nil, err
			}
			product.OriginalPrice = &original
		}
	}
	if input.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Grade != nil {
		product.Grade = strings.TrimSpace(*input.Grade)
	}
	if input.Subject != nil {
		product.Subject = strings.TrimSpace(*input.Subject)
	}
	if input.Tags != nil {
		product.Tags = pq.StringArray(*input.Tags)
		if product.Tags == nil {
			product.Tags = pq.StringArray{}
		}
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	if product.OriginalPrice != nil && product.OriginalPrice.LessThan(product.Price) {
		return nil, errors.New(errors.CodeInvalidAmount, "original price must not be below the current price")
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "failed to update product")
	}
	view := toProductView(updated)
	return &view, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New(errors.CodeNotFound, "product not found")
		}
		return errors.Wrap(errors.CodeInternal, err, "failed to delete product")
	}
	return nil
}

func parsePrices(rawPrice string, rawOriginal *string) (decimal.Decimal, *decimal.Decimal, error) {
	price, err := parseAmount(rawPrice)
	if err != nil {
		return decimal.Decimal{}, nil, err
	}
	if rawOriginal == nil || strings.TrimSpace(*rawOriginal) == "" {
		return price, nil, nil
	}
	original, err := parseAmount(*rawOriginal)
	if err != nil {
		return decimal.Decimal{}, nil, err
	}
	if original.LessThan(price) {
		return decimal.Decimal{}, nil, errors.New(errors.CodeInvalidAmount, "original price must not be below the current price")
	}
	return price, &original, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, errors.New(errors.CodeInvalidAmount, "amount must be a decimal number")
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, errors.New(errors.CodeInvalidAmount, "amount must not be negative")
	}
	return amount.Round(2), nil
}
