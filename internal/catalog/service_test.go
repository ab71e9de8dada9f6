package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/gtlearning/storefront-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	conn := openTestDB(t)
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestServiceCreateProductValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:     "Unknown Category Item",
		Category: "gaming",
		Price:    "10.00",
	})
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected %s for unknown category, got %v", errors.CodeValidation, err)
	}

	_, err = svc.CreateProduct(ctx, CreateProductInput{
		Name:     "Negative Price Item",
		Category: "textbook",
		Price:    "-5.00",
	})
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeInvalidAmount {
		t.Fatalf("expected %s for negative price, got %v", errors.CodeInvalidAmount, err)
	}

	original := "50.00"
	_, err = svc.CreateProduct(ctx, CreateProductInput{
		Name:          "Bad Discount Item",
		Category:      "textbook",
		Price:         "75.00",
		OriginalPrice: &original,
	})
	if typed := errors.As(err); typed == nil || typed.Code() != errors.CodeInvalidAmount {
		t.Fatalf("expected %s when original price is below price, got %v", errors.CodeInvalidAmount, err)
	}
}

func TestServiceCreateAndDiscount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	original := "100.00"
	view, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:          "Science Kit Deluxe",
		Description:   "Magnets, circuits and measurement tools",
		Category:      "science_kit",
		Price:         "75.00",
		OriginalPrice: &original,
		Tags:          []string{"stem"},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if view.DiscountPercent != 25 {
		t.Fatalf("expected 25%% discount, got %d", view.DiscountPercent)
	}

	fetched, err := svc.GetProduct(ctx, view.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if !fetched.Price.Equal(view.Price) {
		t.Fatalf("expected price %s, got %s", view.Price, fetched.Price)
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	view, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:     "Teacher Guide: Natural Sciences",
		Category: "teacher_guide",
		Price:    "220.00",
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	newName := "Teacher Guide: Natural Sciences Gr 7"
	featured := true
	updated, err := svc.UpdateProduct(ctx, view.ID, UpdateProductInput{
		Name:     &newName,
		Featured: &featured,
	})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if updated.Name != newName || !updated.Featured {
		t.Fatalf("expected update applied, got %+v", updated)
	}

	if err := svc.DeleteProduct(ctx, view.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if _, err := svc.GetProduct(ctx, view.ID); errors.As(err) == nil || errors.As(err).Code() != errors.CodeNotFound {
		t.Fatalf("expected %s after delete, got %v", errors.CodeNotFound, err)
	}

	if _, err := svc.GetProduct(ctx, uuid.New()); errors.As(err) == nil || errors.As(err).Code() != errors.CodeNotFound {
		t.Fatalf("expected %s for unknown id, got %v", errors.CodeNotFound, err)
	}
}
