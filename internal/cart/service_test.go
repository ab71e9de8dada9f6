package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gtlearning/storefront-backend/pkg/db/models"
	"github.com/gtlearning/storefront-backend/pkg/enums"
	pkgerrors "github.com/gtlearning/storefront-backend/pkg/errors"
)

type memoryStore struct {
	snapshots map[string][]LineItem
}

func newMemoryStore() *memoryStore {
	return &memoryStore{snapshots: map[string][]LineItem{}}
}

func (m *memoryStore) Save(_ context.Context, token string, lines []LineItem, _ time.Duration) error {
	copied := make([]LineItem, len(lines))
	copy(copied, lines)
	m.snapshots[token] = copied
	return nil
}

func (m *memoryStore) Load(_ context.Context, token string) ([]LineItem, error) {
	return m.snapshots[token], nil
}

func (m *memoryStore) Delete(_ context.Context, token string) error {
	delete(m.snapshots, token)
	return nil
}

type stubLoader struct {
	products map[uuid.UUID]*models.Product
}

func (s *stubLoader) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := s.products[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestService(t *testing.T, products ...*models.Product) (Service, *memoryStore) {
	t.Helper()
	loader := &stubLoader{products: map[uuid.UUID]*models.Product{}}
	for _, p := range products {
		loader.products[p.ID] = p
	}
	store := newMemoryStore()
	svc, err := NewService(store, loader, time.Hour)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func TestServiceAddItemPersistsSnapshot(t *testing.T) {
	t.Parallel()

	book := &models.Product{
		ID:       uuid.New(),
		Name:     "Grade 7 Science",
		Category: enums.ProductCategoryTextbook,
		Price:    decimal.RequireFromString("249.99"),
	}
	svc, store := newTestService(t, book)

	view, err := svc.AddItem(context.Background(), "tok", book.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", view.ItemCount)
	}
	if !view.Subtotal.Equal(decimal.RequireFromString("499.98")) {
		t.Fatalf("unexpected subtotal %s", view.Subtotal)
	}
	if len(store.snapshots["tok"]) != 1 {
		t.Fatalf("expected one persisted line, got %d", len(store.snapshots["tok"]))
	}
}

func TestServiceAddItemUnknownProduct(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.AddItem(context.Background(), "tok", uuid.New(), 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestServiceCartSurvivesReload(t *testing.T) {
	t.Parallel()

	book := &models.Product{
		ID:       uuid.New(),
		Name:     "Workbook",
		Category: enums.ProductCategoryWorkbook,
		Price:    decimal.RequireFromString("80.00"),
	}
	svc, _ := newTestService(t, book)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "tok", book.ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.AddItem(ctx, "tok", book.ID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := svc.Fetch(ctx, "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 3 {
		t.Fatalf("expected merged line with quantity 3, got %+v", view.Lines)
	}
}

func TestServiceSetQuantityZeroRemoves(t *testing.T) {
	t.Parallel()

	book := &models.Product{
		ID:       uuid.New(),
		Name:     "Reader",
		Category: enums.ProductCategoryReader,
		Price:    decimal.RequireFromString("45.00"),
	}
	svc, _ := newTestService(t, book)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "tok", book.ID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := svc.SetQuantity(ctx, "tok", book.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(view.Lines))
	}

	// Repeating the removal stays silent.
	if _, err := svc.SetQuantity(ctx, "tok", book.ID, 0); err != nil {
		t.Fatalf("expected idempotent removal, got %v", err)
	}
}

func TestServiceClear(t *testing.T) {
	t.Parallel()

	book := &models.Product{
		ID:       uuid.New(),
		Name:     "Kit",
		Category: enums.ProductCategoryScienceKit,
		Price:    decimal.RequireFromString("500.00"),
	}
	svc, store := newTestService(t, book)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "tok", book.ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view, err := svc.Clear(ctx, "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ItemCount != 0 {
		t.Fatalf("expected cleared cart, got %d items", view.ItemCount)
	}
	if _, ok := store.snapshots["tok"]; ok {
		t.Fatal("expected snapshot deleted")
	}
}
