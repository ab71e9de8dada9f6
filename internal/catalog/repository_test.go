package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gtlearning/storefront-backend/pkg/db/models"
	"github.com/gtlearning/storefront-backend/pkg/enums"
)

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, mutate func(*models.Product)) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:          uuid.New(),
		Name:        fmt.Sprintf("Grade 4 Maths Workbook %s", uuid.NewString()[:8]),
		Description: "Practice workbook aligned to the national curriculum",
		Category:    enums.ProductCategoryWorkbook,
		Price:       decimal.NewFromFloat(149.99),
		Grade:       "4",
		Subject:     "Mathematics",
		Tags:        pq.StringArray{"caps", "mathematics"},
		InStock:     true,
	}
	if mutate != nil {
		mutate(product)
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestRepositoryProductFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Product{
		Name:     "Phonics Flashcards Set A",
		Category: enums.ProductCategoryFlashcards,
		Price:    decimal.NewFromFloat(89.50),
		Tags:     pq.StringArray{"phonics"},
		InStock:  true,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected product id to be generated")
	}

	fetched, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	if fetched.Name != created.Name {
		t.Fatalf("expected name %q, got %q", created.Name, fetched.Name)
	}

	fetched.Name = "Phonics Flashcards Set B"
	if _, err := repo.Update(ctx, fetched); err != nil {
		t.Fatalf("update product: %v", err)
	}
	updated, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find after update: %v", err)
	}
	if updated.Name != "Phonics Flashcards Set B" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound on second delete, got %v", err)
	}
}

func TestRepositoryListFilters(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	workbook := mustCreateTestProduct(t, tx, nil)
	mustCreateTestProduct(t, tx, func(p *models.Product) {
		p.Name = "Watercolour Paint Kit"
		p.Description = "Classroom art supplies for foundation phase"
		p.Category = enums.ProductCategoryArtSupplies
		p.Featured = true
	})

	category := enums.ProductCategoryWorkbook
	byCategory, err := repo.List(ctx, ListFilters{Category: &category})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].ID != workbook.ID {
		t.Fatalf("expected only the workbook, got %d rows", len(byCategory))
	}

	featured, err := repo.List(ctx, ListFilters{FeaturedOnly: true})
	if err != nil {
		t.Fatalf("list featured: %v", err)
	}
	if len(featured) != 1 || featured[0].Category != enums.ProductCategoryArtSupplies {
		t.Fatalf("expected only the featured art kit, got %d rows", len(featured))
	}

	searched, err := repo.List(ctx, ListFilters{SearchTerm: "WATERCOLOUR"})
	if err != nil {
		t.Fatalf("list by search term: %v", err)
	}
	if len(searched) != 1 || searched[0].Name != "Watercolour Paint Kit" {
		t.Fatalf("expected case-insensitive name match, got %d rows", len(searched))
	}

	byDescription, err := repo.List(ctx, ListFilters{SearchTerm: "foundation phase"})
	if err != nil {
		t.Fatalf("list by description term: %v", err)
	}
	if len(byDescription) != 1 {
		t.Fatalf("expected description match, got %d rows", len(byDescription))
	}
}
