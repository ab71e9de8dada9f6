package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gtlearning/storefront-backend/pkg/db/models"
	"github.com/gtlearning/storefront-backend/pkg/enums"
	pkgerrors "github.com/gtlearning/storefront-backend/pkg/errors"
)

func testProduct(name, price string) *models.Product {
	return &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: enums.ProductCategoryTextbook,
		Price:    decimal.RequireFromString(price),
		InStock:  true,
	}
}

func TestAddMergesDuplicateIDs(t *testing.T) {
	t.Parallel()

	c := New()
	book := testProduct("Grade 4 Maths", "149.99")

	if err := c.Add(book, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add(book, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Len() != 1 {
		t.Fatalf("expected a single merged line, got %d", c.Len())
	}
	if qty := c.Lines()[0].Quantity; qty != 2 {
		t.Fatalf("expected merged quantity 2, got %d", qty)
	}
}

func TestAddRejectsNonPositiveDelta(t *testing.T) {
	t.Parallel()

	c := New()
	err := c.Add(testProduct("Flashcards", "49.50"), 0)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInvalidQuantity {
		t.Fatalf("expected INVALID_QUANTITY, got %v", err)
	}

	err = c.Add(testProduct("Flashcards", "49.50"), -3)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInvalidQuantity {
		t.Fatalf("expected INVALID_QUANTITY, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("rejected add must not mutate cart, got %d lines", c.Len())
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	c := New()
	book := testProduct("Science Kit", "399.00")
	if err := c.Add(book, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.SetQuantity(book.ID, 0)
	if c.Len() != 0 {
		t.Fatal("expected line removed at quantity 0")
	}

	// Second call is an idempotent no-op.
	c.SetQuantity(book.ID, 0)
	if c.Len() != 0 || c.ItemCount() != 0 {
		t.Fatal("repeated removal must be a no-op")
	}
}

func TestSetQuantityOverwrites(t *testing.T) {
	t.Parallel()

	c := New()
	book := testProduct("Workbook", "89.99")
	if err := c.Add(book, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.SetQuantity(book.ID, 7)
	if qty := c.Lines()[0].Quantity; qty != 7 {
		t.Fatalf("expected quantity 7, got %d", qty)
	}

	// Unknown ids are ignored.
	c.SetQuantity(uuid.New(), 3)
	if c.Len() != 1 {
		t.Fatalf("unknown id must not add a line, got %d", c.Len())
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	c := New()
	book := testProduct("Reader", "59.00")
	if err := c.Add(book, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Remove(book.ID)
	c.Remove(book.ID)
	if c.Len() != 0 {
		t.Fatal("expected empty cart after removal")
	}
}

func TestSubtotalAndItemCountStayConsistent(t *testing.T) {
	t.Parallel()

	c := New()
	maths := testProduct("Maths", "100.00")
	science := testProduct("Science", "50.50")

	if err := c.Add(maths, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add(science, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.SetQuantity(maths.ID, 1)
	c.Remove(science.ID)
	if err := c.Add(science, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCount := 0
	wantSubtotal := decimal.Zero
	for _, line := range c.Lines() {
		wantCount += line.Quantity
		wantSubtotal = wantSubtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	if c.ItemCount() != wantCount {
		t.Fatalf("item count %d does not match lines %d", c.ItemCount(), wantCount)
	}
	if !c.Subtotal().Equal(wantSubtotal.Round(2)) {
		t.Fatalf("subtotal %s does not match lines %s", c.Subtotal(), wantSubtotal)
	}
	if !c.Subtotal().Equal(decimal.RequireFromString("302.00")) {
		t.Fatalf("expected 302.00, got %s", c.Subtotal())
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	c := New()
	if err := c.Add(testProduct("Guide", "10.00"), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Clear()
	if c.Len() != 0 || c.ItemCount() != 0 || !c.Subtotal().IsZero() {
		t.Fatal("expected cleared cart to be empty")
	}
}

func TestRestoreReplaysAndNormalizes(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	restored := Restore([]LineItem{
		{ProductID: id, Name: "Maths", Category: "textbook", UnitPrice: decimal.RequireFromString("100.00"), Quantity: 1},
		{ProductID: uuid.New(), Name: "Ghost", Category: "reader", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 0},
		{ProductID: id, Name: "Maths", Category: "textbook", UnitPrice: decimal.RequireFromString("100.00"), Quantity: 2},
	})

	if restored.Len() != 1 {
		t.Fatalf("expected duplicates merged and zero lines dropped, got %d lines", restored.Len())
	}
	if restored.ItemCount() != 3 {
		t.Fatalf("expected replayed quantity 3, got %d", restored.ItemCount())
	}
}
