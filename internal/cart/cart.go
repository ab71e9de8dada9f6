package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gtlearning/storefront-backend/internal/pricing"
	"github.com/gtlearning/storefront-backend/pkg/db/models"
	"github.com/gtlearning/storefront-backend/pkg/enums"
	pkgerrors "github.com/gtlearning/storefront-backend/pkg/errors"
)

// LineItem pairs a catalog snapshot with a quantity. Quantity is
// always >= 1; a line that would drop to zero is removed instead.
type LineItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Cart is the in-progress aggregation of line items, ordered by first
// addition and keyed by product id. It is the single source of truth
// for a cart; any persisted copy is a cache of this state.
//
// Cart is not safe for concurrent use; callers serialize access per
// cart token.
type Cart struct {
	lines []LineItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Restore rebuilds a cart from persisted lines by replaying Add, so a
// corrupted snapshot (duplicate ids, zero quantities) normalizes back
// to a valid cart.
func Restore(lines []LineItem) *Cart {
	c := New()
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		product := models.Product{
			ID:       line.ProductID,
			Name:     line.Name,
			Category: enums.ProductCategory(line.Category),
			Price:    line.UnitPrice,
		}
		_ = c.Add(&product, line.Quantity)
	}
	return c
}

// Add merges the product into the cart. An existing line has its
// quantity incremented; otherwise a new line is appended. The delta
// must be positive on the add path.
func (c *Cart) Add(product *models.Product, quantityDelta int) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product required")
	}
	if quantityDelta <= 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity delta must be positive")
	}

	if idx := c.indexOf(product.ID); idx >= 0 {
		c.lines[idx].Quantity += quantityDelta
		return nil
	}

	c.lines = append(c.lines, LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category.String(),
		UnitPrice: product.Price,
		Quantity:  quantityDelta,
	})
	return nil
}

// SetQuantity overwrites the line's quantity. Zero or negative removes
// the line; both removal and absence are silent no-ops, so the call is
// idempotent.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) {
	idx := c.indexOf(productID)
	if quantity <= 0 {
		if idx >= 0 {
			c.removeAt(idx)
		}
		return
	}
	if idx >= 0 {
		c.lines[idx].Quantity = quantity
	}
}

// Remove deletes the line if present; absent ids are a no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	if idx := c.indexOf(productID); idx >= 0 {
		c.removeAt(idx)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Subtotal recomputes the cart subtotal from scratch on every call.
// There is deliberately no cached field to go stale.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range c.lines {
		lineTotal, err := pricing.LineTotal(line.UnitPrice, line.Quantity)
		if err != nil {
			continue
		}
		subtotal = subtotal.Add(lineTotal)
	}
	return subtotal
}

// ItemCount sums quantities across lines: one line with quantity 5
// counts as 5.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy of the current line items in insertion order.
func (c *Cart) Lines() []LineItem {
	out := make([]LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i, line := range c.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}
