// Package pricing is the single place money arithmetic happens.
// Rounding is applied once per line and once per order total so long
// carts cannot accumulate penny drift.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/gtlearning/storefront-backend/pkg/db/models"
	pkgerrors "github.com/gtlearning/storefront-backend/pkg/errors"
)

// minorUnitPlaces is the currency precision for all supported currencies.
const minorUnitPlaces = 2

var oneHundred = decimal.NewFromInt(100)

// DiscountPercent returns the display discount as a whole percent,
// rounded half-up. Zero when there is no original price or the
// original price does not exceed the current price.
func DiscountPercent(product *models.Product) int {
	if product == nil || product.OriginalPrice == nil {
		return 0
	}
	original := *product.OriginalPrice
	if original.LessThanOrEqual(product.Price) || !original.IsPositive() {
		return 0
	}
	percent := original.Sub(product.Price).Div(original).Mul(oneHundred)
	return int(percent.Round(0).IntPart())
}

// LineTotal computes unit price times quantity, rounded to minor-unit
// precision at the line level.
func LineTotal(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if unitPrice.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidAmount, "unit price must not be negative")
	}
	if quantity < 1 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be at least 1")
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(minorUnitPlaces), nil
}

// OrderTotal computes subtotal plus shipping, rounded to minor-unit
// precision.
func OrderTotal(subtotal, shipping decimal.Decimal) (decimal.Decimal, error) {
	if subtotal.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidAmount, "subtotal must not be negative")
	}
	if shipping.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInvalidAmount, "shipping must not be negative")
	}
	return subtotal.Add(shipping).Round(minorUnitPlaces), nil
}
