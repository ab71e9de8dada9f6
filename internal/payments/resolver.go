// Package payments maps a selected payment method to the continuation
// path the storefront redirects buyers to. No network calls happen
// here; provider integration lives behind these paths.
package payments

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gtlearning/storefront-backend/pkg/enums"
)

// Resolve returns the provider continuation path for the order. It is
// a total function: unrecognized methods fall through to the generic
// path rather than failing, matching the storefront's permissive
// checkout behavior.
func Resolve(paymentMethod string, orderID uuid.UUID) string {
	switch enums.PaymentMethod(paymentMethod) {
	case enums.PaymentMethodPayGate:
		return fmt.Sprintf("/payment/paygate/%s", orderID)
	case enums.PaymentMethodPayFast:
		return fmt.Sprintf("/payment/payfast/%s", orderID)
	case enums.PaymentMethodStripe:
		return fmt.Sprintf("/payment/stripe/%s", orderID)
	case enums.PaymentMethodPayPal:
		return fmt.Sprintf("/payment/paypal/%s", orderID)
	default:
		return fmt.Sprintf("/payment/generic/%s", orderID)
	}
}
