package enums

// PaymentMethod identifies the provider a buyer selected at checkout.
//
// Unknown values are deliberately not rejected at order creation: the
// resolver routes them through the generic continuation path instead.
type PaymentMethod string

const (
	PaymentMethodPayGate PaymentMethod = "paygate"
	PaymentMethodPayFast PaymentMethod = "payfast"
	PaymentMethodStripe  PaymentMethod = "stripe"
	PaymentMethodPayPal  PaymentMethod = "paypal"
	PaymentMethodOther   PaymentMethod = "other"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodPayGate,
	PaymentMethodPayFast,
	PaymentMethodStripe,
	PaymentMethodPayPal,
	PaymentMethodOther,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}
