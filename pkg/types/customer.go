package types

import "strings"

// Customer is the contact and delivery snapshot embedded in an order or
// quote at submission time. Once embedded it is never mutated.
type Customer struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// MissingFields lists the required contact fields that are empty, in
// declaration order.
func (c Customer) MissingFields() []string {
	required := []struct {
		field string
		value string
	}{
		{"customer.first_name", c.FirstName},
		{"customer.last_name", c.LastName},
		{"customer.email", c.Email},
		{"customer.phone", c.Phone},
	}

	var missing []string
	for _, entry := range required {
		if strings.TrimSpace(entry.value) == "" {
			missing = append(missing, entry.field)
		}
	}
	return missing
}
