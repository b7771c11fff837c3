package ingest

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Wire shapes of upstream records. Numeric ids arrive as JSON numbers,
// monetary amounts as strings; both are normalized here so the application
// layer never touches raw JSON.

// ProductPayload is a product record as delivered by webhook or listing
type ProductPayload struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// ExternalID returns the upstream id in its canonical string form
func (p ProductPayload) ExternalID() string {
	return strconv.FormatInt(p.ID, 10)
}

// CustomerPayload is a customer record as delivered by webhook or listing
type CustomerPayload struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ExternalID returns the upstream id in its canonical string form, empty
// when the record carries no id.
func (c CustomerPayload) ExternalID() string {
	if c.ID == 0 {
		return ""
	}
	return strconv.FormatInt(c.ID, 10)
}

// Ref converts the payload into an identity reference for resolution
func (c CustomerPayload) Ref() CustomerRef {
	return CustomerRef{
		ExternalID: c.ExternalID(),
		Email:      c.Email,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
	}
}

// CustomerRef carries the identity fields used to resolve a customer.
// ExternalID takes precedence over Email; the name fields only seed a
// fallback create.
type CustomerRef struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
}

// IsZero reports whether the reference carries no usable identity
func (r CustomerRef) IsZero() bool {
	return r.ExternalID == "" && r.Email == ""
}

// OrderPayload is an order record as delivered by webhook or listing
type OrderPayload struct {
	ID           int64            `json:"id"`
	TotalPrice   string           `json:"total_price"`
	Currency     string           `json:"currency"`
	CurrencyCode string           `json:"currency_code"`
	Customer     *CustomerPayload `json:"customer"`
}

// ExternalID returns the upstream id in its canonical string form
func (o OrderPayload) ExternalID() string {
	return strconv.FormatInt(o.ID, 10)
}

// Total parses the order amount. A missing or malformed amount defaults to
// zero rather than rejecting the record.
func (o OrderPayload) Total() decimal.Decimal {
	if o.TotalPrice == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(o.TotalPrice)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CurrencyOrFallback returns the currency, preferring the presentment field
// over the legacy code field.
func (o OrderPayload) CurrencyOrFallback() string {
	if o.Currency != "" {
		return o.Currency
	}
	return o.CurrencyCode
}

// DecodePayload parses one raw record into the given payload type
func DecodePayload[T any](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}
