package commerce

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrdersByDate is one row of the daily order aggregation for a store
type OrdersByDate struct {
	Date       string
	OrderCount int64
	Revenue    decimal.Decimal
}

// TopCustomer is one row of the spend ranking for a store
type TopCustomer struct {
	CustomerID uuid.UUID
	Email      string
	FirstName  string
	LastName   string
	OrderCount int64
	TotalSpent decimal.Decimal
}

// InsightsRepository defines the read-side aggregation queries. Results are
// computed from synchronized data only; no upstream calls are made.
type InsightsRepository interface {
	// OrdersByDate groups a store's orders per calendar day, newest first.
	OrdersByDate(ctx context.Context, storeID uuid.UUID, limit int) ([]OrdersByDate, error)
	// TopCustomers ranks a store's customers by total spend, highest first.
	// Orders without a customer link are excluded.
	TopCustomers(ctx context.Context, storeID uuid.UUID, limit int) ([]TopCustomer, error)
}
