package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"gorm.io/gorm"
)

// GormInsightsRepository implements InsightsRepository with raw aggregation
// queries over the synchronized tables.
type GormInsightsRepository struct {
	db *gorm.DB
}

// NewGormInsightsRepository creates a new GormInsightsRepository
func NewGormInsightsRepository(db *gorm.DB) *GormInsightsRepository {
	return &GormInsightsRepository{db: db}
}

// OrdersByDate groups a store's orders per calendar day, newest first
func (r *GormInsightsRepository) OrdersByDate(ctx context.Context, storeID uuid.UUID, limit int) ([]commerce.OrdersByDate, error) {
	var rows []commerce.OrdersByDate
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("DATE(created_at) AS date, COUNT(*) AS order_count, SUM(total_price) AS revenue").
		Where("store_id = ?", storeID).
		Group("DATE(created_at)").
		Order("date DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopCustomers ranks a store's customers by total spend, highest first.
// Unlinked orders carry no attribution and are excluded by the join.
func (r *GormInsightsRepository) TopCustomers(ctx context.Context, storeID uuid.UUID, limit int) ([]commerce.TopCustomer, error) {
	var rows []commerce.TopCustomer
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("customers.id AS customer_id, customers.email, customers.first_name, customers.last_name, COUNT(orders.id) AS order_count, SUM(orders.total_price) AS total_spent").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("orders.store_id = ?", storeID).
		Group("customers.id, customers.email, customers.first_name, customers.last_name").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Ensure GormInsightsRepository implements InsightsRepository
var _ commerce.InsightsRepository = (*GormInsightsRepository)(nil)
