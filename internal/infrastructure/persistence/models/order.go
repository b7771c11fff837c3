package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsync/backend/internal/domain/commerce"
)

// OrderModel is the persistence model for orders
type OrderModel struct {
	BaseModel
	StoreID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_orders_store_external"`
	ExternalID string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_orders_store_external"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Currency   string          `gorm:"type:varchar(8)"`
	CustomerID *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName specifies the table name for OrderModel
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the model to a domain order
func (m *OrderModel) ToDomain() *commerce.Order {
	return &commerce.Order{
		BaseEntity: m.BaseModel.ToDomain(),
		StoreID:    m.StoreID,
		ExternalID: m.ExternalID,
		TotalPrice: m.TotalPrice,
		Currency:   m.Currency,
		CustomerID: m.CustomerID,
	}
}

// OrderModelFromDomain creates a model from a domain order
func OrderModelFromDomain(o *commerce.Order) *OrderModel {
	m := &OrderModel{
		StoreID:    o.StoreID,
		ExternalID: o.ExternalID,
		TotalPrice: o.TotalPrice,
		Currency:   o.Currency,
		CustomerID: o.CustomerID,
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	return m
}
