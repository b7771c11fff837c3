package models

import (
	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
)

// ProductModel is the persistence model for products
type ProductModel struct {
	BaseModel
	StoreID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_products_store_external"`
	ExternalID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_products_store_external"`
	Title      string    `gorm:"type:varchar(512)"`
}

// TableName specifies the table name for ProductModel
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain product
func (m *ProductModel) ToDomain() *commerce.Product {
	return &commerce.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		StoreID:    m.StoreID,
		ExternalID: m.ExternalID,
		Title:      m.Title,
	}
}

// ProductModelFromDomain creates a model from a domain product
func ProductModelFromDomain(p *commerce.Product) *ProductModel {
	m := &ProductModel{
		StoreID:    p.StoreID,
		ExternalID: p.ExternalID,
		Title:      p.Title,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
