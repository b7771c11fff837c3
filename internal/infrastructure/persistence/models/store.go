package models

import (
	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
)

// StoreModel is the persistence model for store connections
type StoreModel struct {
	BaseModel
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ShopDomain  string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	AccessToken string    `gorm:"type:varchar(255);not null"`
}

// TableName specifies the table name for StoreModel
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the model to a domain store
func (m *StoreModel) ToDomain() *commerce.Store {
	return &commerce.Store{
		BaseEntity:  m.BaseModel.ToDomain(),
		TenantID:    m.TenantID,
		ShopDomain:  m.ShopDomain,
		AccessToken: m.AccessToken,
	}
}

// StoreModelFromDomain creates a model from a domain store
func StoreModelFromDomain(s *commerce.Store) *StoreModel {
	m := &StoreModel{
		TenantID:    s.TenantID,
		ShopDomain:  s.ShopDomain,
		AccessToken: s.AccessToken,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
