package models

import (
	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
)

// CustomerModel is the persistence model for customers. ExternalID and Email
// are nullable so the per-store unique indexes admit customers observed
// without either field.
type CustomerModel struct {
	BaseModel
	StoreID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_customers_store_external"`
	ExternalID *string   `gorm:"type:varchar(64);uniqueIndex:idx_customers_store_external"`
	Email      *string   `gorm:"type:varchar(255);index"`
	FirstName  string    `gorm:"type:varchar(255)"`
	LastName   string    `gorm:"type:varchar(255)"`
}

// TableName specifies the table name for CustomerModel
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain customer
func (m *CustomerModel) ToDomain() *commerce.Customer {
	return &commerce.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		StoreID:    m.StoreID,
		ExternalID: fromNullable(m.ExternalID),
		Email:      fromNullable(m.Email),
		FirstName:  m.FirstName,
		LastName:   m.LastName,
	}
}

// CustomerModelFromDomain creates a model from a domain customer
func CustomerModelFromDomain(c *commerce.Customer) *CustomerModel {
	m := &CustomerModel{
		StoreID:    c.StoreID,
		ExternalID: nullable(c.ExternalID),
		Email:      nullable(c.Email),
		FirstName:  c.FirstName,
		LastName:   c.LastName,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
