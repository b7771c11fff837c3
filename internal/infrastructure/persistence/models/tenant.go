package models

import (
	"github.com/shopsync/backend/internal/domain/commerce"
)

// TenantModel is the persistence model for tenants
type TenantModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null;uniqueIndex"`
}

// TableName specifies the table name for TenantModel
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the model to a domain tenant
func (m *TenantModel) ToDomain() *commerce.Tenant {
	return &commerce.Tenant{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// TenantModelFromDomain creates a model from a domain tenant
func TenantModelFromDomain(t *commerce.Tenant) *TenantModel {
	m := &TenantModel{Name: t.Name}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}
