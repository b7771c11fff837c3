package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStoreRepository implements StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID finds a store by its ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*commerce.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShopDomain finds a store by its shop domain
func (r *GormStoreRepository) FindByShopDomain(ctx context.Context, shopDomain string) (*commerce.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).
		First(&model, "shop_domain = ?", strings.ToLower(shopDomain)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all stores ordered by shop domain so scheduled runs visit
// them in a stable order.
func (r *GormStoreRepository) FindAll(ctx context.Context) ([]commerce.Store, error) {
	var storeModels []models.StoreModel
	if err := r.db.WithContext(ctx).Order("shop_domain ASC").Find(&storeModels).Error; err != nil {
		return nil, err
	}
	stores := make([]commerce.Store, len(storeModels))
	for i, model := range storeModels {
		stores[i] = *model.ToDomain()
	}
	return stores, nil
}

// Upsert creates or updates a store keyed by shop domain
func (r *GormStoreRepository) Upsert(ctx context.Context, store *commerce.Store) error {
	model := models.StoreModelFromDomain(store)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shop_domain"}},
		DoUpdates: clause.AssignmentColumns([]string{"tenant_id", "access_token", "updated_at"}),
	}).Create(model).Error
}

// Ensure GormStoreRepository implements StoreRepository
var _ commerce.StoreRepository = (*GormStoreRepository)(nil)
