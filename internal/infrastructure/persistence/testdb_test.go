package persistence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.TenantModel{},
		&models.StoreModel{},
		&models.CustomerModel{},
		&models.OrderModel{},
		&models.ProductModel{},
	))
	return db
}

func seedStore(t *testing.T, db *gorm.DB, shopDomain string) *commerce.Store {
	t.Helper()
	store, err := commerce.NewStore(uuid.New(), shopDomain, "shpat_token")
	require.NoError(t, err)
	require.NoError(t, NewGormStoreRepository(db).Upsert(t.Context(), store))
	return store
}
