package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appingest "github.com/shopsync/backend/internal/application/ingest"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory fakes backing the wired webhook service

type fakeStoreRepo struct {
	commerce.StoreRepository
	byDomain map[string]*commerce.Store
}

func (r *fakeStoreRepo) FindByShopDomain(ctx context.Context, shopDomain string) (*commerce.Store, error) {
	if store, ok := r.byDomain[shopDomain]; ok {
		return store, nil
	}
	return nil, shared.ErrNotFound
}

type fakeCustomerRepo struct {
	commerce.CustomerRepository
	upserts int
}

func (r *fakeCustomerRepo) FindByExternalID(ctx context.Context, storeID uuid.UUID, externalID string) (*commerce.Customer, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeCustomerRepo) FindByEmail(ctx context.Context, storeID uuid.UUID, email string) (*commerce.Customer, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *commerce.Customer) error {
	return nil
}

func (r *fakeCustomerRepo) UpsertByExternalID(ctx context.Context, customer *commerce.Customer) error {
	r.upserts++
	return nil
}

type fakeOrderRepo struct {
	commerce.OrderRepository
	upserts int
}

func (r *fakeOrderRepo) Upsert(ctx context.Context, order *commerce.Order) error {
	r.upserts++
	return nil
}

type fakeProductRepo struct {
	commerce.ProductRepository
	upserts int
}

func (r *fakeProductRepo) Upsert(ctx context.Context, product *commerce.Product) error {
	r.upserts++
	return nil
}

type webhookHandlerEnv struct {
	router   *gin.Engine
	verifier *shopify.WebhookVerifier
	orders   *fakeOrderRepo
	products *fakeProductRepo
}

func newWebhookHandlerEnv(t *testing.T) *webhookHandlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := commerce.NewStore(uuid.New(), "demo.myshopify.com", "shpat_token")
	require.NoError(t, err)

	customers := &fakeCustomerRepo{}
	orders := &fakeOrderRepo{}
	products := &fakeProductRepo{}
	verifier := shopify.NewWebhookVerifier("handler-test-secret")

	upserter := appingest.NewRecordUpserter(appingest.RecordUpserterConfig{
		Customers: customers,
		Orders:    orders,
		Products:  products,
		Resolver:  appingest.NewIdentityResolver(customers, zap.NewNop()),
		Logger:    zap.NewNop(),
	})
	service := appingest.NewWebhookService(appingest.WebhookServiceConfig{
		Verifier: verifier,
		Stores:   &fakeStoreRepo{byDomain: map[string]*commerce.Store{store.ShopDomain: store}},
		Upserter: upserter,
		DedupTTL: time.Hour,
		Logger:   zap.NewNop(),
	})

	router := gin.New()
	NewWebhookHandler(service).RegisterRoutes(router.Group("/"))

	return &webhookHandlerEnv{router: router, verifier: verifier, orders: orders, products: products}
}

func (e *webhookHandlerEnv) post(body []byte, signature, topic, shopDomain string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/shopify/webhooks", bytes.NewReader(body))
	req.Header.Set(shopify.HeaderHMAC, signature)
	req.Header.Set(shopify.HeaderTopic, topic)
	req.Header.Set(shopify.HeaderShopDomain, shopDomain)
	req.Header.Set(shopify.HeaderWebhookID, "wh-1")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestWebhookHandler_AppliesSignedDelivery(t *testing.T) {
	env := newWebhookHandlerEnv(t)
	body := []byte(`{"id":9001,"total_price":"42.50","currency":"USD"}`)

	w := env.post(body, env.verifier.Sign(body), "orders/create", "demo.myshopify.com")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Applied   bool `json:"applied"`
			Duplicate bool `json:"duplicate"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.Applied)
	assert.False(t, resp.Data.Duplicate)
	assert.Equal(t, 1, env.orders.upserts)
}

func TestWebhookHandler_RejectsBadSignatureWith401(t *testing.T) {
	env := newWebhookHandlerEnv(t)
	body := []byte(`{"id":9001}`)

	w := env.post(body, "bogus", "orders/create", "demo.myshopify.com")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_SIGNATURE")
	assert.Equal(t, 0, env.orders.upserts)
}

func TestWebhookHandler_UnknownStoreIs404(t *testing.T) {
	env := newWebhookHandlerEnv(t)
	body := []byte(`{"id":9001}`)

	w := env.post(body, env.verifier.Sign(body), "orders/create", "ghost.myshopify.com")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "STORE_NOT_ONBOARDED")
}

func TestWebhookHandler_UnknownTopicAcknowledged(t *testing.T) {
	env := newWebhookHandlerEnv(t)
	body := []byte(`{"id":1}`)

	w := env.post(body, env.verifier.Sign(body), "fulfillments/create", "demo.myshopify.com")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.orders.upserts)
	assert.Equal(t, 0, env.products.upserts)
}

func TestWebhookHandler_ProductTopicRoutesToProducts(t *testing.T) {
	env := newWebhookHandlerEnv(t)
	body := []byte(`{"id":1001,"title":"Blue Mug"}`)

	w := env.post(body, env.verifier.Sign(body), "products/update", "demo.myshopify.com")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.products.upserts)
	assert.Equal(t, 0, env.orders.upserts)
}
