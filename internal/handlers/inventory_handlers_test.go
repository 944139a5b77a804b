package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minizon/minizon/internal/models"
	"github.com/minizon/minizon/internal/store"
)

// mockInventoryStore implements InventoryStore for testing.
type mockInventoryStore struct {
	records []models.InventoryRecord
	err     error

	lastQuantity int
}

func (m *mockInventoryStore) ListForSeller(ctx context.Context, sellerID int64) ([]models.InventoryRecord, error) {
	return m.records, m.err
}

func (m *mockInventoryStore) Create(ctx context.Context, rec *models.InventoryRecord) error {
	return m.err
}

func (m *mockInventoryStore) Update(ctx context.Context, sellerID, itemID int64, price decimal.Decimal, quantity int) error {
	m.lastQuantity = quantity
	return m.err
}

func (m *mockInventoryStore) Delete(ctx context.Context, sellerID, itemID int64) error {
	return m.err
}

func newInventoryRouter(mock *mockInventoryStore) *gin.Engine {
	h := &Handlers{Inventory: mock}

	r := gin.New()
	r.Use(authAs(1))
	r.GET("/inventory", h.GetMyInventory)
	r.POST("/inventory", h.CreateInventoryRecord)
	r.PUT("/inventory/:item_id", h.UpdateInventoryRecord)
	r.DELETE("/inventory/:item_id", h.DeleteInventoryRecord)
	return r
}

func TestCreateInventoryRecord_Success(t *testing.T) {
	router := newInventoryRouter(&mockInventoryStore{})

	recorder := doJSON(t, router, "POST", "/inventory", `{"itemId":5,"price":"9.99","quantity":10}`)

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Item listed for sale")
}

func TestCreateInventoryRecord_DuplicateListing(t *testing.T) {
	router := newInventoryRouter(&mockInventoryStore{err: store.ErrDuplicateListing})

	recorder := doJSON(t, router, "POST", "/inventory", `{"itemId":5,"price":"9.99","quantity":10}`)

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestCreateInventoryRecord_UnknownItem(t *testing.T) {
	router := newInventoryRouter(&mockInventoryStore{err: store.ErrNotFound})

	recorder := doJSON(t, router, "POST", "/inventory", `{"itemId":999,"price":"9.99","quantity":10}`)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCreateInventoryRecord_RejectsNegativePrice(t *testing.T) {
	router := newInventoryRouter(&mockInventoryStore{})

	recorder := doJSON(t, router, "POST", "/inventory", `{"itemId":5,"price":"-1.00","quantity":10}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateInventoryRecord_ZeroQuantityDelists(t *testing.T) {
	mock := &mockInventoryStore{}
	router := newInventoryRouter(mock)

	recorder := doJSON(t, router, "PUT", "/inventory/5", `{"price":"9.99","quantity":0}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Inventory record removed")
	assert.Equal(t, 0, mock.lastQuantity)
}

func TestUpdateInventoryRecord_NotFound(t *testing.T) {
	router := newInventoryRouter(&mockInventoryStore{err: store.ErrNotFound})

	recorder := doJSON(t, router, "PUT", "/inventory/5", `{"price":"9.99","quantity":3}`)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetMyInventory(t *testing.T) {
	router := newInventoryRouter(&mockInventoryStore{records: []models.InventoryRecord{
		{SellerID: 1, ItemID: 5, Quantity: 10, Price: decimal.RequireFromString("9.99"), ItemName: "Garden Hose"},
	}})

	recorder := doJSON(t, router, "GET", "/inventory", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Garden Hose")
}
