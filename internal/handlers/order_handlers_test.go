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

// mockOrderStore implements OrderStore for testing.
type mockOrderStore struct {
	order  *models.Order
	orders []models.Order
	lines  []models.OrderLine
	sales  []models.SaleLine
	status string
	err    error
}

func (m *mockOrderStore) Checkout(ctx context.Context, buyerID int64) (*models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *mockOrderStore) ListForBuyer(ctx context.Context, buyerID int64) ([]models.Order, error) {
	return m.orders, m.err
}

func (m *mockOrderStore) Get(ctx context.Context, buyerID, orderID int64) (*models.Order, []models.OrderLine, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.order, m.lines, nil
}

func (m *mockOrderStore) SalesForSeller(ctx context.Context, sellerID int64) ([]models.SaleLine, error) {
	return m.sales, m.err
}

func (m *mockOrderStore) MarkFulfilled(ctx context.Context, sellerID, orderID, itemID int64) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.status, nil
}

func newOrderRouter(mock *mockOrderStore) *gin.Engine {
	h := &Handlers{Orders: mock}

	r := gin.New()
	r.Use(authAs(1))
	r.POST("/checkout", h.Checkout)
	r.GET("/orders", h.GetMyOrders)
	r.GET("/orders/:id", h.GetOrderDetails)
	r.GET("/sales", h.GetMySales)
	r.POST("/sales/:order_id/:item_id/fulfill", h.MarkLineFulfilled)
	return r
}

func TestCheckout_Success(t *testing.T) {
	mock := &mockOrderStore{
		order: &models.Order{
			ID:         7,
			BuyerID:    1,
			Reference:  "4d0b1e7c-3f0f-4a6e-9a5e-0c6a1e2b3c4d",
			Status:     models.OrderStatusPending,
			TotalPrice: decimal.RequireFromString("30.00"),
		},
	}
	router := newOrderRouter(mock)

	recorder := doJSON(t, router, "POST", "/checkout", "")

	require.Equal(t, http.StatusCreated, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `"orderId":7`)
	assert.Contains(t, body, mock.order.Reference)
	assert.Contains(t, body, `"totalPaid":"30"`)
}

func TestCheckout_InsufficientBalance(t *testing.T) {
	router := newOrderRouter(&mockOrderStore{err: store.ErrInsufficientBalance})

	recorder := doJSON(t, router, "POST", "/checkout", "")

	assert.Equal(t, http.StatusPaymentRequired, recorder.Code)
}

func TestCheckout_InsufficientStockNamesOffendingLine(t *testing.T) {
	router := newOrderRouter(&mockOrderStore{err: &store.InsufficientStockError{
		SellerID: 2, ItemID: 5, ItemName: "Garden Hose", Requested: 3, Available: 2,
	}})

	recorder := doJSON(t, router, "POST", "/checkout", "")

	require.Equal(t, http.StatusConflict, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `"sellerId":2`)
	assert.Contains(t, body, `"itemId":5`)
	assert.Contains(t, body, "Garden Hose")
}

func TestCheckout_EmptyCart(t *testing.T) {
	router := newOrderRouter(&mockOrderStore{err: store.ErrEmptyCart})

	recorder := doJSON(t, router, "POST", "/checkout", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetOrderDetails_SomeoneElsesOrderIsNotFound(t *testing.T) {
	router := newOrderRouter(&mockOrderStore{err: store.ErrNotFound})

	recorder := doJSON(t, router, "GET", "/orders/42", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetOrderDetails_BadID(t *testing.T) {
	router := newOrderRouter(&mockOrderStore{})

	recorder := doJSON(t, router, "GET", "/orders/not-a-number", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
