package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values. The status column is a denormalized summary of the
// order's line fulfillment state, recomputed on every fulfillment write.
const (
	OrderStatusPending   = "not fulfilled yet"
	OrderStatusFulfilled = "all fulfilled"
)

// Order is the immutable header created at checkout. Address and total are
// snapshots of the buyer's state at that moment.
type Order struct {
	ID         int64           `json:"id" db:"id"`
	Reference  string          `json:"reference" db:"reference"`
	BuyerID    int64           `json:"buyerId" db:"buyer_id"`
	Address    string          `json:"address" db:"address"`
	TotalPrice decimal.Decimal `json:"totalPrice" db:"total_price"`
	Status     string          `json:"status" db:"status"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}

// OrderLine is the model for the 'order_lines' table, keyed by
// (order, item, seller). Quantity and price are copied from the cart line
// at checkout and never change; only the fulfillment flag mutates.
type OrderLine struct {
	OrderID     int64           `json:"orderId" db:"order_id"`
	ItemID      int64           `json:"itemId" db:"item_id"`
	SellerID    int64           `json:"sellerId" db:"seller_id"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Fulfilled   bool            `json:"fulfilled" db:"fulfilled"`
	FulfilledAt *time.Time      `json:"fulfilledAt,omitempty" db:"fulfilled_at"`

	// Joined fields for buyer order views.
	ItemName   string `json:"itemName,omitempty" db:"-"`
	SellerName string `json:"sellerName,omitempty" db:"-"`
}

// SaleLine is an order line from the seller's point of view: what a seller
// still owes (or has shipped) to a buyer.
type SaleLine struct {
	OrderID        int64           `json:"orderId" db:"order_id"`
	OrderReference string          `json:"orderReference" db:"-"`
	ItemID         int64           `json:"itemId" db:"item_id"`
	ItemName       string          `json:"itemName" db:"-"`
	BuyerName      string          `json:"buyerName" db:"-"`
	Address        string          `json:"address" db:"-"`
	Quantity       int             `json:"quantity" db:"quantity"`
	Price          decimal.Decimal `json:"price" db:"price"`
	Fulfilled      bool            `json:"fulfilled" db:"fulfilled"`
	OrderedAt      time.Time       `json:"orderedAt" db:"-"`
}

// DeriveOrderStatus recomputes the denormalized order status from its lines:
// "all fulfilled" iff every line is fulfilled, else "not fulfilled yet".
func DeriveOrderStatus(lines []OrderLine) string {
	if len(lines) == 0 {
		return OrderStatusPending
	}
	for _, l := range lines {
		if !l.Fulfilled {
			return OrderStatusPending
		}
	}
	return OrderStatusFulfilled
}
