package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord is the model for the 'inventory' table, keyed by
// (seller, item): the authoritative count of what a seller can still sell,
// and the live asking price new cart lines snapshot from.
type InventoryRecord struct {
	SellerID  int64           `json:"sellerId" db:"seller_id"`
	ItemID    int64           `json:"itemId" db:"item_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`

	// Joined field for seller inventory views.
	ItemName string `json:"itemName,omitempty" db:"-"`
}
