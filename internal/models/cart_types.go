package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is the model for the 'carts' table: a buyer's staged intent to
// buy from one seller's inventory record, keyed by (buyer, item, seller).
// Price is snapshotted from the inventory record at add-time; later price
// edits by the seller do not reach into existing cart lines.
type CartLine struct {
	BuyerID   int64           `json:"buyerId" db:"buyer_id"`
	ItemID    int64           `json:"itemId" db:"item_id"`
	SellerID  int64           `json:"sellerId" db:"seller_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`

	// Joined fields for the cart view.
	ItemName   string `json:"itemName,omitempty" db:"-"`
	SellerName string `json:"sellerName,omitempty" db:"-"`
}

// LineTotal is price x quantity for one line.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartTotal sums price x quantity over the given lines.
// An empty cart totals zero, never null.
func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}
