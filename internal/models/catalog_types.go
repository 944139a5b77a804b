package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is the model for the 'categories' table.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Item is the model for the 'items' table: a shared catalog entry. Price and
// stock live in per-seller inventory records, never here.
type Item struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CategoryID  int64     `json:"categoryId" db:"category_id"`
	CreatorID   int64     `json:"creatorId" db:"creator_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Joined field for listing views.
	CategoryName string `json:"categoryName,omitempty" db:"-"`
}

// InventoryOffer is one seller's live offer on an item, as shown on the item
// detail page.
type InventoryOffer struct {
	SellerID   int64           `json:"sellerId" db:"seller_id"`
	SellerName string          `json:"sellerName" db:"-"`
	Price      decimal.Decimal `json:"price" db:"price"`
	Quantity   int             `json:"quantity" db:"quantity"`
}

// ItemDetail is the item plus the aggregates the detail view needs. The
// pointer aggregates stay nil when there is nothing to aggregate, so the JSON
// distinguishes "no offers" from "cheapest offer is 0".
type ItemDetail struct {
	Item

	MinPrice    *decimal.Decimal `json:"minPrice" db:"-"`
	AvgPrice    *decimal.Decimal `json:"avgPrice" db:"-"`
	AvgRating   *float64         `json:"avgRating" db:"-"`
	RatingCount int              `json:"ratingCount" db:"-"`
	Offers      []InventoryOffer `json:"offers" db:"-"`
}
