package models

import "time"

// ItemRating is one user's rating of a catalog item, keyed by (item, rater).
// Re-rating overwrites the previous row.
type ItemRating struct {
	ItemID    int64     `json:"itemId" db:"item_id"`
	RaterID   int64     `json:"raterId" db:"rater_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Joined/aggregated fields.
	RaterName string `json:"raterName,omitempty" db:"-"`
	Upvotes   int    `json:"upvotes" db:"-"`
}

// SellerRating is one user's rating of a seller, keyed by (seller, rater).
type SellerRating struct {
	SellerID  int64     `json:"sellerId" db:"seller_id"`
	RaterID   int64     `json:"raterId" db:"rater_id"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	RaterName string `json:"raterName,omitempty" db:"-"`
}
