package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/minizon/minizon/internal/models"
)

// The handler layer depends on narrow store interfaces rather than concrete
// repositories, so tests can swap in hand-written mocks. The concrete
// implementations live in internal/store and are wired up in cmd/api.

type UserStore interface {
	Register(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, name, address string) error
	Credit(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error)
}

type CatalogStore interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateItem(ctx context.Context, item *models.Item) error
	SearchItems(ctx context.Context, name string, categoryID int64) ([]models.Item, error)
	GetItem(ctx context.Context, id int64) (*models.ItemDetail, error)
}

type InventoryStore interface {
	ListForSeller(ctx context.Context, sellerID int64) ([]models.InventoryRecord, error)
	Create(ctx context.Context, rec *models.InventoryRecord) error
	Update(ctx context.Context, sellerID, itemID int64, price decimal.Decimal, quantity int) error
	Delete(ctx context.Context, sellerID, itemID int64) error
}

type CartStore interface {
	Lines(ctx context.Context, buyerID int64) ([]models.CartLine, error)
	Add(ctx context.Context, buyerID, itemID, sellerID int64, quantity int) (*models.CartLine, error)
	UpdateQuantity(ctx context.Context, buyerID, itemID, sellerID int64, quantity int) error
	Remove(ctx context.Context, buyerID, itemID, sellerID int64) error
}

type OrderStore interface {
	Checkout(ctx context.Context, buyerID int64) (*models.Order, error)
	ListForBuyer(ctx context.Context, buyerID int64) ([]models.Order, error)
	Get(ctx context.Context, buyerID, orderID int64) (*models.Order, []models.OrderLine, error)
	SalesForSeller(ctx context.Context, sellerID int64) ([]models.SaleLine, error)
	MarkFulfilled(ctx context.Context, sellerID, orderID, itemID int64) (string, error)
}

type RatingStore interface {
	RateItem(ctx context.Context, itemID, raterID int64, rating int, comment string) error
	UpvoteRating(ctx context.Context, itemID, raterID, voterID int64) error
	ItemRatings(ctx context.Context, itemID int64) ([]models.ItemRating, error)
	RateSeller(ctx context.Context, sellerID, raterID int64, rating int) error
	SellerRatings(ctx context.Context, sellerID int64) ([]models.SellerRating, *float64, error)
}

// DescriptionSuggester drafts an item description. Optional; nil disables
// the feature.
type DescriptionSuggester interface {
	SuggestDescription(ctx context.Context, name, category string) (string, error)
}

// Handlers holds all dependencies for the HTTP handlers. Constructed once
// in cmd/api and passed by reference.
type Handlers struct {
	Users     UserStore
	Catalog   CatalogStore
	Inventory InventoryStore
	Cart      CartStore
	Orders    OrderStore
	Ratings   RatingStore
	Suggester DescriptionSuggester
}

// currentUserID returns the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) int64 {
	v, _ := c.Get("userID")
	id, _ := v.(int64)
	return id
}
