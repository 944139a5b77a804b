package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/minizon/minizon/internal/models"
)

// CatalogStore owns the shared reference data: categories and items.
// Prices and stock are deliberately absent here; they belong to the
// per-seller inventory records.
type CatalogStore struct {
	DB *sql.DB
}

func (s *CatalogStore) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	res, err := s.DB.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("category %q: %w", name, ErrDuplicateListing)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Category{ID: id, Name: name}, nil
}

func (s *CatalogStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateItem adds a catalog entry. The creator is recorded but listing the
// item for sale is a separate inventory operation.
func (s *CatalogStore) CreateItem(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (name, description, category_id, creator_id)
		VALUES (?, ?, ?, ?)`

	res, err := s.DB.ExecContext(ctx, query,
		item.Name, item.Description, item.CategoryID, item.CreatorID)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	item.ID, err = res.LastInsertId()
	return err
}

// SearchItems lists catalog items, optionally filtered by a name substring
// and/or category.
func (s *CatalogStore) SearchItems(ctx context.Context, name string, categoryID int64) ([]models.Item, error) {
	query := `
		SELECT i.id, i.name, i.description, i.category_id, i.creator_id, i.created_at, c.name
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE 1=1`
	args := []interface{}{}

	if name != "" {
		query += " AND i.name LIKE ?"
		args = append(args, "%"+name+"%")
	}
	if categoryID > 0 {
		query += " AND i.category_id = ?"
		args = append(args, categoryID)
	}
	query += " ORDER BY i.name ASC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.CategoryID,
			&it.CreatorID, &it.CreatedAt, &it.CategoryName); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetItem returns the item plus the aggregates the detail view needs:
// min/avg offer price over live inventory, average rating, and the list of
// current offers. Aggregates stay nil when no rows exist to aggregate.
func (s *CatalogStore) GetItem(ctx context.Context, id int64) (*models.ItemDetail, error) {
	var d models.ItemDetail

	err := s.DB.QueryRowContext(ctx, `
		SELECT i.id, i.name, i.description, i.category_id, i.creator_id, i.created_at, c.name
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE i.id = ?`, id).Scan(
		&d.ID, &d.Name, &d.Description, &d.CategoryID, &d.CreatorID, &d.CreatedAt, &d.CategoryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch item: %w", err)
	}

	// Price aggregates over sellable inventory only.
	var minPrice, avgPrice decimal.NullDecimal
	err = s.DB.QueryRowContext(ctx, `
		SELECT MIN(price), AVG(price)
		FROM inventory
		WHERE item_id = ? AND quantity > 0`, id).Scan(&minPrice, &avgPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate prices: %w", err)
	}
	if minPrice.Valid {
		d.MinPrice = &minPrice.Decimal
	}
	if avgPrice.Valid {
		d.AvgPrice = &avgPrice.Decimal
	}

	var avgRating sql.NullFloat64
	err = s.DB.QueryRowContext(ctx, `
		SELECT AVG(rating), COUNT(*)
		FROM item_ratings
		WHERE item_id = ?`, id).Scan(&avgRating, &d.RatingCount)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	if avgRating.Valid {
		d.AvgRating = &avgRating.Float64
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT inv.seller_id, u.name, inv.price, inv.quantity
		FROM inventory inv
		JOIN users u ON u.id = inv.seller_id
		WHERE inv.item_id = ? AND inv.quantity > 0
		ORDER BY inv.price ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	d.Offers = []models.InventoryOffer{}
	for rows.Next() {
		var o models.InventoryOffer
		if err := rows.Scan(&o.SellerID, &o.SellerName, &o.Price, &o.Quantity); err != nil {
			return nil, err
		}
		d.Offers = append(d.Offers, o)
	}
	return &d, rows.Err()
}
