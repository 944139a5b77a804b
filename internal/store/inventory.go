package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/minizon/minizon/internal/models"
)

// InventoryStore owns the 'inventory' table: the authoritative sellable
// supply, one row per (seller, item). Quantity never goes negative; the
// checkout decrement in OrderStore is a guarded conditional update.
type InventoryStore struct {
	DB *sql.DB
}

func (s *InventoryStore) ListForSeller(ctx context.Context, sellerID int64) ([]models.InventoryRecord, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT inv.seller_id, inv.item_id, inv.quantity, inv.price, inv.updated_at, i.name
		FROM inventory inv
		JOIN items i ON i.id = inv.item_id
		WHERE inv.seller_id = ?
		ORDER BY i.name ASC`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	records := []models.InventoryRecord{}
	for rows.Next() {
		var r models.InventoryRecord
		if err := rows.Scan(&r.SellerID, &r.ItemID, &r.Quantity, &r.Price,
			&r.UpdatedAt, &r.ItemName); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Create lists an item for sale. A seller may hold at most one inventory
// record per item; the composite primary key enforces it and a second
// attempt fails with ErrDuplicateListing.
func (s *InventoryStore) Create(ctx context.Context, rec *models.InventoryRecord) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM items WHERE id = ?)", rec.ItemID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check item: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	query := `
		INSERT INTO inventory (seller_id, item_id, quantity, price)
		VALUES (?, ?, ?, ?)`
	_, err = s.DB.ExecContext(ctx, query, rec.SellerID, rec.ItemID, rec.Quantity, rec.Price)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateListing
		}
		return fmt.Errorf("failed to create inventory record: %w", err)
	}
	return nil
}

// Update sets price and quantity on an existing record. Setting quantity to
// exactly 0 removes the record entirely (remove_if_zero).
func (s *InventoryStore) Update(ctx context.Context, sellerID, itemID int64, price decimal.Decimal, quantity int) error {
	if quantity == 0 {
		return s.Delete(ctx, sellerID, itemID)
	}

	res, err := s.DB.ExecContext(ctx, `
		UPDATE inventory SET price = ?, quantity = ?
		WHERE seller_id = ? AND item_id = ?`,
		price, quantity, sellerID, itemID)
	if err != nil {
		return fmt.Errorf("failed to update inventory record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "no such record" from "nothing changed".
		var exists bool
		if err := s.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM inventory WHERE seller_id = ? AND item_id = ?)",
			sellerID, itemID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}

func (s *InventoryStore) Delete(ctx context.Context, sellerID, itemID int64) error {
	res, err := s.DB.ExecContext(ctx,
		"DELETE FROM inventory WHERE seller_id = ? AND item_id = ?", sellerID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete inventory record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
