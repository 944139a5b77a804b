package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/minizon/minizon/internal/models"
)

// CartStore owns the 'carts' table: per-buyer staged selections referencing
// a specific (item, seller) inventory line.
type CartStore struct {
	DB *sql.DB
}

func (s *CartStore) Lines(ctx context.Context, buyerID int64) ([]models.CartLine, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT c.buyer_id, c.item_id, c.seller_id, c.quantity, c.price, c.created_at,
		       i.name, u.name
		FROM carts c
		JOIN items i ON i.id = c.item_id
		JOIN users u ON u.id = c.seller_id
		WHERE c.buyer_id = ?
		ORDER BY c.created_at ASC`, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var l models.CartLine
		if err := rows.Scan(&l.BuyerID, &l.ItemID, &l.SellerID, &l.Quantity,
			&l.Price, &l.CreatedAt, &l.ItemName, &l.SellerName); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Add stages a purchase from one seller's inventory record, snapshotting the
// price at the moment of the call. It fails when the buyer lists this item
// as a seller themselves, when the (item, seller) pair is already staged, or
// when the seller has no such record.
func (s *CartStore) Add(ctx context.Context, buyerID, itemID, sellerID int64, quantity int) (*models.CartLine, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var selfListed bool
	err = tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM inventory WHERE seller_id = ? AND item_id = ?)",
		buyerID, itemID).Scan(&selfListed)
	if err != nil {
		return nil, fmt.Errorf("failed to check own inventory: %w", err)
	}
	if selfListed {
		return nil, ErrSelfInventoryConflict
	}

	line := &models.CartLine{
		BuyerID:  buyerID,
		ItemID:   itemID,
		SellerID: sellerID,
		Quantity: quantity,
	}

	// Snapshot the price from the seller's current inventory row.
	err = tx.QueryRowContext(ctx,
		"SELECT price FROM inventory WHERE seller_id = ? AND item_id = ?",
		sellerID, itemID).Scan(&line.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read inventory price: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO carts (buyer_id, item_id, seller_id, quantity, price)
		VALUES (?, ?, ?, ?, ?)`,
		line.BuyerID, line.ItemID, line.SellerID, line.Quantity, line.Price)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateCartLine
		}
		return nil, fmt.Errorf("failed to add cart line: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateQuantity edits a staged line. Quantity 0 removes the line, matching
// the inventory remove_if_zero rule. The price snapshot is not refreshed.
func (s *CartStore) UpdateQuantity(ctx context.Context, buyerID, itemID, sellerID int64, quantity int) error {
	if quantity == 0 {
		return s.Remove(ctx, buyerID, itemID, sellerID)
	}

	res, err := s.DB.ExecContext(ctx, `
		UPDATE carts SET quantity = ?
		WHERE buyer_id = ? AND item_id = ? AND seller_id = ?`,
		quantity, buyerID, itemID, sellerID)
	if err != nil {
		return fmt.Errorf("failed to update cart line: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := s.DB.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM carts WHERE buyer_id = ? AND item_id = ? AND seller_id = ?)",
			buyerID, itemID, sellerID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}

func (s *CartStore) Remove(ctx context.Context, buyerID, itemID, sellerID int64) error {
	res, err := s.DB.ExecContext(ctx,
		"DELETE FROM carts WHERE buyer_id = ? AND item_id = ? AND seller_id = ?",
		buyerID, itemID, sellerID)
	if err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
