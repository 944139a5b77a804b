package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/minizon/minizon/internal/models"
)

// OrderStore owns orders and order lines: checkout (see checkout.go),
// buyer-side history and the seller-side fulfillment flow.
type OrderStore struct {
	DB *sql.DB
}

func (s *OrderStore) ListForBuyer(ctx context.Context, buyerID int64) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, reference, buyer_id, address, total_price, status, created_at
		FROM orders
		WHERE buyer_id = ?
		ORDER BY created_at DESC`, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Reference, &o.BuyerID, &o.Address,
			&o.TotalPrice, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Get fetches one order with its lines, verifying buyer ownership.
func (s *OrderStore) Get(ctx context.Context, buyerID, orderID int64) (*models.Order, []models.OrderLine, error) {
	var o models.Order
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, reference, buyer_id, address, total_price, status, created_at
		FROM orders
		WHERE id = ? AND buyer_id = ?`, orderID, buyerID).Scan(
		&o.ID, &o.Reference, &o.BuyerID, &o.Address, &o.TotalPrice, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT ol.order_id, ol.item_id, ol.seller_id, ol.quantity, ol.price,
		       ol.fulfilled, ol.fulfilled_at, i.name, u.name
		FROM order_lines ol
		JOIN items i ON i.id = ol.item_id
		JOIN users u ON u.id = ol.seller_id
		WHERE ol.order_id = ?`, o.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch order lines: %w", err)
	}
	defer rows.Close()

	lines := []models.OrderLine{}
	for rows.Next() {
		var l models.OrderLine
		var fulfilledAt sql.NullTime
		if err := rows.Scan(&l.OrderID, &l.ItemID, &l.SellerID, &l.Quantity,
			&l.Price, &l.Fulfilled, &fulfilledAt, &l.ItemName, &l.SellerName); err != nil {
			return nil, nil, err
		}
		if fulfilledAt.Valid {
			l.FulfilledAt = &fulfilledAt.Time
		}
		lines = append(lines, l)
	}
	return &o, lines, rows.Err()
}

// SalesForSeller lists the order lines addressed to the caller as seller,
// newest orders first, so a seller can work through unshipped goods.
func (s *OrderStore) SalesForSeller(ctx context.Context, sellerID int64) ([]models.SaleLine, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT ol.order_id, o.reference, ol.item_id, i.name, u.name, o.address,
		       ol.quantity, ol.price, ol.fulfilled, o.created_at
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		JOIN items i ON i.id = ol.item_id
		JOIN users u ON u.id = o.buyer_id
		WHERE ol.seller_id = ?
		ORDER BY o.created_at DESC`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := []models.SaleLine{}
	for rows.Next() {
		var sl models.SaleLine
		if err := rows.Scan(&sl.OrderID, &sl.OrderReference, &sl.ItemID, &sl.ItemName,
			&sl.BuyerName, &sl.Address, &sl.Quantity, &sl.Price, &sl.Fulfilled,
			&sl.OrderedAt); err != nil {
			return nil, err
		}
		sales = append(sales, sl)
	}
	return sales, rows.Err()
}

// MarkFulfilled flags one order line as shipped by its seller and recomputes
// the order's denormalized status by re-scanning all of its lines in the
// same transaction. Marking an already-fulfilled line fails with
// ErrAlreadyFulfilled and leaves the status untouched.
func (s *OrderStore) MarkFulfilled(ctx context.Context, sellerID, orderID, itemID int64) (string, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE order_lines SET fulfilled = TRUE, fulfilled_at = ?
		WHERE order_id = ? AND item_id = ? AND seller_id = ? AND fulfilled = FALSE`,
		time.Now(), orderID, itemID, sellerID)
	if err != nil {
		return "", fmt.Errorf("failed to mark order line fulfilled: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var fulfilled bool
		err := tx.QueryRowContext(ctx, `
			SELECT fulfilled FROM order_lines
			WHERE order_id = ? AND item_id = ? AND seller_id = ?`,
			orderID, itemID, sellerID).Scan(&fulfilled)
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		if err != nil {
			return "", err
		}
		return "", ErrAlreadyFulfilled
	}

	// Recompute-on-write: re-scan every line of the order rather than
	// keeping an unfulfilled counter.
	rows, err := tx.QueryContext(ctx,
		"SELECT fulfilled FROM order_lines WHERE order_id = ?", orderID)
	if err != nil {
		return "", fmt.Errorf("failed to re-scan order lines: %w", err)
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.Fulfilled); err != nil {
			return "", err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	status := models.DeriveOrderStatus(lines)
	if _, err := tx.ExecContext(ctx,
		"UPDATE orders SET status = ? WHERE id = ?", status, orderID); err != nil {
		return "", fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return status, nil
}
