package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/minizon/minizon/internal/models"
)

// checkoutLine is one cart line joined with the seller's current stock, as
// seen under the checkout transaction's row locks.
type checkoutLine struct {
	models.CartLine
	Listed    bool // seller still has an inventory record for the item
	Available int  // current stock; meaningless when !Listed
}

// validateCheckout runs the read-phase checks of the checkout algorithm over
// a consistent snapshot: non-empty cart, sufficient balance, then sufficient
// stock per line. It returns the order total on success. Balance is checked
// before stock, so an underfunded checkout never reports stock problems.
func validateCheckout(lines []checkoutLine, balance decimal.Decimal) (decimal.Decimal, error) {
	if len(lines) == 0 {
		return decimal.Zero, ErrEmptyCart
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}

	if balance.LessThan(total) {
		return decimal.Zero, ErrInsufficientBalance
	}

	for _, l := range lines {
		if !l.Listed || l.Available < l.Quantity {
			available := 0
			if l.Listed {
				available = l.Available
			}
			return decimal.Zero, &InsufficientStockError{
				SellerID:  l.SellerID,
				ItemID:    l.ItemID,
				ItemName:  l.ItemName,
				Requested: l.Quantity,
				Available: available,
			}
		}
	}

	return total, nil
}

// Checkout converts the buyer's cart into an immutable order: it validates
// stock and balance against locked rows, creates the order header and lines,
// decrements inventory, empties the cart and debits the balance, all inside
// one transaction. Any failure rolls back every step.
func (s *OrderStore) Checkout(ctx context.Context, buyerID int64) (*models.Order, error) {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("failed to start checkout transaction: %w", err)
	}
	defer tx.Rollback()

	var address string
	var balance decimal.Decimal
	err = tx.QueryRowContext(ctx,
		"SELECT address, balance FROM users WHERE id = ? FOR UPDATE", buyerID).
		Scan(&address, &balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read buyer: %w", err)
	}

	// Lock the cart lines and the inventory rows they point at. A listing
	// the seller has since removed joins as NULL and fails stock validation.
	rows, err := tx.QueryContext(ctx, `
		SELECT c.item_id, c.seller_id, c.quantity, c.price, i.name, inv.quantity
		FROM carts c
		JOIN items i ON i.id = c.item_id
		LEFT JOIN inventory inv ON inv.seller_id = c.seller_id AND inv.item_id = c.item_id
		WHERE c.buyer_id = ?
		FOR UPDATE`, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	defer rows.Close()

	var lines []checkoutLine
	for rows.Next() {
		var l checkoutLine
		var stock sql.NullInt64
		if err := rows.Scan(&l.ItemID, &l.SellerID, &l.Quantity, &l.Price,
			&l.ItemName, &stock); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		l.BuyerID = buyerID
		l.Listed = stock.Valid
		l.Available = int(stock.Int64)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	total, err := validateCheckout(lines, balance)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Reference:  uuid.NewString(),
		BuyerID:    buyerID,
		Address:    address,
		TotalPrice: total,
		Status:     models.OrderStatusPending,
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (reference, buyer_id, address, total_price, status)
		VALUES (?, ?, ?, ?, ?)`,
		order.Reference, order.BuyerID, order.Address, order.TotalPrice, order.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if order.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}

	for _, l := range lines {
		// Guarded decrement: the condition re-validates stock at write time,
		// so a concurrent checkout that won the race fails here instead of
		// oversubscribing the seller's supply.
		res, err := tx.ExecContext(ctx, `
			UPDATE inventory SET quantity = quantity - ?
			WHERE seller_id = ? AND item_id = ? AND quantity >= ?`,
			l.Quantity, l.SellerID, l.ItemID, l.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement inventory: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, &InsufficientStockError{
				SellerID:  l.SellerID,
				ItemID:    l.ItemID,
				ItemName:  l.ItemName,
				Requested: l.Quantity,
				Available: l.Available,
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_lines (order_id, item_id, seller_id, quantity, price)
			VALUES (?, ?, ?, ?, ?)`,
			order.ID, l.ItemID, l.SellerID, l.Quantity, l.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to create order line: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM carts WHERE buyer_id = ?", buyerID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	// Guarded debit mirrors the guarded decrement; the balance was checked
	// above but the condition keeps the non-negativity invariant on the
	// write itself.
	res, err = tx.ExecContext(ctx, `
		UPDATE users SET balance = balance - ?
		WHERE id = ? AND balance >= ?`,
		total, buyerID, total)
	if err != nil {
		return nil, fmt.Errorf("failed to debit balance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrInsufficientBalance
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}
	return order, nil
}
