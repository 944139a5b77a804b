package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minizon/minizon/internal/models"
)

// UserStore owns the 'users' table: registration, lookup, profile edits and
// balance credits. Balance debits happen only inside the checkout
// transaction in OrderStore.
type UserStore struct {
	DB *sql.DB
}

// Register inserts a new user. The email is unique across the marketplace.
func (s *UserStore) Register(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, address, balance)
		VALUES (?, ?, ?, ?, ?)`

	res, err := s.DB.ExecContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Address, user.Balance)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID, err = res.LastInsertId()
	return err
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "SELECT id, name, email, password_hash, address, balance, created_at, updated_at FROM users WHERE email = ?", email)
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.getUser(ctx, "SELECT id, name, email, password_hash, address, balance, created_at, updated_at FROM users WHERE id = ?", id)
}

func (s *UserStore) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Address, &u.Balance,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &u, nil
}

// UpdateProfile changes name and delivery address. The address snapshot on
// existing orders is unaffected.
func (s *UserStore) UpdateProfile(ctx context.Context, id int64, name, address string) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE users SET name = ?, address = ?, updated_at = ? WHERE id = ?",
		name, address, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Credit adds a positive amount to the user's balance and returns the new
// balance.
func (s *UserStore) Credit(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("credit amount must be positive, got %s", amount)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE users SET balance = balance + ? WHERE id = ?", amount, id)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to credit balance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return decimal.Zero, ErrNotFound
	}

	var balance decimal.Decimal
	if err := tx.QueryRowContext(ctx,
		"SELECT balance FROM users WHERE id = ?", id).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to read new balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
