package store

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// User-facing, recoverable failure conditions. Handlers translate these into
// HTTP statuses; nothing here is a fatal process error.
var (
	ErrNotFound              = errors.New("record not found")
	ErrDuplicateEmail        = errors.New("email address already registered")
	ErrDuplicateListing      = errors.New("item already listed in your inventory")
	ErrDuplicateCartLine     = errors.New("item from this seller is already in your cart")
	ErrSelfInventoryConflict = errors.New("you already list this item as a seller")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrAlreadyFulfilled      = errors.New("order line already fulfilled")
	ErrDuplicateUpvote       = errors.New("rating already upvoted")
)

// InsufficientStockError reports which seller/item could not cover the
// requested quantity, so the caller can act on it.
type InsufficientStockError struct {
	SellerID  int64
	ItemID    int64
	ItemName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (seller %d): requested %d, available %d",
		e.ItemName, e.SellerID, e.Requested, e.Available)
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry violation.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// isForeignKeyViolation reports whether err is a MySQL foreign key failure.
func isForeignKeyViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1452
}
