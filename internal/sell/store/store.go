// Package store provides an interface for sell storage operations.
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Sell is a row of the sells ledger. Rows are immutable once written.
// ProductName maps to the legacy "product" column and holds the name snapshot
// captured at transaction time.
type Sell struct {
	ID          int64
	ProductID   int64
	Date        time.Time
	Quantity    int32
	TotalPrice  decimal.Decimal
	ProductName string
}

// CreateSellParams identifies the product, quantity and transaction date of a
// new sale. Total price and name snapshot are derived inside the transaction
// from the locked product row, never supplied by the caller twice.
type CreateSellParams struct {
	ProductID int64
	Quantity  int32
	Date      time.Time
}

// SellStore is an interface for sell storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type SellStore interface {
	// CreateSell executes one sale as a single atomic unit: it locks the
	// product row, validates stock, inserts the ledger row and decrements
	// stock. Either both writes commit or neither does.
	// Returns ErrProductNotFound if the product does not exist,
	// ErrInsufficientStock if quantity exceeds current stock, and ErrConflict
	// if the stock update lost a race with a concurrent transaction.
	// The second return value is the stock remaining after the sale.
	CreateSell(ctx context.Context, params CreateSellParams) (*Sell, int32, error)

	// ListByDate returns all sells recorded on the given date in insertion
	// order. Returns an empty slice if none exist.
	ListByDate(ctx context.Context, date time.Time) ([]Sell, error)
}
