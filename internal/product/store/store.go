// Package store provides an interface for product storage operations.
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a row of the products table. Name maps to the legacy "product"
// column, ExpireDate and AlertDate are optional.
type Product struct {
	ProductID  int64
	Category   string
	Name       string
	Laboratory string
	BuyPrice   decimal.Decimal
	SellPrice  decimal.Decimal
	Stock      int32
	ExpireDate *time.Time
	AlertDate  *time.Time
}

// CreateParams holds the attributes of a new product. The identifier is
// assigned by the store.
type CreateParams struct {
	Category   string
	Name       string
	Laboratory string
	BuyPrice   decimal.Decimal
	SellPrice  decimal.Decimal
	Stock      int32
	ExpireDate *time.Time
	AlertDate  *time.Time
}

// UpdateParams holds the full replacement state for an existing product.
type UpdateParams struct {
	ProductID  int64
	Category   string
	Name       string
	Laboratory string
	BuyPrice   decimal.Decimal
	SellPrice  decimal.Decimal
	Stock      int32
	ExpireDate *time.Time
	AlertDate  *time.Time
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindAll returns all available products ordered by identifier.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// Create adds a new product to the system.
	// Returns error if the product cannot be created.
	Create(ctx context.Context, params CreateParams) (*Product, error)

	// Update replaces an existing product's details.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, params UpdateParams) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}
