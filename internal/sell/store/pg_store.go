package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	perrors "github.com/DayanAguilar/pharmacy-api/internal/product/errors"
	sellerrors "github.com/DayanAguilar/pharmacy-api/internal/sell/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of SellStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
	}
}

// CreateSell executes the sell workflow inside one transaction. The SELECT ...
// FOR UPDATE takes a row-level exclusive lock on the product, so concurrent
// sales against the same product serialize on the stock check.
func (p *PgStore) CreateSell(ctx context.Context, params CreateSellParams) (*Sell, int32, error) {
	var sell *Sell
	var remaining int32

	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		var name string
		var sellPrice decimal.Decimal
		var stock int32
		err := tx.QueryRow(ctx,
			`SELECT product, sell_price, stock FROM products WHERE product_id = $1 FOR UPDATE`,
			params.ProductID).Scan(&name, &sellPrice, &stock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return perrors.ErrProductNotFound
			}
			return fmt.Errorf("failed to lock product row: %w", err)
		}

		if params.Quantity > stock {
			return fmt.Errorf("not enough stock for product %d. Available: %d, Requested: %d: %w",
				params.ProductID, stock, params.Quantity, sellerrors.ErrInsufficientStock)
		}

		totalPrice := sellPrice.Mul(decimal.NewFromInt32(params.Quantity))

		var id int64
		var date time.Time
		err = tx.QueryRow(ctx,
			`INSERT INTO sells (product_id, date, quantity, total_price, product)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, date`,
			params.ProductID, params.Date, params.Quantity, totalPrice, name).Scan(&id, &date)
		if err != nil {
			return fmt.Errorf("%w: %v", sellerrors.ErrCreateSell, err)
		}

		// The stock >= quantity guard backstops the row lock: zero rows here
		// means the row changed underneath us and the sale must not commit.
		tag, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $1 WHERE product_id = $2 AND stock >= $1`,
			params.Quantity, params.ProductID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return sellerrors.ErrConflict
		}

		sell = &Sell{
			ID:          id,
			ProductID:   params.ProductID,
			Date:        date,
			Quantity:    params.Quantity,
			TotalPrice:  totalPrice,
			ProductName: name,
		}
		remaining = stock - params.Quantity
		return nil
	})

	if txErr != nil {
		return nil, 0, txErr
	}

	return sell, remaining, nil
}

// ListByDate returns all sells recorded on the given date in insertion order.
func (p *PgStore) ListByDate(ctx context.Context, date time.Time) ([]Sell, error) {
	rows, err := p.db.Query(ctx,
		`SELECT id, product_id, date, quantity, total_price, product
		 FROM sells
		 WHERE date = $1
		 ORDER BY id`,
		date)
	if err != nil {
		return nil, fmt.Errorf("failed to find sells by date: %w", err)
	}
	defer rows.Close()

	sells := make([]Sell, 0)
	for rows.Next() {
		var sell Sell
		err := rows.Scan(&sell.ID, &sell.ProductID, &sell.Date, &sell.Quantity, &sell.TotalPrice, &sell.ProductName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sell row: %w", err)
		}
		sells = append(sells, sell)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sell rows: %w", err)
	}
	return sells, nil
}

func (p *PgStore) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return sellerrors.ErrTransactionBegin
	}

	err = fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return sellerrors.ErrTransactionRollback
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return sellerrors.ErrTransactionCommit
	}

	return nil
}
