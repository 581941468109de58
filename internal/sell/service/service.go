// Package service provides the implementation of the sell workflow and the
// date report query.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	perrors "github.com/DayanAguilar/pharmacy-api/internal/product/errors"
	productstore "github.com/DayanAguilar/pharmacy-api/internal/product/store"
	"github.com/DayanAguilar/pharmacy-api/internal/sell/store"
	"github.com/DayanAguilar/pharmacy-api/pkg/config"
	"github.com/DayanAguilar/pharmacy-api/pkg/messaging"
	"github.com/DayanAguilar/pharmacy-api/pkg/messaging/events"
)

// dateLayout is the wire format for transaction dates.
const dateLayout = "2006-01-02"

// SellService defines the methods for recording and reporting sales.
// It abstracts the underlying business logic and data access.
type SellService interface {
	// Create records one sale as a single atomic unit and returns the
	// persisted record. The transaction date is assigned by the server.
	// Returns ErrProductNotFound, ErrInsufficientStock or ErrConflict on the
	// corresponding business rule violations; none of them leave any
	// persisted side effect.
	Create(ctx context.Context, sell SellCreateDto) (*SellDto, error)

	// ReportByDate returns one entry per sale recorded on the given date.
	// Returns an empty slice if no sales exist on that date.
	ReportByDate(ctx context.Context, date time.Time) ([]ReportEntryDto, error)
}

// Service implements SellService and provides methods to manage sells.
type Service struct {
	sellStore      store.SellStore
	productStore   productstore.ProductStore
	publisher      messaging.Publisher
	alertThreshold int32
	reportSource   string
}

// NewService creates a new instance of SellService with the provided stores.
// reportSource selects the product-name source for ReportByDate
// (config.ReportSourceSnapshot or config.ReportSourceLive).
func NewService(sellStore store.SellStore, productStore productstore.ProductStore, publisher messaging.Publisher, alertThreshold int32, reportSource string) *Service {
	return &Service{
		sellStore:      sellStore,
		productStore:   productStore,
		publisher:      publisher,
		alertThreshold: alertThreshold,
		reportSource:   reportSource,
	}
}

// SellCreateDto represents the data transfer object for recording a new sale.
type SellCreateDto struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Quantity  int32 `json:"quantity"   validate:"required,min=1"`
}

// SellDto represents the data transfer object for a recorded sale.
// TotalPrice and ProductName are fixed at creation time.
type SellDto struct {
	SellID      int64   `json:"sell_id"`
	ProductID   int64   `json:"product_id"`
	Quantity    int32   `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`
	ProductName string  `json:"product"`
	Date        string  `json:"date"`
}

// ReportEntryDto is one line of the date report.
type ReportEntryDto struct {
	ProductName string `json:"product_name"`
	Date        string `json:"date"`
}

// Create records a sale and returns it as a SellDto. Two identical calls
// create two distinct records; the operation is deliberately not idempotent.
func (s *Service) Create(ctx context.Context, sell SellCreateDto) (*SellDto, error) {
	created, remaining, err := s.sellStore.CreateSell(ctx, store.CreateSellParams{
		ProductID: sell.ProductID,
		Quantity:  sell.Quantity,
		Date:      time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if remaining <= s.alertThreshold {
		event := events.StockAlertEvent{
			ProductID:   created.ProductID,
			ProductName: created.ProductName,
			Stock:       remaining,
			OccurredAt:  time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			slog.ErrorContext(ctx, "Failed to publish StockAlertEvent", "product_id", created.ProductID, "error", err)
		}
	}

	return toDto(created), nil
}

// ReportByDate retrieves the sales recorded on the given date. In snapshot
// mode the name stored at transaction time is served; in live mode the current
// product name is resolved and records whose product has been deleted are
// logged and skipped.
func (s *Service) ReportByDate(ctx context.Context, date time.Time) ([]ReportEntryDto, error) {
	sells, err := s.sellStore.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sells for date %s: %w", date.Format(dateLayout), err)
	}

	entries := make([]ReportEntryDto, 0, len(sells))
	for _, sell := range sells {
		name := sell.ProductName
		if s.reportSource == config.ReportSourceLive {
			product, err := s.productStore.FindByID(ctx, sell.ProductID)
			if err != nil {
				if errors.Is(err, perrors.ErrProductNotFound) {
					slog.WarnContext(ctx, "Skipping sell with deleted product", "sell_id", sell.ID, "product_id", sell.ProductID)
					continue
				}
				return nil, fmt.Errorf("failed to resolve product %d: %w", sell.ProductID, err)
			}
			name = product.Name
		}
		entries = append(entries, ReportEntryDto{
			ProductName: name,
			Date:        sell.Date.Format(dateLayout),
		})
	}
	return entries, nil
}

// toDto converts a store.Sell to a SellDto.
func toDto(sell *store.Sell) *SellDto {
	return &SellDto{
		SellID:      sell.ID,
		ProductID:   sell.ProductID,
		Quantity:    sell.Quantity,
		TotalPrice:  sell.TotalPrice.InexactFloat64(),
		ProductName: sell.ProductName,
		Date:        sell.Date.Format(dateLayout),
	}
}
