package service

import (
	"context"
	"errors"
	"testing"
	"time"

	perrors "github.com/DayanAguilar/pharmacy-api/internal/product/errors"
	productstore "github.com/DayanAguilar/pharmacy-api/internal/product/store"
	sellerrors "github.com/DayanAguilar/pharmacy-api/internal/sell/errors"
	"github.com/DayanAguilar/pharmacy-api/internal/sell/store"
	"github.com/DayanAguilar/pharmacy-api/pkg/config"
	"github.com/DayanAguilar/pharmacy-api/pkg/messaging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSellStore is a mock implementation of the SellStore interface
type mockSellStore struct {
	sell        *store.Sell
	remaining   int32
	sells       []store.Sell
	error       error
	createCalls int
}

func (m *mockSellStore) CreateSell(_ context.Context, _ store.CreateSellParams) (*store.Sell, int32, error) {
	m.createCalls++
	if m.error != nil {
		return nil, 0, m.error
	}
	return m.sell, m.remaining, nil
}

func (m *mockSellStore) ListByDate(_ context.Context, _ time.Time) ([]store.Sell, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.sells, nil
}

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	product *productstore.Product
	error   error
}

func (m *mockProductStore) FindByID(_ context.Context, _ int64) (*productstore.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductStore) FindAll(_ context.Context) ([]productstore.Product, error) {
	return nil, nil
}

func (m *mockProductStore) Create(_ context.Context, _ productstore.CreateParams) (*productstore.Product, error) {
	return nil, nil
}

func (m *mockProductStore) Update(_ context.Context, _ productstore.UpdateParams) (*productstore.Product, error) {
	return nil, nil
}

func (m *mockProductStore) DeleteByID(_ context.Context, _ int64) error {
	return nil
}

// mockPublisher records published events
type mockPublisher struct {
	events []messaging.Event
	error  error
}

func (m *mockPublisher) Publish(_ context.Context, event messaging.Event) error {
	if m.error != nil {
		return m.error
	}
	m.events = append(m.events, event)
	return nil
}

func Test_SellService_Create(t *testing.T) {
	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		mockStore   *mockSellStore
		sell        SellCreateDto
		expected    *SellDto
		expectError error
	}{
		{
			name: "Success - sell created",
			mockStore: &mockSellStore{
				sell: &store.Sell{
					ID:          1,
					ProductID:   7,
					Date:        date,
					Quantity:    3,
					TotalPrice:  decimal.RequireFromString("22.5"),
					ProductName: "Paracetamol 500mg",
				},
				remaining: 10,
			},
			sell: SellCreateDto{ProductID: 7, Quantity: 3},
			expected: &SellDto{
				SellID:      1,
				ProductID:   7,
				Quantity:    3,
				TotalPrice:  22.5,
				ProductName: "Paracetamol 500mg",
				Date:        "2024-05-10",
			},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockSellStore{error: perrors.ErrProductNotFound},
			sell:        SellCreateDto{ProductID: 99, Quantity: 1},
			expectError: perrors.ErrProductNotFound,
		},
		{
			name:        "Error - insufficient stock",
			mockStore:   &mockSellStore{error: sellerrors.ErrInsufficientStock},
			sell:        SellCreateDto{ProductID: 7, Quantity: 100},
			expectError: sellerrors.ErrInsufficientStock,
		},
		{
			name:        "Error - concurrent modification",
			mockStore:   &mockSellStore{error: sellerrors.ErrConflict},
			sell:        SellCreateDto{ProductID: 7, Quantity: 1},
			expectError: sellerrors.ErrConflict,
		},
		{
			name:        "Error - store error",
			mockStore:   &mockSellStore{error: sellerrors.ErrCreateSell},
			sell:        SellCreateDto{ProductID: 7, Quantity: 1},
			expectError: sellerrors.ErrCreateSell,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, &mockProductStore{}, &mockPublisher{}, 0, config.ReportSourceSnapshot)
			// when
			created, err := service.Create(context.Background(), tc.sell)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, created)
		})
	}
}

func Test_SellService_Create_NotDeduplicated(t *testing.T) {
	// given
	mockStore := &mockSellStore{
		sell: &store.Sell{
			ID:          1,
			ProductID:   7,
			Date:        time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			Quantity:    1,
			TotalPrice:  decimal.RequireFromString("7.5"),
			ProductName: "Paracetamol 500mg",
		},
		remaining: 8,
	}
	service := NewService(mockStore, &mockProductStore{}, &mockPublisher{}, 0, config.ReportSourceSnapshot)
	sell := SellCreateDto{ProductID: 7, Quantity: 1}

	// when: two identical calls
	_, err1 := service.Create(context.Background(), sell)
	_, err2 := service.Create(context.Background(), sell)

	// then: both reach the store, nothing is deduplicated
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, 2, mockStore.createCalls)
}

func Test_SellService_Create_LowStockAlert(t *testing.T) {
	sell := &store.Sell{
		ID:          1,
		ProductID:   7,
		Date:        time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Quantity:    2,
		TotalPrice:  decimal.RequireFromString("15"),
		ProductName: "Paracetamol 500mg",
	}

	testCases := []struct {
		name         string
		remaining    int32
		threshold    int32
		publishError error
		expectAlert  bool
	}{
		{name: "alert published at threshold", remaining: 5, threshold: 5, expectAlert: true},
		{name: "alert published below threshold", remaining: 2, threshold: 5, expectAlert: true},
		{name: "no alert above threshold", remaining: 6, threshold: 5, expectAlert: false},
		{name: "publish failure does not fail the sale", remaining: 1, threshold: 5, publishError: errors.New("nats unavailable"), expectAlert: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mockStore := &mockSellStore{sell: sell, remaining: tc.remaining}
			publisher := &mockPublisher{error: tc.publishError}
			service := NewService(mockStore, &mockProductStore{}, publisher, tc.threshold, config.ReportSourceSnapshot)

			// when
			created, err := service.Create(context.Background(), SellCreateDto{ProductID: 7, Quantity: 2})

			// then
			require.NoError(t, err)
			require.NotNil(t, created)
			if tc.expectAlert {
				require.Len(t, publisher.events, 1)
				assert.Equal(t, messaging.StockAlertSubject, publisher.events[0].Subject())
			} else {
				assert.Empty(t, publisher.events)
			}
		})
	}
}

func Test_SellService_ReportByDate(t *testing.T) {
	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	sells := []store.Sell{
		{ID: 1, ProductID: 7, Date: date, Quantity: 3, TotalPrice: decimal.RequireFromString("22.5"), ProductName: "Paracetamol 500mg"},
		{ID: 2, ProductID: 7, Date: date, Quantity: 1, TotalPrice: decimal.RequireFromString("7.5"), ProductName: "Paracetamol 500mg"},
	}

	testCases := []struct {
		name         string
		mockStore    *mockSellStore
		productStore *mockProductStore
		reportSource string
		expected     []ReportEntryDto
		expectError  error
	}{
		{
			name:         "Snapshot - stored name served even after a rename",
			mockStore:    &mockSellStore{sells: sells},
			productStore: &mockProductStore{product: &productstore.Product{ProductID: 7, Name: "Paracetamol forte"}},
			reportSource: config.ReportSourceSnapshot,
			expected: []ReportEntryDto{
				{ProductName: "Paracetamol 500mg", Date: "2024-05-10"},
				{ProductName: "Paracetamol 500mg", Date: "2024-05-10"},
			},
		},
		{
			name:         "Live - current name resolved",
			mockStore:    &mockSellStore{sells: sells},
			productStore: &mockProductStore{product: &productstore.Product{ProductID: 7, Name: "Paracetamol forte"}},
			reportSource: config.ReportSourceLive,
			expected: []ReportEntryDto{
				{ProductName: "Paracetamol forte", Date: "2024-05-10"},
				{ProductName: "Paracetamol forte", Date: "2024-05-10"},
			},
		},
		{
			name:         "Live - orphaned records are skipped, not errors",
			mockStore:    &mockSellStore{sells: sells},
			productStore: &mockProductStore{error: perrors.ErrProductNotFound},
			reportSource: config.ReportSourceLive,
			expected:     []ReportEntryDto{},
		},
		{
			name:         "Success - no sells yields empty slice",
			mockStore:    &mockSellStore{sells: []store.Sell{}},
			productStore: &mockProductStore{},
			reportSource: config.ReportSourceSnapshot,
			expected:     []ReportEntryDto{},
		},
		{
			name:         "Error - store error",
			mockStore:    &mockSellStore{error: errors.New("connection lost")},
			productStore: &mockProductStore{},
			reportSource: config.ReportSourceSnapshot,
			expectError:  errors.New("connection lost"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, tc.productStore, &mockPublisher{}, 0, tc.reportSource)
			// when
			entries, err := service.ReportByDate(context.Background(), date)
			// then
			if tc.expectError != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectError.Error())
				assert.Nil(t, entries)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, entries)
		})
	}
}
