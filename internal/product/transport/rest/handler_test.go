package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perrors "github.com/DayanAguilar/pharmacy-api/internal/product/errors"
	"github.com/DayanAguilar/pharmacy-api/internal/product/service"
	"github.com/stretchr/testify/assert"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	product  *service.ProductDto
	products []service.ProductDto
	error    error
}

func (m *mockProductService) FindByID(_ context.Context, _ int64) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) FindAll(_ context.Context) ([]service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductCreateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Update(_ context.Context, _ int64, _ service.ProductCreateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) DeleteByID(_ context.Context, _ int64) error {
	return m.error
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

func Test_ProductAPI_FindByID(t *testing.T) {
	dto := &service.ProductDto{
		ProductID: 1,
		Category:  "analgesic",
		Name:      "Ibuprofen 400mg",
		SellPrice: 7.5,
		Stock:     10,
	}

	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product found",
			mockService:  mockProductService{product: dto},
			productID:    "1",
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, dto),
		},
		{
			name:         "Error - invalid id",
			mockService:  mockProductService{},
			productID:    "abc",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid ID: abc"}),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: perrors.ErrProductNotFound},
			productID:    "99",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Product with ID 99 not found"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("connection lost")},
			productID:    "1",
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to retrieve product with ID 1"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
			api := NewHandler(&tc.mockService, logger)

			req := httptest.NewRequest(http.MethodGet, "/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()

			// when
			api.FindByID(rr, req)

			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_FindAll(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - products found",
			mockService: mockProductService{
				products: []service.ProductDto{
					{ProductID: 1, Name: "Ibuprofen 400mg", SellPrice: 7.5, Stock: 10},
					{ProductID: 2, Name: "Paracetamol 500mg", SellPrice: 3, Stock: 4},
				},
			},
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, []service.ProductDto{
				{ProductID: 1, Name: "Ibuprofen 400mg", SellPrice: 7.5, Stock: 10},
				{ProductID: 2, Name: "Paracetamol 500mg", SellPrice: 3, Stock: 4},
			}),
		},
		{
			name:         "Success - no products",
			mockService:  mockProductService{products: []service.ProductDto{}},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("connection lost")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to fetch products"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
			api := NewHandler(&tc.mockService, logger)

			req := httptest.NewRequest(http.MethodGet, "/products", nil)
			rr := httptest.NewRecorder()

			// when
			api.FindAll(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_Create(t *testing.T) {
	dto := &service.ProductDto{
		ProductID: 3,
		Name:      "Amoxicillin 500mg",
		SellPrice: 15.5,
		Stock:     20,
	}

	testCases := []struct {
		name         string
		mockService  mockProductService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product created",
			mockService:  mockProductService{product: dto},
			body:         `{"product": "Amoxicillin 500mg", "sell_price": 15.5, "stock": 20}`,
			expectedCode: http.StatusCreated,
			expectedBody: toJSON(t, dto),
		},
		{
			name:         "Error - missing name",
			mockService:  mockProductService{},
			body:         `{"sell_price": 15.5, "stock": 20}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors": {"Name": "failed on rule: required"}}`,
		},
		{
			name:         "Error - negative price",
			mockService:  mockProductService{},
			body:         `{"product": "Amoxicillin 500mg", "sell_price": -1}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors": {"SellPrice": "failed on rule: gte"}}`,
		},
		{
			name:         "Error - invalid body",
			mockService:  mockProductService{},
			body:         `{"product": `,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid request body"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
			api := NewHandler(&tc.mockService, logger)

			req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			// when
			api.Create(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_Delete(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
	}{
		{
			name:         "Success - product deleted",
			mockService:  mockProductService{},
			productID:    "1",
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: perrors.ErrProductNotFound},
			productID:    "99",
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
			api := NewHandler(&tc.mockService, logger)

			req := httptest.NewRequest(http.MethodDelete, "/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()

			// when
			api.Delete(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
		})
	}
}
