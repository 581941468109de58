// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/DayanAguilar/pharmacy-api/internal/product/store"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for expire_date and alert_date.
const dateLayout = "2006-01-02"

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// FindAll returns all available products.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// Create adds a new product to the system.
	// Returns error if the product cannot be created.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update replaces an existing product's details.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, product ProductCreateDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductCreateDto represents the data transfer object for creating or
// replacing a product. Dates use the YYYY-MM-DD format.
type ProductCreateDto struct {
	Category   string  `json:"category"    validate:"max=100"`
	Name       string  `json:"product"     validate:"required,max=200"`
	Laboratory string  `json:"laboratory"  validate:"max=200"`
	BuyPrice   float64 `json:"buy_price"   validate:"gte=0"`
	SellPrice  float64 `json:"sell_price"  validate:"gte=0"`
	Stock      int32   `json:"stock"       validate:"gte=0"`
	ExpireDate *string `json:"expire_date" validate:"omitempty,datetime=2006-01-02"`
	AlertDate  *string `json:"alert_date"  validate:"omitempty,datetime=2006-01-02"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ProductID  int64   `json:"product_id"`
	Category   string  `json:"category"`
	Name       string  `json:"product"`
	Laboratory string  `json:"laboratory"`
	BuyPrice   float64 `json:"buy_price"`
	SellPrice  float64 `json:"sell_price"`
	Stock      int32   `json:"stock"`
	ExpireDate *string `json:"expire_date"`
	AlertDate  *string `json:"alert_date"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	return toDto(product), nil
}

// FindAll retrieves a list of all products and returns them as ProductDTOs.
// Returns an empty slice if no products exist or error if the retrieval fails.
func (s *Service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Create creates a new product and returns it as a ProductDto.
// Returns an error if the product cannot be created.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	params, err := toCreateParams(product)
	if err != nil {
		return nil, err
	}
	p, err := s.repository.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(p), nil
}

// Update replaces an existing product's details and returns the updated product as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id int64, product ProductCreateDto) (*ProductDto, error) {
	params, err := toCreateParams(product)
	if err != nil {
		return nil, err
	}
	updated, err := s.repository.Update(ctx, store.UpdateParams{
		ProductID:  id,
		Category:   params.Category,
		Name:       params.Name,
		Laboratory: params.Laboratory,
		BuyPrice:   params.BuyPrice,
		SellPrice:  params.SellPrice,
		Stock:      params.Stock,
		ExpireDate: params.ExpireDate,
		AlertDate:  params.AlertDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	return s.repository.DeleteByID(ctx, id)
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ProductID:  product.ProductID,
		Category:   product.Category,
		Name:       product.Name,
		Laboratory: product.Laboratory,
		BuyPrice:   product.BuyPrice.InexactFloat64(),
		SellPrice:  product.SellPrice.InexactFloat64(),
		Stock:      product.Stock,
		ExpireDate: formatDate(product.ExpireDate),
		AlertDate:  formatDate(product.AlertDate),
	}
}

func toCreateParams(product ProductCreateDto) (store.CreateParams, error) {
	expireDate, err := parseDate(product.ExpireDate)
	if err != nil {
		return store.CreateParams{}, fmt.Errorf("invalid expire_date: %w", err)
	}
	alertDate, err := parseDate(product.AlertDate)
	if err != nil {
		return store.CreateParams{}, fmt.Errorf("invalid alert_date: %w", err)
	}
	return store.CreateParams{
		Category:   product.Category,
		Name:       product.Name,
		Laboratory: product.Laboratory,
		BuyPrice:   decimal.NewFromFloat(product.BuyPrice),
		SellPrice:  decimal.NewFromFloat(product.SellPrice),
		Stock:      product.Stock,
		ExpireDate: expireDate,
		AlertDate:  alertDate,
	}, nil
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	s := value.Format(dateLayout)
	return &s
}
