package service

import (
	"context"
	"io"
	"strings"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/internal/infrastructure/posapi"
	"github.com/bidacafe/pos-gateway/pkg/apperror"
	"github.com/bidacafe/pos-gateway/pkg/money"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Defaults the cashier app uses for drinks added from the phone.
const (
	defaultProductUnit = "ly"
	maxImageBytes      = 5 << 20
)

// ProductService manages the café menu held by the POS API.
type ProductService struct {
	pageSize int
	log      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(pageSize int, log *zap.Logger) *ProductService {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &ProductService{pageSize: pageSize, log: log.Named("product")}
}

// ListProducts returns the menu, optionally narrowed to a category or a search.
func (s *ProductService) ListProducts(ctx context.Context, api ProductAPI, categoryID, search string) ([]entity.Product, error) {
	products, err := api.ListProducts(ctx, posapi.ProductFilter{
		Page:     1,
		Limit:    s.pageSize,
		Category: strings.TrimSpace(categoryID),
		Query:    strings.TrimSpace(search),
	})
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}
	for i := range products {
		withPriceText(&products[i])
	}
	return products, nil
}

// ListCategories returns the menu categories for the product form.
func (s *ProductService) ListCategories(ctx context.Context, api ProductAPI) ([]entity.Category, error) {
	categories, err := api.ListCategories(ctx)
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}
	return categories, nil
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name       string
	Price      decimal.Decimal
	Note       string
	CategoryID string
	ImagePath  string
}

// CreateProduct adds a drink or dish to the menu.
func (s *ProductService) CreateProduct(ctx context.Context, api ProductAPI, input *CreateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Vui lòng nhập tên mặt hàng")
	}
	if strings.TrimSpace(input.CategoryID) == "" {
		return nil, apperror.NewBadRequestError("Vui lòng chọn danh mục")
	}

	req := posapi.CreateProductRequest{
		Name:     name,
		Category: input.CategoryID,
		Price:    input.Price.InexactFloat64(),
		Unit:     defaultProductUnit,
		Images:   []string{},
		Tags:     []string{},
		Active:   true,
		Note:     input.Note,
	}
	if input.ImagePath != "" {
		req.Images = []string{input.ImagePath}
	}

	product, err := api.CreateProduct(ctx, req)
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}
	s.log.Info("product created", zap.String("product_id", product.ID), zap.String("name", name))
	return withPriceText(product), nil
}

// UpdateProductInput represents the update product input.
// Images replaces the gallery only when non-nil.
type UpdateProductInput struct {
	ID     string
	Name   string
	Price  decimal.Decimal
	Note   string
	Images []string
}

func (s *ProductService) UpdateProduct(ctx context.Context, api ProductAPI, input *UpdateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Vui lòng nhập tên mặt hàng")
	}

	product, err := api.UpdateProduct(ctx, input.ID, posapi.UpdateProductRequest{
		Name:   name,
		Price:  input.Price.InexactFloat64(),
		Note:   input.Note,
		Images: input.Images,
	})
	if err != nil {
		return nil, apperror.FromUpstream(err)
	}
	return withPriceText(product), nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, api ProductAPI, id string) error {
	if err := api.DeleteProduct(ctx, id); err != nil {
		return apperror.FromUpstream(err)
	}
	s.log.Info("product deleted", zap.String("product_id", id))
	return nil
}

// UploadImage forwards a product photo and returns its stored path.
func (s *ProductService) UploadImage(ctx context.Context, api ProductAPI, filename string, size int64, content io.Reader) (string, error) {
	if size > maxImageBytes {
		return "", apperror.NewBadRequestError("Image is larger than 5MB")
	}
	path, err := api.UploadProductImage(ctx, filename, content)
	if err != nil {
		return "", apperror.FromUpstream(err)
	}
	if path == "" {
		return "", apperror.ErrUpstreamUnavailable
	}
	return path, nil
}

func withPriceText(p *entity.Product) *entity.Product {
	p.PriceText = money.Format(p.Price)
	return p
}
