package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name       string          `json:"name" binding:"required,max=255"`
	Price      decimal.Decimal `json:"price"`
	Note       string          `json:"note" binding:"max=1000"`
	CategoryID string          `json:"category_id" binding:"required"`
	ImagePath  string          `json:"image_path"`
}

// UpdateProductRequest represents a product update request.
// Images replaces the gallery only when present.
type UpdateProductRequest struct {
	Name   string          `json:"name" binding:"required,max=255"`
	Price  decimal.Decimal `json:"price"`
	Note   string          `json:"note" binding:"max=1000"`
	Images []string        `json:"images"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Category string `form:"category"`
	Query    string `form:"q"`
}
