package handler

import (
	"github.com/bidacafe/pos-gateway/internal/application/service"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/dto/request"
	"github.com/bidacafe/pos-gateway/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles menu product and category HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), client, filter.Category, filter.Query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", products)
}

// ListCategories handles listing menu categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	categories, err := h.productService.ListCategories(c.Request.Context(), client)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if req.Price.IsNegative() {
		response.BadRequest(c, "Price must not be negative")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), client, &service.CreateProductInput{
		Name:       req.Name,
		Price:      req.Price,
		Note:       req.Note,
		CategoryID: req.CategoryID,
		ImagePath:  req.ImagePath,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if req.Price.IsNegative() {
		response.BadRequest(c, "Price must not be negative")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), client, &service.UpdateProductInput{
		ID:     c.Param("id"),
		Name:   req.Name,
		Price:  req.Price,
		Note:   req.Note,
		Images: req.Images,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), client, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// UploadImage forwards a multipart "image" file to the POS server
func (h *ProductHandler) UploadImage(c *gin.Context) {
	client, ok := posClient(c)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "Image file is unreadable")
		return
	}
	defer file.Close()

	path, err := h.productService.UploadImage(c.Request.Context(), client, header.Filename, header.Size, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Image uploaded successfully", gin.H{"path": path})
}
