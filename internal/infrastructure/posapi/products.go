package posapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
)

// ProductFilter narrows GET /products.
type ProductFilter struct {
	Page     int
	Limit    int
	Category string
	Query    string
}

// CreateProductRequest is the body of POST /products.
type CreateProductRequest struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Price     float64  `json:"price"`
	Unit      string   `json:"unit"`
	IsService bool     `json:"isService"`
	Images    []string `json:"images"`
	Tags      []string `json:"tags"`
	Active    bool     `json:"active"`
	Note      string   `json:"note"`
}

// UpdateProductRequest is the body of PUT /products/:id. Images is only
// sent when non-nil.
type UpdateProductRequest struct {
	Name   string   `json:"name"`
	Price  float64  `json:"price"`
	Note   string   `json:"note"`
	Images []string `json:"images,omitempty"`
}

// ListProducts returns the menu, one page of at most filter.Limit items.
func (c *Client) ListProducts(ctx context.Context, filter ProductFilter) ([]entity.Product, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(filter.Page))
	query.Set("limit", strconv.Itoa(filter.Limit))
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}

	var data json.RawMessage
	if _, err := c.doJSON(ctx, http.MethodGet, "/products", query, nil, &data); err != nil {
		return nil, err
	}
	page, err := decodePage[entity.Product](data)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// ListCategories returns the menu categories.
func (c *Client) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var data json.RawMessage
	if _, err := c.doJSON(ctx, http.MethodGet, "/categories", nil, nil, &data); err != nil {
		return nil, err
	}
	page, err := decodePage[entity.Category](data)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (*entity.Product, error) {
	if req.Images == nil {
		req.Images = []string{}
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}
	var product entity.Product
	if _, err := c.doJSON(ctx, http.MethodPost, "/products", nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*entity.Product, error) {
	var product entity.Product
	if _, err := c.doJSON(ctx, http.MethodPut, "/products/"+url.PathEscape(id), nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil, nil)
	return err
}

// ImageContentType guesses the MIME type from the file extension: png or jpeg.
func ImageContentType(filename string) string {
	if strings.EqualFold(path.Ext(filename), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}

// UploadProductImage forwards an image as multipart field "image" and
// returns the stored path, e.g. /uploads/products/abc.jpg.
func (c *Client) UploadProductImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	if filename == "" {
		filename = "image.jpg"
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	header.Set("Content-Type", ImageContentType(filename))
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("posapi: build upload: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("posapi: build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("posapi: build upload: %w", err)
	}

	const uploadPath = "/products/upload-image"
	req, err := c.newRequest(ctx, http.MethodPost, uploadPath, nil, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var data struct {
		Path string `json:"path"`
	}
	if _, err := c.send(req, uploadPath, &data); err != nil {
		return "", err
	}
	return data.Path, nil
}
