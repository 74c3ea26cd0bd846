package service

import (
	"context"
	"io"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/internal/infrastructure/posapi"
)

// The interfaces below are the slices of the POS API each service needs.
// *posapi.Client satisfies all of them; handlers pass the client bound to
// the caller's session.

// AuthAPI signs in and out of the POS API.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*posapi.LoginResult, error)
	Logout(ctx context.Context) error
}

// BillAPI reads and writes bills.
type BillAPI interface {
	ListBills(ctx context.Context) ([]entity.RawInvoice, error)
	GetBill(ctx context.Context, id string) (*entity.RawInvoice, error)
	CreateBill(ctx context.Context, req posapi.CreateBillRequest) (*entity.RawInvoice, error)
	PayBill(ctx context.Context, id, paymentMethod string, paidAt time.Time) (*entity.RawInvoice, error)
}

// ProductAPI manages the menu.
type ProductAPI interface {
	ListProducts(ctx context.Context, filter posapi.ProductFilter) ([]entity.Product, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	CreateProduct(ctx context.Context, req posapi.CreateProductRequest) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id string, req posapi.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UploadProductImage(ctx context.Context, filename string, content io.Reader) (string, error)
}

// UserAPI manages POS accounts.
type UserAPI interface {
	ListUsers(ctx context.Context, filter posapi.UserFilter) (posapi.Page[entity.Employee], error)
	GetUser(ctx context.Context, id string) (*entity.Employee, error)
	CreateUser(ctx context.Context, req posapi.CreateUserRequest) (*entity.Employee, error)
	UpdateUser(ctx context.Context, id string, req posapi.UpdateUserRequest) (*entity.Employee, error)
	ChangeUserRole(ctx context.Context, id, role string) (*entity.Employee, error)
	SetUserActive(ctx context.Context, id string, active bool) (*entity.Employee, error)
	ResetUserPassword(ctx context.Context, id, newPassword string) error
	DeleteUser(ctx context.Context, id string) error
}

var (
	_ AuthAPI    = (*posapi.Client)(nil)
	_ BillAPI    = (*posapi.Client)(nil)
	_ ProductAPI = (*posapi.Client)(nil)
	_ UserAPI    = (*posapi.Client)(nil)
)
