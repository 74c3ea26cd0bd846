package service

import (
	"context"
	"io"
	"time"

	"github.com/bidacafe/pos-gateway/internal/domain/entity"
	"github.com/bidacafe/pos-gateway/internal/infrastructure/posapi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAuthAPI struct{ mock.Mock }

func (m *mockAuthAPI) Login(ctx context.Context, username, password string) (*posapi.LoginResult, error) {
	args := m.Called(ctx, username, password)
	result, _ := args.Get(0).(*posapi.LoginResult)
	return result, args.Error(1)
}

func (m *mockAuthAPI) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockBillAPI struct{ mock.Mock }

func (m *mockBillAPI) ListBills(ctx context.Context) ([]entity.RawInvoice, error) {
	args := m.Called(ctx)
	bills, _ := args.Get(0).([]entity.RawInvoice)
	return bills, args.Error(1)
}

func (m *mockBillAPI) GetBill(ctx context.Context, id string) (*entity.RawInvoice, error) {
	args := m.Called(ctx, id)
	bill, _ := args.Get(0).(*entity.RawInvoice)
	return bill, args.Error(1)
}

func (m *mockBillAPI) CreateBill(ctx context.Context, req posapi.CreateBillRequest) (*entity.RawInvoice, error) {
	args := m.Called(ctx, req)
	bill, _ := args.Get(0).(*entity.RawInvoice)
	return bill, args.Error(1)
}

func (m *mockBillAPI) PayBill(ctx context.Context, id, paymentMethod string, paidAt time.Time) (*entity.RawInvoice, error) {
	args := m.Called(ctx, id, paymentMethod, paidAt)
	bill, _ := args.Get(0).(*entity.RawInvoice)
	return bill, args.Error(1)
}

type mockProductAPI struct{ mock.Mock }

func (m *mockProductAPI) ListProducts(ctx context.Context, filter posapi.ProductFilter) ([]entity.Product, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]entity.Product)
	return products, args.Error(1)
}

func (m *mockProductAPI) ListCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]entity.Category)
	return categories, args.Error(1)
}

func (m *mockProductAPI) CreateProduct(ctx context.Context, req posapi.CreateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, req)
	product, _ := args.Get(0).(*entity.Product)
	return product, args.Error(1)
}

func (m *mockProductAPI) UpdateProduct(ctx context.Context, id string, req posapi.UpdateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, id, req)
	product, _ := args.Get(0).(*entity.Product)
	return product, args.Error(1)
}

func (m *mockProductAPI) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductAPI) UploadProductImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	args := m.Called(ctx, filename, content)
	return args.String(0), args.Error(1)
}

type mockUserAPI struct{ mock.Mock }

func (m *mockUserAPI) ListUsers(ctx context.Context, filter posapi.UserFilter) (posapi.Page[entity.Employee], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(posapi.Page[entity.Employee]), args.Error(1)
}

func (m *mockUserAPI) GetUser(ctx context.Context, id string) (*entity.Employee, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.Employee)
	return user, args.Error(1)
}

func (m *mockUserAPI) CreateUser(ctx context.Context, req posapi.CreateUserRequest) (*entity.Employee, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*entity.Employee)
	return user, args.Error(1)
}

func (m *mockUserAPI) UpdateUser(ctx context.Context, id string, req posapi.UpdateUserRequest) (*entity.Employee, error) {
	args := m.Called(ctx, id, req)
	user, _ := args.Get(0).(*entity.Employee)
	return user, args.Error(1)
}

func (m *mockUserAPI) ChangeUserRole(ctx context.Context, id, role string) (*entity.Employee, error) {
	args := m.Called(ctx, id, role)
	user, _ := args.Get(0).(*entity.Employee)
	return user, args.Error(1)
}

func (m *mockUserAPI) SetUserActive(ctx context.Context, id string, active bool) (*entity.Employee, error) {
	args := m.Called(ctx, id, active)
	user, _ := args.Get(0).(*entity.Employee)
	return user, args.Error(1)
}

func (m *mockUserAPI) ResetUserPassword(ctx context.Context, id, newPassword string) error {
	return m.Called(ctx, id, newPassword).Error(0)
}

func (m *mockUserAPI) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (m *mockSessionRepo) Touch(ctx context.Context, id uuid.UUID, seenAt time.Time) error {
	return m.Called(ctx, id, seenAt).Error(0)
}

func (m *mockSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
