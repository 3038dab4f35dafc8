package handler

import (
	"context"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"miniinventory/internal/export"
	"miniinventory/internal/model"
	"miniinventory/internal/service"
)

// MockInventoryService is a mock implementation of InventoryService.
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) List(ctx context.Context, filter string) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockInventoryService) Get(ctx context.Context, id uint) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockInventoryService) Insert(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockInventoryService) Update(ctx context.Context, id uint, input model.ProductInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockInventoryService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryService) Dashboard(ctx context.Context) (*service.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

func (m *MockInventoryService) Export(ctx context.Context, w io.Writer, format export.Format, filter string) error {
	args := m.Called(ctx, w, format, filter)
	return args.Error(0)
}

func (m *MockInventoryService) ExportFile(ctx context.Context, path string, format export.Format, filter string) (int, error) {
	args := m.Called(ctx, path, format, filter)
	return args.Int(0), args.Error(1)
}

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Verify(ctx context.Context, username, password string) (bool, error) {
	args := m.Called(ctx, username, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) EnsureDefaultAdmin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, string, *model.User, error) {
	args := m.Called(ctx, username, password)
	var user *model.User
	if u := args.Get(2); u != nil {
		user = u.(*model.User)
	}
	return args.String(0), args.String(1), user, args.Error(3)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}
