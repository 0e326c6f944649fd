package httpx_test

import (
	"context"

	"github.com/nikolayk812/orders/internal/domain"
	"github.com/nikolayk812/orders/internal/port"
	"github.com/stretchr/testify/mock"
)

type orderServiceMock struct {
	mock.Mock
}

var _ port.OrderService = (*orderServiceMock)(nil)

func (m *orderServiceMock) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *orderServiceMock) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *orderServiceMock) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *orderServiceMock) UpdateOrder(ctx context.Context, orderID int64, input domain.Order) (domain.Order, error) {
	args := m.Called(ctx, orderID, input)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *orderServiceMock) DeleteOrder(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *orderServiceMock) CancelOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *orderServiceMock) RepeatOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *orderServiceMock) AddItem(ctx context.Context, orderID int64, input domain.Item) (domain.Item, error) {
	args := m.Called(ctx, orderID, input)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *orderServiceMock) ListItems(ctx context.Context, orderID int64) ([]domain.Item, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *orderServiceMock) GetItem(ctx context.Context, orderID, itemID int64) (domain.Item, error) {
	args := m.Called(ctx, orderID, itemID)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *orderServiceMock) UpdateItem(ctx context.Context, orderID, itemID int64, input domain.Item) (domain.Item, error) {
	args := m.Called(ctx, orderID, itemID, input)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *orderServiceMock) DeleteItem(ctx context.Context, orderID, itemID int64) error {
	args := m.Called(ctx, orderID, itemID)
	return args.Error(0)
}
