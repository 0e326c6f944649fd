package port

import (
	"context"

	"github.com/nikolayk812/orders/internal/domain"
)

type OrderService interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, orderID int64, input domain.Order) (domain.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error

	CancelOrder(ctx context.Context, orderID int64) (domain.Order, error)
	RepeatOrder(ctx context.Context, orderID int64) (domain.Order, error)

	AddItem(ctx context.Context, orderID int64, input domain.Item) (domain.Item, error)
	ListItems(ctx context.Context, orderID int64) ([]domain.Item, error)
	GetItem(ctx context.Context, orderID, itemID int64) (domain.Item, error)
	UpdateItem(ctx context.Context, orderID, itemID int64, input domain.Item) (domain.Item, error)
	DeleteItem(ctx context.Context, orderID, itemID int64) error
}
