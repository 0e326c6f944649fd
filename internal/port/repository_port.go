package port

import (
	"context"

	"github.com/nikolayk812/orders/internal/domain"
)

// Repository holds the lookups every persisted entity supports.
// Delete reports whether a record was removed; a missing record is not an error.
type Repository[T any, ID comparable] interface {
	Get(ctx context.Context, id ID) (T, error)
	All(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id ID) (bool, error)
}

type OrderRepository interface {
	Repository[domain.Order, int64]

	// Insert stores the order with its items and returns it with assigned IDs.
	Insert(ctx context.Context, order domain.Order) (domain.Order, error)
	// Update stores the order row only, items are left as they are.
	Update(ctx context.Context, order domain.Order) (domain.Order, error)

	Search(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

type ItemRepository interface {
	Repository[domain.Item, int64]

	Insert(ctx context.Context, item domain.Item) (domain.Item, error)
	Update(ctx context.Context, item domain.Item) (domain.Item, error)

	ListByOrder(ctx context.Context, orderID int64) ([]domain.Item, error)
	DeleteByOrder(ctx context.Context, orderID int64) (int64, error)
}

type Repositories struct {
	Orders OrderRepository
	Items  ItemRepository
}

// Transactor runs fn with repositories bound to a single transaction.
// The transaction commits if fn returns nil and rolls back otherwise.
type Transactor interface {
	InTx(ctx context.Context, fn func(repos Repositories) error) error
}
