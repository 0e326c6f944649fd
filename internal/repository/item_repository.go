package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orders/internal/db"
	"github.com/nikolayk812/orders/internal/domain"
	"github.com/nikolayk812/orders/internal/port"
	"github.com/samber/lo"
)

const foreignKeyViolation = "23503"

type itemRepository struct {
	q *db.Queries
}

func NewItem(pool *pgxpool.Pool) (port.ItemRepository, error) {
	if pool == nil {
		return nil, errors.New("pool is nil")
	}

	return &itemRepository{
		q: db.New(pool),
	}, nil
}

func NewItemWithTx(tx pgx.Tx) port.ItemRepository {
	return &itemRepository{
		q: db.New(tx),
	}
}

func (r *itemRepository) Get(ctx context.Context, itemID int64) (domain.Item, error) {
	dbItem, err := r.q.GetOrderItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Item{}, fmt.Errorf("q.GetOrderItem: %w", domain.ErrItemNotFound)
		}
		return domain.Item{}, fmt.Errorf("q.GetOrderItem: %w", err)
	}

	return mapDBItemToDomain(dbItem), nil
}

func (r *itemRepository) All(ctx context.Context) ([]domain.Item, error) {
	dbItems, err := r.q.ListOrderItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrderItems: %w", err)
	}

	return mapDBItemsToDomain(dbItems), nil
}

func (r *itemRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.Item, error) {
	dbItems, err := r.q.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("q.GetOrderItems: %w", err)
	}

	return mapDBItemsToDomain(dbItems), nil
}

// Insert stores a standalone item. The parent order is not touched.
func (r *itemRepository) Insert(ctx context.Context, item domain.Item) (domain.Item, error) {
	if item.OrderID == 0 {
		return item, fmt.Errorf("orderID is empty")
	}

	itemID, err := r.q.InsertOrderItem(ctx, mapDomainItemToInsertParams(item.OrderID, item))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return item, fmt.Errorf("q.InsertOrderItem: %w", domain.ErrNotFound)
		}
		return item, fmt.Errorf("q.InsertOrderItem: %w", err)
	}

	item.ID = itemID
	return item, nil
}

// Update stores item fields as they are; order_id never changes.
func (r *itemRepository) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	if item.ID == 0 {
		return item, fmt.Errorf("itemID is empty")
	}

	cmdTag, err := r.q.UpdateOrderItem(ctx, db.UpdateOrderItemParams{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Description: item.Description,
		Quantity:    item.Quantity,
	})
	if err != nil {
		return item, fmt.Errorf("q.UpdateOrderItem: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return item, fmt.Errorf("q.UpdateOrderItem: %w", domain.ErrItemNotFound)
	}

	return item, nil
}

func (r *itemRepository) Delete(ctx context.Context, itemID int64) (bool, error) {
	if itemID == 0 {
		return false, fmt.Errorf("itemID is empty")
	}

	cmdTag, err := r.q.DeleteOrderItem(ctx, itemID)
	if err != nil {
		return false, fmt.Errorf("q.DeleteOrderItem: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func (r *itemRepository) DeleteByOrder(ctx context.Context, orderID int64) (int64, error) {
	cmdTag, err := r.q.DeleteOrderItems(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("q.DeleteOrderItems: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

func mapDomainItemToInsertParams(orderID int64, item domain.Item) db.InsertOrderItemParams {
	return db.InsertOrderItemParams{
		OrderID:     orderID,
		Name:        item.Name,
		Price:       item.Price,
		Description: item.Description,
		Quantity:    item.Quantity,
	}
}

func mapDBItemToDomain(row db.OrderItem) domain.Item {
	return domain.Item{
		ID:          row.ID,
		OrderID:     row.OrderID,
		Name:        row.Name,
		Price:       row.Price,
		Description: row.Description,
		Quantity:    row.Quantity,
	}
}

func mapDBItemsToDomain(rows []db.OrderItem) []domain.Item {
	return lo.Map(rows, func(row db.OrderItem, _ int) domain.Item {
		return mapDBItemToDomain(row)
	})
}
