package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orders/internal/db"
	"github.com/nikolayk812/orders/internal/domain"
	"github.com/nikolayk812/orders/internal/port"
	"github.com/samber/lo"
)

type orderRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewOrder(pool *pgxpool.Pool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, errors.New("pool is nil")
	}

	return &orderRepository{
		q:    db.New(pool),
		dbtx: pool,
	}, nil
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		dbtx: tx, // use provided transaction instead
	}
}

func (r *orderRepository) Get(ctx context.Context, orderID int64) (domain.Order, error) {
	var o domain.Order

	order, err := withQueries(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		dbOrder, err := q.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return o, fmt.Errorf("q.GetOrder: %w", domain.ErrNotFound)
			}
			return o, fmt.Errorf("q.GetOrder: %w", err)
		}

		dbOrderItems, err := q.GetOrderItems(ctx, orderID)
		if err != nil {
			return o, fmt.Errorf("q.GetOrderItems: %w", err)
		}

		domainOrder, err := mapDBOrderToDomain(dbOrder, dbOrderItems)
		if err != nil {
			return o, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}

		return domainOrder, nil
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) All(ctx context.Context) ([]domain.Order, error) {
	return r.Search(ctx, domain.OrderFilter{})
}

func (r *orderRepository) Insert(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.ID != 0 {
		return order, errors.New("order is already persisted")
	}

	// do not write IDs into the caller's backing array
	order.Items = slices.Clone(order.Items)

	inserted, err := withQueries(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		orderID, err := q.InsertOrder(ctx, db.InsertOrderParams{
			CustomerID:      order.CustomerID,
			Status:          string(order.Status),
			TotalPrice:      order.TotalPrice,
			CreationTime:    order.CreationTime,
			LastUpdatedTime: order.LastUpdatedTime,
		})
		if err != nil {
			return order, fmt.Errorf("q.InsertOrder: %w", err)
		}

		// TODO: batch insert with pgx.Batch once orders carry many items
		for idx, item := range order.Items {
			itemID, err := q.InsertOrderItem(ctx, mapDomainItemToInsertParams(orderID, item))
			if err != nil {
				return order, fmt.Errorf("q.InsertOrderItem: %w", err)
			}

			order.Items[idx].ID = itemID
			order.Items[idx].OrderID = orderID
		}

		order.ID = orderID
		return order, nil
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("withTx: %w", err)
	}

	return inserted, nil
}

func (r *orderRepository) Update(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.ID == 0 {
		return order, fmt.Errorf("orderID is empty")
	}

	cmdTag, err := r.q.UpdateOrder(ctx, db.UpdateOrderParams{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		Status:          string(order.Status),
		TotalPrice:      order.TotalPrice,
		LastUpdatedTime: order.LastUpdatedTime,
	})
	if err != nil {
		return order, fmt.Errorf("q.UpdateOrder: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return order, fmt.Errorf("q.UpdateOrder: %w", domain.ErrNotFound)
	}

	return order, nil
}

func (r *orderRepository) Search(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	dbFilter := mapDomainOrderFilterToDBFilter(filter.Effective())

	orders, err := withQueries(ctx, r.dbtx, func(q *db.Queries) ([]domain.Order, error) {
		dbOrders, err := q.SearchOrders(ctx, dbFilter)
		if err != nil {
			return nil, fmt.Errorf("q.SearchOrders: %w", err)
		}

		orderIDs := lo.Map(dbOrders, func(o db.Order, _ int) int64 { return o.ID })

		var dbItems []db.OrderItem
		if len(orderIDs) > 0 {
			dbItems, err = q.GetOrderItemsByOrderIDs(ctx, orderIDs)
			if err != nil {
				return nil, fmt.Errorf("q.GetOrderItemsByOrderIDs: %w", err)
			}
		}

		itemsByOrder := lo.GroupBy(dbItems, func(item db.OrderItem) int64 { return item.OrderID })

		result := make([]domain.Order, 0, len(dbOrders))
		for _, dbOrder := range dbOrders {
			order, err := mapDBOrderToDomain(dbOrder, itemsByOrder[dbOrder.ID])
			if err != nil {
				return nil, fmt.Errorf("mapDBOrderToDomain: %w", err)
			}
			result = append(result, order)
		}

		return result, nil
	})
	if err != nil {
		return nil, fmt.Errorf("withTx: %w", err)
	}

	return orders, nil
}

// Delete removes the order, order_items rows go with it via ON DELETE CASCADE.
func (r *orderRepository) Delete(ctx context.Context, orderID int64) (bool, error) {
	if orderID == 0 {
		return false, fmt.Errorf("orderID is empty")
	}

	cmdTag, err := r.q.DeleteOrder(ctx, orderID)
	if err != nil {
		return false, fmt.Errorf("q.DeleteOrder: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func mapDomainOrderFilterToDBFilter(filter domain.OrderFilter) db.SearchOrdersParams {
	var status *string
	if filter.Status != nil {
		status = lo.ToPtr(string(*filter.Status))
	}

	params := db.SearchOrdersParams{
		CustomerID: filter.CustomerID,
		Status:     status,
	}

	if createdAt := filter.CreatedAt(); createdAt != nil {
		params.CreatedAfter = createdAt.After
		params.CreatedBefore = createdAt.Before
	}

	return params
}

func mapDBOrderToDomain(dbOrder db.Order, dbOrderItems []db.OrderItem) (domain.Order, error) {
	var o domain.Order

	status, err := domain.ToOrderStatus(dbOrder.Status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", dbOrder.Status, err)
	}

	return domain.Order{
		ID:              dbOrder.ID,
		CustomerID:      dbOrder.CustomerID,
		Status:          status,
		Items:           mapDBItemsToDomain(dbOrderItems),
		TotalPrice:      dbOrder.TotalPrice,
		CreationTime:    dbOrder.CreationTime.UTC(),
		LastUpdatedTime: dbOrder.LastUpdatedTime.UTC(),
	}, nil
}
