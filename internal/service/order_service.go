// Package service maintains the Order aggregate: derived totals, update
// timestamps, cascade deletes, cancellation and repeating of orders.
//
// Every exported method runs in exactly one database transaction.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/nikolayk812/orders/internal/domain"
	"github.com/nikolayk812/orders/internal/port"
)

type OrderService struct {
	tx     port.Transactor
	now    func() time.Time
	logger *slog.Logger

	// cascade makes item changes refresh the parent order in the same transaction
	cascade bool
}

var _ port.OrderService = (*OrderService)(nil)

type Option func(*OrderService)

func WithClock(now func() time.Time) Option {
	return func(s *OrderService) {
		s.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *OrderService) {
		s.logger = logger
	}
}

// WithItemCascade controls whether AddItem, UpdateItem and DeleteItem refresh
// the parent order's total and update time. When disabled the caller has to
// call RefreshOrder or UpdateOrder afterwards.
func WithItemCascade(enabled bool) Option {
	return func(s *OrderService) {
		s.cascade = enabled
	}
}

func NewOrderService(tx port.Transactor, opts ...Option) (*OrderService, error) {
	if tx == nil {
		return nil, errors.New("transactor is nil")
	}

	s := &OrderService{
		tx:      tx,
		now:     time.Now,
		logger:  slog.Default(),
		cascade: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.now == nil {
		return nil, errors.New("clock is nil")
	}
	if s.logger == nil {
		return nil, errors.New("logger is nil")
	}

	return s, nil
}

// CreateOrder stores order as a new record, whatever ID it carries.
func (s *OrderService) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	var created domain.Order

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		var err error
		created, err = s.createOrder(ctx, repos, order)
		return err
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("tx.InTx: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		"method", "OrderService.CreateOrder",
		"order_id", created.ID,
		"customer_id", created.CustomerID,
		"items", len(created.Items))

	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	var order domain.Order

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		var err error
		order, err = repos.Orders.Get(ctx, orderID)
		return err
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("tx.InTx: %w", err)
	}

	return order, nil
}

// ListOrders returns the orders matching the effective key of filter, or all
// orders for an empty filter.
func (s *OrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var orders []domain.Order

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		var err error
		orders, err = repos.Orders.Search(ctx, filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("tx.InTx: %w", err)
	}

	return orders, nil
}

// UpdateOrder applies customer_id and status from input. A non-nil
// input.Items replaces the order's items; nil keeps them.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID int64, input domain.Order) (domain.Order, error) {
	var updated domain.Order

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		current, err := repos.Orders.Get(ctx, orderID)
		if err != nil {
			return fmt.Errorf("repos.Orders.Get: %w", err)
		}

		current.CustomerID = input.CustomerID
		if input.Status != "" {
			current.Status = input.Status
		}

		if input.Items != nil {
			if _, err := repos.Items.DeleteByOrder(ctx, orderID); err != nil {
				return fmt.Errorf("repos.Items.DeleteByOrder: %w", err)
			}

			items := make([]domain.Item, 0, len(input.Items))
			for _, item := range input.Items {
				item.OrderID = orderID

				created, err := s.createItem(ctx, repos, item)
				if err != nil {
					return err
				}
				items = append(items, created)
			}
			current.Items = items
		}

		updated, err = s.saveOrder(ctx, repos, current)
		return err
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("tx.InTx: %w", err)
	}

	s.logger.InfoContext(ctx, "order updated",
		"method", "OrderService.UpdateOrder",
		"order_id", orderID)

	return updated, nil
}

// SaveOrder stamps the update time, recomputes the total from order.Items and
// persists the order row. CreationTime is left untouched.
func (s *OrderService) SaveOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	var saved domain.Order

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		var err error
		saved, err = s.saveOrder(ctx, repos, order)
		return err
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("tx.InTx: %w", err)
	}

	return saved, nil
}

// RefreshOrder reloads the order with its current items and saves it, which
// brings total_price and last_updated_time in line after item changes.
func (s *OrderService) RefreshOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	var refreshed domain.Order

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		var err error
		refreshed, err = s.refreshOrder(ctx, repos, orderID)
		return err
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("tx.InTx: %w", err)
	}

	return refreshed, nil
}

// DeleteOrder removes the order and its items. Deleting a missing order is a no-op.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) error {
	var found bool

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		var err error
		found, err = repos.Orders.Delete(ctx, orderID)
		return err
	})
	if err != nil {
		return fmt.Errorf("tx.InTx: %w", err)
	}

	s.logger.InfoContext(ctx, "order deleted",
		"method", "OrderService.DeleteOrder",
		"order_id", orderID,
		"found", found)

	return nil
}

func (s *OrderService) CancelOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	var canceled domain.Order

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		order, err := repos.Orders.Get(ctx, orderID)
		if err != nil {
			return fmt.Errorf("repos.Orders.Get: %w", err)
		}

		order.Cancel(s.clock())

		canceled, err = repos.Orders.Update(ctx, order)
		if err != nil {
			return fmt.Errorf("repos.Orders.Update: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("tx.InTx: %w", err)
	}

	s.logger.InfoContext(ctx, "order canceled",
		"method", "OrderService.CancelOrder",
		"order_id", orderID)

	return canceled, nil
}

// RepeatOrder creates a new order for the same customer with the same status
// and copies of all items. The source order is not modified.
func (s *OrderService) RepeatOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	var repeated domain.Order

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		source, err := repos.Orders.Get(ctx, orderID)
		if err != nil {
			return fmt.Errorf("repos.Orders.Get: %w", err)
		}

		repeated, err = s.createOrder(ctx, repos, source.Copy())
		return err
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("tx.InTx: %w", err)
	}

	s.logger.InfoContext(ctx, "order repeated",
		"method", "OrderService.RepeatOrder",
		"source_order_id", orderID,
		"order_id", repeated.ID)

	return repeated, nil
}

// AddItem appends input to the order. The order must exist.
func (s *OrderService) AddItem(ctx context.Context, orderID int64, input domain.Item) (domain.Item, error) {
	var created domain.Item

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		order, err := repos.Orders.Get(ctx, orderID)
		if err != nil {
			return fmt.Errorf("repos.Orders.Get: %w", err)
		}

		input.OrderID = orderID

		created, err = s.createItem(ctx, repos, input)
		if err != nil {
			return err
		}

		if !s.cascade {
			return nil
		}

		order.Items = append(order.Items, created)
		_, err = s.saveOrder(ctx, repos, order)
		return err
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("tx.InTx: %w", err)
	}

	s.logger.InfoContext(ctx, "item added",
		"method", "OrderService.AddItem",
		"order_id", orderID,
		"item_id", created.ID)

	return created, nil
}

// CreateItem stores item as a new record of item.OrderID without touching
// the parent order.
func (s *OrderService) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	var created domain.Item

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		var err error
		created, err = s.createItem(ctx, repos, item)
		return err
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("tx.InTx: %w", err)
	}

	return created, nil
}

func (s *OrderService) ListItems(ctx context.Context, orderID int64) ([]domain.Item, error) {
	var items []domain.Item

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		order, err := repos.Orders.Get(ctx, orderID)
		if err != nil {
			return fmt.Errorf("repos.Orders.Get: %w", err)
		}

		items = order.Items
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tx.InTx: %w", err)
	}

	return items, nil
}

func (s *OrderService) GetItem(ctx context.Context, orderID, itemID int64) (domain.Item, error) {
	var item domain.Item

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		var err error
		item, err = getOrderItem(ctx, repos, orderID, itemID)
		return err
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("tx.InTx: %w", err)
	}

	return item, nil
}

// UpdateItem overwrites the item fields with input. The item stays in its order.
func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID int64, input domain.Item) (domain.Item, error) {
	var saved domain.Item

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		if _, err := getOrderItem(ctx, repos, orderID, itemID); err != nil {
			return err
		}

		input.ID = itemID
		input.OrderID = orderID

		var err error
		saved, err = repos.Items.Update(ctx, input)
		if err != nil {
			return fmt.Errorf("repos.Items.Update: %w", err)
		}

		if !s.cascade {
			return nil
		}

		_, err = s.refreshOrder(ctx, repos, orderID)
		return err
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("tx.InTx: %w", err)
	}

	s.logger.InfoContext(ctx, "item updated",
		"method", "OrderService.UpdateItem",
		"order_id", orderID,
		"item_id", itemID)

	return saved, nil
}

// SaveItem persists item as it is. The parent order is not refreshed.
func (s *OrderService) SaveItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	var saved domain.Item

	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		var err error
		saved, err = repos.Items.Update(ctx, item)
		return err
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("tx.InTx: %w", err)
	}

	return saved, nil
}

// DeleteItem removes the item from the order. A missing item is a no-op.
func (s *OrderService) DeleteItem(ctx context.Context, orderID, itemID int64) error {
	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		found, err := s.removeItem(ctx, repos, orderID, itemID)
		if err != nil || !found || !s.cascade {
			return err
		}

		_, err = s.refreshOrder(ctx, repos, orderID)
		return err
	})
	if err != nil {
		return fmt.Errorf("tx.InTx: %w", err)
	}

	s.logger.InfoContext(ctx, "item deleted",
		"method", "OrderService.DeleteItem",
		"order_id", orderID,
		"item_id", itemID)

	return nil
}

// RemoveItem deletes the item without refreshing the parent order.
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID int64) error {
	err := s.tx.InTx(ctx, func(repos port.Repositories) error {
		_, err := s.removeItem(ctx, repos, orderID, itemID)
		return err
	})
	if err != nil {
		return fmt.Errorf("tx.InTx: %w", err)
	}

	return nil
}

func (s *OrderService) createOrder(ctx context.Context, repos port.Repositories, order domain.Order) (domain.Order, error) {
	order.Items = slices.Clone(order.Items)
	order.PrepareCreate(s.clock())

	created, err := repos.Orders.Insert(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("repos.Orders.Insert: %w", err)
	}

	return created, nil
}

func (s *OrderService) saveOrder(ctx context.Context, repos port.Repositories, order domain.Order) (domain.Order, error) {
	order.Touch(s.clock())

	saved, err := repos.Orders.Update(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("repos.Orders.Update: %w", err)
	}

	return saved, nil
}

func (s *OrderService) refreshOrder(ctx context.Context, repos port.Repositories, orderID int64) (domain.Order, error) {
	order, err := repos.Orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("repos.Orders.Get: %w", err)
	}

	return s.saveOrder(ctx, repos, order)
}

func (s *OrderService) createItem(ctx context.Context, repos port.Repositories, item domain.Item) (domain.Item, error) {
	item.ID = 0

	created, err := repos.Items.Insert(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repos.Items.Insert: %w", err)
	}

	return created, nil
}

func (s *OrderService) removeItem(ctx context.Context, repos port.Repositories, orderID, itemID int64) (bool, error) {
	_, err := getOrderItem(ctx, repos, orderID, itemID)
	if errors.Is(err, domain.ErrItemNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	found, err := repos.Items.Delete(ctx, itemID)
	if err != nil {
		return false, fmt.Errorf("repos.Items.Delete: %w", err)
	}

	return found, nil
}

// getOrderItem treats an item of another order as missing.
func getOrderItem(ctx context.Context, repos port.Repositories, orderID, itemID int64) (domain.Item, error) {
	item, err := repos.Items.Get(ctx, itemID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("repos.Items.Get: %w", err)
	}

	if item.OrderID != orderID {
		return domain.Item{}, fmt.Errorf("item[%d] of order[%d]: %w", itemID, orderID, domain.ErrItemNotFound)
	}

	return item, nil
}

// clock matches the microsecond precision of timestamptz, so stored and
// returned timestamps compare equal.
func (s *OrderService) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
