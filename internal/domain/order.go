package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root. TotalPrice is derived from Items and is never
// taken from client input.
type Order struct {
	ID         int64
	CustomerID int64
	Status     OrderStatus
	Items      []Item
	TotalPrice decimal.Decimal

	CreationTime    time.Time
	LastUpdatedTime time.Time
}

// Item is a line of an Order and never outlives it.
type Item struct {
	ID          int64
	OrderID     int64
	Name        string
	Price       decimal.Decimal
	Description string
	Quantity    int32
}

// Subtotal is Price times Quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt32(i.Quantity))
}
