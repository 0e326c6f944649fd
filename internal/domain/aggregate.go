package domain

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// RecalculateTotal sets TotalPrice to the sum of price*quantity over Items.
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}

	o.TotalPrice = total
}

// PrepareCreate resets the order to an unsaved state stamped at now.
func (o *Order) PrepareCreate(now time.Time) {
	o.ID = 0
	if o.Status == "" {
		o.Status = OrderStatusCreated
	}

	for idx := range o.Items {
		o.Items[idx].ID = 0
		o.Items[idx].OrderID = 0
	}

	o.CreationTime = now
	o.LastUpdatedTime = now
	o.RecalculateTotal()
}

// Touch marks the order as updated at now and recomputes its total.
// LastUpdatedTime always ends up strictly after CreationTime, even if the
// clock did not move since creation.
func (o *Order) Touch(now time.Time) {
	if !now.After(o.CreationTime) {
		now = o.CreationTime.Add(time.Microsecond)
	}

	o.LastUpdatedTime = now
	o.RecalculateTotal()
}

func (o *Order) Cancel(now time.Time) {
	o.Status = OrderStatusCanceled
	o.Touch(now)
}

// Copy returns a deep copy of the order with all identifiers and timestamps
// cleared, ready to be created as a new order.
func (o Order) Copy() Order {
	items := lo.Map(o.Items, func(item Item, _ int) Item {
		item.ID = 0
		item.OrderID = 0
		return item
	})

	return Order{
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Items:      items,
		TotalPrice: o.TotalPrice,
	}
}
