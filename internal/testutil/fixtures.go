package testutil

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/orders/internal/domain"
	"github.com/shopspring/decimal"
)

var statuses = []string{"Created", "shipped", "finished", "delivered", "submitted"}

// RandomOrder returns an unsaved order with 1 to 5 items and a consistent total.
func RandomOrder() domain.Order {
	var items []domain.Item
	for range gofakeit.Number(1, 5) {
		items = append(items, RandomItem())
	}

	order := domain.Order{
		CustomerID: int64(gofakeit.Number(1, 1_000_000)),
		Status:     domain.OrderStatus(gofakeit.RandomString(statuses)),
		Items:      items,
	}
	order.RecalculateTotal()

	return order
}

func RandomItem() domain.Item {
	return domain.Item{
		Name:        truncate(gofakeit.ProductName(), 64),
		Price:       decimal.NewFromFloat(gofakeit.Price(0.01, 100)),
		Description: truncate(gofakeit.ProductDescription(), 128),
		Quantity:    int32(gofakeit.Number(1, 10)),
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
