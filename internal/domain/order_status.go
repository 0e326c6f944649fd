package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// OrderStatus is free-form, only the values below carry business meaning.
type OrderStatus string

const (
	OrderStatusCreated  OrderStatus = "Created"
	OrderStatusCanceled OrderStatus = "Canceled"
)

const maxStatusLength = 64

func ToOrderStatus(s string) (OrderStatus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("status is empty")
	}

	if utf8.RuneCountInString(s) > maxStatusLength {
		return "", errors.New("status is too long")
	}

	if strings.ContainsRune(s, 0) {
		return "", errors.New("status must not contain NUL characters")
	}

	return OrderStatus(s), nil
}

func (s OrderStatus) IsCanceled() bool {
	return s == OrderStatusCanceled
}
