package domain

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	orderEntity = "Order"
	itemEntity  = "Item"

	maxItemNameLength        = 64
	maxItemDescriptionLength = 128

	// prices are kept well inside float64 range so Serialize never yields Inf
	maxPriceScale    = 12
	maxPriceExponent = 15

	// longer numeric literals are rejected before parsing
	maxNumberLength = 64
	// exponents outside this range are rejected before any arithmetic
	maxNumberExponent = 64
)

// maxPrice is exclusive.
var maxPrice = decimal.New(1, maxPriceExponent)

// Serialize converts an Order into its plain wire mapping.
func (o Order) Serialize() map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, item.Serialize())
	}

	return map[string]any{
		"id":                o.ID,
		"customer_id":       o.CustomerID,
		"creation_time":     formatTime(o.CreationTime),
		"last_updated_time": formatTime(o.LastUpdatedTime),
		"items":             items,
		"total_price":       o.TotalPrice.InexactFloat64(),
		"status":            string(o.Status),
	}
}

// Serialize converts an Item into its plain wire mapping.
func (i Item) Serialize() map[string]any {
	return map[string]any{
		"id":          i.ID,
		"order_id":    i.OrderID,
		"name":        i.Name,
		"price":       i.Price.InexactFloat64(),
		"description": i.Description,
		"quantity":    i.Quantity,
	}
}

// Deserialize populates an Order from a decoded JSON value. The ID is never
// read from data and total_price, if present, is ignored.
//
// A present "items" key replaces Items with a non-nil slice, so callers can
// tell "no items" apart from "items not sent".
func (o *Order) Deserialize(data any) error {
	f, err := asFields(orderEntity, data)
	if err != nil {
		return err
	}

	customerID, err := f.int64("customer_id")
	if err != nil {
		return err
	}

	rawStatus, _, err := f.optionalString("status")
	if err != nil {
		return err
	}

	var status OrderStatus
	if rawStatus != "" {
		status, err = ToOrderStatus(rawStatus)
		if err != nil {
			return newValidationError(orderEntity, "%s", err)
		}
	}

	var items []Item
	if raw, ok := f.m["items"]; ok && raw != nil {
		list, ok := raw.([]any)
		if !ok {
			return newValidationError(orderEntity, "items must be a list")
		}

		items = make([]Item, 0, len(list))
		for idx, rawItem := range list {
			var item Item
			if err := item.Deserialize(rawItem); err != nil {
				var ve *DataValidationError
				if errors.As(err, &ve) {
					return newValidationError(orderEntity, "items[%d]: %s", idx, ve.Reason)
				}
				return err
			}
			items = append(items, item)
		}
	}

	o.CustomerID = customerID
	o.Status = status
	o.Items = items

	return nil
}

// Deserialize populates an Item from a decoded JSON value. order_id is
// optional because the owning order usually comes from the request path.
func (i *Item) Deserialize(data any) error {
	f, err := asFields(itemEntity, data)
	if err != nil {
		return err
	}

	var orderID int64
	if raw, ok := f.m["order_id"]; ok && raw != nil {
		orderID, err = f.int64("order_id")
		if err != nil {
			return err
		}
	}

	name, err := f.string("name")
	if err != nil {
		return err
	}
	if utf8.RuneCountInString(name) > maxItemNameLength {
		return newValidationError(itemEntity, "name is longer than %d characters", maxItemNameLength)
	}
	if strings.ContainsRune(name, 0) {
		return newValidationError(itemEntity, "name must not contain NUL characters")
	}

	price, err := f.decimal("price")
	if err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}

	description, err := f.string("description")
	if err != nil {
		return err
	}
	if utf8.RuneCountInString(description) > maxItemDescriptionLength {
		return newValidationError(itemEntity, "description is longer than %d characters", maxItemDescriptionLength)
	}
	if strings.ContainsRune(description, 0) {
		return newValidationError(itemEntity, "description must not contain NUL characters")
	}

	quantity, err := f.int64("quantity")
	if err != nil {
		return err
	}
	if quantity < 0 || quantity > math.MaxInt32 {
		return newValidationError(itemEntity, "quantity is out of range")
	}

	i.OrderID = orderID
	i.Name = name
	i.Price = price
	i.Description = description
	i.Quantity = int32(quantity)

	return nil
}

// validatePrice checks the exponent before comparing values, comparison
// rescales both operands and is unbounded for extreme exponents.
func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return newValidationError(itemEntity, "price must not be negative")
	}

	if price.Exponent() < -maxPriceScale {
		return newValidationError(itemEntity, "price has more than %d decimal places", maxPriceScale)
	}

	if price.Exponent() >= maxPriceExponent || !price.LessThan(maxPrice) {
		return newValidationError(itemEntity, "price must be less than %s", maxPrice)
	}

	return nil
}

// DecodeOrder reads a JSON body and deserializes it into an Order.
func DecodeOrder(r io.Reader) (Order, error) {
	var o Order

	data, err := decodeJSON(r, orderEntity)
	if err != nil {
		return o, err
	}

	if err := o.Deserialize(data); err != nil {
		return Order{}, err
	}

	return o, nil
}

// DecodeItem reads a JSON body and deserializes it into an Item.
func DecodeItem(r io.Reader) (Item, error) {
	var i Item

	data, err := decodeJSON(r, itemEntity)
	if err != nil {
		return i, err
	}

	if err := i.Deserialize(data); err != nil {
		return Item{}, err
	}

	return i, nil
}

func decodeJSON(r io.Reader, entity string) (any, error) {
	dec := json.NewDecoder(r)
	// keep numbers exact, prices must not pass through float64
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, newValidationError(entity, "malformed JSON: %v", err)
	}

	if dec.More() {
		return nil, newValidationError(entity, "unexpected data after JSON body")
	}

	return data, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

type fields struct {
	entity string
	m      map[string]any
}

func asFields(entity string, data any) (fields, error) {
	m, ok := data.(map[string]any)
	if !ok {
		return fields{}, newValidationError(entity, "body of request contained bad or no data")
	}

	return fields{entity: entity, m: m}, nil
}

func (f fields) lookup(key string) (any, error) {
	v, ok := f.m[key]
	if !ok {
		return nil, newValidationError(f.entity, "missing %s", key)
	}

	return v, nil
}

func (f fields) int64(key string) (int64, error) {
	v, err := f.lookup(key)
	if err != nil {
		return 0, err
	}

	n, ok := toInt64(v)
	if !ok {
		return 0, newValidationError(f.entity, "%s must be an integer", key)
	}

	return n, nil
}

func (f fields) decimal(key string) (decimal.Decimal, error) {
	v, err := f.lookup(key)
	if err != nil {
		return decimal.Zero, err
	}

	d, ok := toDecimal(v)
	if !ok {
		return decimal.Zero, newValidationError(f.entity, "%s must be a number", key)
	}

	return d, nil
}

func (f fields) string(key string) (string, error) {
	v, err := f.lookup(key)
	if err != nil {
		return "", err
	}

	s, ok := v.(string)
	if !ok {
		return "", newValidationError(f.entity, "%s must be a string", key)
	}

	return s, nil
}

func (f fields) optionalString(key string) (string, bool, error) {
	v, ok := f.m[key]
	if !ok || v == nil {
		return "", false, nil
	}

	s, ok := v.(string)
	if !ok {
		return "", false, newValidationError(f.entity, "%s must be a string", key)
	}

	return s, true, nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}

		// 42.0 and 4.2e1 are integers too
		d, ok := parseNumber(n.String())
		if !ok || d.Exponent() > 18 || !d.IsInteger() {
			return 0, false
		}
		if d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || d.LessThan(decimal.NewFromInt(math.MinInt64)) {
			return 0, false
		}
		return d.IntPart(), true
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		return parseNumber(n.String())
	case string:
		return parseNumber(strings.TrimSpace(n))
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case decimal.Decimal:
		return n, true
	default:
		return decimal.Zero, false
	}
}

// parseNumber refuses literals whose length or exponent would make later
// decimal arithmetic arbitrarily expensive.
func parseNumber(s string) (decimal.Decimal, bool) {
	if s == "" || len(s) > maxNumberLength {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	if exp := d.Exponent(); exp > maxNumberExponent || exp < -maxNumberExponent {
		return decimal.Zero, false
	}

	return d, true
}
