package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrItemNotFound = errors.New("item not found")
)

// DataValidationError reports a payload that cannot be turned into an entity.
type DataValidationError struct {
	Entity string
	Reason string
}

func (e *DataValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, e.Reason)
}

func newValidationError(entity, format string, args ...any) *DataValidationError {
	return &DataValidationError{
		Entity: entity,
		Reason: fmt.Sprintf(format, args...),
	}
}

// IsNotFound reports whether err stands for a missing order or item.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrItemNotFound)
}

func IsValidation(err error) bool {
	var ve *DataValidationError
	return errors.As(err, &ve)
}
