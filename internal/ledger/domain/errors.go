package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the repository and usecase layers.
var (
	// ErrItemNotFound means the referenced item id or code does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateCode means an item with the same unique code already exists.
	ErrDuplicateCode = errors.New("item code already exists")

	// ErrConflictRetryExhausted means concurrent movements against the same
	// item could not be serialized within the bounded retry budget.
	ErrConflictRetryExhausted = errors.New("movement conflict: retries exhausted")
)

// InvalidQuantityError rejects a movement whose quantity is zero or
// negative. Raised before any store access.
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d: must be a positive integer", e.Quantity)
}

// InvalidDirectionError rejects a movement with an unknown direction.
type InvalidDirectionError struct {
	Direction string
}

func (e *InvalidDirectionError) Error() string {
	return fmt.Sprintf("invalid direction %q: must be %s or %s", e.Direction, DirectionIn, DirectionOut)
}

// InsufficientStockError rejects an outbound movement that would drive the
// balance negative. It carries both quantities so callers can build a
// message without re-querying.
type InsufficientStockError struct {
	ItemID    uint
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d: available=%d, requested=%d",
		e.ItemID, e.Available, e.Requested)
}
