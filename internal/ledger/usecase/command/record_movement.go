package command

import (
	"context"
	"fmt"
	"time"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

// RecordMovementCommand represents a request to move stock for an item.
// Reference and Notes are free-form and optional. OccurredAt defaults to
// the current time when zero.
type RecordMovementCommand struct {
	ItemID     uint
	Direction  string
	Quantity   int
	Reference  *string
	Notes      *string
	OccurredAt time.Time
}

// RecordMovementHandler is the ledger engine's entry point: it validates
// the command shape, then hands the movement to the repository's atomic
// unit, which enforces item existence and the non-negative balance
// invariant. A single call applies exactly one balance delta and inserts
// exactly one movement row, or nothing at all.
type RecordMovementHandler struct {
	repo domain.LedgerRepository
}

// NewRecordMovementHandler creates a new record movement handler
func NewRecordMovementHandler(repo domain.LedgerRepository) *RecordMovementHandler {
	return &RecordMovementHandler{repo: repo}
}

// Handle executes the record movement command
func (h *RecordMovementHandler) Handle(ctx context.Context, cmd RecordMovementCommand) (*domain.Movement, error) {
	if cmd.ItemID == 0 {
		return nil, fmt.Errorf("item_id is required")
	}

	if cmd.Quantity <= 0 {
		return nil, &domain.InvalidQuantityError{Quantity: cmd.Quantity}
	}

	if !domain.ValidDirection(cmd.Direction) {
		return nil, &domain.InvalidDirectionError{Direction: cmd.Direction}
	}

	occurredAt := cmd.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	movement := &domain.Movement{
		ItemID:     cmd.ItemID,
		Direction:  cmd.Direction,
		Quantity:   cmd.Quantity,
		Reference:  cmd.Reference,
		Notes:      cmd.Notes,
		OccurredAt: occurredAt,
	}

	if err := h.repo.ApplyMovement(ctx, movement); err != nil {
		return nil, err
	}

	return movement, nil
}
