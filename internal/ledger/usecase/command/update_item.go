package command

import (
	"fmt"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

// UpdateItemCommand represents the generic item update. Nil fields are
// left unchanged.
//
// StockQuantity here writes the balance directly, outside the movement
// ledger's atomic unit. It exists to mirror the admin CRUD surface; edits
// made through it leave no ledger entry and are invisible to the audit
// trail. Known hazard, kept deliberately.
type UpdateItemCommand struct {
	ID            uint
	Code          *string
	Name          *string
	Description   *string
	StockQuantity *int
}

// UpdateItemHandler handles update item command
type UpdateItemHandler struct {
	repo domain.LedgerRepository
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(repo domain.LedgerRepository) *UpdateItemHandler {
	return &UpdateItemHandler{repo: repo}
}

// Handle executes the update item command
func (h *UpdateItemHandler) Handle(cmd UpdateItemCommand) (*domain.Item, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("item id is required")
	}

	item, err := h.repo.FindItemByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Code != nil {
		if *cmd.Code == "" {
			return nil, fmt.Errorf("code cannot be empty")
		}
		item.Code = *cmd.Code
	}
	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		item.Name = *cmd.Name
	}
	if cmd.Description != nil {
		item.Description = cmd.Description
	}
	if cmd.StockQuantity != nil {
		if *cmd.StockQuantity < 0 {
			return nil, fmt.Errorf("stock_quantity cannot be negative")
		}
		item.StockQuantity = *cmd.StockQuantity
	}

	if err := h.repo.UpdateItem(item); err != nil {
		return nil, err
	}

	return item, nil
}
