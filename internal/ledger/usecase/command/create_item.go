package command

import (
	"fmt"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

// CreateItemCommand represents the command to create an item
type CreateItemCommand struct {
	Code          string
	Name          string
	Description   *string
	StockQuantity int
}

// CreateItemHandler handles create item command
type CreateItemHandler struct {
	repo domain.LedgerRepository
}

// NewCreateItemHandler creates a new create item handler
func NewCreateItemHandler(repo domain.LedgerRepository) *CreateItemHandler {
	return &CreateItemHandler{repo: repo}
}

// Handle executes the create item command
func (h *CreateItemHandler) Handle(cmd CreateItemCommand) (*domain.Item, error) {
	if cmd.Code == "" {
		return nil, fmt.Errorf("code is required")
	}

	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if cmd.StockQuantity < 0 {
		return nil, fmt.Errorf("stock_quantity cannot be negative")
	}

	item := &domain.Item{
		Code:          cmd.Code,
		Name:          cmd.Name,
		Description:   cmd.Description,
		StockQuantity: cmd.StockQuantity,
	}

	if err := h.repo.CreateItem(item); err != nil {
		return nil, err
	}

	return item, nil
}
