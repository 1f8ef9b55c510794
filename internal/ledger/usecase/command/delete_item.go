package command

import (
	"fmt"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

// DeleteItemCommand represents the command to delete an item
type DeleteItemCommand struct {
	ID uint
}

// DeleteItemHandler handles delete item command. Deletion is soft so that
// movement history keeps a valid referent.
type DeleteItemHandler struct {
	repo domain.LedgerRepository
}

// NewDeleteItemHandler creates a new delete item handler
func NewDeleteItemHandler(repo domain.LedgerRepository) *DeleteItemHandler {
	return &DeleteItemHandler{repo: repo}
}

// Handle executes the delete item command
func (h *DeleteItemHandler) Handle(cmd DeleteItemCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("item id is required")
	}

	if err := h.repo.DeleteItem(cmd.ID); err != nil {
		return err
	}

	return nil
}
