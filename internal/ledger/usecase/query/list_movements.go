package query

import (
	"fmt"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

// ListMovementsQuery lists ledger entries, newest first. When ItemID is
// zero the whole ledger is listed.
type ListMovementsQuery struct {
	ItemID uint
	Limit  int
	Offset int
}

// ListMovementsHandler handles list movements query
type ListMovementsHandler struct {
	repo domain.LedgerRepository
}

// NewListMovementsHandler creates a new list movements handler
func NewListMovementsHandler(repo domain.LedgerRepository) *ListMovementsHandler {
	return &ListMovementsHandler{repo: repo}
}

// Handle executes the list movements query
func (h *ListMovementsHandler) Handle(query ListMovementsQuery) ([]domain.Movement, error) {
	if query.Limit == 0 {
		query.Limit = 20
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	var (
		movements []domain.Movement
		err       error
	)
	if query.ItemID != 0 {
		// Listing an item's ledger requires the item to exist, so a bad id
		// reads as not-found rather than an empty history.
		if _, err := h.repo.FindItemByID(query.ItemID); err != nil {
			return nil, err
		}
		movements, err = h.repo.FindMovementsByItemID(query.ItemID, query.Limit, query.Offset)
	} else {
		movements, err = h.repo.FindAllMovements(query.Limit, query.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	return movements, nil
}
