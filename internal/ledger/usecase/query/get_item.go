package query

import (
	"fmt"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

// GetItemQuery represents the query to get an item by id
type GetItemQuery struct {
	ID uint
}

// GetItemHandler handles get item query
type GetItemHandler struct {
	repo domain.LedgerRepository
}

// NewGetItemHandler creates a new get item handler
func NewGetItemHandler(repo domain.LedgerRepository) *GetItemHandler {
	return &GetItemHandler{repo: repo}
}

// Handle executes the get item query
func (h *GetItemHandler) Handle(query GetItemQuery) (*domain.Item, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	return h.repo.FindItemByID(query.ID)
}
