package query

import (
	"fmt"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

// ListItemsQuery represents the query to list items
type ListItemsQuery struct {
	Limit  int
	Offset int
}

// ListItemsHandler handles list items query
type ListItemsHandler struct {
	repo domain.LedgerRepository
}

// NewListItemsHandler creates a new list items handler
func NewListItemsHandler(repo domain.LedgerRepository) *ListItemsHandler {
	return &ListItemsHandler{repo: repo}
}

// Handle executes the list items query
func (h *ListItemsHandler) Handle(query ListItemsQuery) ([]domain.Item, error) {
	if query.Limit == 0 {
		query.Limit = 10
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	items, err := h.repo.FindAllItems(query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}
