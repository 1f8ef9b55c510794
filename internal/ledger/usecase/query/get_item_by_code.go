package query

import (
	"fmt"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

// GetItemByCodeQuery represents the query to get an item by its unique code
type GetItemByCodeQuery struct {
	Code string
}

// GetItemByCodeHandler handles get item by code query
type GetItemByCodeHandler struct {
	repo domain.LedgerRepository
}

// NewGetItemByCodeHandler creates a new get item by code handler
func NewGetItemByCodeHandler(repo domain.LedgerRepository) *GetItemByCodeHandler {
	return &GetItemByCodeHandler{repo: repo}
}

// Handle executes the get item by code query
func (h *GetItemByCodeHandler) Handle(query GetItemByCodeQuery) (*domain.Item, error) {
	if query.Code == "" {
		return nil, fmt.Errorf("code is required")
	}

	return h.repo.FindItemByCode(query.Code)
}
