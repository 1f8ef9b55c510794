package query

import (
	"fmt"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

// GetStatsQuery represents the query to get ledger statistics
type GetStatsQuery struct{}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.LedgerRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.LedgerRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(query GetStatsQuery) (*domain.LedgerStats, error) {
	stats, err := h.repo.Stats()
	if err != nil {
		return nil, fmt.Errorf("failed to collect ledger stats: %w", err)
	}

	return stats, nil
}
