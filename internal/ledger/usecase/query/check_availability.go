package query

import (
	"fmt"

	"github.com/stokq/stock-ledger/internal/ledger/domain"
)

// CheckAvailabilityQuery asks whether an item can cover an outbound
// movement of the requested quantity.
type CheckAvailabilityQuery struct {
	ItemID   uint
	Quantity int
}

// Availability is the answer to a CheckAvailabilityQuery. It is advisory:
// only ApplyMovement's atomic unit gives an authoritative answer.
type Availability struct {
	ItemID    uint   `json:"item_id"`
	ItemCode  string `json:"item_code"`
	Available bool   `json:"available"`
	Stock     int    `json:"stock"`
	Requested int    `json:"requested"`
}

// CheckAvailabilityHandler handles availability queries
type CheckAvailabilityHandler struct {
	repo domain.LedgerRepository
}

// NewCheckAvailabilityHandler creates a new availability handler
func NewCheckAvailabilityHandler(repo domain.LedgerRepository) *CheckAvailabilityHandler {
	return &CheckAvailabilityHandler{repo: repo}
}

// Handle executes the availability query
func (h *CheckAvailabilityHandler) Handle(query CheckAvailabilityQuery) (*Availability, error) {
	if query.ItemID == 0 {
		return nil, fmt.Errorf("item_id is required")
	}

	quantity := query.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	item, err := h.repo.FindItemByID(query.ItemID)
	if err != nil {
		return nil, err
	}

	return &Availability{
		ItemID:    item.ID,
		ItemCode:  item.Code,
		Available: item.StockQuantity >= quantity,
		Stock:     item.StockQuantity,
		Requested: quantity,
	}, nil
}
