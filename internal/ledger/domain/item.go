package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Item is a stocked article. StockQuantity is the denormalized balance of
// its movement ledger and must never go negative. All balance changes go
// through LedgerRepository.ApplyMovement; the generic Update path below
// bypasses that guard and exists only to mirror the admin CRUD surface.
type Item struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Code          string         `json:"code" gorm:"uniqueIndex;not null"`
	Name          string         `json:"name" gorm:"not null"`
	Description   *string        `json:"description,omitempty"`
	StockQuantity int            `json:"stock_quantity" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "items"
}

// LedgerStats aggregates the current state of the ledger.
type LedgerStats struct {
	ItemCount     int64 `json:"item_count"`
	TotalStock    int64 `json:"total_stock"`
	InboundCount  int64 `json:"inbound_count"`
	OutboundCount int64 `json:"outbound_count"`
}

// LedgerRepository defines the contract for item and movement persistence.
// ApplyMovement is the single write path for StockQuantity: it must lock
// the item row, apply the signed delta, and insert the movement record in
// one transaction.
type LedgerRepository interface {
	CreateItem(item *Item) error
	FindItemByID(id uint) (*Item, error)
	FindItemByCode(code string) (*Item, error)
	FindAllItems(limit, offset int) ([]Item, error)
	UpdateItem(item *Item) error
	DeleteItem(id uint) error

	ApplyMovement(ctx context.Context, movement *Movement) error
	FindMovementsByItemID(itemID uint, limit, offset int) ([]Movement, error)
	FindAllMovements(limit, offset int) ([]Movement, error)

	Stats() (*LedgerStats, error)
}
