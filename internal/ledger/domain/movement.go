package domain

import "time"

// Movement directions.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// Movement is one ledger entry: a signed stock change applied to an item.
// Rows are append-only; nothing in this module updates or deletes them.
// ItemName is captured at record time so history stays readable if the
// item is later renamed.
type Movement struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ItemID     uint      `json:"item_id" gorm:"not null;index"`
	ItemName   string    `json:"item_name" gorm:"not null"`
	Direction  string    `json:"direction" gorm:"not null"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	Reference  *string   `json:"reference,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`

	// NewBalance is the item balance right after this movement was
	// applied. Set inside ApplyMovement's transaction, not persisted;
	// the journal itself is the durable record.
	NewBalance int `json:"new_balance" gorm:"-"`
}

// TableName specifies the table name
func (Movement) TableName() string {
	return "stock_movements"
}

// ValidDirection reports whether d is a known movement direction.
func ValidDirection(d string) bool {
	return d == DirectionIn || d == DirectionOut
}

// Delta returns the signed quantity this movement applies to the balance.
func (m *Movement) Delta() int {
	if m.Direction == DirectionOut {
		return -m.Quantity
	}
	return m.Quantity
}
